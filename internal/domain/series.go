package domain

import (
	"fmt"
	"time"
)

const (
	ChartTypeLine = "line"
	ChartTypeBar  = "bar"
)

// TrendPoint é um ponto do gráfico de tendência da métrica primária
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ComparisonPoint é um ponto do gráfico de barras primária x secundária
type ComparisonPoint struct {
	Date      time.Time `json:"date"`
	Primary   float64   `json:"primary"`
	Secondary float64   `json:"secondary"`
}

type ChartSeries struct {
	DataKey string `json:"data_key"`
	Label   string `json:"label"`
	Color   string `json:"color"`
}

// ChartConfig descreve como o front deve desenhar um gráfico
type ChartConfig struct {
	ChartType string        `json:"chart_type"`
	Title     string        `json:"title"`
	Series    []ChartSeries `json:"series"`
	Stacked   bool          `json:"stacked"`
}

// TrendSeries projeta um ponto por registro, preservando a ordem
func TrendSeries(filtered []SalesRecord, primary MetricDefinition) []TrendPoint {
	points := make([]TrendPoint, 0, len(filtered))
	for _, record := range filtered {
		points = append(points, TrendPoint{
			Date:  record.Date,
			Value: primary.Key.Extract(record),
		})
	}

	return points
}

// ComparisonSeries projeta os valores primário e secundário de cada registro
func ComparisonSeries(filtered []SalesRecord, primary, secondary MetricDefinition) []ComparisonPoint {
	points := make([]ComparisonPoint, 0, len(filtered))
	for _, record := range filtered {
		points = append(points, ComparisonPoint{
			Date:      record.Date,
			Primary:   primary.Key.Extract(record),
			Secondary: secondary.Key.Extract(record),
		})
	}

	return points
}

func LineChartConfig(primary MetricDefinition) ChartConfig {
	return ChartConfig{
		ChartType: ChartTypeLine,
		Title:     "Trend (Line)",
		Series: []ChartSeries{
			{DataKey: "value", Label: primary.Title, Color: cssVar(primary.ColorToken)},
		},
	}
}

func BarChartConfig(primary, secondary MetricDefinition) ChartConfig {
	return ChartConfig{
		ChartType: ChartTypeBar,
		Title:     fmt.Sprintf("%s vs %s (Bar)", primary.Title, secondary.Title),
		Series: []ChartSeries{
			{DataKey: "primary", Label: primary.Title, Color: cssVar(primary.ColorToken)},
			{DataKey: "secondary", Label: secondary.Title, Color: cssVar(secondary.ColorToken)},
		},
		Stacked: true,
	}
}

func cssVar(token string) string {
	return fmt.Sprintf("var(%s)", token)
}
