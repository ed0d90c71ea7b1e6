package domain

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// KPICard é o resumo de uma métrica na janela selecionada
type KPICard struct {
	Key      MetricKey `json:"key"`
	Title    string    `json:"title"`
	Value    float64   `json:"value"`
	Display  string    `json:"display"`
	Unit     string    `json:"unit"`
	Selected bool      `json:"selected"`
}

// DashboardView é tudo que o front precisa para desenhar o dashboard
type DashboardView struct {
	Window      DateWindow        `json:"window"`
	Primary     MetricDefinition  `json:"primary"`
	Secondary   MetricDefinition  `json:"secondary"`
	Headline    string            `json:"headline"`
	Totals      Totals            `json:"totals"`
	Cards       []KPICard         `json:"cards"`
	Trend       []TrendPoint      `json:"trend"`
	Comparison  []ComparisonPoint `json:"comparison"`
	LineChart   ChartConfig       `json:"line_chart"`
	BarChart    ChartConfig       `json:"bar_chart"`
	RecordCount int               `json:"record_count"`
}

// Derive recalcula a visão inteira a partir das três entradas: registros,
// janela e métrica selecionada. Não há estado nem cache entre chamadas.
func Derive(records []SalesRecord, window DateWindow, selected MetricKey) DashboardView {
	filtered := Filter(records, window)
	totals := Aggregate(filtered)
	selection := Selection{Key: selected}
	primary := selection.Primary()
	secondary := selection.Secondary()

	return DashboardView{
		Window:      window,
		Primary:     primary,
		Secondary:   secondary,
		Headline:    fmt.Sprintf("%s Insights", primary.Title),
		Totals:      totals,
		Cards:       BuildCards(totals, selected),
		Trend:       TrendSeries(filtered, primary),
		Comparison:  ComparisonSeries(filtered, primary, secondary),
		LineChart:   LineChartConfig(primary),
		BarChart:    BarChartConfig(primary, secondary),
		RecordCount: len(filtered),
	}
}

// BuildCards monta um card por métrica, na ordem do catálogo
func BuildCards(totals Totals, selected MetricKey) []KPICard {
	cards := make([]KPICard, 0, len(MetricKeys))
	for _, key := range MetricKeys {
		definition := key.Definition()
		value := totals.Value(key)

		cards = append(cards, KPICard{
			Key:      key,
			Title:    definition.Title,
			Value:    value,
			Display:  FormatMetricValue(definition, value),
			Unit:     definition.Unit,
			Selected: key == selected,
		})
	}

	return cards
}

// exactFractionDigits cobre a expansão decimal completa de qualquer float64
const exactFractionDigits = 1100

// FormatMetricValue formata o valor do card: percentuais com uma casa, demais sem casas.
// O arredondamento parte do valor binário exato, então 1.45 vira "1.4".
func FormatMetricValue(definition MetricDefinition, value float64) string {
	places := int32(0)
	if definition.Unit == UnitPercent {
		places = 1
	}

	exact, err := decimal.NewFromString(new(big.Float).SetFloat64(value).Text('f', exactFractionDigits))
	if err != nil {
		return decimal.NewFromFloat(value).StringFixed(places)
	}

	return exact.StringFixed(places)
}
