package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendSeries(t *testing.T) {
	filtered := Filter(threeDays(), NewDateWindow(day(time.January, 2), day(time.January, 3)))

	points := TrendSeries(filtered, Primary(MetricRevenue))

	require.Len(t, points, len(filtered))
	for i := range points {
		assert.Equal(t, filtered[i].Date, points[i].Date)
	}
	assert.Equal(t, 200.0, points[0].Value)
	assert.Equal(t, 300.0, points[1].Value)
}

func TestTrendSeriesEmpty(t *testing.T) {
	points := TrendSeries([]SalesRecord{}, Primary(MetricOrders))

	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestComparisonSeries(t *testing.T) {
	records := threeDays()
	primary := Primary(MetricConversionRate)
	secondary := Secondary(MetricConversionRate)

	points := ComparisonSeries(records, primary, secondary)

	require.Len(t, points, 3)
	for i, point := range points {
		assert.Equal(t, records[i].Date, point.Date)
		assert.InDelta(t, float64(records[i].Orders)/10*100, point.Primary, 1e-9)
		assert.Equal(t, float64(records[i].Orders), point.Secondary)
	}
}

func TestChartConfigs(t *testing.T) {
	line := LineChartConfig(Primary(MetricRevenue))
	assert.Equal(t, ChartTypeLine, line.ChartType)
	require.Len(t, line.Series, 1)
	assert.Equal(t, "Total Revenue", line.Series[0].Label)
	assert.Equal(t, "var(--chart-1)", line.Series[0].Color)

	bar := BarChartConfig(Primary(MetricOrders), Secondary(MetricOrders))
	assert.Equal(t, "Total Orders vs New Customers (Bar)", bar.Title)
	assert.True(t, bar.Stacked)
	require.Len(t, bar.Series, 2)
	assert.Equal(t, "primary", bar.Series[0].DataKey)
	assert.Equal(t, "var(--chart-5)", bar.Series[1].Color)
}
