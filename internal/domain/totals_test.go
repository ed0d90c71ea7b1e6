package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	records := threeDays()

	tests := []struct {
		name   string
		window DateWindow
		want   []time.Time
	}{
		{
			name:   "Janela completa retorna todos os registros em ordem",
			window: FullSpan(records),
			want:   []time.Time{day(time.January, 1), day(time.January, 2), day(time.January, 3)},
		},
		{
			name:   "Limites são inclusivos",
			window: NewDateWindow(day(time.January, 2), day(time.January, 3)),
			want:   []time.Time{day(time.January, 2), day(time.January, 3)},
		},
		{
			name:   "Janela de um único dia",
			window: NewDateWindow(day(time.January, 2), day(time.January, 2)),
			want:   []time.Time{day(time.January, 2)},
		},
		{
			name:   "Janela antes da série retorna vazio",
			window: NewDateWindow(day(time.December, 1).AddDate(-1, 0, 0), day(time.December, 31).AddDate(-1, 0, 0)),
			want:   []time.Time{},
		},
		{
			name:   "Janela depois da série retorna vazio",
			window: NewDateWindow(day(time.February, 1), day(time.February, 10)),
			want:   []time.Time{},
		},
		{
			name:   "Horário do dia é ignorado na comparação",
			window: DateWindow{Start: day(time.January, 3).Add(15 * time.Hour), End: day(time.January, 3).Add(16 * time.Hour)},
			want:   []time.Time{day(time.January, 3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := Filter(records, tt.window)

			require.NotNil(t, filtered)
			got := make([]time.Time, 0, len(filtered))
			for _, record := range filtered {
				got = append(got, record.Date)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregate(t *testing.T) {
	t.Run("Cenário de referência com janela completa", func(t *testing.T) {
		totals := Aggregate(Filter(threeDays(), FullSpan(threeDays())))

		assert.Equal(t, 600.0, totals.Revenue)
		assert.Equal(t, 12, totals.Orders)
		assert.Equal(t, 30, totals.Sessions)
		assert.Equal(t, 6, totals.NewCustomers)
		assert.InDelta(t, 50.0, totals.AvgOrderValue, 1e-9)
		assert.InDelta(t, 40.0, totals.ConversionRate, 1e-9)
	})

	t.Run("Janela sem registros gera totais zerados", func(t *testing.T) {
		filtered := Filter(threeDays(), NewDateWindow(day(time.March, 1), day(time.March, 5)))
		totals := Aggregate(filtered)

		assert.Equal(t, Totals{}, totals)
		assert.Zero(t, totals.AvgOrderValue)
		assert.Zero(t, totals.ConversionRate)
	})

	t.Run("Sem pedidos o ticket médio é zero", func(t *testing.T) {
		totals := Aggregate([]SalesRecord{
			{Date: day(time.January, 1), Revenue: 500, Orders: 0, Sessions: 20},
		})

		assert.Zero(t, totals.AvgOrderValue)
		assert.Zero(t, totals.ConversionRate)
		assert.Equal(t, 500.0, totals.Revenue)
	})

	t.Run("Sem sessões a conversão é zero", func(t *testing.T) {
		totals := Aggregate([]SalesRecord{
			{Date: day(time.January, 1), Revenue: 90, Orders: 3, Sessions: 0},
		})

		assert.InDelta(t, 30.0, totals.AvgOrderValue, 1e-9)
		assert.Zero(t, totals.ConversionRate)
	})

	t.Run("Razões usam as somas e não a média das razões diárias", func(t *testing.T) {
		records := []SalesRecord{
			{Date: day(time.January, 1), Revenue: 100, Orders: 1, Sessions: 100},
			{Date: day(time.January, 2), Revenue: 900, Orders: 9, Sessions: 10},
		}

		totals := Aggregate(records)

		assert.InDelta(t, 100.0, totals.AvgOrderValue, 1e-9)
		assert.InDelta(t, 10.0/110.0*100, totals.ConversionRate, 1e-9)
	})

	t.Run("Soma independe da ordem dentro da tolerância", func(t *testing.T) {
		records := []SalesRecord{
			{Date: day(time.January, 1), Revenue: 0.1},
			{Date: day(time.January, 2), Revenue: 0.2},
			{Date: day(time.January, 3), Revenue: 0.3},
		}
		reversed := []SalesRecord{records[2], records[1], records[0]}

		assert.InDelta(t, Aggregate(records).Revenue, Aggregate(reversed).Revenue, 1e-9)
		assert.InDelta(t, 0.6, Aggregate(records).Revenue, 1e-9)
	})
}

func TestTotalsValue(t *testing.T) {
	totals := Aggregate(threeDays())

	assert.Equal(t, 600.0, totals.Value(MetricRevenue))
	assert.Equal(t, 12.0, totals.Value(MetricOrders))
	assert.InDelta(t, 50.0, totals.Value(MetricAvgOrderValue), 1e-9)
	assert.InDelta(t, 40.0, totals.Value(MetricConversionRate), 1e-9)
	assert.Equal(t, 6.0, totals.Value(MetricNewCustomers))

	assert.Panics(t, func() { totals.Value(MetricKey("profit")) })
}
