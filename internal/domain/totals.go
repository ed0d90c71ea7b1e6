package domain

import "fmt"

// Totals consolida os KPIs de uma janela filtrada
type Totals struct {
	Revenue        float64 `json:"revenue"`
	Orders         int     `json:"orders"`
	Sessions       int     `json:"sessions"`
	NewCustomers   int     `json:"new_customers"`
	AvgOrderValue  float64 `json:"avg_order_value"`
	ConversionRate float64 `json:"conversion_rate"`
}

// Filter retorna, na ordem original, os registros cujo dia está na janela
func Filter(records []SalesRecord, window DateWindow) []SalesRecord {
	filtered := make([]SalesRecord, 0, len(records))
	for _, record := range records {
		if window.Contains(record.Date) {
			filtered = append(filtered, record)
		}
	}

	return filtered
}

// Aggregate soma os registros filtrados. As razões são calculadas sobre as
// somas (nunca pela média das razões diárias) e valem zero sem denominador.
func Aggregate(filtered []SalesRecord) Totals {
	var totals Totals
	for _, record := range filtered {
		totals.Revenue += record.Revenue
		totals.Orders += record.Orders
		totals.Sessions += record.Sessions
		totals.NewCustomers += record.NewCustomers
	}

	totals.AvgOrderValue = ratio(totals.Revenue, float64(totals.Orders), 1)
	totals.ConversionRate = ratio(float64(totals.Orders), float64(totals.Sessions), 100)

	return totals
}

// Value retorna o total consolidado de uma métrica do catálogo
func (t Totals) Value(key MetricKey) float64 {
	switch key {
	case MetricRevenue:
		return t.Revenue
	case MetricOrders:
		return float64(t.Orders)
	case MetricAvgOrderValue:
		return t.AvgOrderValue
	case MetricConversionRate:
		return t.ConversionRate
	case MetricNewCustomers:
		return float64(t.NewCustomers)
	}

	panic(fmt.Sprintf("domain: métrica fora do catálogo %q", string(key)))
}
