package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

type MetricKey string

const (
	MetricRevenue        MetricKey = "revenue"
	MetricOrders         MetricKey = "orders"
	MetricAvgOrderValue  MetricKey = "avgOrderValue"
	MetricConversionRate MetricKey = "conversionRate"
	MetricNewCustomers   MetricKey = "newCustomers"
)

const (
	UnitCurrency = "$"
	UnitPercent  = "%"
	UnitNone     = ""
)

// DefaultMetric é a métrica primária de uma seleção nova
const DefaultMetric = MetricRevenue

// MetricKeys lista o catálogo na ordem de exibição dos cards
var MetricKeys = []MetricKey{
	MetricRevenue,
	MetricOrders,
	MetricAvgOrderValue,
	MetricConversionRate,
	MetricNewCustomers,
}

// MetricDefinition descreve uma métrica do catálogo
type MetricDefinition struct {
	Key        MetricKey `json:"key"`
	Title      string    `json:"title"`
	Unit       string    `json:"unit"`
	ColorToken string    `json:"color_token"`
	CompareTo  MetricKey `json:"compare_to"`
}

// ParseMetricKey valida uma chave vinda de fora do processo
func ParseMetricKey(raw string) (MetricKey, error) {
	key := MetricKey(raw)
	if !key.Valid() {
		return "", errors.Wrapf(ErrInvalidMetric, "%q", raw)
	}

	return key, nil
}

func (k MetricKey) Valid() bool {
	switch k {
	case MetricRevenue, MetricOrders, MetricAvgOrderValue, MetricConversionRate, MetricNewCustomers:
		return true
	}

	return false
}

// Definition retorna a definição da métrica. Chave fora do catálogo é erro de programação.
func (k MetricKey) Definition() MetricDefinition {
	switch k {
	case MetricRevenue:
		return MetricDefinition{Key: k, Title: "Total Revenue", Unit: UnitCurrency, ColorToken: "--chart-1", CompareTo: MetricOrders}
	case MetricOrders:
		return MetricDefinition{Key: k, Title: "Total Orders", Unit: UnitNone, ColorToken: "--chart-2", CompareTo: MetricNewCustomers}
	case MetricAvgOrderValue:
		return MetricDefinition{Key: k, Title: "Avg. Order Value", Unit: UnitCurrency, ColorToken: "--chart-3", CompareTo: MetricRevenue}
	case MetricConversionRate:
		return MetricDefinition{Key: k, Title: "Conversion Rate", Unit: UnitPercent, ColorToken: "--chart-4", CompareTo: MetricOrders}
	case MetricNewCustomers:
		return MetricDefinition{Key: k, Title: "New Customers", Unit: UnitNone, ColorToken: "--chart-5", CompareTo: MetricOrders}
	}

	panic(fmt.Sprintf("domain: métrica fora do catálogo %q", string(k)))
}

// Extract retorna o valor da métrica para um único dia
func (k MetricKey) Extract(r SalesRecord) float64 {
	switch k {
	case MetricRevenue:
		return r.Revenue
	case MetricOrders:
		return float64(r.Orders)
	case MetricAvgOrderValue:
		return ratio(r.Revenue, float64(r.Orders), 1)
	case MetricConversionRate:
		return ratio(float64(r.Orders), float64(r.Sessions), 100)
	case MetricNewCustomers:
		return float64(r.NewCustomers)
	}

	panic(fmt.Sprintf("domain: métrica fora do catálogo %q", string(k)))
}

// Catalog retorna todas as definições na ordem de exibição
func Catalog() []MetricDefinition {
	definitions := make([]MetricDefinition, 0, len(MetricKeys))
	for _, key := range MetricKeys {
		definitions = append(definitions, key.Definition())
	}

	return definitions
}

// Primary retorna a métrica selecionada
func Primary(selected MetricKey) MetricDefinition {
	return selected.Definition()
}

// Secondary retorna a métrica de comparação da seleção
func Secondary(selected MetricKey) MetricDefinition {
	return selected.Definition().CompareTo.Definition()
}

// Selection guarda apenas a métrica primária; a secundária é sempre derivada
type Selection struct {
	Key MetricKey `json:"key"`
}

func NewSelection() Selection {
	return Selection{Key: DefaultMetric}
}

// Select troca a métrica primária; a secundária acompanha pela tabela de comparação
func (s Selection) Select(key MetricKey) Selection {
	s.Key = key
	return s
}

func (s Selection) Primary() MetricDefinition {
	return Primary(s.Key)
}

func (s Selection) Secondary() MetricDefinition {
	return Secondary(s.Key)
}

// ratio divide com fallback zero para denominador nulo
func ratio(numerator, denominator, scale float64) float64 {
	if denominator == 0 {
		return 0
	}

	return numerator / denominator * scale
}
