package domain

import (
	"time"

	"github.com/pkg/errors"
)

// SalesRecord representa o consolidado de vendas de um dia
type SalesRecord struct {
	Date         time.Time `json:"date"`
	Revenue      float64   `json:"revenue"`
	Orders       int       `json:"orders"`
	Sessions     int       `json:"sessions"`
	NewCustomers int       `json:"new_customers"`
}

// Dataset é o snapshot imutável de registros servido ao dashboard
type Dataset struct {
	Records     []SalesRecord `json:"records"`
	Source      string        `json:"source"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// IsEmpty indica se o snapshot não possui registros
func (d *Dataset) IsEmpty() bool {
	return d == nil || len(d.Records) == 0
}

// Day normaliza um instante para a meia-noite UTC do seu dia de calendário
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidateRecords verifica o contrato da fonte de dados: datas crescentes,
// um registro por dia e valores não negativos.
func ValidateRecords(records []SalesRecord) error {
	for i, record := range records {
		if record.Revenue < 0 || record.Orders < 0 || record.Sessions < 0 || record.NewCustomers < 0 {
			return errors.Wrapf(ErrInvalidRecord, "valor negativo em %s", record.Date.Format(time.DateOnly))
		}

		if i == 0 {
			continue
		}

		if !Day(records[i-1].Date).Before(Day(record.Date)) {
			return errors.Wrapf(ErrInvalidRecord, "datas fora de ordem ou duplicadas em %s", record.Date.Format(time.DateOnly))
		}
	}

	return nil
}
