package domain

import (
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// DailySales é o formato de um dia no feed externo de vendas
type DailySales struct {
	Date         string  `json:"date"` // yyyy-mm-dd
	Revenue      float64 `json:"revenue"`
	Orders       int     `json:"orders"`
	Sessions     int     `json:"sessions"`
	NewCustomers int     `json:"newCustomers"`
}

type GetDailySalesParams struct {
	StartDate time.Time
	EndDate   time.Time
}

// ToSalesRecord converte o item do feed para o registro do dashboard
func (d DailySales) ToSalesRecord() (domain.SalesRecord, error) {
	date, err := time.Parse(time.DateOnly, d.Date)
	if err != nil {
		return domain.SalesRecord{}, errors.Wrapf(err, "salesfeed: invalid date %q", d.Date)
	}

	return domain.SalesRecord{
		Date:         date,
		Revenue:      d.Revenue,
		Orders:       d.Orders,
		Sessions:     d.Sessions,
		NewCustomers: d.NewCustomers,
	}, nil
}
