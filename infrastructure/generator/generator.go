// Package generator produz a série sintética de vendas diárias do dashboard
package generator

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

const SourceName = "generator"

// Faixas dos valores sorteados por dia
const (
	minRevenue      = 5000
	maxRevenue      = 15000
	minOrders       = 50
	maxOrders       = 250
	maxSessionRatio = 25
	minNewCustomers = 10
	maxNewCustomers = 60
)

type Generator struct {
	days int
	rng  *rand.Rand
	mu   sync.Mutex
	now  func() time.Time
}

// New cria um gerador de days dias terminando hoje. seed 0 usa o relógio.
func New(days int, seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		days: days,
		rng:  rand.New(rand.NewSource(seed)),
		now:  time.Now,
	}
}

func (g *Generator) Name() string {
	return SourceName
}

// Load gera uma série nova a cada chamada
func (g *Generator) Load(_ context.Context) ([]domain.SalesRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return Generate(g.days, g.now(), g.rng.Intn), nil
}

// Generate cria days registros consecutivos terminando no dia de end,
// em ordem crescente de data.
func Generate(days int, end time.Time, intn func(int) int) []domain.SalesRecord {
	if days <= 0 {
		return []domain.SalesRecord{}
	}

	last := domain.Day(end)
	records := make([]domain.SalesRecord, 0, days)
	for i := days - 1; i >= 0; i-- {
		orders := utils.RandomBetween(intn, minOrders, maxOrders)
		cents := utils.RandomBetween(intn, minRevenue*100, maxRevenue*100)
		newCustomers := min(utils.RandomBetween(intn, minNewCustomers, maxNewCustomers), orders)

		records = append(records, domain.SalesRecord{
			Date:         last.AddDate(0, 0, -i),
			Revenue:      utils.RoundWithTwoDecimalPlace(float64(cents) / 100),
			Orders:       orders,
			Sessions:     utils.RandomBetween(intn, orders, orders*maxSessionRatio),
			NewCustomers: newCustomers,
		})
	}

	return records
}
