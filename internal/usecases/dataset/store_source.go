package dataset

import (
	"context"
	"time"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const StoreSourceName = "postgres"

// StoreSource lê a série persistida em sales_records. Com days > 0 só os
// últimos days dias até hoje são carregados.
type StoreSource struct {
	repo repository.SalesRecordRepository
	days int
	now  func() time.Time
}

func NewStoreSource(repo repository.SalesRecordRepository, days int) *StoreSource {
	return &StoreSource{
		repo: repo,
		days: days,
		now:  time.Now,
	}
}

func (s *StoreSource) Name() string {
	return StoreSourceName
}

func (s *StoreSource) Load(ctx context.Context) ([]domain.SalesRecord, error) {
	if s.days <= 0 {
		return s.repo.ListAll(ctx)
	}

	end := domain.Day(s.now())
	start := end.AddDate(0, 0, -(s.days - 1))

	return s.repo.GetByDateRange(ctx, start, end)
}
