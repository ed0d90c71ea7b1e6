package salesfeed

import (
	"context"
	"time"

	"github.com/pkg/errors"
	feeddomain "github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/salesfeed/domain"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/integrator/salesfeed/feedclient"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

const SourceName = "feed"

// SalesFeedService busca os registros diários em um feed HTTP externo
type SalesFeedService struct {
	Client feedclient.Client
	days   int
	now    func() time.Time
}

func New(client feedclient.Client, days int) *SalesFeedService {
	return &SalesFeedService{
		Client: client,
		days:   days,
		now:    time.Now,
	}
}

func (s *SalesFeedService) Name() string {
	return SourceName
}

// Load busca os últimos days dias terminando hoje
func (s *SalesFeedService) Load(ctx context.Context) ([]domain.SalesRecord, error) {
	end := domain.Day(s.now())

	return s.GetSalesRecords(ctx, feeddomain.GetDailySalesParams{
		StartDate: end.AddDate(0, 0, -(s.days - 1)),
		EndDate:   end,
	})
}

func (s *SalesFeedService) GetSalesRecords(ctx context.Context, params feeddomain.GetDailySalesParams) ([]domain.SalesRecord, error) {
	resp, err := s.Client.GetDailySales(ctx, feedclient.DailySalesParams{
		StartDate: params.StartDate.Format(time.DateOnly),
		EndDate:   params.EndDate.Format(time.DateOnly),
	})
	if err != nil {
		return nil, err
	}

	records := make([]domain.SalesRecord, 0, len(resp))
	for _, item := range resp {
		record, err := item.ToSalesRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := domain.ValidateRecords(records); err != nil {
		return nil, errors.Wrap(err, "salesfeed: feed violates record contract")
	}

	return records, nil
}
