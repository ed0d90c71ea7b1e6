package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

var ErrEmptyDataset = errors.New("dataset: no sales snapshot loaded")

// Status resume o estado do snapshot para o endpoint administrativo
type Status struct {
	Source        string     `json:"source"`
	Loaded        bool       `json:"loaded"`
	RecordCount   int        `json:"record_count"`
	GeneratedAt   *time.Time `json:"generated_at,omitempty"`
	LastRefreshAt *time.Time `json:"last_refresh_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
	RefreshCount  int        `json:"refresh_count"`
}

type Service struct {
	source  RecordSource
	store   repository.SalesRecordRepository
	persist bool
	now     func() time.Time

	mu            sync.RWMutex
	current       *domain.Dataset
	lastRefreshAt *time.Time
	lastError     error
	refreshCount  int
}

func NewService(source RecordSource) *Service {
	return &Service{
		source: source,
		now:    time.Now,
	}
}

// WithPersistence grava cada snapshot novo na tabela sales_records
func (s *Service) WithPersistence(store repository.SalesRecordRepository) *Service {
	s.store = store
	s.persist = store != nil
	return s
}

func (s *Service) Current() (*domain.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, ErrEmptyDataset
	}

	return s.current, nil
}

func (s *Service) Refresh(ctx context.Context) (*domain.Dataset, error) {
	logger := log.ForContext(ctx).WithField("dataset_source", s.source.Name())
	startedAt := s.now()

	records, err := s.source.Load(ctx)
	if err == nil {
		err = domain.ValidateRecords(records)
	}
	if err == nil && s.persist {
		err = errors.Wrap(s.store.ReplaceAll(ctx, records), "dataset: persist snapshot")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRefreshAt = &startedAt
	s.refreshCount++

	// Em caso de falha o snapshot anterior continua sendo servido
	if err != nil {
		s.lastError = err
		logger.WithError(err).Error("dataset: refresh failed, keeping previous snapshot")
		return nil, err
	}

	if records == nil {
		records = []domain.SalesRecord{}
	}

	s.current = &domain.Dataset{
		Records:     records,
		Source:      s.source.Name(),
		GeneratedAt: startedAt,
	}
	s.lastError = nil

	logger.WithField("dataset_records", len(records)).Info("dataset: snapshot refreshed")

	return s.current, nil
}

func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := Status{
		Source:        s.source.Name(),
		Loaded:        s.current != nil,
		LastRefreshAt: s.lastRefreshAt,
		RefreshCount:  s.refreshCount,
	}

	if s.current != nil {
		generatedAt := s.current.GeneratedAt
		status.GeneratedAt = &generatedAt
		status.RecordCount = len(s.current.Records)
	}

	if s.lastError != nil {
		status.LastError = s.lastError.Error()
	}

	return status
}
