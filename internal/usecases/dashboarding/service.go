package dashboarding

import (
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dataset"
)

// ViewQuery são as entradas externas de uma visão: período e métrica.
// Campos vazios assumem o período completo e a métrica padrão.
type ViewQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
	Preset    string
	Metric    string
}

// SalesResponse é a lista de registros de um período com seus totais
type SalesResponse struct {
	Window  domain.DateWindow    `json:"window"`
	Source  string               `json:"source"`
	Records []domain.SalesRecord `json:"records"`
	Totals  domain.Totals        `json:"totals"`
}

type Dashboarder interface {
	Catalog() []domain.MetricDefinition
	ListSales(query ViewQuery) (*SalesResponse, error)
	GetDashboard(query ViewQuery) (*domain.DashboardView, error)

	CreateSession(query ViewQuery) (*SessionView, error)
	GetSessionView(id string) (*SessionView, error)
	SetSessionRange(id string, query ViewQuery) (*SessionView, error)
	SetSessionMetric(id string, metric string) (*SessionView, error)
	DeleteSession(id string) error
	PurgeExpiredSessions() int
}

type Service struct {
	provider     dataset.Provider
	maxRangeDays int
	sessions     *SessionStore
}

func NewService(provider dataset.Provider, cfg *config.Config) *Service {
	return &Service{
		provider:     provider,
		maxRangeDays: cfg.Dataset.MaxRangeDays,
		sessions:     NewSessionStore(cfg.Session.TTL),
	}
}

func (s *Service) Catalog() []domain.MetricDefinition {
	return domain.Catalog()
}

func (s *Service) ListSales(query ViewQuery) (*SalesResponse, error) {
	snapshot, err := s.provider.Current()
	if err != nil {
		return nil, err
	}

	window, err := ResolveWindow(snapshot.Records, query, s.maxRangeDays)
	if err != nil {
		return nil, err
	}

	filtered := domain.Filter(snapshot.Records, window)

	return &SalesResponse{
		Window:  window,
		Source:  snapshot.Source,
		Records: filtered,
		Totals:  domain.Aggregate(filtered),
	}, nil
}

// GetDashboard deriva uma visão sem estado a partir do snapshot atual
func (s *Service) GetDashboard(query ViewQuery) (*domain.DashboardView, error) {
	snapshot, err := s.provider.Current()
	if err != nil {
		return nil, err
	}

	window, err := ResolveWindow(snapshot.Records, query, s.maxRangeDays)
	if err != nil {
		return nil, err
	}

	metric, err := ResolveMetric(query.Metric)
	if err != nil {
		return nil, err
	}

	view := domain.Derive(snapshot.Records, window, metric)
	return &view, nil
}

// ResolveWindow transforma a consulta em uma janela válida sobre records.
// Um atalho não pode ser combinado com datas explícitas. O limite de dias
// só se aplica a períodos escolhidos pelo cliente.
func ResolveWindow(records []domain.SalesRecord, query ViewQuery, maxDays int) (domain.DateWindow, error) {
	if query.Preset != "" {
		if query.StartDate != nil || query.EndDate != nil {
			return domain.DateWindow{}, errors.Wrap(domain.ErrInvalidWindow, "preset cannot be combined with start_date/end_date")
		}
		return domain.PresetWindow(records, query.Preset)
	}

	window := domain.FullSpan(records)
	if query.StartDate == nil && query.EndDate == nil {
		return window, nil
	}

	if query.StartDate != nil {
		window.Start = domain.Day(*query.StartDate)
	}
	if query.EndDate != nil {
		window.End = domain.Day(*query.EndDate)
	}

	if err := window.Validate(maxDays); err != nil {
		return domain.DateWindow{}, err
	}

	return window, nil
}

// ResolveMetric valida a chave externa; vazio seleciona a métrica padrão
func ResolveMetric(raw string) (domain.MetricKey, error) {
	if raw == "" {
		return domain.DefaultMetric, nil
	}

	return domain.ParseMetricKey(raw)
}
