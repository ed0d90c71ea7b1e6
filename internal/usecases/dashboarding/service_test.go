package dashboarding

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dataset"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dataset/mocks"
	"go.uber.org/mock/gomock"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(d int) *time.Time {
	t := day(d)
	return &t
}

// dez dias consecutivos com pedidos crescentes
func tenDays() *domain.Dataset {
	records := make([]domain.SalesRecord, 0, 10)
	for i := 1; i <= 10; i++ {
		records = append(records, domain.SalesRecord{
			Date:         day(i),
			Revenue:      float64(i * 100),
			Orders:       i * 2,
			Sessions:     100,
			NewCustomers: i,
		})
	}

	return &domain.Dataset{Records: records, Source: "generator", GeneratedAt: day(10)}
}

func newTestService(t *testing.T, snapshot *domain.Dataset, err error) *Service {
	t.Helper()

	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)
	provider.EXPECT().Current().Return(snapshot, err).AnyTimes()

	cfg := &config.Config{
		Dataset: config.Dataset{MaxRangeDays: config.DefaultMaxRangeDays},
		Session: config.Session{TTL: time.Minute},
	}

	return NewService(provider, cfg)
}

func TestResolveWindow(t *testing.T) {
	records := tenDays().Records

	tests := []struct {
		name    string
		query   ViewQuery
		maxDays int
		want    domain.DateWindow
		wantErr bool
	}{
		{name: "vazio usa o período completo", want: domain.DateWindow{Start: day(1), End: day(10)}},
		{name: "apenas início", query: ViewQuery{StartDate: datePtr(4)}, want: domain.DateWindow{Start: day(4), End: day(10)}},
		{name: "apenas fim", query: ViewQuery{EndDate: datePtr(3)}, want: domain.DateWindow{Start: day(1), End: day(3)}},
		{name: "um único dia", query: ViewQuery{StartDate: datePtr(5), EndDate: datePtr(5)}, want: domain.DateWindow{Start: day(5), End: day(5)}},
		{name: "atalho de 7 dias", query: ViewQuery{Preset: domain.PresetLast7Days}, want: domain.DateWindow{Start: day(4), End: day(10)}},
		{name: "início após o fim", query: ViewQuery{StartDate: datePtr(6), EndDate: datePtr(5)}, wantErr: true},
		{name: "acima do limite", query: ViewQuery{StartDate: datePtr(1), EndDate: datePtr(10)}, maxDays: 5, wantErr: true},
		{name: "atalho com datas", query: ViewQuery{Preset: domain.PresetFull, StartDate: datePtr(1)}, wantErr: true},
		{name: "atalho desconhecido", query: ViewQuery{Preset: "last_year"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveWindow(records, tt.query, tt.maxDays)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidWindow)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveMetric(t *testing.T) {
	key, err := ResolveMetric("")
	require.NoError(t, err)
	assert.Equal(t, domain.MetricRevenue, key)

	key, err = ResolveMetric("conversionRate")
	require.NoError(t, err)
	assert.Equal(t, domain.MetricConversionRate, key)

	_, err = ResolveMetric("profit")
	assert.ErrorIs(t, err, domain.ErrInvalidMetric)
}

func TestService_GetDashboard(t *testing.T) {
	service := newTestService(t, tenDays(), nil)

	view, err := service.GetDashboard(ViewQuery{StartDate: datePtr(2), EndDate: datePtr(4), Metric: "orders"})
	require.NoError(t, err)

	assert.Equal(t, 3, view.RecordCount)
	assert.Equal(t, domain.MetricOrders, view.Primary.Key)
	assert.Equal(t, domain.MetricNewCustomers, view.Secondary.Key)
	assert.Equal(t, 18, view.Totals.Orders)
	require.Len(t, view.Trend, 3)
	assert.Equal(t, 4.0, view.Trend[0].Value)
}

func TestService_GetDashboard_Errors(t *testing.T) {
	service := newTestService(t, tenDays(), nil)

	_, err := service.GetDashboard(ViewQuery{Metric: "profit"})
	assert.ErrorIs(t, err, domain.ErrInvalidMetric)

	_, err = service.GetDashboard(ViewQuery{StartDate: datePtr(9), EndDate: datePtr(2)})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)

	empty := newTestService(t, nil, dataset.ErrEmptyDataset)
	_, err = empty.GetDashboard(ViewQuery{})
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)
}

func TestService_GetDashboard_EmptyIntersection(t *testing.T) {
	service := newTestService(t, tenDays(), nil)

	view, err := service.GetDashboard(ViewQuery{StartDate: datePtr(20), EndDate: datePtr(25)})
	require.NoError(t, err)

	assert.Zero(t, view.RecordCount)
	assert.Empty(t, view.Trend)
	assert.Empty(t, view.Comparison)
	assert.Equal(t, domain.Totals{}, view.Totals)
	assert.Len(t, view.Cards, len(domain.MetricKeys))
}

func TestService_ListSales(t *testing.T) {
	service := newTestService(t, tenDays(), nil)

	resp, err := service.ListSales(ViewQuery{Preset: domain.PresetLast7Days})
	require.NoError(t, err)

	assert.Len(t, resp.Records, 7)
	assert.Equal(t, day(4), resp.Records[0].Date)
	assert.Equal(t, "generator", resp.Source)
	assert.Equal(t, 4900.0, resp.Totals.Revenue)
}

func TestService_Catalog(t *testing.T) {
	service := newTestService(t, tenDays(), nil)
	assert.Len(t, service.Catalog(), 5)
}

func TestService_SessionLifecycle(t *testing.T) {
	service := newTestService(t, tenDays(), nil)

	created, err := service.CreateSession(ViewQuery{})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, domain.MetricRevenue, created.View.Primary.Key)
	assert.Equal(t, 10, created.View.RecordCount)

	// trocar o período mantém a métrica
	ranged, err := service.SetSessionRange(created.ID, ViewQuery{StartDate: datePtr(1), EndDate: datePtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 3, ranged.View.RecordCount)
	assert.Equal(t, domain.MetricRevenue, ranged.View.Primary.Key)

	// trocar a métrica mantém o período
	switched, err := service.SetSessionMetric(created.ID, "avgOrderValue")
	require.NoError(t, err)
	assert.Equal(t, 3, switched.View.RecordCount)
	assert.Equal(t, domain.MetricAvgOrderValue, switched.View.Primary.Key)
	assert.Equal(t, domain.MetricRevenue, switched.View.Secondary.Key)

	current, err := service.GetSessionView(created.ID)
	require.NoError(t, err)
	assert.Equal(t, switched.View, current.View)

	require.NoError(t, service.DeleteSession(created.ID))

	_, err = service.GetSessionView(created.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, service.DeleteSession(created.ID), ErrSessionNotFound)
}

func TestService_SessionTracksSelection(t *testing.T) {
	service := newTestService(t, tenDays(), nil)

	created, err := service.CreateSession(ViewQuery{})
	require.NoError(t, err)
	assert.Equal(t, domain.NewSelection(), service.sessions.sessions[created.ID].selection)

	switched, err := service.SetSessionMetric(created.ID, "conversionRate")
	require.NoError(t, err)

	selection := service.sessions.sessions[created.ID].selection
	assert.Equal(t, domain.MetricConversionRate, selection.Key)
	assert.Equal(t, selection.Primary(), switched.View.Primary)
	assert.Equal(t, selection.Secondary(), switched.View.Secondary)
	assert.Equal(t, created.View.Window, switched.View.Window)
}

func TestService_SessionRejectsInvalidInputsWithoutMutating(t *testing.T) {
	service := newTestService(t, tenDays(), nil)

	created, err := service.CreateSession(ViewQuery{Preset: domain.PresetLast7Days, Metric: "orders"})
	require.NoError(t, err)

	_, err = service.SetSessionMetric(created.ID, "profit")
	assert.ErrorIs(t, err, domain.ErrInvalidMetric)

	_, err = service.SetSessionRange(created.ID, ViewQuery{StartDate: datePtr(8), EndDate: datePtr(3)})
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)

	current, err := service.GetSessionView(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.View, current.View)
}

func TestService_SessionKeepsItsSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockProvider(ctrl)

	first := tenDays()
	second := &domain.Dataset{Records: first.Records[:2], Source: "generator"}
	gomock.InOrder(
		provider.EXPECT().Current().Return(first, nil),
		provider.EXPECT().Current().Return(second, nil),
	)

	service := NewService(provider, &config.Config{})

	created, err := service.CreateSession(ViewQuery{})
	require.NoError(t, err)

	latest, err := service.GetDashboard(ViewQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, latest.RecordCount)

	view, err := service.GetSessionView(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, view.View.RecordCount)
}

func TestService_CreateSession_Errors(t *testing.T) {
	empty := newTestService(t, nil, dataset.ErrEmptyDataset)
	_, err := empty.CreateSession(ViewQuery{})
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)

	service := newTestService(t, tenDays(), nil)
	_, err = service.CreateSession(ViewQuery{Metric: "profit"})
	assert.ErrorIs(t, err, domain.ErrInvalidMetric)

	_, err = service.SetSessionMetric("missing", "orders")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestService_PurgeExpiredSessions(t *testing.T) {
	service := newTestService(t, tenDays(), nil)

	now := day(1)
	service.sessions.now = func() time.Time { return now }

	stale, err := service.CreateSession(ViewQuery{})
	require.NoError(t, err)

	now = now.Add(45 * time.Second)
	fresh, err := service.CreateSession(ViewQuery{})
	require.NoError(t, err)

	now = now.Add(30 * time.Second)
	assert.Equal(t, 1, service.PurgeExpiredSessions())
	assert.Equal(t, 1, service.sessions.Len())

	_, err = service.GetSessionView(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = service.GetSessionView(fresh.ID)
	assert.NoError(t, err)
}
