package dataset_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/sales-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dataset"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dataset/mocks"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func init() {
	log.SetupTestLogger()
}

func sampleRecords() []domain.SalesRecord {
	return []domain.SalesRecord{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Revenue: 100, Orders: 2, Sessions: 10, NewCustomers: 1},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Revenue: 200, Orders: 4, Sessions: 10, NewCustomers: 2},
	}
}

func TestService_CurrentBeforeRefresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockRecordSource(ctrl)
	source.EXPECT().Name().Return("generator").AnyTimes()

	service := dataset.NewService(source)

	current, err := service.Current()
	assert.Nil(t, current)
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)

	status := service.Status()
	assert.False(t, status.Loaded)
	assert.Zero(t, status.RefreshCount)
}

func TestService_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockRecordSource(ctrl)
	source.EXPECT().Name().Return("generator").AnyTimes()
	source.EXPECT().Load(gomock.Any()).Return(sampleRecords(), nil)

	service := dataset.NewService(source)

	snapshot, err := service.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, snapshot.Records, 2)
	assert.Equal(t, "generator", snapshot.Source)

	current, err := service.Current()
	require.NoError(t, err)
	assert.Same(t, snapshot, current)

	status := service.Status()
	assert.True(t, status.Loaded)
	assert.Equal(t, 2, status.RecordCount)
	assert.Equal(t, 1, status.RefreshCount)
	assert.NotNil(t, status.GeneratedAt)
	assert.Empty(t, status.LastError)
}

func TestService_RefreshFailureKeepsPreviousSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockRecordSource(ctrl)
	source.EXPECT().Name().Return("feed").AnyTimes()

	gomock.InOrder(
		source.EXPECT().Load(gomock.Any()).Return(sampleRecords(), nil),
		source.EXPECT().Load(gomock.Any()).Return(nil, errors.New("feed offline")),
	)

	service := dataset.NewService(source)

	first, err := service.Refresh(context.Background())
	require.NoError(t, err)

	_, err = service.Refresh(context.Background())
	require.Error(t, err)

	current, err := service.Current()
	require.NoError(t, err)
	assert.Same(t, first, current)

	status := service.Status()
	assert.Equal(t, 2, status.RefreshCount)
	assert.Equal(t, "feed offline", status.LastError)
}

func TestService_RefreshRejectsInvalidRecords(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockRecordSource(ctrl)
	source.EXPECT().Name().Return("feed").AnyTimes()

	records := sampleRecords()
	records[0], records[1] = records[1], records[0]
	source.EXPECT().Load(gomock.Any()).Return(records, nil)

	service := dataset.NewService(source)

	_, err := service.Refresh(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)

	_, err = service.Current()
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)
}

func TestService_RefreshEmptySourceIsLoaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockRecordSource(ctrl)
	source.EXPECT().Name().Return("postgres").AnyTimes()
	source.EXPECT().Load(gomock.Any()).Return(nil, nil)

	service := dataset.NewService(source)

	snapshot, err := service.Refresh(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snapshot.Records)
	assert.True(t, snapshot.IsEmpty())
}

func TestService_RefreshWithPersistence(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockRecordSource(ctrl)
	store := repomocks.NewMockSalesRecordRepository(ctrl)
	source.EXPECT().Name().Return("generator").AnyTimes()

	records := sampleRecords()
	source.EXPECT().Load(gomock.Any()).Return(records, nil).Times(2)
	gomock.InOrder(
		store.EXPECT().ReplaceAll(gomock.Any(), records).Return(nil),
		store.EXPECT().ReplaceAll(gomock.Any(), records).Return(errors.New("connection refused")),
	)

	service := dataset.NewService(source).WithPersistence(store)

	_, err := service.Refresh(context.Background())
	require.NoError(t, err)

	_, err = service.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist snapshot")
}

func TestStoreSource_LoadAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := repomocks.NewMockSalesRecordRepository(ctrl)
	store.EXPECT().ListAll(gomock.Any()).Return(sampleRecords(), nil)

	source := dataset.NewStoreSource(store, 0)

	records, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, dataset.StoreSourceName, source.Name())
}

func TestStoreSource_LoadLastDays(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := repomocks.NewMockSalesRecordRepository(ctrl)
	store.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, start, end time.Time) ([]domain.SalesRecord, error) {
			assert.Equal(t, domain.Day(end), end)
			assert.Equal(t, end.AddDate(0, 0, -6), start)
			return sampleRecords(), nil
		})

	source := dataset.NewStoreSource(store, 7)

	records, err := source.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestStoreSource_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := repomocks.NewMockSalesRecordRepository(ctrl)
	store.EXPECT().
		GetByDateRange(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	service := dataset.NewService(dataset.NewStoreSource(store, 30))

	_, err := service.Refresh(context.Background())
	require.Error(t, err)
	assert.Equal(t, "connection refused", service.Status().LastError)
}
