// Package scheduler contém os serviços de agendamento do dashboard
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dataset"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

type DatasetRefreshConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// DatasetRefreshService recarrega periodicamente o snapshot de vendas
type DatasetRefreshService struct {
	scheduler           *gocron.Scheduler
	provider            dataset.Provider
	config              DatasetRefreshConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       error
}

func NewDatasetRefreshService(provider dataset.Provider, cfg *config.Config) *DatasetRefreshService {
	refreshConfig := DatasetRefreshConfig{
		CronSchedule: cfg.DatasetRefresh.CronSchedule, // Default: a cada 5 minutos
		SyncEnabled:  cfg.DatasetRefresh.Enabled,
	}

	log.L.WithFields(log.Fields{
		"dataset_cron": refreshConfig.CronSchedule,
	}).Info("scheduler: dataset refresh configuration loaded")

	return &DatasetRefreshService{
		scheduler: gocron.NewScheduler(time.UTC),
		provider:  provider,
		config:    refreshConfig,
	}
}

func (s *DatasetRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		log.L.Info("scheduler: dataset refresh disabled by configuration")
		return nil
	}

	log.L.WithField("dataset_cron", s.config.CronSchedule).Info("scheduler: starting dataset refresh cron")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RefreshDataset(ctx); err != nil {
			log.L.WithError(err).Error("scheduler: dataset refresh failed")
		}
	})
	if err != nil {
		return fmt.Errorf("scheduler: schedule dataset refresh: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("scheduler: stopping dataset refresh cron")
		s.scheduler.Stop()
	}()

	return nil
}

// RefreshDataset executa uma recarga; chamadas concorrentes são ignoradas
func (s *DatasetRefreshService) RefreshDataset(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Warn("scheduler: dataset refresh already running")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	_, err := s.provider.Refresh(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastSyncError = err
	s.syncMutex.Unlock()

	return err
}

// TriggerManualSync inicia uma recarga fora do cron. Retorna false se já houver uma em andamento.
func (s *DatasetRefreshService) TriggerManualSync(ctx context.Context) bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		log.L.Info("scheduler: dataset refresh in progress, ignoring manual trigger")
		return false
	}

	log.L.Info("scheduler: manual dataset refresh triggered")

	go func() {
		if err := s.RefreshDataset(context.WithoutCancel(ctx)); err != nil {
			log.L.WithError(err).Error("scheduler: manual dataset refresh failed")
		}
	}()

	return true
}

// GetStatus retorna o status atual do agendador e do snapshot
func (s *DatasetRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"dataset":                s.provider.Status(),
	}

	if s.lastSyncError != nil {
		status["last_sync_error"] = s.lastSyncError.Error()
	}

	return status
}
