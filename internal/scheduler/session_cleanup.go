package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

const defaultCleanupInterval = time.Minute

// SessionPurger remove sessões de visualização expiradas
type SessionPurger interface {
	PurgeExpiredSessions() int
}

type SessionCleanupService struct {
	scheduler *gocron.Scheduler
	purger    SessionPurger
	interval  time.Duration
}

func NewSessionCleanupService(purger SessionPurger, cfg *config.Config) *SessionCleanupService {
	interval := cfg.Session.CleanupInterval
	if interval <= 0 {
		interval = defaultCleanupInterval
	}

	return &SessionCleanupService{
		scheduler: gocron.NewScheduler(time.UTC),
		purger:    purger,
		interval:  interval,
	}
}

func (s *SessionCleanupService) Start(ctx context.Context) error {
	_, err := s.scheduler.Every(s.interval).Do(s.Cleanup)
	if err != nil {
		return fmt.Errorf("scheduler: schedule session cleanup: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		s.scheduler.Stop()
	}()

	return nil
}

func (s *SessionCleanupService) Cleanup() {
	removed := s.purger.PurgeExpiredSessions()
	if removed > 0 {
		log.L.WithField("session_removed", removed).Info("scheduler: expired view sessions removed")
	}
}
