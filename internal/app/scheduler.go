package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// CodePurger удаляет просроченные коды подтверждения
type CodePurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	purger   CodePurger
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}
}

// DefaultPurgeInterval подставляется вместо неположительного интервала
const DefaultPurgeInterval = time.Hour

// NewScheduler создаёт новый планировщик
func NewScheduler(purger CodePurger, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultPurgeInterval
	}
	return &Scheduler{
		purger:   purger,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("purge_interval", s.interval))

	go s.runPurgeTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
	<-s.done
}

// runPurgeTask периодически чистит просроченные коды подтверждения
func (s *Scheduler) runPurgeTask(ctx context.Context) {
	defer close(s.done)

	// Первый запуск сразу при старте
	s.purge(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.purge(ctx)
		case <-s.stopChan:
			s.logger.Info("Verification purge task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Verification purge task cancelled")
			return
		}
	}
}

func (s *Scheduler) purge(ctx context.Context) {
	removed, err := s.purger.PurgeExpired(ctx)
	if err != nil {
		s.logger.Error("Failed to purge verification codes", zap.Error(err))
		return
	}

	s.logger.Debug("Verification codes purged", zap.Int64("removed", removed))
}
