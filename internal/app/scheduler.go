package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper то, что умеет чистить простаивающие записи (lock.Local)
type Sweeper interface {
	Sweep(idleFor time.Duration) int
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	idleFor  time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}
}

// NewScheduler создаёт планировщик, который раз в interval убирает
// блокировки тренеров, не использовавшиеся дольше idleFor
func NewScheduler(sweeper Sweeper, interval, idleFor time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		idleFor:  idleFor,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Duration("sweep_interval", s.interval),
		zap.Duration("lock_idle", s.idleFor))

	go s.runSweepTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
	<-s.done
}

func (s *Scheduler) runSweepTask(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopChan:
			s.logger.Info("Lock sweep task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Lock sweep task cancelled")
			return
		}
	}
}

func (s *Scheduler) sweep() {
	removed := s.sweeper.Sweep(s.idleFor)
	if removed > 0 {
		s.logger.Debug("Idle trainer locks removed", zap.Int("count", removed))
	}
}
