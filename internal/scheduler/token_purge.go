// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Purger deletes revocation entries whose token has expired.
// *services.TokenService satisfies it.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// TokenPurgeScheduler periodically removes revocation rows that no longer
// matter because the token they block has expired anyway.
type TokenPurgeScheduler struct {
	purger   Purger
	schedule string
	log      *zap.Logger

	cron       *cron.Cron
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewTokenPurgeScheduler creates a scheduler. schedule accepts standard
// five-field cron expressions and descriptors such as "@every 1h".
func NewTokenPurgeScheduler(purger Purger, schedule string, log *zap.Logger) *TokenPurgeScheduler {
	return &TokenPurgeScheduler{
		purger:   purger,
		schedule: schedule,
		log:      log,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor))),
	}
}

// Start schedules the purge job. The scheduler stops when ctx is cancelled.
func (s *TokenPurgeScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	jobCtx, cancel := context.WithCancel(ctx)
	if _, err := s.cron.AddFunc(s.schedule, func() {
		_, _ = s.RunOnce(jobCtx)
	}); err != nil {
		cancel()
		return fmt.Errorf("invalid purge schedule %q: %w", s.schedule, err)
	}

	s.cancelFunc = cancel
	s.cron.Start()
	s.isRunning = true
	s.log.Info("token purge scheduler started", zap.String("schedule", s.schedule))

	go func() {
		<-jobCtx.Done()
		s.Stop()
	}()
	return nil
}

// RunOnce purges immediately and reports how many rows were removed.
func (s *TokenPurgeScheduler) RunOnce(ctx context.Context) (int64, error) {
	removed, err := s.purger.PurgeExpired(ctx)
	if err != nil {
		s.log.Error("token purge failed", zap.Error(err))
		return 0, err
	}
	if removed > 0 {
		s.log.Info("purged expired revocations", zap.Int64("removed", removed))
	}
	return removed, nil
}

// Stop cancels a running purge, waits for it to return and stops the scheduler.
func (s *TokenPurgeScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// cancel first so a purge in flight gives up instead of holding Stop
	s.cancelFunc()
	<-s.cron.Stop().Done()
	s.isRunning = false
	s.log.Info("token purge scheduler stopped")
}
