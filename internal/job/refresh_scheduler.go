// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/begengineer/quickfit/internal/app/service"
)

// RefreshScheduler triggers periodic curation runs. Cross-instance
// coordination is handled by the curation service's distributed lock, so
// every instance may tick freely.
type RefreshScheduler struct {
	curation *service.CurationService
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// RefreshConfig holds refresh scheduler configuration.
type RefreshConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewRefreshScheduler creates a new RefreshScheduler.
func NewRefreshScheduler(curation *service.CurationService, cfg RefreshConfig, logger *zap.Logger) *RefreshScheduler {
	return &RefreshScheduler{
		curation: curation,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		logger:   logger,
	}
}

// Start begins the background refresh job.
func (s *RefreshScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting refresh scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *RefreshScheduler) Stop() {
	s.logger.Info("stopping refresh scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("refresh scheduler stopped")
}

func (s *RefreshScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.executeRefresh()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeRefresh()
		}
	}
}

func (s *RefreshScheduler) executeRefresh() {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	summary := s.curation.RefreshAll(ctx)

	if summary.Skipped {
		s.logger.Debug("scheduled refresh skipped, run in progress elsewhere")

		return
	}

	s.logger.Info("scheduled refresh completed",
		zap.Int("levels_failed", summary.Failed()),
		zap.Duration("duration", time.Since(start)),
	)
}
