package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionChecker is the slice of the session store the sweeper needs: the
// authenticated check already clears stale session keys as a side effect, so
// forcing it to run periodically is the whole cleanup.
type SessionChecker interface {
	IsAuthenticated(ctx context.Context) bool
}

// Config controls how frequently expired sessions are swept.
type Config struct {
	Interval time.Duration
}

// Sweeper schedules the lazy expiry check so expired session keys do not
// linger in the store between reads.
type Sweeper struct {
	sessions SessionChecker
	logger   *zap.Logger
	cron     *cron.Cron
	cfg      Config
}

func New(sessions SessionChecker, logger *zap.Logger, cfg Config) *Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Sweeper{
		sessions: sessions,
		logger:   logger,
		cfg:      cfg,
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		s.Sweep(ctx)
	})

	return s
}

// Start launches the cron scheduler.
func (s *Sweeper) Start() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("session sweeper started", zap.Duration("interval", s.cfg.Interval))
}

// Stop gracefully stops the scheduler.
func (s *Sweeper) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("session sweeper stopped")
}

// Sweep runs the expiry check once.
func (s *Sweeper) Sweep(ctx context.Context) {
	if s == nil || s.sessions == nil {
		return
	}
	if !s.sessions.IsAuthenticated(ctx) {
		s.logger.Debug("no valid session present after sweep")
	}
}
