package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpiredSessionStore deletes sessions past their expiry. *auth.Repository implements it.
type ExpiredSessionStore interface {
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// SessionSweeper removes expired sessions on a cron schedule.
type SessionSweeper struct {
	store  ExpiredSessionStore
	logger *zap.Logger
	now    func() time.Time
}

// NewSessionSweeper creates a session sweeper.
func NewSessionSweeper(store ExpiredSessionStore, logger *zap.Logger) *SessionSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionSweeper{store: store, logger: logger, now: time.Now}
}

// Sweep deletes expired sessions once.
func (s *SessionSweeper) Sweep(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("expired sessions removed", zap.Int64("count", n))
	}
	return n, nil
}

// Register schedules the sweep on c using a cron spec such as "@hourly".
// Sweeps run until ctx is done.
func (s *SessionSweeper) Register(ctx context.Context, c *cron.Cron, spec string) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
			s.logger.Warn("session sweep failed", zap.Error(err))
		}
	})
}
