// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type sessionCloser interface {
	CloseExpired(ctx context.Context) (int64, error)
}

type attemptPurger interface {
	PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error)
}

type visitorPruner interface {
	Prune(maxIdle time.Duration) int
}

// AdminSessionExpiryJob marks admin sessions past their expiry as ended
// (end_reason="expired"). Records stay for history until the TTL index
// removes them.
func AdminSessionExpiryJob(sessions sessionCloser, logger *zap.Logger) Job {
	return Job{
		Name:     "admin-session-expiry",
		Interval: 5 * time.Minute,
		Timeout:  30 * time.Second,
		Run: func(ctx context.Context) error {
			n, err := sessions.CloseExpired(ctx)
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("closed expired admin sessions", zap.Int64("count", n))
			}
			return nil
		},
	}
}

// LoginAttemptPurgeJob removes failed-login windows older than maxAge. The
// TTL index does the same eventually; this keeps lockouts from lingering on
// deployments where the TTL monitor is slow or unsupported.
func LoginAttemptPurgeJob(attempts attemptPurger, maxAge time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "login-attempt-purge",
		Interval: 1 * time.Hour,
		Timeout:  30 * time.Second,
		Run: func(ctx context.Context) error {
			n, err := attempts.PurgeStale(ctx, maxAge)
			if err != nil {
				return err
			}
			if n > 0 {
				logger.Info("purged stale login attempts",
					zap.Int64("deleted", n),
					zap.Duration("max_age", maxAge))
			}
			return nil
		},
	}
}

// ThrottlePruneJob forgets public-endpoint visitors idle longer than maxIdle.
func ThrottlePruneJob(limiter visitorPruner, maxIdle time.Duration, logger *zap.Logger) Job {
	return Job{
		Name:     "throttle-prune",
		Interval: 10 * time.Minute,
		Delay:    10 * time.Minute, // nothing to prune at startup
		Run: func(ctx context.Context) error {
			if n := limiter.Prune(maxIdle); n > 0 {
				logger.Debug("pruned idle throttle visitors", zap.Int("count", n))
			}
			return nil
		},
	}
}
