// Package timeouts holds the process-wide deadlines for database work and
// outbound calls. Bootstrap sets them once from config; readers never lock.
package timeouts

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Config is a full set of deadlines. In Configure, zero fields keep the
// current value.
type Config struct {
	Ping   time.Duration // health probes
	Short  time.Duration // single-document reads and writes
	Medium time.Duration // lists, counts and aggregates
	Mail   time.Duration // one SMTP delivery
}

// Defaults apply until Configure is called.
var Defaults = Config{
	Ping:   2 * time.Second,
	Short:  5 * time.Second,
	Medium: 10 * time.Second,
	Mail:   15 * time.Second,
}

var (
	writeMu sync.Mutex
	current atomic.Pointer[Config]
)

func init() { Reset() }

func load() Config { return *current.Load() }

func Ping() time.Duration   { return load().Ping }
func Short() time.Duration  { return load().Short }
func Medium() time.Duration { return load().Medium }
func Mail() time.Duration   { return load().Mail }

// Current returns the deadlines in effect.
func Current() Config { return load() }

// Configure overrides the non-zero fields of cfg.
func Configure(cfg Config) {
	writeMu.Lock()
	defer writeMu.Unlock()

	next := load()
	for _, f := range []struct {
		dst *time.Duration
		v   time.Duration
	}{
		{&next.Ping, cfg.Ping},
		{&next.Short, cfg.Short},
		{&next.Medium, cfg.Medium},
		{&next.Mail, cfg.Mail},
	} {
		if f.v > 0 {
			*f.dst = f.v
		}
	}
	current.Store(&next)
}

// Reset restores Defaults.
func Reset() {
	writeMu.Lock()
	defer writeMu.Unlock()
	d := Defaults
	current.Store(&d)
}

// WithTimeout is context.WithTimeout whose cancel func logs a warning when
// the deadline, rather than the caller, ended the operation.
func WithTimeout(parent context.Context, d time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, d)
	return ctx, func() {
		if log != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && parent.Err() == nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", d))
		}
		cancel()
	}
}
