package scheduler

import (
	"context"
	"time"

	"github.com/okian/placement/internal/domain/dedupe"
	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/pkg/logger"
)

// Option applies a configuration option to the Reminders job.
type Option func(*Reminders)

// WithSchedule sets the cron spec, e.g. "@every 15m" or "*/5 * * * *".
func WithSchedule(spec string) Option {
	return func(r *Reminders) {
		if spec != "" {
			r.spec = spec
		}
	}
}

// WithWindow sets how far ahead an appointment is reminded.
func WithWindow(d time.Duration) Option {
	return func(r *Reminders) {
		if d > 0 {
			r.window = d
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Reminders) {
		if now != nil {
			r.now = now
		}
	}
}

// WithDeduper sets the set that remembers reminded appointments.
func WithDeduper(d dedupe.Deduper) Option {
	return func(r *Reminders) {
		if d != nil {
			r.seen = d
		}
	}
}

// WithNotifier sets the function that delivers one reminder.
func WithNotifier(fn func(ctx context.Context, a model.Appointment) error) Option {
	return func(r *Reminders) {
		if fn != nil {
			r.notify = fn
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Reminders) {
		if l != nil {
			r.logger = l
		}
	}
}
