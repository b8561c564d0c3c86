// Package scheduler runs the periodic appointment reminder sweep.
package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/okian/placement/internal/domain/dedupe"
	"github.com/okian/placement/internal/domain/lifecycle"
	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/pkg/logger"
	"github.com/okian/placement/pkg/metrics"
)

const (
	defaultSpec   = "@every 15m"
	defaultWindow = 24 * time.Hour
)

// Lister reads the appointments to sweep.
type Lister interface {
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
}

// Reminders sends one reminder per upcoming appointment on a cron schedule.
type Reminders struct {
	mu      sync.Mutex
	cron    *cron.Cron
	started bool

	source Lister
	spec   string
	window time.Duration
	now    func() time.Time
	seen   dedupe.Deduper
	notify func(ctx context.Context, a model.Appointment) error
	logger logger.Logger
}

// New creates a reminder job reading from source.
func New(source Lister, opts ...Option) (*Reminders, error) {
	if source == nil {
		return nil, ErrNilLister
	}
	r := &Reminders{
		source: source,
		spec:   defaultSpec,
		window: defaultWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("reminders")
	}
	if r.seen == nil {
		r.seen = dedupe.NewInMemoryDeduper()
	}
	if r.notify == nil {
		r.notify = r.logReminder
	}
	r.cron = cron.New(cron.WithLogger(cronLogger{l: r.logger}))
	return r, nil
}

// Start registers the sweep and starts the cron loop. ctx is passed to every
// sweep.
func (r *Reminders) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return ErrAlreadyStarted
	}
	if _, err := r.cron.AddFunc(r.spec, func() { _, _ = r.Sweep(ctx) }); err != nil {
		return fmt.Errorf("scheduler: invalid spec %q: %w", r.spec, err)
	}
	r.cron.Start()
	r.started = true
	r.logger.Info(ctx, "reminder scheduler started",
		logger.String("spec", r.spec),
		logger.Duration("window", r.window),
	)
	return nil
}

// Stop halts the cron loop and waits for a running sweep.
func (r *Reminders) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return
	}
	<-r.cron.Stop().Done()
	r.started = false
	r.logger.Info(context.Background(), "reminder scheduler stopped")
}

// Sweep reminds every scheduled appointment starting within the window that
// has not been reminded for its current time. It returns how many reminders
// were sent.
func (r *Reminders) Sweep(ctx context.Context) (int, error) {
	metrics.RecordReminderSweep()

	list, err := r.source.ListAppointments(ctx)
	if err != nil {
		r.logger.Error(ctx, "reminder sweep failed", logger.Error(err))
		metrics.RecordErrorByComponent("reminders", "list")
		return 0, err
	}

	now := r.now()
	sent := 0
	for _, a := range list {
		if !r.due(a, now) {
			continue
		}
		key := reminderKey(a)
		if r.seen.SeenAndRecord(ctx, key) {
			continue
		}
		if err := r.notify(ctx, a); err != nil {
			r.seen.Unrecord(ctx, key)
			r.logger.Warn(ctx, "reminder not delivered",
				logger.String("appointmentID", a.ID),
				logger.Error(err),
			)
			metrics.RecordErrorByComponent("reminders", "notify")
			continue
		}
		metrics.RecordReminderSent()
		sent++
	}
	r.logger.Debug(ctx, "reminder sweep complete", logger.Int("sent", sent))
	return sent, nil
}

func (r *Reminders) due(a model.Appointment, now time.Time) bool {
	if lifecycle.EffectiveStatus(a, now) != model.AppointmentScheduled {
		return false
	}
	return a.DateTime.After(now) && a.DateTime.Sub(now) <= r.window
}

// reminderKey changes when an appointment is rescheduled.
func reminderKey(a model.Appointment) string {
	return "reminder:" + a.ID + "@" + strconv.FormatInt(a.DateTime.Unix(), 10)
}

func (r *Reminders) logReminder(ctx context.Context, a model.Appointment) error {
	r.logger.Info(ctx, "appointment reminder",
		logger.String("appointmentID", a.ID),
		logger.String("advisor", a.AdvisorName),
		logger.String("at", a.DateTime.UTC().Format(time.RFC3339)),
		logger.String("where", a.LocationOrLink),
	)
	return nil
}

// cronLogger routes cron's own messages to the service logger.
type cronLogger struct {
	l logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug(context.Background(), msg, kvFields(keysAndValues)...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error(context.Background(), msg, append(kvFields(keysAndValues), logger.Error(err))...)
}

func kvFields(kv []interface{}) []logger.Field {
	fields := make([]logger.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields = append(fields, logger.Any(fmt.Sprint(kv[i]), kv[i+1]))
	}
	return fields
}
