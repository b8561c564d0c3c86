// Package service assembles the features on top of a data source. Around
// every call it adds logging, metrics and, for mutators, the in-flight guard
// and dashboard invalidation. It also owns the message outbox and its
// delivery workers.
package service

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/okian/placement/internal/adapters/mq/queue"
	"github.com/okian/placement/internal/adapters/mq/worker"
	"github.com/okian/placement/internal/adapters/repository"
	"github.com/okian/placement/internal/domain/dashboard"
	"github.com/okian/placement/internal/domain/dedupe"
	"github.com/okian/placement/internal/domain/fault"
	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/scoring"
	"github.com/okian/placement/internal/ports"
	"github.com/okian/placement/pkg/logger"
	"github.com/okian/placement/pkg/metrics"
)

// Default configuration.
const (
	defaultWorkerCount = 2
	defaultQueueSize   = 256
	defaultGuardSize   = 10000
	defaultCacheSize   = 16
	defaultCacheTTL    = 30 * time.Second
	stopTimeout        = 10 * time.Second
)

// Feature labels used in logs, metrics and guard keys.
const (
	featureAuth         = "auth"
	featureMatching     = "matching"
	featureResources    = "resources"
	featureProfile      = "profile"
	featureAppointments = "appointments"
	featureMessaging    = "messaging"
	featureJourney      = "journey"
	featureDashboard    = "dashboard"
)

// Service implements the feature API on top of a ports.DataSource.
type Service struct {
	mu sync.RWMutex

	source ports.DataSource
	scorer *scoring.Scorer
	guard  *dedupe.Guard
	cache  *expirable.LRU[string, dashboard.Summary]
	// cacheGen counts invalidations.
	cacheGen atomic.Uint64

	outbox     *repository.MemStore[outboxEntry]
	deliveries *queue.InMemoryQueue[model.Delivery]
	pool       *worker.Pool

	// Configuration
	workerCount int
	queueSize   int
	guardSize   int
	cacheSize   int
	cacheTTL    time.Duration
	now         func() time.Time

	// State
	started bool
	stopped bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// New constructs a Service over source. Deliveries queue up until Start.
func New(source ports.DataSource, opts ...Option) (*Service, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	s := &Service{
		source:      source,
		scorer:      scoring.NewScorer(),
		workerCount: min(defaultWorkerCount*runtime.NumCPU(), 8),
		queueSize:   defaultQueueSize,
		guardSize:   defaultGuardSize,
		cacheSize:   defaultCacheSize,
		cacheTTL:    defaultCacheTTL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.guard = dedupe.NewGuard(dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.guardSize)))
	s.cache = expirable.NewLRU[string, dashboard.Summary](s.cacheSize, nil, s.cacheTTL)
	s.outbox = repository.NewMemStore[outboxEntry]("outbox")
	s.deliveries = queue.NewInMemoryQueue[model.Delivery](
		queue.WithCapacity(s.queueSize),
		queue.WithName("deliveries"),
	)
	s.pool = worker.NewPool(s.workerCount, s.deliveries, worker.HandlerFunc(s.deliver))
	return s, nil
}

// Start starts the delivery workers. Calling it again is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.stopped {
		return ErrStopped
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.pool.Start(runCtx)
	s.started = true

	s.logger.Info(ctx, "placement service started",
		logger.String("source", s.source.Name()),
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("guardSize", s.guardSize),
	)
	return nil
}

// Stop closes the delivery queue, lets the workers drain it and waits for
// them to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping placement service...")
	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Error(ctx, "worker pool shutdown failed", logger.Error(err))
	}
	s.cancel()

	s.started = false
	s.stopped = true
	s.logger.Info(ctx, "placement service stopped")
}

// SourceName names the backing data source.
func (s *Service) SourceName() string { return s.source.Name() }

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	delivered, failed := s.pool.Stats()
	queueLen := s.deliveries.Len(ctx)
	outboxLen := s.outbox.Count(ctx)

	metrics.UpdateQueueSize(queueLen)
	metrics.UpdateOutboxSize(outboxLen)
	metrics.UpdateWorkerCount(s.pool.Size())

	return map[string]interface{}{
		"started":          s.started,
		"source":           s.source.Name(),
		"workerCount":      s.pool.Size(),
		"queueCapacity":    s.deliveries.Capacity(),
		"queueLength":      queueLen,
		"outboxLength":     outboxLen,
		"delivered":        delivered,
		"deliveryFailures": failed,
		"inFlight":         s.guard.Active(),
		"dashboardCached":  s.cache.Len(),
	}
}

// call runs fn with debug logging and operation metrics.
func call[T any](ctx context.Context, s *Service, feature, op string, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	s.logger.Debug(ctx, "operation started",
		logger.String("feature", feature),
		logger.String("op", op),
	)

	v, err := fn(ctx)

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
		s.logFailure(ctx, feature, op, err)
	}
	metrics.RecordOperation(feature, op, outcome, float64(time.Since(start).Microseconds())/1000)
	return v, err
}

// mutate is call plus the in-flight guard on key and dashboard invalidation
// after a successful change.
func mutate[T any](ctx context.Context, s *Service, feature, op, key string, fn func(context.Context) (T, error)) (T, error) {
	return call(ctx, s, feature, op, func(ctx context.Context) (T, error) {
		var out T
		err := s.guard.Do(ctx, feature+"."+op, feature+":"+key, func() error {
			v, err := fn(ctx)
			if err != nil {
				return err
			}
			out = v
			s.invalidate()
			return nil
		})
		if errors.Is(err, fault.ErrInFlight) {
			metrics.RecordInFlightRejection(feature)
		}
		return out, err
	})
}

func (s *Service) logFailure(ctx context.Context, feature, op string, err error) {
	fields := []logger.Field{
		logger.String("feature", feature),
		logger.String("op", op),
		logger.Error(err),
	}
	switch fault.KindOf(err) {
	case fault.ErrNotFound, fault.ErrValidation, fault.ErrInFlight:
		s.logger.Warn(ctx, "operation rejected", fields...)
	default:
		s.logger.Error(ctx, "operation failed", fields...)
		metrics.RecordErrorByComponent(feature, op)
	}
}

// invalidate drops every cached dashboard.
func (s *Service) invalidate() {
	s.cacheGen.Add(1)
	s.cache.Purge()
}
