// Package latency provides the artificial delay the mock data source applies
// before every call to emulate a network round trip.
package latency

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/okian/placement/pkg/metrics"
)

// Gate delays a caller before an operation proceeds.
type Gate interface {
	// Wait blocks for the gate's delay or until ctx is done.
	Wait(ctx context.Context) error
}

// noop never delays.
type noop struct{}

func (noop) Wait(ctx context.Context) error { return ctx.Err() }

// None returns a gate that does not delay.
func None() Gate { return noop{} }

// RandomGate sleeps for a uniformly random duration in [min, max).
type RandomGate struct {
	minDelay time.Duration
	maxDelay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a gate delaying between minDelay and maxDelay. When both are
// zero the no-op gate is returned. maxDelay below minDelay is raised to it.
func New(minDelay, maxDelay time.Duration, opts ...Option) Gate {
	if minDelay < 0 {
		minDelay = 0
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	if maxDelay == 0 {
		return None()
	}

	g := &RandomGate{
		minDelay: minDelay,
		maxDelay: maxDelay,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // jitter only
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Delay returns the next delay without sleeping.
func (g *RandomGate) Delay() time.Duration {
	span := int64(g.maxDelay - g.minDelay)
	if span <= 0 {
		return g.minDelay
	}
	g.mu.Lock()
	n := g.rng.Int63n(span)
	g.mu.Unlock()
	return g.minDelay + time.Duration(n)
}

func (g *RandomGate) Wait(ctx context.Context) error {
	d := g.Delay()
	metrics.RecordLatencyGateDelay(float64(d.Milliseconds()))

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}

// Option configures a RandomGate.
type Option func(*RandomGate)

// WithSeed makes the delay sequence reproducible.
func WithSeed(seed int64) Option {
	return func(g *RandomGate) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // jitter only
	}
}
