package dedupe

import (
	"context"

	"github.com/okian/placement/internal/domain/fault"
)

// Guard runs at most one operation per key at a time.
type Guard struct {
	set Deduper
}

// NewGuard wraps set as an in-flight guard.
func NewGuard(set Deduper) *Guard {
	return &Guard{set: set}
}

// Do runs fn unless another call holding key is still running, in which case
// it fails with fault.ErrInFlight.
func (g *Guard) Do(ctx context.Context, op, key string, fn func() error) error {
	if g.set.SeenAndRecord(ctx, key) {
		return fault.NewKind(op, fault.ErrInFlight)
	}
	defer g.set.Unrecord(ctx, key)
	return fn()
}

// Active returns how many keys are currently held.
func (g *Guard) Active() int64 { return g.set.Size() }
