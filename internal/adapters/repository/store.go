// Package repository holds the in-memory record stores that back the mock
// data source.
package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/okian/placement/pkg/metrics"
)

// Record is anything a store can hold: it has a stable key and can produce
// an independent copy of itself.
type Record[T any] interface {
	Key() string
	Clone() T
}

// Store provides read/write access to one record collection.
type Store[T Record[T]] interface {
	// Get returns a copy of the record with id, or ErrNotFound.
	Get(ctx context.Context, id string) (T, error)
	// List returns copies of all records in insertion order.
	List(ctx context.Context) []T
	// Upsert inserts rec or replaces the record with the same key.
	Upsert(ctx context.Context, rec T) error
	// Update applies fn to a copy of the record with id and stores the
	// result. The stored record is unchanged if fn fails.
	Update(ctx context.Context, id string, fn func(*T) error) (T, error)
	// Delete removes the record with id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) int
}

// MemStore is a Store kept in memory. Writes are serialized by a single
// lock; readers only ever see copies.
type MemStore[T Record[T]] struct {
	name    string
	metrics bool

	mu    sync.RWMutex
	order []string
	byID  map[string]T
}

// NewMemStore creates an empty store. name labels errors and metrics.
func NewMemStore[T Record[T]](name string, opts ...Option) *MemStore[T] {
	c := config{metrics: true}
	for _, opt := range opts {
		opt(&c)
	}
	return &MemStore[T]{
		name:    name,
		metrics: c.metrics,
		order:   make([]string, 0, c.capacity),
		byID:    make(map[string]T, c.capacity),
	}
}

// Name returns the store label.
func (s *MemStore[T]) Name() string { return s.name }

func (s *MemStore[T]) Get(_ context.Context, id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		var zero T
		return zero, s.notFound(id)
	}
	return rec.Clone(), nil
}

func (s *MemStore[T]) List(_ context.Context) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].Clone())
	}
	return out
}

func (s *MemStore[T]) Upsert(_ context.Context, rec T) error {
	id := rec.Key()
	if id == "" {
		return fmt.Errorf("%s: %w", s.name, ErrEmptyKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		s.order = append(s.order, id)
	}
	s.byID[id] = rec.Clone()
	s.observe()
	return nil
}

// Seed upserts every record in order.
func (s *MemStore[T]) Seed(ctx context.Context, recs ...T) error {
	for _, rec := range recs {
		if err := s.Upsert(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemStore[T]) Update(_ context.Context, id string, fn func(*T) error) (T, error) {
	var zero T

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byID[id]
	if !ok {
		return zero, s.notFound(id)
	}

	next := cur.Clone()
	if err := fn(&next); err != nil {
		return zero, err
	}
	if next.Key() != id {
		return zero, fmt.Errorf("%s %q: %w", s.name, id, ErrKeyChanged)
	}
	s.byID[id] = next
	return next.Clone(), nil
}

func (s *MemStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return s.notFound(id)
	}
	delete(s.byID, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	s.observe()
	return nil
}

func (s *MemStore[T]) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *MemStore[T]) notFound(id string) error {
	return fmt.Errorf("%s %q: %w", s.name, id, ErrNotFound)
}

// observe must be called with the write lock held.
func (s *MemStore[T]) observe() {
	if s.metrics {
		metrics.UpdateStoreRecords(s.name, len(s.byID))
	}
}
