// Package dedupe tracks keys that must not be processed twice at the same
// time. It backs the per-record in-flight guard on mutators and the
// once-per-appointment reminder sweep.
package dedupe

import (
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Deduper records keys to ensure at-most-once processing.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord removes a key so it can be recorded again.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

const defaultMaxSize = 50000

// inMemoryDeduper implements Deduper in memory.
// For bounded mode (maxSize > 0) it uses an LRU that evicts the least recently
// recorded key once full. For unbounded mode (maxSize <= 0) it uses a map.
type inMemoryDeduper struct {
	maxSize int

	cache *lru.Cache[string, struct{}]

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}

	if d.maxSize > 0 {
		// lru.New only fails on a non-positive size.
		d.cache, _ = lru.New[string, struct{}](d.maxSize)
	} else {
		d.seen = make(map[string]struct{})
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	if d.cache != nil {
		ok, _ := d.cache.ContainsOrAdd(key, struct{}{})
		return ok
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	if d.cache != nil {
		d.cache.Remove(key)
		return
	}

	d.mu.Lock()
	delete(d.seen, key)
	d.mu.Unlock()
}

// Size returns the current number of recorded keys.
func (d *inMemoryDeduper) Size() int64 {
	if d.cache != nil {
		return int64(d.cache.Len())
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
