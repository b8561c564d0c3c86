package repository

// Option applies a configuration option to a MemStore.
type Option func(*config)

type config struct {
	capacity int
	metrics  bool
}

// WithCapacity preallocates room for n records.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithMetrics toggles the per-store size gauge.
func WithMetrics(enabled bool) Option {
	return func(c *config) {
		c.metrics = enabled
	}
}
