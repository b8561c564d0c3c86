package mock

import (
	"context"
	"time"

	"github.com/okian/placement/internal/adapters/latency"
	"github.com/okian/placement/internal/auth"
	"github.com/okian/placement/internal/domain/model"
)

// Option applies a configuration option to the Source.
type Option func(*Source)

// WithGate sets the latency gate applied before every call.
func WithGate(g latency.Gate) Option {
	return func(s *Source) {
		if g != nil {
			s.gate = g
		}
	}
}

// WithClock overrides the time source. Seed data is laid out relative to
// the clock at construction.
func WithClock(now func() time.Time) Option {
	return func(s *Source) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIssuer sets the token issuer used by Login.
func WithIssuer(i *auth.Issuer) Option {
	return func(s *Source) {
		if i != nil {
			s.issuer = i
		}
	}
}

// WithEmptySeed starts every store empty.
func WithEmptySeed() Option {
	return func(s *Source) {
		s.seed = false
	}
}

// WithSendHook runs fn before a message is persisted; an error fails the send.
func WithSendHook(fn func(ctx context.Context, m model.Message) error) Option {
	return func(s *Source) {
		s.sendHook = fn
	}
}
