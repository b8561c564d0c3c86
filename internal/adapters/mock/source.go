// Package mock is the in-memory data source. Every call waits on a latency
// gate, then reads or mutates one of the record stores.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/okian/placement/internal/adapters/latency"
	"github.com/okian/placement/internal/adapters/repository"
	"github.com/okian/placement/internal/auth"
	"github.com/okian/placement/internal/domain/fault"
	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/ports"
)

const (
	// Name identifies this source.
	Name = "mock"

	devSecret  = "placement-dev-secret"
	profileKey = "me"
)

var _ ports.DataSource = (*Source)(nil)

// profileRecord adapts the single student profile to a store record.
type profileRecord struct {
	id string
	model.Profile
}

func (p profileRecord) Key() string { return p.id }

func (p profileRecord) Clone() profileRecord {
	return profileRecord{id: p.id, Profile: p.Profile.Clone()}
}

// Source implements ports.DataSource in memory.
type Source struct {
	gate     latency.Gate
	now      func() time.Time
	issuer   *auth.Issuer
	seed     bool
	sendHook func(ctx context.Context, m model.Message) error

	matches       *repository.MemStore[model.Match]
	resources     *repository.MemStore[model.Resource]
	profiles      *repository.MemStore[profileRecord]
	advisors      *repository.MemStore[model.Advisor]
	appointments  *repository.MemStore[model.Appointment]
	conversations *repository.MemStore[model.Conversation]
	messages      *repository.MemStore[model.Message]
	milestones    *repository.MemStore[model.Milestone]

	// bookMu serializes the slot check and insert of bookings.
	bookMu sync.Mutex
}

// New creates a mock source loaded with the seed data.
func New(opts ...Option) (*Source, error) {
	s := &Source{
		gate:          latency.None(),
		now:           time.Now,
		seed:          true,
		matches:       repository.NewMemStore[model.Match]("matches"),
		resources:     repository.NewMemStore[model.Resource]("resources"),
		profiles:      repository.NewMemStore[profileRecord]("profiles"),
		advisors:      repository.NewMemStore[model.Advisor]("advisors"),
		appointments:  repository.NewMemStore[model.Appointment]("appointments"),
		conversations: repository.NewMemStore[model.Conversation]("conversations"),
		messages:      repository.NewMemStore[model.Message]("messages"),
		milestones:    repository.NewMemStore[model.Milestone]("milestones"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.issuer == nil {
		iss, err := auth.NewIssuer(devSecret, auth.WithClock(s.now))
		if err != nil {
			return nil, err
		}
		s.issuer = iss
	}

	ctx := context.Background()
	if err := s.profiles.Upsert(ctx, profileRecord{id: profileKey}); err != nil {
		return nil, err
	}
	if s.seed {
		if err := s.load(ctx, newSeed(s.now())); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Name returns "mock".
func (s *Source) Name() string { return Name }

func (s *Source) load(ctx context.Context, d seedData) error {
	steps := []func() error{
		func() error { return s.matches.Seed(ctx, d.matches...) },
		func() error { return s.resources.Seed(ctx, d.resources...) },
		func() error { return s.profiles.Upsert(ctx, profileRecord{id: profileKey, Profile: d.profile}) },
		func() error { return s.advisors.Seed(ctx, d.advisors...) },
		func() error { return s.appointments.Seed(ctx, d.appointments...) },
		func() error { return s.conversations.Seed(ctx, d.conversations...) },
		func() error { return s.messages.Seed(ctx, d.messages...) },
		func() error { return s.milestones.Seed(ctx, d.milestones...) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// wait applies the latency gate.
func (s *Source) wait(ctx context.Context, op string) error {
	return fault.Wrap(op, s.gate.Wait(ctx))
}
