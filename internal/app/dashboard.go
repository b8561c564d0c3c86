package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/okian/placement/internal/domain/dashboard"
	"github.com/okian/placement/internal/domain/query"
	"github.com/okian/placement/pkg/metrics"
)

const dashboardKey = "summary"

// Dashboard returns the home page summary, served from cache until a
// mutation or the cache TTL invalidates it.
func (s *Service) Dashboard(ctx context.Context) (dashboard.Summary, error) {
	return call(ctx, s, featureDashboard, "summary", func(ctx context.Context) (dashboard.Summary, error) {
		if sum, ok := s.cache.Get(dashboardKey); ok {
			metrics.RecordDashboardCache(true)
			return sum, nil
		}
		metrics.RecordDashboardCache(false)

		gen := s.cacheGen.Load()
		in, err := s.dashboardInput(ctx)
		if err != nil {
			return dashboard.Summary{}, err
		}
		sum := dashboard.Build(in)
		sum.ProfileCompletion = s.scorer.Score(in.Profile)
		// A mutation that landed during the reads makes this summary stale.
		if s.cacheGen.Load() == gen {
			s.cache.Add(dashboardKey, sum)
		}
		return sum, nil
	})
}

// dashboardInput reads the features the summary is built from in parallel.
func (s *Service) dashboardInput(ctx context.Context) (dashboard.Input, error) {
	in := dashboard.Input{Now: s.now()}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := s.source.GetProfile(gctx)
		in.Profile = p
		return err
	})
	g.Go(func() error {
		ms, err := s.source.ListMatches(gctx, query.MatchFilter{})
		in.Matches = ms
		return err
	})
	g.Go(func() error {
		as, err := s.source.ListAppointments(gctx)
		in.Appointments = as
		return err
	})
	g.Go(func() error {
		ms, err := s.source.ListMilestones(gctx, query.MilestoneFilter{})
		in.Milestones = ms
		return err
	})
	g.Go(func() error {
		cs, err := s.source.ListConversations(gctx, query.ConversationFilter{})
		in.Conversations = cs
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.Input{}, err
	}
	return in, nil
}
