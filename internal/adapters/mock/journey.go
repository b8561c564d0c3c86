package mock

import (
	"context"

	"github.com/okian/placement/internal/domain/fault"
	"github.com/okian/placement/internal/domain/lifecycle"
	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/query"
)

func (s *Source) ListMilestones(ctx context.Context, f query.MilestoneFilter) ([]model.Milestone, error) {
	const op = "journey.list"
	if err := s.wait(ctx, op); err != nil {
		return nil, err
	}
	return query.FilterMilestones(s.milestones.List(ctx), f), nil
}

func (s *Source) UpdateMilestoneStatus(ctx context.Context, id string, status model.MilestoneStatus) (model.Milestone, error) {
	const op = "journey.update_status"
	if err := s.wait(ctx, op); err != nil {
		return model.Milestone{}, err
	}
	st, err := lifecycle.ParseMilestoneStatus(string(status))
	if err != nil {
		return model.Milestone{}, fault.Wrap(op, err)
	}
	now := s.now()
	m, err := s.milestones.Update(ctx, id, func(m *model.Milestone) error {
		lifecycle.SetMilestoneStatus(m, st, now)
		return nil
	})
	return m, fault.Wrap(op, err)
}
