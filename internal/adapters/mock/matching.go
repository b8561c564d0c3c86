package mock

import (
	"context"

	"github.com/okian/placement/internal/domain/fault"
	"github.com/okian/placement/internal/domain/lifecycle"
	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/query"
)

func (s *Source) ListMatches(ctx context.Context, f query.MatchFilter) ([]model.Match, error) {
	const op = "matching.list"
	if err := s.wait(ctx, op); err != nil {
		return nil, err
	}
	return query.FilterMatches(s.matches.List(ctx), f), nil
}

func (s *Source) GetMatch(ctx context.Context, id string) (model.Match, error) {
	const op = "matching.get"
	if err := s.wait(ctx, op); err != nil {
		return model.Match{}, err
	}
	m, err := s.matches.Get(ctx, id)
	return m, fault.Wrap(op, err)
}

func (s *Source) ToggleSaveMatch(ctx context.Context, id string) (model.Match, error) {
	const op = "matching.toggle_save"
	if err := s.wait(ctx, op); err != nil {
		return model.Match{}, err
	}
	m, err := s.matches.Update(ctx, id, func(m *model.Match) error {
		lifecycle.ToggleSave(m)
		return nil
	})
	return m, fault.Wrap(op, err)
}

func (s *Source) ApplyToMatch(ctx context.Context, id string) (model.Match, error) {
	const op = "matching.apply"
	if err := s.wait(ctx, op); err != nil {
		return model.Match{}, err
	}
	m, err := s.matches.Update(ctx, id, func(m *model.Match) error {
		lifecycle.Apply(m)
		return nil
	})
	return m, fault.Wrap(op, err)
}
