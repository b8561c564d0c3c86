package mock

import (
	"context"
	"errors"

	"github.com/okian/placement/internal/domain/fault"
	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/query"
)

func (s *Source) ListResources(ctx context.Context, f query.ResourceFilter) ([]model.Resource, error) {
	const op = "resources.list"
	if err := s.wait(ctx, op); err != nil {
		return nil, err
	}
	return query.FilterResources(s.resources.List(ctx), f), nil
}

// GetResourceByID returns nil, nil for an unknown id. Reading does not count
// as a view.
func (s *Source) GetResourceByID(ctx context.Context, id string) (*model.Resource, error) {
	const op = "resources.get"
	if err := s.wait(ctx, op); err != nil {
		return nil, err
	}
	r, err := s.resources.Get(ctx, id)
	if errors.Is(err, fault.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fault.Wrap(op, err)
	}
	return &r, nil
}

func (s *Source) ToggleBookmark(ctx context.Context, id string) (model.Resource, error) {
	const op = "resources.toggle_bookmark"
	if err := s.wait(ctx, op); err != nil {
		return model.Resource{}, err
	}
	r, err := s.resources.Update(ctx, id, func(r *model.Resource) error {
		r.Bookmarked = !r.Bookmarked
		return nil
	})
	return r, fault.Wrap(op, err)
}

func (s *Source) IncrementView(ctx context.Context, id string) error {
	const op = "resources.increment_view"
	if err := s.wait(ctx, op); err != nil {
		return err
	}
	_, err := s.resources.Update(ctx, id, func(r *model.Resource) error {
		r.Views++
		return nil
	})
	return fault.Wrap(op, err)
}
