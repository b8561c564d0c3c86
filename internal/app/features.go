package service

import (
	"context"
	"strings"

	"github.com/okian/placement/internal/domain/fault"
	"github.com/okian/placement/internal/domain/lifecycle"
	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/query"
	"github.com/okian/placement/internal/domain/scoring"
	"github.com/okian/placement/pkg/metrics"
)

// Login signs the student in.
func (s *Service) Login(ctx context.Context, email, password string) (model.Session, error) {
	return call(ctx, s, featureAuth, "login", func(ctx context.Context) (model.Session, error) {
		return s.source.Login(ctx, email, password)
	})
}

// CurrentUser resolves a session token.
func (s *Service) CurrentUser(ctx context.Context, token string) (model.User, error) {
	return call(ctx, s, featureAuth, "current_user", func(ctx context.Context) (model.User, error) {
		return s.source.CurrentUser(ctx, token)
	})
}

func (s *Service) ListMatches(ctx context.Context, f query.MatchFilter) ([]model.Match, error) {
	return call(ctx, s, featureMatching, "list", func(ctx context.Context) ([]model.Match, error) {
		return s.source.ListMatches(ctx, f)
	})
}

func (s *Service) GetMatch(ctx context.Context, id string) (model.Match, error) {
	return call(ctx, s, featureMatching, "get", func(ctx context.Context) (model.Match, error) {
		return s.source.GetMatch(ctx, id)
	})
}

func (s *Service) ToggleSaveMatch(ctx context.Context, id string) (model.Match, error) {
	return mutate(ctx, s, featureMatching, "toggle_save", id, func(ctx context.Context) (model.Match, error) {
		return s.source.ToggleSaveMatch(ctx, id)
	})
}

func (s *Service) ApplyToMatch(ctx context.Context, id string) (model.Match, error) {
	return mutate(ctx, s, featureMatching, "apply", id, func(ctx context.Context) (model.Match, error) {
		return s.source.ApplyToMatch(ctx, id)
	})
}

func (s *Service) ListResources(ctx context.Context, f query.ResourceFilter) ([]model.Resource, error) {
	return call(ctx, s, featureResources, "list", func(ctx context.Context) ([]model.Resource, error) {
		return s.source.ListResources(ctx, f)
	})
}

// GetResource returns nil without error for an unknown id.
func (s *Service) GetResource(ctx context.Context, id string) (*model.Resource, error) {
	return call(ctx, s, featureResources, "get", func(ctx context.Context) (*model.Resource, error) {
		return s.source.GetResourceByID(ctx, id)
	})
}

func (s *Service) ToggleBookmark(ctx context.Context, id string) (model.Resource, error) {
	return mutate(ctx, s, featureResources, "toggle_bookmark", id, func(ctx context.Context) (model.Resource, error) {
		return s.source.ToggleBookmark(ctx, id)
	})
}

func (s *Service) IncrementView(ctx context.Context, id string) error {
	_, err := mutate(ctx, s, featureResources, "increment_view", id, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.source.IncrementView(ctx, id)
	})
	return err
}

// Completion is a profile completion score with its itemized criteria.
type Completion struct {
	Score     int                 `json:"score"`
	Breakdown []scoring.Criterion `json:"breakdown"`
}

// ProfileView is the profile together with its completion.
type ProfileView struct {
	Profile    model.Profile `json:"profile"`
	Completion Completion    `json:"completion"`
}

// CalculateCompletion scores p.
func (s *Service) CalculateCompletion(p model.Profile) Completion {
	c := Completion{Score: s.scorer.Score(p), Breakdown: s.scorer.Breakdown(p)}
	metrics.UpdateProfileCompletion(c.Score)
	return c
}

func (s *Service) GetProfile(ctx context.Context) (ProfileView, error) {
	return call(ctx, s, featureProfile, "get", func(ctx context.Context) (ProfileView, error) {
		p, err := s.source.GetProfile(ctx)
		if err != nil {
			return ProfileView{}, err
		}
		return ProfileView{Profile: p, Completion: s.CalculateCompletion(p)}, nil
	})
}

func (s *Service) UpdateProfile(ctx context.Context, patch model.ProfilePatch) (ProfileView, error) {
	return mutate(ctx, s, featureProfile, "update", "me", func(ctx context.Context) (ProfileView, error) {
		p, err := s.source.UpdateProfile(ctx, patch)
		if err != nil {
			return ProfileView{}, err
		}
		return ProfileView{Profile: p, Completion: s.CalculateCompletion(p)}, nil
	})
}

func (s *Service) ListAdvisors(ctx context.Context) ([]model.Advisor, error) {
	return call(ctx, s, featureAppointments, "list_advisors", func(ctx context.Context) ([]model.Advisor, error) {
		return s.source.ListAdvisors(ctx)
	})
}

func (s *Service) ListSlots(ctx context.Context, advisorID, date string) ([]model.Slot, error) {
	return call(ctx, s, featureAppointments, "list_slots", func(ctx context.Context) ([]model.Slot, error) {
		return s.source.ListSlots(ctx, advisorID, date)
	})
}

func (s *Service) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	return call(ctx, s, featureAppointments, "list", func(ctx context.Context) ([]model.Appointment, error) {
		return s.source.ListAppointments(ctx)
	})
}

// BookAppointment books a slot. Concurrent bookings of the same advisor slot
// are rejected while the first is running.
func (s *Service) BookAppointment(ctx context.Context, req model.BookingRequest) (model.Appointment, error) {
	key := strings.Join([]string{req.AdvisorID, req.Date, req.TimeSlot}, "@")
	return mutate(ctx, s, featureAppointments, "book", key, func(ctx context.Context) (model.Appointment, error) {
		return s.source.BookAppointment(ctx, req)
	})
}

func (s *Service) RescheduleAppointment(ctx context.Context, id string, req model.BookingRequest) (model.Appointment, error) {
	return mutate(ctx, s, featureAppointments, "reschedule", id, func(ctx context.Context) (model.Appointment, error) {
		return s.source.RescheduleAppointment(ctx, id, req)
	})
}

func (s *Service) CancelAppointment(ctx context.Context, id string) (model.Appointment, error) {
	return mutate(ctx, s, featureAppointments, "cancel", id, func(ctx context.Context) (model.Appointment, error) {
		return s.source.CancelAppointment(ctx, id)
	})
}

func (s *Service) ListMilestones(ctx context.Context, f query.MilestoneFilter) ([]model.Milestone, error) {
	return call(ctx, s, featureJourney, "list", func(ctx context.Context) ([]model.Milestone, error) {
		return s.source.ListMilestones(ctx, f)
	})
}

func (s *Service) UpdateMilestoneStatus(ctx context.Context, id string, status model.MilestoneStatus) (model.Milestone, error) {
	return mutate(ctx, s, featureJourney, "update_status", id, func(ctx context.Context) (model.Milestone, error) {
		if _, err := lifecycle.ParseMilestoneStatus(string(status)); err != nil {
			return model.Milestone{}, fault.Wrap("journey.update_status", err)
		}
		return s.source.UpdateMilestoneStatus(ctx, id, status)
	})
}

// JourneyProgress counts completed milestones across the whole journey.
func (s *Service) JourneyProgress(ctx context.Context) (model.JourneyProgress, error) {
	return call(ctx, s, featureJourney, "progress", func(ctx context.Context) (model.JourneyProgress, error) {
		ms, err := s.source.ListMilestones(ctx, query.MilestoneFilter{})
		if err != nil {
			return model.JourneyProgress{}, err
		}
		return lifecycle.Progress(ms), nil
	})
}
