// Package remote is the placeholder for a real backend. Every call fails
// with fault.ErrUnimplemented; the configured base URL is kept so callers
// can tell which backend they hit.
package remote

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/placement/internal/domain/fault"
	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/query"
	"github.com/okian/placement/internal/ports"
)

// Name identifies this source.
const Name = "remote"

var _ ports.DataSource = (*Source)(nil)

// Source implements ports.DataSource without a transport.
type Source struct {
	baseURL string
}

// New creates a remote source for baseURL.
func New(baseURL string) *Source {
	return &Source{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/")}
}

// Name returns "remote".
func (s *Source) Name() string { return Name }

// BaseURL returns the configured backend location.
func (s *Source) BaseURL() string { return s.baseURL }

func (s *Source) unimplemented(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return fault.Wrap(op, err)
	}
	target := s.baseURL
	if target == "" {
		target = "(no base url)"
	}
	return fault.WrapKind(op, fault.ErrUnimplemented, fmt.Errorf("remote backend %s", target))
}

func (s *Source) Login(ctx context.Context, _, _ string) (model.Session, error) {
	return model.Session{}, s.unimplemented(ctx, "auth.login")
}

func (s *Source) CurrentUser(ctx context.Context, _ string) (model.User, error) {
	return model.User{}, s.unimplemented(ctx, "auth.current_user")
}

func (s *Source) ListMatches(ctx context.Context, _ query.MatchFilter) ([]model.Match, error) {
	return nil, s.unimplemented(ctx, "matching.list")
}

func (s *Source) GetMatch(ctx context.Context, _ string) (model.Match, error) {
	return model.Match{}, s.unimplemented(ctx, "matching.get")
}

func (s *Source) ToggleSaveMatch(ctx context.Context, _ string) (model.Match, error) {
	return model.Match{}, s.unimplemented(ctx, "matching.toggle_save")
}

func (s *Source) ApplyToMatch(ctx context.Context, _ string) (model.Match, error) {
	return model.Match{}, s.unimplemented(ctx, "matching.apply")
}

func (s *Source) ListResources(ctx context.Context, _ query.ResourceFilter) ([]model.Resource, error) {
	return nil, s.unimplemented(ctx, "resources.list")
}

func (s *Source) GetResourceByID(ctx context.Context, _ string) (*model.Resource, error) {
	return nil, s.unimplemented(ctx, "resources.get")
}

func (s *Source) ToggleBookmark(ctx context.Context, _ string) (model.Resource, error) {
	return model.Resource{}, s.unimplemented(ctx, "resources.toggle_bookmark")
}

func (s *Source) IncrementView(ctx context.Context, _ string) error {
	return s.unimplemented(ctx, "resources.increment_view")
}

func (s *Source) GetProfile(ctx context.Context) (model.Profile, error) {
	return model.Profile{}, s.unimplemented(ctx, "profile.get")
}

func (s *Source) UpdateProfile(ctx context.Context, _ model.ProfilePatch) (model.Profile, error) {
	return model.Profile{}, s.unimplemented(ctx, "profile.update")
}

func (s *Source) ListAdvisors(ctx context.Context) ([]model.Advisor, error) {
	return nil, s.unimplemented(ctx, "appointments.list_advisors")
}

func (s *Source) ListSlots(ctx context.Context, _, _ string) ([]model.Slot, error) {
	return nil, s.unimplemented(ctx, "appointments.list_slots")
}

func (s *Source) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	return nil, s.unimplemented(ctx, "appointments.list")
}

func (s *Source) BookAppointment(ctx context.Context, _ model.BookingRequest) (model.Appointment, error) {
	return model.Appointment{}, s.unimplemented(ctx, "appointments.book")
}

func (s *Source) RescheduleAppointment(ctx context.Context, _ string, _ model.BookingRequest) (model.Appointment, error) {
	return model.Appointment{}, s.unimplemented(ctx, "appointments.reschedule")
}

func (s *Source) CancelAppointment(ctx context.Context, _ string) (model.Appointment, error) {
	return model.Appointment{}, s.unimplemented(ctx, "appointments.cancel")
}

func (s *Source) ListConversations(ctx context.Context, _ query.ConversationFilter) ([]model.Conversation, error) {
	return nil, s.unimplemented(ctx, "messaging.list_conversations")
}

func (s *Source) ListMessages(ctx context.Context, _ string) ([]model.Message, error) {
	return nil, s.unimplemented(ctx, "messaging.list_messages")
}

func (s *Source) SendMessage(ctx context.Context, _, _, _ string) (model.Message, error) {
	return model.Message{}, s.unimplemented(ctx, "messaging.send")
}

func (s *Source) MarkConversationRead(ctx context.Context, _ string) (model.Conversation, error) {
	return model.Conversation{}, s.unimplemented(ctx, "messaging.mark_read")
}

func (s *Source) ListMilestones(ctx context.Context, _ query.MilestoneFilter) ([]model.Milestone, error) {
	return nil, s.unimplemented(ctx, "journey.list")
}

func (s *Source) UpdateMilestoneStatus(ctx context.Context, _ string, _ model.MilestoneStatus) (model.Milestone, error) {
	return model.Milestone{}, s.unimplemented(ctx, "journey.update_status")
}
