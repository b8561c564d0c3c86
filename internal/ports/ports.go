// Package ports declares the data source seam. Every feature reads and
// writes through these interfaces; the mock and remote adapters implement
// them and one is chosen when the service is assembled.
package ports

import (
	"context"

	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/query"
)

// Auth signs the student in.
type Auth interface {
	Login(ctx context.Context, email, password string) (model.Session, error)
	CurrentUser(ctx context.Context, token string) (model.User, error)
}

// Matching serves company matches.
type Matching interface {
	ListMatches(ctx context.Context, f query.MatchFilter) ([]model.Match, error)
	GetMatch(ctx context.Context, id string) (model.Match, error)
	ToggleSaveMatch(ctx context.Context, id string) (model.Match, error)
	ApplyToMatch(ctx context.Context, id string) (model.Match, error)
}

// Resources serves the resource library.
type Resources interface {
	ListResources(ctx context.Context, f query.ResourceFilter) ([]model.Resource, error)
	// GetResourceByID returns nil without error when id is unknown.
	GetResourceByID(ctx context.Context, id string) (*model.Resource, error)
	ToggleBookmark(ctx context.Context, id string) (model.Resource, error)
	IncrementView(ctx context.Context, id string) error
}

// Profiles serves the student profile.
type Profiles interface {
	GetProfile(ctx context.Context) (model.Profile, error)
	UpdateProfile(ctx context.Context, patch model.ProfilePatch) (model.Profile, error)
}

// Appointments serves advisors and bookings.
type Appointments interface {
	ListAdvisors(ctx context.Context) ([]model.Advisor, error)
	// ListSlots returns the free slots of advisorID on date (YYYY-MM-DD).
	ListSlots(ctx context.Context, advisorID, date string) ([]model.Slot, error)
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	BookAppointment(ctx context.Context, req model.BookingRequest) (model.Appointment, error)
	RescheduleAppointment(ctx context.Context, id string, req model.BookingRequest) (model.Appointment, error)
	CancelAppointment(ctx context.Context, id string) (model.Appointment, error)
}

// Messaging serves conversations.
type Messaging interface {
	ListConversations(ctx context.Context, f query.ConversationFilter) ([]model.Conversation, error)
	ListMessages(ctx context.Context, conversationID string) ([]model.Message, error)
	// SendMessage persists a message under the caller's id. Sending the same
	// id again returns the stored message.
	SendMessage(ctx context.Context, conversationID, messageID, body string) (model.Message, error)
	MarkConversationRead(ctx context.Context, conversationID string) (model.Conversation, error)
}

// Journey serves milestones.
type Journey interface {
	ListMilestones(ctx context.Context, f query.MilestoneFilter) ([]model.Milestone, error)
	UpdateMilestoneStatus(ctx context.Context, id string, status model.MilestoneStatus) (model.Milestone, error)
}

// DataSource is everything the service needs from a backend.
type DataSource interface {
	Auth
	Matching
	Resources
	Profiles
	Appointments
	Messaging
	Journey

	// Name identifies the implementation in logs and stats.
	Name() string
}
