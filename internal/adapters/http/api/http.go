// Package api exposes the placement features as a JSON HTTP API.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	service "github.com/okian/placement/internal/app"
	"github.com/okian/placement/internal/domain/dashboard"
	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/query"
	"github.com/okian/placement/pkg/logger"
	"github.com/okian/placement/pkg/metrics"
)

const (
	apiPrefix          = "/api/v1"
	defaultMaxPageSize = 100
)

// Dependencies required by HTTP handlers. The service implements it; tests
// may substitute a fake.
type Dependencies interface {
	Login(ctx context.Context, email, password string) (model.Session, error)
	CurrentUser(ctx context.Context, token string) (model.User, error)

	ListMatches(ctx context.Context, f query.MatchFilter) ([]model.Match, error)
	GetMatch(ctx context.Context, id string) (model.Match, error)
	ToggleSaveMatch(ctx context.Context, id string) (model.Match, error)
	ApplyToMatch(ctx context.Context, id string) (model.Match, error)

	ListResources(ctx context.Context, f query.ResourceFilter) ([]model.Resource, error)
	GetResource(ctx context.Context, id string) (*model.Resource, error)
	ToggleBookmark(ctx context.Context, id string) (model.Resource, error)
	IncrementView(ctx context.Context, id string) error

	GetProfile(ctx context.Context) (service.ProfileView, error)
	UpdateProfile(ctx context.Context, patch model.ProfilePatch) (service.ProfileView, error)

	ListAdvisors(ctx context.Context) ([]model.Advisor, error)
	ListSlots(ctx context.Context, advisorID, date string) ([]model.Slot, error)
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	BookAppointment(ctx context.Context, req model.BookingRequest) (model.Appointment, error)
	RescheduleAppointment(ctx context.Context, id string, req model.BookingRequest) (model.Appointment, error)
	CancelAppointment(ctx context.Context, id string) (model.Appointment, error)

	ListConversations(ctx context.Context, f query.ConversationFilter) ([]model.Conversation, error)
	ListMessages(ctx context.Context, conversationID string) ([]model.Message, error)
	SendMessage(ctx context.Context, conversationID, body string) (model.Message, error)
	RetryMessage(ctx context.Context, id string) (model.Message, error)
	DiscardMessage(ctx context.Context, id string) error
	MarkConversationRead(ctx context.Context, conversationID string) (model.Conversation, error)

	ListMilestones(ctx context.Context, f query.MilestoneFilter) ([]model.Milestone, error)
	UpdateMilestoneStatus(ctx context.Context, id string, status model.MilestoneStatus) (model.Milestone, error)
	JourneyProgress(ctx context.Context) (model.JourneyProgress, error)

	Dashboard(ctx context.Context) (dashboard.Summary, error)
}

var _ Dependencies = (*service.Service)(nil)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxPageSize caps the page_size query parameter.
func WithMaxPageSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxPageSize = n
		}
	}
}

// WithRequireAuth puts a bearer token check in front of the feature routes.
func WithRequireAuth(required bool) Option {
	return func(s *Server) {
		s.requireAuth = required
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRoutes lets the caller mount extra routes, such as the API docs.
func WithRoutes(fn func(r chi.Router)) Option {
	return func(s *Server) {
		s.extra = append(s.extra, fn)
	}
}

// Server wires HTTP routes for the feature API.
type Server struct {
	deps        Dependencies
	stats       StatsProvider
	maxPageSize int
	requireAuth bool
	extra       []func(chi.Router)
	logger      logger.Logger
}

// NewServer creates a new API server.
func NewServer(deps Dependencies, stats StatsProvider, opts ...Option) *Server {
	s := &Server{
		deps:        deps,
		stats:       stats,
		maxPageSize: defaultMaxPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("http")
	}
	return s
}

// Handler returns the router with every route attached.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(metricsMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth)
	r.Get("/stats", NewStatsHandler(s.stats).HandleStats)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	for _, fn := range s.extra {
		fn(r)
	}

	r.Route(apiPrefix, func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			if s.requireAuth {
				r.Use(s.authenticate)
			}
			r.Get("/auth/me", s.handleMe)
			r.Get("/dashboard", s.handleDashboard)

			r.Get("/matches", s.handleListMatches)
			r.Get("/matches/{id}", s.handleGetMatch)
			r.Post("/matches/{id}/save", s.handleToggleSaveMatch)
			r.Post("/matches/{id}/apply", s.handleApplyToMatch)

			r.Get("/resources", s.handleListResources)
			r.Get("/resources/{id}", s.handleGetResource)
			r.Post("/resources/{id}/bookmark", s.handleToggleBookmark)
			r.Post("/resources/{id}/view", s.handleIncrementView)

			r.Get("/profile", s.handleGetProfile)
			r.Patch("/profile", s.handleUpdateProfile)

			r.Get("/advisors", s.handleListAdvisors)
			r.Get("/advisors/{id}/slots", s.handleListSlots)
			r.Get("/appointments", s.handleListAppointments)
			r.Post("/appointments", s.handleBookAppointment)
			r.Put("/appointments/{id}", s.handleRescheduleAppointment)
			r.Post("/appointments/{id}/cancel", s.handleCancelAppointment)

			r.Get("/conversations", s.handleListConversations)
			r.Get("/conversations/{id}/messages", s.handleListMessages)
			r.Post("/conversations/{id}/messages", s.handleSendMessage)
			r.Post("/conversations/{id}/read", s.handleMarkRead)
			r.Post("/messages/{id}/retry", s.handleRetryMessage)
			r.Delete("/messages/{id}", s.handleDiscardMessage)

			r.Get("/journey/milestones", s.handleListMilestones)
			r.Patch("/journey/milestones/{id}", s.handleUpdateMilestone)
			r.Get("/journey/progress", s.handleJourneyProgress)
		})
	})
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
