// Package dashboard builds the read-only summary shown on the student's home
// page from the other features' data.
package dashboard

import (
	"slices"
	"time"

	"github.com/okian/placement/internal/domain/lifecycle"
	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/query"
	"github.com/okian/placement/internal/domain/scoring"
)

const (
	recommendedLimit = 3
	upcomingLimit    = 3
)

// Summary is the dashboard projection.
type Summary struct {
	ProfileCompletion int                   `json:"profile_completion"`
	Recommended       []model.Match         `json:"recommended_matches"`
	Upcoming          []model.Appointment   `json:"upcoming_appointments"`
	Journey           model.JourneyProgress `json:"journey"`
	UnreadMessages    int                   `json:"unread_messages"`
	SavedMatches      int                   `json:"saved_matches"`
	AppliedMatches    int                   `json:"applied_matches"`
	GeneratedAt       time.Time             `json:"generated_at"`
}

// Input gathers everything Build reads.
type Input struct {
	Profile       model.Profile
	Matches       []model.Match
	Appointments  []model.Appointment
	Milestones    []model.Milestone
	Conversations []model.Conversation
	Now           time.Time
}

// Build computes the summary. It does not modify in.
func Build(in Input) Summary {
	s := Summary{
		ProfileCompletion: scoring.Calculate(in.Profile),
		Journey:           lifecycle.Progress(in.Milestones),
		GeneratedAt:       in.Now,
	}

	for _, m := range in.Matches {
		if m.Saved {
			s.SavedMatches++
		}
		if m.Applied {
			s.AppliedMatches++
		}
	}
	open := slices.DeleteFunc(slices.Clone(in.Matches), func(m model.Match) bool { return m.Applied })
	s.Recommended = head(query.FilterMatches(open, query.MatchFilter{Sort: query.SortScore}), recommendedLimit)

	upcoming := make([]model.Appointment, 0, len(in.Appointments))
	for _, a := range in.Appointments {
		if lifecycle.EffectiveStatus(a, in.Now) == model.AppointmentScheduled {
			upcoming = append(upcoming, a)
		}
	}
	slices.SortStableFunc(upcoming, func(a, b model.Appointment) int { return a.DateTime.Compare(b.DateTime) })
	s.Upcoming = head(upcoming, upcomingLimit)

	for _, c := range in.Conversations {
		s.UnreadMessages += c.Unread
	}
	return s
}

func head[T any](items []T, n int) []T {
	return items[:min(n, len(items))]
}
