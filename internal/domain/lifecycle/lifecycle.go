// Package lifecycle holds the state machines of matches, appointments and
// journey milestones.
//
// Match status graph:
//
//	new ◄──► saved
//	 │         │
//	 └────┬────┘
//	      ▼
//	   applied ──► interviewing
//
// Applying is terminal for this engine. Appointments are stored Scheduled
// or Cancelled; Completed is derived from the clock.
package lifecycle

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/okian/placement/internal/domain/fault"
	"github.com/okian/placement/internal/domain/model"
)

// ErrInvalidTransition is returned for a move the state machine forbids.
var ErrInvalidTransition = fmt.Errorf("invalid transition: %w", fault.ErrValidation)

// matchTransitions lists every allowed (from -> to) status pair.
var matchTransitions = map[model.MatchStatus][]model.MatchStatus{
	model.MatchNew:     {model.MatchSaved, model.MatchApplied},
	model.MatchSaved:   {model.MatchNew, model.MatchApplied},
	model.MatchApplied: {model.MatchInterviewing},
}

// IsMatchTransitionAllowed reports whether from -> to is permitted.
func IsMatchTransitionAllowed(from, to model.MatchStatus) bool {
	return slices.Contains(matchTransitions[from], to)
}

// ToggleSave flips the saved flag. Status follows only between new and
// saved; applied matches keep their status and applied flag.
func ToggleSave(m *model.Match) {
	m.Saved = !m.Saved
	switch {
	case m.Saved && IsMatchTransitionAllowed(m.Status, model.MatchSaved):
		m.Status = model.MatchSaved
	case !m.Saved && m.Status == model.MatchSaved:
		m.Status = model.MatchNew
	}
}

// Apply marks the match applied. Applying twice is a no-op.
func Apply(m *model.Match) {
	m.Applied = true
	if IsMatchTransitionAllowed(m.Status, model.MatchApplied) {
		m.Status = model.MatchApplied
	}
}

// EffectiveStatus derives the status shown to callers: a Scheduled
// appointment whose time has passed is Completed.
func EffectiveStatus(a model.Appointment, now time.Time) model.AppointmentStatus {
	if a.Status == model.AppointmentScheduled && a.DateTime.Before(now) {
		return model.AppointmentCompleted
	}
	return a.Status
}

// WithEffectiveStatus returns a copy of a with its derived status.
func WithEffectiveStatus(a model.Appointment, now time.Time) model.Appointment {
	a.Status = EffectiveStatus(a, now)
	return a
}

// Cancel moves a Scheduled appointment to Cancelled. Cancelling an already
// cancelled appointment succeeds without change; a Completed one cannot be
// cancelled.
func Cancel(a *model.Appointment, now time.Time) error {
	switch EffectiveStatus(*a, now) {
	case model.AppointmentCancelled:
		return nil
	case model.AppointmentCompleted:
		return fmt.Errorf("appointment %s already took place: %w", a.ID, ErrInvalidTransition)
	}
	a.Status = model.AppointmentCancelled
	a.UpdatedAt = now
	return nil
}

// Reschedule moves a Scheduled appointment to a new time. The status stays
// Scheduled.
func Reschedule(a *model.Appointment, at, now time.Time) error {
	if st := EffectiveStatus(*a, now); st != model.AppointmentScheduled {
		return fmt.Errorf("appointment %s is %s: %w", a.ID, st, ErrInvalidTransition)
	}
	a.DateTime = at
	a.Status = model.AppointmentScheduled
	a.UpdatedAt = now
	return nil
}

// ParseMilestoneStatus converts a raw string to a MilestoneStatus.
func ParseMilestoneStatus(s string) (model.MilestoneStatus, error) {
	st := model.MilestoneStatus(strings.TrimSpace(s))
	switch st {
	case model.MilestoneTodo, model.MilestoneInProgress, model.MilestoneDone:
		return st, nil
	}
	return "", fmt.Errorf("unknown milestone status %q: %w", s, fault.ErrValidation)
}

// SetMilestoneStatus applies any-to-any status changes. Reaching done stamps
// CompletedAt; leaving done clears it.
func SetMilestoneStatus(m *model.Milestone, st model.MilestoneStatus, now time.Time) {
	if st == m.Status {
		return
	}
	m.Status = st
	if st == model.MilestoneDone {
		t := now
		m.CompletedAt = &t
		return
	}
	m.CompletedAt = nil
}

// Progress counts done milestones. Percent is rounded to the nearest integer.
func Progress(ms []model.Milestone) model.JourneyProgress {
	p := model.JourneyProgress{Total: len(ms)}
	for _, m := range ms {
		if m.Status == model.MilestoneDone {
			p.Done++
		}
	}
	if p.Total > 0 {
		p.Percent = (p.Done*200 + p.Total) / (2 * p.Total)
	}
	return p
}
