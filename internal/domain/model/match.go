// Package model contains domain models passed between layers.
package model

import (
	"slices"
	"time"
)

// EmploymentType is the kind of position a match offers.
type EmploymentType string

const (
	EmploymentInternship     EmploymentType = "Internship"
	EmploymentApprenticeship EmploymentType = "Apprenticeship"
	EmploymentPartTime       EmploymentType = "Part-time"
	EmploymentFullTime       EmploymentType = "Full-time"
)

// MatchStatus is the student's progress on a match.
type MatchStatus string

const (
	MatchNew          MatchStatus = "new"
	MatchSaved        MatchStatus = "saved"
	MatchApplied      MatchStatus = "applied"
	MatchInterviewing MatchStatus = "interviewing"
)

// Match is a company/role pairing surfaced to a student.
//
// Invariants: Status == applied implies Applied; Status == saved implies
// Saved && !Applied; MatchScore is within [0, 100].
type Match struct {
	ID             string         `json:"id"`
	CompanyName    string         `json:"company_name"`
	Industry       string         `json:"industry"`
	CompanySize    string         `json:"company_size"`
	Role           string         `json:"role"`
	Location       string         `json:"location"`
	EmploymentType EmploymentType `json:"employment_type"`
	MatchScore     int            `json:"match_score"`
	Tags           []string       `json:"tags"`
	Saved          bool           `json:"saved"`
	Applied        bool           `json:"applied"`
	Status         MatchStatus    `json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Key returns the store key of the match.
func (m Match) Key() string { return m.ID }

// Clone returns a deep copy.
func (m Match) Clone() Match {
	m.Tags = slices.Clone(m.Tags)
	return m
}
