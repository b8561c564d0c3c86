package model

import "time"

// ResourceCategory is the closed set of library sections.
type ResourceCategory string

const (
	CategoryCV        ResourceCategory = "CV & Cover Letter"
	CategoryInterview ResourceCategory = "Interview Prep"
	CategoryVisa      ResourceCategory = "Visa & Legal"
	CategoryWorkplace ResourceCategory = "Workplace Skills"
	CategoryWellbeing ResourceCategory = "Wellbeing"
	CategoryJobSearch ResourceCategory = "Job Search"
)

// ResourceType is the format of a library entry.
type ResourceType string

const (
	ResourceArticle   ResourceType = "Article"
	ResourcePDF       ResourceType = "PDF"
	ResourceLink      ResourceType = "Link"
	ResourceChecklist ResourceType = "Checklist"
	ResourceVideo     ResourceType = "Video"
)

// Resource is a library article, link or document.
// Views never decreases; Bookmarked is a pure toggle.
type Resource struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Category        ResourceCategory `json:"category"`
	Type            ResourceType     `json:"type"`
	Description     string           `json:"description"`
	Content         string           `json:"content,omitempty"`
	URL             string           `json:"url,omitempty"`
	DurationMinutes int              `json:"duration_minutes"`
	Bookmarked      bool             `json:"bookmarked"`
	CreatedAt       time.Time        `json:"created_at"`
	Views           int              `json:"views"`
}

// Key returns the store key of the resource.
func (r Resource) Key() string { return r.ID }

// Clone returns a copy; Resource holds no reference fields.
func (r Resource) Clone() Resource { return r }
