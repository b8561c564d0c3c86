package model

import "time"

// JourneyStage groups milestones along the placement journey.
type JourneyStage string

const (
	StagePreparation JourneyStage = "Preparation"
	StageApplication JourneyStage = "Application"
	StageInterview   JourneyStage = "Interview"
	StagePlacement   JourneyStage = "Placement"
)

// MilestoneStatus is the progress of a milestone.
type MilestoneStatus string

const (
	MilestoneTodo       MilestoneStatus = "todo"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneDone       MilestoneStatus = "done"
)

// Milestone is one step of the student's journey.
type Milestone struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Stage       JourneyStage    `json:"stage"`
	Status      MilestoneStatus `json:"status"`
	Order       int             `json:"order"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// Key returns the store key of the milestone.
func (m Milestone) Key() string { return m.ID }

// Clone returns a deep copy.
func (m Milestone) Clone() Milestone {
	if m.DueDate != nil {
		d := *m.DueDate
		m.DueDate = &d
	}
	if m.CompletedAt != nil {
		c := *m.CompletedAt
		m.CompletedAt = &c
	}
	return m
}

// JourneyProgress summarizes milestone completion.
type JourneyProgress struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}
