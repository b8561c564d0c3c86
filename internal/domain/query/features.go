package query

import (
	"cmp"
	"strings"

	"github.com/okian/placement/internal/domain/model"
)

// Sort keys.
const (
	SortScore    = "score"
	SortRecent   = "recent"
	SortLocation = "location"
	SortAZ       = "az"
	SortPopular  = "popular"
	SortDuration = "duration"
	SortOrder    = "order"
	SortDue      = "due"
)

// Field and status names used by the feature schemas.
const (
	FieldLocation = "location"
	FieldIndustry = "industry"
	FieldType     = "type"
	FieldCategory = "category"
	FieldStage    = "stage"
	FieldStatus   = "status"

	NumberScore = "score"

	StatusSaved      = "saved"
	StatusApplied    = "applied"
	StatusBookmarked = "bookmarked"
	StatusUnread     = "unread"
)

func foldCompare(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// MatchFilter is the query accepted by the match list.
type MatchFilter struct {
	Search         string `json:"search,omitempty"`
	Location       string `json:"location,omitempty"`
	Industry       string `json:"industry,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
	MinScore       int    `json:"min_score,omitempty"`
	Status         string `json:"status,omitempty"`
	Sort           string `json:"sort,omitempty"`
}

// Spec converts the filter to an engine Spec.
func (f MatchFilter) Spec() Spec {
	return Spec{
		Search: f.Search,
		Equals: map[string]string{
			FieldLocation: f.Location,
			FieldIndustry: f.Industry,
			FieldType:     f.EmploymentType,
		},
		AtLeast: map[string]float64{NumberScore: float64(f.MinScore)},
		Status:  f.Status,
		Sort:    f.Sort,
	}
}

// MatchSchema describes the queryable surface of matches. Default order is
// descending score.
var MatchSchema = Schema[model.Match]{
	Text: func(m model.Match) []string {
		return append([]string{m.CompanyName, m.Role, m.Location}, m.Tags...)
	},
	Fields: map[string]Field[model.Match]{
		FieldLocation: {Get: func(m model.Match) string { return m.Location }, FoldCase: true},
		FieldIndustry: {Get: func(m model.Match) string { return m.Industry }},
		FieldType:     {Get: func(m model.Match) string { return string(m.EmploymentType) }},
	},
	Numbers: map[string]func(model.Match) float64{
		NumberScore: func(m model.Match) float64 { return float64(m.MatchScore) },
	},
	Statuses: map[string]func(model.Match) bool{
		StatusSaved:   func(m model.Match) bool { return m.Saved },
		StatusApplied: func(m model.Match) bool { return m.Applied },
	},
	Sorts: map[string]func(a, b model.Match) int{
		SortScore:    func(a, b model.Match) int { return cmp.Compare(b.MatchScore, a.MatchScore) },
		SortRecent:   func(a, b model.Match) int { return b.CreatedAt.Compare(a.CreatedAt) },
		SortLocation: func(a, b model.Match) int { return foldCompare(a.Location, b.Location) },
		SortAZ:       func(a, b model.Match) int { return foldCompare(a.CompanyName, b.CompanyName) },
	},
	DefaultSort: SortScore,
}

// FilterMatches applies f to matches.
func FilterMatches(matches []model.Match, f MatchFilter) []model.Match {
	return Apply(matches, MatchSchema, f.Spec())
}

// ResourceFilter is the query accepted by the resource library.
type ResourceFilter struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
	Type     string `json:"type,omitempty"`
	Status   string `json:"status,omitempty"`
	Sort     string `json:"sort,omitempty"`
}

// Spec converts the filter to an engine Spec.
func (f ResourceFilter) Spec() Spec {
	return Spec{
		Search: f.Search,
		Equals: map[string]string{
			FieldCategory: f.Category,
			FieldType:     f.Type,
		},
		Status: f.Status,
		Sort:   f.Sort,
	}
}

// ResourceSchema describes the queryable surface of resources. Default order
// is newest first.
var ResourceSchema = Schema[model.Resource]{
	Text: func(r model.Resource) []string { return []string{r.Title, r.Description} },
	Fields: map[string]Field[model.Resource]{
		FieldCategory: {Get: func(r model.Resource) string { return string(r.Category) }},
		FieldType:     {Get: func(r model.Resource) string { return string(r.Type) }},
	},
	Statuses: map[string]func(model.Resource) bool{
		StatusBookmarked: func(r model.Resource) bool { return r.Bookmarked },
	},
	Sorts: map[string]func(a, b model.Resource) int{
		SortRecent:   func(a, b model.Resource) int { return b.CreatedAt.Compare(a.CreatedAt) },
		SortPopular:  func(a, b model.Resource) int { return cmp.Compare(b.Views, a.Views) },
		SortAZ:       func(a, b model.Resource) int { return foldCompare(a.Title, b.Title) },
		SortDuration: func(a, b model.Resource) int { return cmp.Compare(a.DurationMinutes, b.DurationMinutes) },
	},
	DefaultSort: SortRecent,
}

// FilterResources applies f to resources.
func FilterResources(resources []model.Resource, f ResourceFilter) []model.Resource {
	return Apply(resources, ResourceSchema, f.Spec())
}

// ConversationFilter is the query accepted by the inbox.
type ConversationFilter struct {
	Search string `json:"search,omitempty"`
	Status string `json:"status,omitempty"`
	Sort   string `json:"sort,omitempty"`
}

// Spec converts the filter to an engine Spec.
func (f ConversationFilter) Spec() Spec {
	return Spec{Search: f.Search, Status: f.Status, Sort: f.Sort}
}

// ConversationSchema describes the queryable surface of conversations.
// Default order is most recent activity first.
var ConversationSchema = Schema[model.Conversation]{
	Text: func(c model.Conversation) []string { return []string{c.Participant, c.Subject, c.LastMessage} },
	Statuses: map[string]func(model.Conversation) bool{
		StatusUnread: func(c model.Conversation) bool { return c.Unread > 0 },
	},
	Sorts: map[string]func(a, b model.Conversation) int{
		SortRecent: func(a, b model.Conversation) int { return b.LastMessageAt.Compare(a.LastMessageAt) },
		SortAZ:     func(a, b model.Conversation) int { return foldCompare(a.Participant, b.Participant) },
	},
	DefaultSort: SortRecent,
}

// FilterConversations applies f to conversations.
func FilterConversations(convs []model.Conversation, f ConversationFilter) []model.Conversation {
	return Apply(convs, ConversationSchema, f.Spec())
}

// MilestoneFilter is the query accepted by the journey tracker.
type MilestoneFilter struct {
	Search string `json:"search,omitempty"`
	Stage  string `json:"stage,omitempty"`
	Status string `json:"status,omitempty"`
	Sort   string `json:"sort,omitempty"`
}

// Spec converts the filter to an engine Spec. Milestone status is a
// categorical field rather than a membership set.
func (f MilestoneFilter) Spec() Spec {
	status := f.Status
	if status == StatusAll {
		status = ""
	}
	return Spec{
		Search: f.Search,
		Equals: map[string]string{
			FieldStage:  f.Stage,
			FieldStatus: status,
		},
		Sort: f.Sort,
	}
}

// MilestoneSchema describes the queryable surface of milestones. Default
// order is the journey order.
var MilestoneSchema = Schema[model.Milestone]{
	Text: func(m model.Milestone) []string { return []string{m.Title, m.Description} },
	Fields: map[string]Field[model.Milestone]{
		FieldStage:  {Get: func(m model.Milestone) string { return string(m.Stage) }},
		FieldStatus: {Get: func(m model.Milestone) string { return string(m.Status) }},
	},
	Sorts: map[string]func(a, b model.Milestone) int{
		SortOrder: func(a, b model.Milestone) int { return cmp.Compare(a.Order, b.Order) },
		SortDue:   compareDue,
		SortAZ:    func(a, b model.Milestone) int { return foldCompare(a.Title, b.Title) },
	},
	DefaultSort: SortOrder,
}

// compareDue orders by due date ascending with undated milestones last.
func compareDue(a, b model.Milestone) int {
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		return 0
	case a.DueDate == nil:
		return 1
	case b.DueDate == nil:
		return -1
	}
	return a.DueDate.Compare(*b.DueDate)
}

// FilterMilestones applies f to milestones.
func FilterMilestones(milestones []model.Milestone, f MilestoneFilter) []model.Milestone {
	return Apply(milestones, MilestoneSchema, f.Spec())
}
