// Package scoring computes the profile completion score: a deterministic
// 0-100 measure of how thoroughly a student filled in their profile.
package scoring

import (
	"math"
	"strings"

	"github.com/okian/placement/internal/domain/model"
)

const (
	maxScoreValue = 100
	// skillsTarget is the number of skills that earns the full skills weight.
	skillsTarget = 3
)

// Criterion names.
const (
	CriterionIdentity       = "identity"
	CriterionPhone          = "phone"
	CriterionSchool         = "school"
	CriterionCountry        = "country"
	CriterionSkills         = "skills"
	CriterionLanguages      = "languages"
	CriterionEducation      = "education"
	CriterionExperience     = "experience"
	CriterionLocation       = "preferred_location"
	CriterionEmploymentType = "preferred_employment_type"
)

// Weights are the points each criterion contributes.
type Weights struct {
	Identity       float64
	Phone          float64
	School         float64
	Country        float64
	Skills         float64
	Languages      float64
	Education      float64
	Experience     float64
	Location       float64
	EmploymentType float64
}

// DefaultWeights is the reference weight table. It sums to 100.
var DefaultWeights = Weights{
	Identity:       20,
	Phone:          10,
	School:         5,
	Country:        5,
	Skills:         15,
	Languages:      10,
	Education:      15,
	Experience:     15,
	Location:       2.5,
	EmploymentType: 2.5,
}

// Criterion is one line of the completion breakdown.
type Criterion struct {
	Name   string  `json:"name"`
	Earned float64 `json:"earned"`
	Max    float64 `json:"max"`
}

// Complete reports whether the criterion earned all of its points.
func (c Criterion) Complete() bool { return c.Earned >= c.Max }

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWeights replaces the weight table.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w
	}
}

// Scorer computes completion scores. It is stateless after construction and
// safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer using DefaultWeights unless overridden.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{weights: DefaultWeights}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultScorer = NewScorer()

// Calculate scores p with the default weights.
func Calculate(p model.Profile) int {
	return defaultScorer.Score(p)
}

// Breakdown itemizes p with the default weights.
func Breakdown(p model.Profile) []Criterion {
	return defaultScorer.Breakdown(p)
}

// Score returns the completion score of p: the sum of all criteria, clamped
// to 100, then rounded to the nearest integer.
func (s *Scorer) Score(p model.Profile) int {
	var sum float64
	for _, c := range s.Breakdown(p) {
		sum += c.Earned
	}
	return int(math.Round(math.Min(maxScoreValue, sum)))
}

// Breakdown returns the points earned per criterion, in table order.
func (s *Scorer) Breakdown(p model.Profile) []Criterion {
	w := s.weights
	return []Criterion{
		{Name: CriterionIdentity, Earned: when(filled(p.FullName) && filled(p.Email), w.Identity), Max: w.Identity},
		{Name: CriterionPhone, Earned: when(filled(p.Phone), w.Phone), Max: w.Phone},
		{Name: CriterionSchool, Earned: when(filled(p.School), w.School), Max: w.School},
		{Name: CriterionCountry, Earned: when(filled(p.Country), w.Country), Max: w.Country},
		{Name: CriterionSkills, Earned: skillsPoints(len(p.Skills), w.Skills), Max: w.Skills},
		{Name: CriterionLanguages, Earned: when(len(p.Languages) > 0, w.Languages), Max: w.Languages},
		{Name: CriterionEducation, Earned: when(len(p.Education) > 0, w.Education), Max: w.Education},
		{Name: CriterionExperience, Earned: when(len(p.Experience) > 0, w.Experience), Max: w.Experience},
		{Name: CriterionLocation, Earned: when(filled(p.Preferences.Location), w.Location), Max: w.Location},
		{Name: CriterionEmploymentType, Earned: when(filled(p.Preferences.EmploymentType), w.EmploymentType), Max: w.EmploymentType},
	}
}

// skillsPoints gives full weight at skillsTarget skills and proportional,
// unfloored credit below it.
func skillsPoints(n int, weight float64) float64 {
	switch {
	case n >= skillsTarget:
		return weight
	case n > 0:
		return float64(n) * weight / skillsTarget
	default:
		return 0
	}
}

func filled(s string) bool { return strings.TrimSpace(s) != "" }

func when(ok bool, points float64) float64 {
	if ok {
		return points
	}
	return 0
}
