package query_test

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/query"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func tenMatches() []model.Match {
	scores := []int{92, 67, 85, 74, 88, 85, 59, 95, 81, 70}
	locations := []string{"Lisbon", "Porto", "lisbon", "Berlin", "Porto", "Berlin", "Lisbon", "Madrid", "Porto", "Lisbon"}
	out := make([]model.Match, len(scores))
	for i, s := range scores {
		out[i] = model.Match{
			ID:             fmt.Sprintf("m%d", i+1),
			CompanyName:    fmt.Sprintf("Company %c", 'J'-i),
			Role:           "Backend Intern",
			Location:       locations[i],
			Industry:       []string{"Tech", "Finance"}[i%2],
			EmploymentType: model.EmploymentInternship,
			MatchScore:     s,
			Tags:           []string{"go"},
			Saved:          i%3 == 0,
			Status:         model.MatchNew,
			CreatedAt:      base.AddDate(0, 0, i),
		}
		if out[i].Saved {
			out[i].Status = model.MatchSaved
		}
	}
	out[4].Tags = []string{"kubernetes", "Go"}
	return out
}

func ids(ms []model.Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func TestFilterMatches(t *testing.T) {
	Convey("Given ten matches", t, func() {
		matches := tenMatches()

		Convey("When filtering with min score 85 sorted by score", func() {
			got := query.FilterMatches(matches, query.MatchFilter{MinScore: 85, Sort: query.SortScore})

			Convey("Then exactly the matches scoring at least 85 come back, highest first", func() {
				So(ids(got), ShouldResemble, []string{"m8", "m1", "m5", "m3", "m6"})
				for _, m := range got {
					So(m.MatchScore, ShouldBeGreaterThanOrEqualTo, 85)
				}
			})

			Convey("And equal scores keep their original order", func() {
				So(got[3].ID, ShouldEqual, "m3")
				So(got[4].ID, ShouldEqual, "m6")
			})
		})

		Convey("When searching by a tag in another case", func() {
			got := query.FilterMatches(matches, query.MatchFilter{Search: "KUBER"})
			So(ids(got), ShouldResemble, []string{"m5"})
		})

		Convey("When filtering location case-insensitively", func() {
			got := query.FilterMatches(matches, query.MatchFilter{Location: "LISBON", Sort: query.SortRecent})
			So(ids(got), ShouldResemble, []string{"m10", "m7", "m3", "m1"})
		})

		Convey("When filtering industry case-sensitively", func() {
			So(query.FilterMatches(matches, query.MatchFilter{Industry: "tech"}), ShouldBeEmpty)
			So(len(query.FilterMatches(matches, query.MatchFilter{Industry: "Tech"})), ShouldEqual, 5)
		})

		Convey("When filtering saved matches", func() {
			got := query.FilterMatches(matches, query.MatchFilter{Status: query.StatusSaved})
			So(ids(got), ShouldResemble, []string{"m1", "m4", "m10", "m7"})
		})

		Convey("When the status or sort key is unknown", func() {
			got := query.FilterMatches(matches, query.MatchFilter{Status: "archived", Sort: "salary"})

			Convey("Then no constraint applies and the default score order is used", func() {
				So(len(got), ShouldEqual, 10)
				So(got[0].ID, ShouldEqual, "m8")
				So(got[9].ID, ShouldEqual, "m7")
			})
		})

		Convey("When sorting a to z", func() {
			got := query.FilterMatches(matches, query.MatchFilter{Sort: query.SortAZ})
			So(got[0].CompanyName, ShouldEqual, "Company A")
		})
	})
}

func TestApply_Invariants(t *testing.T) {
	matches := tenMatches()
	snapshot := make([]model.Match, len(matches))
	for i, m := range matches {
		snapshot[i] = m.Clone()
	}

	specs := []query.MatchFilter{
		{},
		{MinScore: 75},
		{Search: "go", Sort: query.SortLocation},
		{Location: "porto", Status: query.StatusSaved},
		{Industry: "Finance", Sort: query.SortRecent},
	}

	for _, f := range specs {
		t.Run(fmt.Sprintf("%+v", f), func(t *testing.T) {
			first := query.FilterMatches(matches, f)
			second := query.FilterMatches(matches, f)
			assert.Equal(t, ids(first), ids(second), "same spec twice yields same order")

			narrower := f
			narrower.MinScore = 85
			subset := map[string]bool{}
			for _, m := range first {
				subset[m.ID] = true
			}
			for _, m := range query.FilterMatches(matches, narrower) {
				assert.True(t, subset[m.ID], "%s missing from less constrained result", m.ID)
			}
		})
	}

	require.Equal(t, snapshot, matches, "input must not be mutated")
}

func TestFilterResources(t *testing.T) {
	resources := []model.Resource{
		{ID: "r1", Title: "CV basics", Description: "Write a strong CV", Category: model.CategoryCV, Type: model.ResourceArticle, Views: 10, CreatedAt: base, DurationMinutes: 8},
		{ID: "r2", Title: "Mock interview", Description: "Practice questions", Category: model.CategoryInterview, Type: model.ResourceVideo, Views: 40, CreatedAt: base.AddDate(0, 1, 0), Bookmarked: true, DurationMinutes: 25},
		{ID: "r3", Title: "Visa checklist", Description: "Documents for your cv folder", Category: model.CategoryVisa, Type: model.ResourceChecklist, Views: 40, CreatedAt: base.AddDate(0, 2, 0), DurationMinutes: 5},
	}

	t.Run("default order is newest first", func(t *testing.T) {
		got := query.FilterResources(resources, query.ResourceFilter{})
		require.Len(t, got, 3)
		assert.Equal(t, []string{"r3", "r2", "r1"}, []string{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("popular ties keep input order", func(t *testing.T) {
		got := query.FilterResources(resources, query.ResourceFilter{Sort: query.SortPopular})
		assert.Equal(t, []string{"r2", "r3", "r1"}, []string{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("search covers title and description", func(t *testing.T) {
		got := query.FilterResources(resources, query.ResourceFilter{Search: "cv"})
		assert.Len(t, got, 2)
	})

	t.Run("type is an exact match", func(t *testing.T) {
		assert.Len(t, query.FilterResources(resources, query.ResourceFilter{Type: "video"}), 0)
		assert.Len(t, query.FilterResources(resources, query.ResourceFilter{Type: "Video"}), 1)
	})

	t.Run("bookmarked status", func(t *testing.T) {
		got := query.FilterResources(resources, query.ResourceFilter{Status: query.StatusBookmarked})
		require.Len(t, got, 1)
		assert.Equal(t, "r2", got[0].ID)
	})
}

func TestFilterMilestones(t *testing.T) {
	due := base.AddDate(0, 3, 0)
	earlier := base.AddDate(0, 1, 0)
	ms := []model.Milestone{
		{ID: "j1", Title: "Polish CV", Order: 2, Stage: model.StagePreparation, Status: model.MilestoneDone},
		{ID: "j2", Title: "Apply to five roles", Order: 1, Stage: model.StageApplication, Status: model.MilestoneTodo, DueDate: &due},
		{ID: "j3", Title: "First interview", Order: 3, Stage: model.StageInterview, Status: model.MilestoneTodo, DueDate: &earlier},
	}

	got := query.FilterMilestones(ms, query.MilestoneFilter{})
	assert.Equal(t, "j2", got[0].ID)

	got = query.FilterMilestones(ms, query.MilestoneFilter{Sort: query.SortDue})
	assert.Equal(t, []string{"j3", "j2", "j1"}, []string{got[0].ID, got[1].ID, got[2].ID})

	assert.Len(t, query.FilterMilestones(ms, query.MilestoneFilter{Status: "todo"}), 2)
	assert.Len(t, query.FilterMilestones(ms, query.MilestoneFilter{Status: query.StatusAll}), 3)
}

func TestPaginate(t *testing.T) {
	Convey("Given seven items", t, func() {
		items := []int{1, 2, 3, 4, 5, 6, 7}

		Convey("When asking for the second page of three", func() {
			p := query.Paginate(items, 2, 3)
			So(p.Items, ShouldResemble, []int{4, 5, 6})
			So(p.Total, ShouldEqual, 7)
			So(p.HasMore, ShouldBeTrue)
		})

		Convey("When asking past the end", func() {
			p := query.Paginate(items, 5, 3)
			So(p.Items, ShouldBeEmpty)
			So(p.HasMore, ShouldBeFalse)
		})

		Convey("When the page or size is as large as an int allows", func() {
			p := query.Paginate(items, math.MaxInt, 100)
			So(p.Items, ShouldBeEmpty)
			So(p.Total, ShouldEqual, 7)
			So(p.HasMore, ShouldBeFalse)

			p = query.Paginate(items, 1, math.MaxInt)
			So(p.Items, ShouldResemble, items)
			So(p.HasMore, ShouldBeFalse)

			p = query.Paginate(items, 2, math.MaxInt)
			So(p.Items, ShouldBeEmpty)
		})

		Convey("When page size is zero", func() {
			p := query.Paginate(items, 3, 0)
			So(p.Items, ShouldResemble, items)
			So(p.Page, ShouldEqual, 1)
			So(p.HasMore, ShouldBeFalse)
		})
	})
}
