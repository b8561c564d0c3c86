package scoring

import (
	"testing"

	"github.com/okian/placement/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func fullProfile() model.Profile {
	return model.Profile{
		FullName:   "Ana Silva",
		Email:      "ana@example.com",
		Phone:      "+351 900 000 000",
		School:     "Universidade de Lisboa",
		Country:    "Portugal",
		Skills:     []string{"go", "sql", "docker"},
		Languages:  []string{"Portuguese", "English"},
		Education:  []model.EducationEntry{{School: "ULisboa", Degree: "BSc", Field: "Informatics"}},
		Experience: []model.ExperienceEntry{{Company: "Acme", Position: "Intern"}},
		Preferences: model.Preferences{
			Location:       "Lisbon",
			EmploymentType: "Internship",
		},
	}
}

func TestCalculate(t *testing.T) {
	Convey("Given the default weight table", t, func() {
		Convey("When only name and email are set", func() {
			p := model.Profile{FullName: "A", Email: "a@b.com"}

			Convey("Then the score is 20", func() {
				So(Calculate(p), ShouldEqual, 20)
			})

			Convey("And two skills add two thirds of the skills weight", func() {
				p.Skills = []string{"x", "y"}
				So(Calculate(p), ShouldEqual, 30)
			})
		})

		Convey("When every field is populated", func() {
			So(Calculate(fullProfile()), ShouldEqual, 100)
		})

		Convey("When the profile is empty", func() {
			So(Calculate(model.Profile{}), ShouldEqual, 0)
		})

		Convey("When name is set without email", func() {
			So(Calculate(model.Profile{FullName: "A"}), ShouldEqual, 0)
		})

		Convey("When a field is whitespace only", func() {
			So(Calculate(model.Profile{FullName: "A", Email: "a@b.com", Phone: "   "}), ShouldEqual, 20)
		})

		Convey("When one skill is listed the fraction is rounded at the end", func() {
			// 20 + 5 = 25
			So(Calculate(model.Profile{FullName: "A", Email: "a@b.com", Skills: []string{"x"}}), ShouldEqual, 25)
			// 2.5 + 5 = 7.5 rounds away from zero
			p := model.Profile{Skills: []string{"x"}, Preferences: model.Preferences{Location: "Lisbon"}}
			So(Calculate(p), ShouldEqual, 8)
		})

		Convey("When more than three skills are listed the weight is capped", func() {
			p := model.Profile{Skills: []string{"a", "b", "c", "d", "e"}}
			So(Calculate(p), ShouldEqual, 15)
		})
	})
}

func TestScorer_Properties(t *testing.T) {
	Convey("Given a sequence of profiles each adding one field", t, func() {
		steps := []func(*model.Profile){
			func(p *model.Profile) { p.FullName = "Ana" },
			func(p *model.Profile) { p.Email = "ana@example.com" },
			func(p *model.Profile) { p.Skills = append(p.Skills, "go") },
			func(p *model.Profile) { p.Phone = "123" },
			func(p *model.Profile) { p.Skills = append(p.Skills, "sql") },
			func(p *model.Profile) { p.Country = "PT" },
			func(p *model.Profile) { p.Preferences.EmploymentType = "Internship" },
			func(p *model.Profile) { p.Skills = append(p.Skills, "k8s") },
			func(p *model.Profile) { p.Languages = []string{"en"} },
			func(p *model.Profile) { p.Education = []model.EducationEntry{{School: "X"}} },
			func(p *model.Profile) { p.School = "X" },
			func(p *model.Profile) { p.Experience = []model.ExperienceEntry{{Company: "Y"}} },
			func(p *model.Profile) { p.Preferences.Location = "Lisbon" },
		}

		Convey("Then scores stay within bounds, never decrease, and repeat", func() {
			var p model.Profile
			prev := Calculate(p)
			for _, step := range steps {
				step(&p)
				got := Calculate(p)
				So(got, ShouldBeBetweenOrEqual, 0, 100)
				So(got, ShouldBeGreaterThanOrEqualTo, prev)
				So(Calculate(p), ShouldEqual, got)
				prev = got
			}
			So(prev, ShouldEqual, 100)
		})
	})
}

func TestScorer_Options(t *testing.T) {
	Convey("Given custom weights above 100", t, func() {
		w := DefaultWeights
		w.Identity = 90
		w.Phone = 90
		s := NewScorer(WithWeights(w))

		Convey("Then the score is clamped to 100", func() {
			So(s.Score(fullProfile()), ShouldEqual, 100)
		})
	})

	Convey("Given the default scorer breakdown", t, func() {
		items := Breakdown(model.Profile{FullName: "A", Email: "a@b.com", Skills: []string{"x", "y"}})

		Convey("Then each criterion reports earned and max points", func() {
			So(len(items), ShouldEqual, 10)
			So(items[0].Name, ShouldEqual, CriterionIdentity)
			So(items[0].Complete(), ShouldBeTrue)
			So(items[4].Name, ShouldEqual, CriterionSkills)
			So(items[4].Earned, ShouldAlmostEqual, 10, 1e-9)
			So(items[4].Complete(), ShouldBeFalse)

			var total float64
			for _, c := range items {
				total += c.Max
			}
			So(total, ShouldEqual, 100)
		})
	})
}
