package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/placement/internal/domain/fault"
	"github.com/okian/placement/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

var _ Store[model.Match] = (*MemStore[model.Match])(nil)

func seeded() (*MemStore[model.Match], error) {
	s := NewMemStore[model.Match]("matches", WithCapacity(4))
	err := s.Seed(context.Background(),
		model.Match{ID: "m1", CompanyName: "Acme", Tags: []string{"go"}},
		model.Match{ID: "m2", CompanyName: "Globex"},
		model.Match{ID: "m3", CompanyName: "Initech"},
	)
	return s, err
}

func listIDs(ms []model.Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func TestMemStore_BasicOperations(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store seeded with three matches", t, func() {
		s, err := seeded()
		So(err, ShouldBeNil)

		Convey("Then it lists them in insertion order", func() {
			So(s.Count(ctx), ShouldEqual, 3)
			So(listIDs(s.List(ctx)), ShouldResemble, []string{"m1", "m2", "m3"})

			got, err := s.Get(ctx, "m1")
			So(err, ShouldBeNil)
			So(got.CompanyName, ShouldEqual, "Acme")
		})

		Convey("When an existing key is upserted", func() {
			So(s.Upsert(ctx, model.Match{ID: "m1", CompanyName: "Acme Corp"}), ShouldBeNil)

			Convey("Then it is replaced in place", func() {
				list := s.List(ctx)
				So(len(list), ShouldEqual, 3)
				So(list[0].CompanyName, ShouldEqual, "Acme Corp")
			})
		})

		Convey("When a record is deleted", func() {
			So(s.Delete(ctx, "m2"), ShouldBeNil)
			So(listIDs(s.List(ctx)), ShouldResemble, []string{"m1", "m3"})
		})
	})
}

func TestMemStore_NotFound(t *testing.T) {
	ctx := context.Background()

	Convey("Given a seeded store", t, func() {
		s, err := seeded()
		So(err, ShouldBeNil)

		Convey("Then unknown keys report not found", func() {
			_, err := s.Get(ctx, "nope")
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			So(errors.Is(err, fault.ErrNotFound), ShouldBeTrue)
			So(errors.Is(s.Delete(ctx, "nope"), fault.ErrNotFound), ShouldBeTrue)
			_, err = s.Update(ctx, "nope", func(*model.Match) error { return nil })
			So(errors.Is(err, fault.ErrNotFound), ShouldBeTrue)
		})

		Convey("Then an empty key is a validation error", func() {
			So(errors.Is(s.Upsert(ctx, model.Match{}), fault.ErrValidation), ShouldBeTrue)
		})
	})
}

func TestMemStore_CopyOnWrite(t *testing.T) {
	ctx := context.Background()

	Convey("Given a seeded store", t, func() {
		s, err := seeded()
		So(err, ShouldBeNil)

		Convey("When a read copy is mutated", func() {
			got, _ := s.Get(ctx, "m1")
			got.Tags[0] = "rust"
			got.Saved = true

			Convey("Then the stored record is unchanged", func() {
				again, _ := s.Get(ctx, "m1")
				So(again.Tags[0], ShouldEqual, "go")
				So(again.Saved, ShouldBeFalse)
			})
		})

		Convey("When an update fails", func() {
			boom := errors.New("boom")
			_, err := s.Update(ctx, "m1", func(m *model.Match) error {
				m.Saved = true
				return boom
			})

			Convey("Then the error is returned and nothing is applied", func() {
				So(errors.Is(err, boom), ShouldBeTrue)
				again, _ := s.Get(ctx, "m1")
				So(again.Saved, ShouldBeFalse)
			})
		})

		Convey("When an update changes the key", func() {
			_, err := s.Update(ctx, "m1", func(m *model.Match) error {
				m.ID = "x"
				return nil
			})
			So(errors.Is(err, ErrKeyChanged), ShouldBeTrue)
		})

		Convey("When an update succeeds", func() {
			updated, err := s.Update(ctx, "m1", func(m *model.Match) error {
				m.Saved = true
				return nil
			})
			So(err, ShouldBeNil)
			So(updated.Saved, ShouldBeTrue)

			Convey("Then the returned copy is detached from the store", func() {
				updated.Tags[0] = "zig"
				again, _ := s.Get(ctx, "m1")
				So(again.Tags[0], ShouldEqual, "go")
				So(again.Saved, ShouldBeTrue)
			})
		})
	})
}

func TestMemStore_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()

	Convey("Given concurrent writers on one store", t, func() {
		s := NewMemStore[model.Resource]("resources", WithMetrics(false))
		So(s.Upsert(ctx, model.Resource{ID: "r1"}), ShouldBeNil)

		const writers = 20
		const perWriter = 50
		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for j := 0; j < perWriter; j++ {
					_, _ = s.Update(ctx, "r1", func(r *model.Resource) error {
						r.Views++
						return nil
					})
					_ = s.Upsert(ctx, model.Resource{ID: fmt.Sprintf("w%d-%d", w, j)})
					_ = s.List(ctx)
				}
			}(i)
		}
		wg.Wait()

		Convey("Then no update or insert is lost", func() {
			r, _ := s.Get(ctx, "r1")
			So(r.Views, ShouldEqual, writers*perWriter)
			So(s.Count(ctx), ShouldEqual, 1+writers*perWriter)
		})
	})
}
