package dedupe_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/okian/placement/internal/domain/dedupe"
	"github.com/okian/placement/internal/domain/fault"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	ctx := context.Background()

	Convey("Given a new InMemoryDeduper", t, func() {
		Convey("When creating a deduper with default options", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("Then it starts empty", func() {
				So(d, ShouldNotBeNil)
				So(d.Size(), ShouldEqual, 0)
			})
		})

		Convey("When recording keys", func() {
			d := dedupe.NewInMemoryDeduper()

			Convey("And the key is new", func() {
				So(d.SeenAndRecord(ctx, "match:m1"), ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And the key was already recorded", func() {
				d.SeenAndRecord(ctx, "match:m1")
				So(d.SeenAndRecord(ctx, "match:m1"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording keys", func() {
			d := dedupe.NewInMemoryDeduper()
			d.SeenAndRecord(ctx, "match:m1")
			d.Unrecord(ctx, "match:m1")
			d.Unrecord(ctx, "missing")

			Convey("Then the key can be recorded again", func() {
				So(d.Size(), ShouldEqual, 0)
				So(d.SeenAndRecord(ctx, "match:m1"), ShouldBeFalse)
			})
		})

		Convey("When using bounded mode at capacity", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
			for _, k := range []string{"a", "b", "c"} {
				So(d.SeenAndRecord(ctx, k), ShouldBeFalse)
			}
			So(d.SeenAndRecord(ctx, "d"), ShouldBeFalse)

			Convey("Then the oldest key is evicted and size stays bounded", func() {
				So(d.Size(), ShouldEqual, 3)
				So(d.SeenAndRecord(ctx, "a"), ShouldBeFalse)
				So(d.SeenAndRecord(ctx, "c"), ShouldBeTrue)
				So(d.SeenAndRecord(ctx, "d"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 3)
			})
		})

		Convey("When using unbounded mode", func() {
			d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
			const n = 1000
			for i := 0; i < n; i++ {
				d.SeenAndRecord(ctx, fmt.Sprintf("k-%d", i))
			}

			Convey("Then nothing is evicted", func() {
				So(d.Size(), ShouldEqual, int64(n))
				So(d.SeenAndRecord(ctx, "k-0"), ShouldBeTrue)
			})
		})
	})
}

func TestDedupeConcurrency(t *testing.T) {
	Convey("Given a deduper shared by many goroutines", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(1000))
		const goroutines = 10
		const perGoroutine = 100

		var wg sync.WaitGroup
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for j := 0; j < perGoroutine; j++ {
					d.SeenAndRecord(context.Background(), fmt.Sprintf("k-%d-%d", g, j))
				}
			}(i)
		}
		wg.Wait()

		Convey("Then every key is recorded once", func() {
			So(d.Size(), ShouldEqual, int64(goroutines*perGoroutine))
		})
	})
}

func TestGuard(t *testing.T) {
	ctx := context.Background()

	Convey("Given an in-flight guard", t, func() {
		g := dedupe.NewGuard(dedupe.NewInMemoryDeduper())

		Convey("When a call for a key is already running", func() {
			release := make(chan struct{})
			started := make(chan struct{})
			done := make(chan error, 1)
			go func() {
				done <- g.Do(ctx, "appointments.cancel", "appointment:a1", func() error {
					close(started)
					<-release
					return nil
				})
			}()
			<-started

			err := g.Do(ctx, "appointments.cancel", "appointment:a1", func() error { return nil })
			other := g.Do(ctx, "appointments.cancel", "appointment:a2", func() error { return nil })
			close(release)

			Convey("Then the duplicate fails and unrelated keys proceed", func() {
				So(errors.Is(err, fault.ErrInFlight), ShouldBeTrue)
				So(other, ShouldBeNil)
				So(<-done, ShouldBeNil)
				So(g.Active(), ShouldEqual, 0)
			})
		})

		Convey("When the operation fails", func() {
			boom := errors.New("boom")
			err := g.Do(ctx, "op", "k", func() error { return boom })

			Convey("Then the error is returned and the key is released", func() {
				So(err, ShouldEqual, boom)
				So(g.Do(ctx, "op", "k", func() error { return nil }), ShouldBeNil)
			})
		})
	})
}
