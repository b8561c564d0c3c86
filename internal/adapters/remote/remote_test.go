package remote_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/placement/internal/adapters/remote"
	"github.com/okian/placement/internal/domain/fault"
	"github.com/okian/placement/internal/domain/model"
	"github.com/okian/placement/internal/domain/query"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSource(t *testing.T) {
	Convey("Given a remote source with a base url", t, func() {
		s := remote.New(" https://api.placement.example/v1/ ")
		ctx := context.Background()

		So(s.Name(), ShouldEqual, remote.Name)
		So(s.BaseURL(), ShouldEqual, "https://api.placement.example/v1")

		Convey("When any operation is called", func() {
			calls := []func() error{
				func() error { _, err := s.Login(ctx, "a@b.com", ""); return err },
				func() error { _, err := s.ListMatches(ctx, query.MatchFilter{}); return err },
				func() error { _, err := s.GetResourceByID(ctx, "r1"); return err },
				func() error { return s.IncrementView(ctx, "r1") },
				func() error { _, err := s.UpdateProfile(ctx, model.ProfilePatch{}); return err },
				func() error { _, err := s.BookAppointment(ctx, model.BookingRequest{}); return err },
				func() error { _, err := s.CancelAppointment(ctx, "a1"); return err },
				func() error { _, err := s.SendMessage(ctx, "c1", "m1", "hi"); return err },
				func() error { _, err := s.UpdateMilestoneStatus(ctx, "j1", model.MilestoneDone); return err },
			}

			Convey("Then it fails as unimplemented and names the backend", func() {
				for _, call := range calls {
					err := call()
					So(errors.Is(err, fault.ErrUnimplemented), ShouldBeTrue)
					So(err.Error(), ShouldContainSubstring, "https://api.placement.example/v1")
				}
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := s.ListMilestones(cctx, query.MilestoneFilter{})
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(errors.Is(err, fault.ErrUnimplemented), ShouldBeFalse)
		})
	})
}
