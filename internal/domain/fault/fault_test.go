package fault_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/okian/placement/internal/domain/fault"
	. "github.com/smartystreets/goconvey/convey"
)

func TestError(t *testing.T) {
	Convey("Given errors built with the fault helpers", t, func() {
		Convey("When a kind is attached without a cause", func() {
			err := fault.NewKind("matching.toggle_save", fault.ErrNotFound)

			Convey("Then it matches the kind and names the operation", func() {
				So(errors.Is(err, fault.ErrNotFound), ShouldBeTrue)
				So(errors.Is(err, fault.ErrValidation), ShouldBeFalse)
				So(err.Error(), ShouldEqual, "matching.toggle_save: not found")
			})
		})

		Convey("When a kinded error is wrapped again", func() {
			inner := fault.Validation("appointments.book", "advisor is required")
			outer := fault.Wrap("service.book_appointment", inner)

			Convey("Then the inner kind is still visible", func() {
				So(errors.Is(outer, fault.ErrValidation), ShouldBeTrue)
				So(fault.KindOf(outer), ShouldEqual, fault.ErrValidation)
				So(outer.Error(), ShouldContainSubstring, "advisor is required")
			})
		})

		Convey("When fmt wrapping is used around a kind", func() {
			err := fmt.Errorf("store: %w", fault.ErrNotFound)
			So(fault.KindOf(err), ShouldEqual, fault.ErrNotFound)
		})

		Convey("When the error carries no known kind", func() {
			So(fault.KindOf(errors.New("boom")), ShouldEqual, fault.ErrOperationFailed)
		})

		Convey("When wrapping nil", func() {
			So(fault.Wrap("op", nil), ShouldBeNil)
		})
	})
}
