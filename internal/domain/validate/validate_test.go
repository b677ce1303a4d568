package validate_test

import (
	"testing"
	"time"

	model "github.com/mkarami/lottostats/internal/domain/model"
	validate "github.com/mkarami/lottostats/internal/domain/validate"
	. "github.com/smartystreets/goconvey/convey"
)

func intp(n int) *int { return &n }

func TestPartition(t *testing.T) {
	Convey("Given a mix of raw draw records", t, func() {
		raws := []model.RawDraw{
			{Date: "2025-03-26", Numbers: []int{1, 2, 3, 4, 5}, SpecialBall: intp(6)},
			{Date: "2025-03-24", Numbers: []int{1, 2, 3, 4}, SpecialBall: intp(6)},       // short numbers
			{Date: "2025-03-22", Numbers: []int{1, 2, 3, 4, 5, 6}, SpecialBall: intp(7)}, // too many numbers
			{Date: "2025-03-20", Numbers: []int{9, 8, 7, 6, 5}, SpecialBall: nil},        // missing special ball
			{Date: "2025-03-18", Numbers: []int{10, 20, 30, 40, 50}, SpecialBall: intp(9)},
		}

		Convey("When partitioning", func() {
			valid, rejected := validate.Partition(raws)

			Convey("Then only complete records survive", func() {
				So(valid, ShouldHaveLength, 2)
				So(rejected, ShouldEqual, 3)
			})

			Convey("Then drawn order and fields are preserved", func() {
				So(valid[0].Numbers, ShouldResemble, [5]int{1, 2, 3, 4, 5})
				So(valid[0].SpecialBall, ShouldEqual, 6)
				So(valid[0].Date, ShouldResemble, time.Date(2025, 3, 26, 0, 0, 0, 0, time.UTC))
				So(valid[1].Numbers, ShouldResemble, [5]int{10, 20, 30, 40, 50})
			})
		})
	})

	Convey("Given a record with an unparseable date", t, func() {
		raws := []model.RawDraw{
			{Date: "March 26, 2025", Numbers: []int{1, 2, 3, 4, 5}, SpecialBall: intp(6)},
		}

		Convey("Then the record is kept with a zero date", func() {
			valid, rejected := validate.Partition(raws)
			So(rejected, ShouldEqual, 0)
			So(valid, ShouldHaveLength, 1)
			So(valid[0].Date.IsZero(), ShouldBeTrue)
		})
	})

	Convey("Given no records", t, func() {
		valid, rejected := validate.Partition(nil)
		So(valid, ShouldBeEmpty)
		So(rejected, ShouldEqual, 0)
	})
}
