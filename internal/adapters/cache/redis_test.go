package cache

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestKey(t *testing.T) {
	Convey("Given cache key construction", t, func() {
		Convey("Then keys are namespaced by game slug", func() {
			So(Key("powerball"), ShouldEqual, "stats:powerball")
			So(Key("mega-millions"), ShouldEqual, "stats:mega-millions")
		})
	})
}

func TestNewRejectsBadURL(t *testing.T) {
	Convey("Given an invalid Redis URL", t, func() {
		_, err := New(context.Background(), "not-a-url", 0)

		Convey("Then construction fails before dialing", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
