package config_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/mkarami/lottostats/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DrawQueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
			convey.So(cfg.OptimizerMaxAttempts, convey.ShouldEqual, 100)
			convey.So(cfg.ScrapeBaseURL, convey.ShouldEqual, "https://www.lottery.net")
			convey.So(cfg.ScrapeTimeoutMS, convey.ShouldEqual, 30_000)
			convey.So(cfg.RefreshIntervalMin, convey.ShouldEqual, 0)
			convey.So(cfg.PostgresDSN, convey.ShouldBeEmpty)
			convey.So(cfg.RedisURL, convey.ShouldBeEmpty)
			convey.So(cfg.StatsCacheTTLMin, convey.ShouldEqual, 15)
		})
	})
}
