package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given metrics manager construction", t, func() {
		Convey("When created with defaults on a fresh registry", func() {
			reg := prometheus.NewRegistry()
			m := NewManager(WithPrometheusRegistry(reg))

			Convey("Then defaults are applied", func() {
				So(m, ShouldNotBeNil)
				So(m.namespace, ShouldEqual, "lottostats")
				So(m.subsystem, ShouldEqual, "engine")
				So(m.enabled, ShouldBeTrue)
			})
		})

		Convey("When created with custom options", func() {
			reg := prometheus.NewRegistry()
			m := NewManager(
				WithPrometheusRegistry(reg),
				WithNamespace("custom"),
				WithSubsystem("stats"),
				WithHistogramBuckets([]float64{0.1, 1, 10}),
				WithMetricsEnabled(false),
			)

			Convey("Then the options take effect", func() {
				So(m.namespace, ShouldEqual, "custom")
				So(m.subsystem, ShouldEqual, "stats")
				So(m.histogramBuckets, ShouldResemble, []float64{0.1, 1, 10})
				So(m.enabled, ShouldBeFalse)
			})
		})

		Convey("When empty option values are supplied", func() {
			reg := prometheus.NewRegistry()
			m := NewManager(
				WithPrometheusRegistry(reg),
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
			)

			Convey("Then defaults are kept", func() {
				So(m.namespace, ShouldEqual, "lottostats")
				So(m.subsystem, ShouldEqual, "engine")
				So(m.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestManagerCounters(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(reg))

		Convey("When ingest counters are incremented", func() {
			m.drawsIngested.WithLabelValues("powerball").Inc()
			m.drawsIngested.WithLabelValues("powerball").Inc()
			m.drawsDuplicate.WithLabelValues("powerball").Inc()
			m.drawsRejected.WithLabelValues("mega-millions").Add(3)

			Convey("Then the counter values are visible", func() {
				So(testutil.ToFloat64(m.drawsIngested.WithLabelValues("powerball")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.drawsDuplicate.WithLabelValues("powerball")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.drawsRejected.WithLabelValues("mega-millions")), ShouldEqual, 3)
			})
		})

		Convey("When gauges are updated", func() {
			m.storedDraws.WithLabelValues("powerball").Set(1520)
			m.queueSize.Set(7)
			m.queueCapacity.Set(100)
			m.workerCount.Set(5)

			Convey("Then the gauge values are visible", func() {
				So(testutil.ToFloat64(m.storedDraws.WithLabelValues("powerball")), ShouldEqual, 1520)
				So(testutil.ToFloat64(m.queueSize), ShouldEqual, 7)
				So(testutil.ToFloat64(m.queueCapacity), ShouldEqual, 100)
				So(testutil.ToFloat64(m.workerCount), ShouldEqual, 5)
			})
		})

		Convey("When a consistency failure is recorded", func() {
			m.consistencyFailures.WithLabelValues("powerball", "overall_sum").Inc()

			Convey("Then the labelled counter increments", func() {
				So(testutil.ToFloat64(m.consistencyFailures.WithLabelValues("powerball", "overall_sum")), ShouldEqual, 1)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When the package-level helpers are called", func() {
			before := testutil.ToFloat64(globalManager.drawsIngested.WithLabelValues("helper-game"))
			RecordDrawIngested("helper-game")
			RecordDrawDuplicate("helper-game")
			RecordDrawsRejected("helper-game", 2)
			RecordDrawsRejected("helper-game", 0)
			UpdateStoredDraws("helper-game", 42)
			RecordRecompute("helper-game", 0.01)
			RecordConsistencyFailure("helper-game", "special_sum")
			RecordScrape("helper-game", 0.2, 12)
			RecordScrapeError("helper-game")
			UpdateQueueSize(3)
			UpdateQueueCapacity(10)
			UpdateQueueUtilization(0.3)
			RecordQueueEnqueue()
			RecordQueueDequeue()
			RecordQueueEnqueueError("queue_full")
			UpdateWorkerCount(4)
			RecordWorkerError()
			RecordHTTPRequest("/statistics", "GET", "200")
			RecordHTTPRequestDuration("/statistics", "GET", "200", 2.5)
			RecordErrorByComponent("store", "append_failed")
			UpdateSystemMemoryUsage(1 << 20)
			UpdateSystemGoroutineCount(12)
			RecordSystemGCPauseTime(0.4)

			Convey("Then the counters reflect the calls", func() {
				So(testutil.ToFloat64(globalManager.drawsIngested.WithLabelValues("helper-game")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.drawsRejected.WithLabelValues("helper-game")), ShouldEqual, 2)
				So(testutil.ToFloat64(globalManager.storedDraws.WithLabelValues("helper-game")), ShouldEqual, 42)
				So(testutil.ToFloat64(globalManager.scrapedDraws.WithLabelValues("helper-game")), ShouldEqual, 12)
			})
		})

		Convey("When the registry is requested", func() {
			reg := GetRegistry()

			Convey("Then it is the custom registry", func() {
				So(reg, ShouldNotBeNil)
				So(reg, ShouldEqual, customRegistry)
			})
		})
	})
}
