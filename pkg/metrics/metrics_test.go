package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 2, 3}),
				WithPrometheusRegistry(registry),
			)
			manager.turns.WithLabelValues("greeting").Inc()

			Convey("Then its collectors should be registered under the namespace", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_turns_total")
				So(names, ShouldContain, "test_unit_sessions_active")
			})
		})

		Convey("When empty options are passed", func() {
			manager := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then defaults should be kept", func() {
				So(manager.namespace, ShouldEqual, "gradebot")
				So(manager.subsystem, ShouldEqual, "chat")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestRecordFunctions(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording conversation metrics", func() {
			before := testutil.ToFloat64(globalManager.turns.WithLabelValues("predict"))
			RecordTurn("predict", 0.2)
			RecordPrediction("B")
			RecordScoresRecorded(3)
			RecordDuplicateMessage()

			Convey("Then the counters should move", func() {
				So(testutil.ToFloat64(globalManager.turns.WithLabelValues("predict")), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.predictions.WithLabelValues("B")), ShouldBeGreaterThanOrEqualTo, 1)
				So(testutil.ToFloat64(globalManager.scoresRecorded), ShouldBeGreaterThanOrEqualTo, 3)
				So(testutil.ToFloat64(globalManager.duplicateMessages), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording session metrics", func() {
			RecordSessionCreated()
			RecordSessionEvicted("idle")
			UpdateActiveSessions(7)

			Convey("Then the gauge should reflect the last value", func() {
				So(testutil.ToFloat64(globalManager.sessionsActive), ShouldEqual, 7)
				So(testutil.ToFloat64(globalManager.sessionsEvicted.WithLabelValues("idle")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When recording HTTP and system metrics", func() {
			So(func() {
				RecordHTTPRequest("messages", "POST", "200")
				RecordHTTPRequestDuration("messages", "POST", "200", 1.5)
				RecordErrorByType("client_error", "medium")
				RecordErrorByEndpoint("messages", "POST", "client_error")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
			So(testutil.ToFloat64(globalManager.systemGoroutineCount), ShouldEqual, 10)
		})

		Convey("Then the registry should be the custom one", func() {
			So(GetRegistry(), ShouldEqual, customRegistry)
		})
	})
}
