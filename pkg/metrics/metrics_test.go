package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func family(reg *prometheus.Registry, name string) *dto.MetricFamily {
	mfs, err := reg.Gather()
	So(err, ShouldBeNil)
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("test"),
			WithSubsystem("unit"),
			WithHistogramBuckets([]float64{1, 10, 100}),
			WithPrometheusRegistry(reg),
		)

		Convey("When recording values directly on it", func() {
			m.operations.WithLabelValues("matching", "toggle_save", OutcomeSuccess).Inc()
			m.storeRecords.WithLabelValues("matches").Set(10)

			Convey("Then the names carry the namespace and subsystem", func() {
				ops := family(reg, "test_unit_operations_total")
				So(ops, ShouldNotBeNil)
				So(ops.GetMetric()[0].GetCounter().GetValue(), ShouldEqual, 1)

				store := family(reg, "test_unit_store_records")
				So(store, ShouldNotBeNil)
				So(store.GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 10)
			})
		})

		Convey("When an empty option value is given", func() {
			reg2 := prometheus.NewRegistry()
			m2 := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(reg2))

			Convey("Then defaults are kept", func() {
				So(m2.namespace, ShouldEqual, "placement")
				So(m2.subsystem, ShouldEqual, "api")
				So(m2.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestGlobalRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording every metric kind", func() {
			So(func() {
				RecordOperation("matching", "list", OutcomeSuccess, 3)
				RecordOperation("appointments", "book", OutcomeError, 12)
				RecordInFlightRejection("appointments")
				RecordLatencyGateDelay(250)
				UpdateStoreRecords("resources", 8)
				RecordDashboardCache(true)
				RecordDashboardCache(false)
				RecordReminderSent()
				RecordReminderSweep()
				RecordDelivery(OutcomeSuccess)
				UpdateOutboxSize(2)
				UpdateProfileCompletion(45)
				RecordHTTPRequest("/matches", "GET", "200")
				RecordHTTPRequestDuration("/matches", "GET", "200", 4)
				UpdateQueueSize(1)
				UpdateQueueCapacity(64)
				UpdateQueueUtilization(1.0 / 64)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueEnqueueError()
				UpdateWorkerCount(2)
				UpdateWorkerActiveCount(2)
				RecordWorkerProcessingLatency(7)
				RecordWorkerError()
				RecordErrorByComponent("messaging", "delivery_failed")
				RecordErrorByEndpoint("/appointments", "POST", "validation")
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
			}, ShouldNotPanic)

			Convey("Then they are exposed on the custom registry", func() {
				So(GetRegistry(), ShouldNotBeNil)
				So(family(GetRegistry(), "placement_api_reminders_sent_total"), ShouldNotBeNil)
				cache := family(GetRegistry(), "placement_api_dashboard_cache_total")
				So(cache, ShouldNotBeNil)
				So(len(cache.GetMetric()), ShouldEqual, 2)
			})
		})
	})
}
