// Package metrics provides Prometheus metrics for the placement service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Manager manages all Prometheus metrics for the placement service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Feature operations
	operations        *prometheus.CounterVec
	operationLatency  *prometheus.HistogramVec
	inflightRejected  *prometheus.CounterVec
	latencyGateDelay  prometheus.Histogram
	storeRecords      *prometheus.GaugeVec
	dashboardCache    *prometheus.CounterVec
	remindersSent     prometheus.Counter
	remindersSweeps   prometheus.Counter
	deliveries        *prometheus.CounterVec
	outboxSize        prometheus.Gauge
	profileCompletion prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Delivery queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueueRate   prometheus.Counter
	queueDequeueRate   prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Delivery workers
	workerCount             prometheus.Gauge
	workerActiveCount       prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrorRate         prometheus.Counter

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "placement",
		subsystem:        "api",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		Buckets: m.histogramBuckets,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) gaugeVec(name, help string, labels ...string) *prometheus.GaugeVec {
	return promauto.With(m.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		Buckets: m.histogramBuckets,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.operations = m.counterVec("operations_total", "Feature operations by feature, operation and outcome", "feature", "op", "outcome")
	m.operationLatency = m.histogramVec("operation_latency_milliseconds", "Feature operation latency in milliseconds", "feature", "op")
	m.inflightRejected = m.counterVec("inflight_rejections_total", "Mutations rejected because the same record was busy", "feature")
	m.latencyGateDelay = m.histogram("latency_gate_delay_milliseconds", "Artificial delay applied by the mock data source")
	m.storeRecords = m.gaugeVec("store_records", "Records held per in-memory store", "store")
	m.dashboardCache = m.counterVec("dashboard_cache_total", "Dashboard summary cache lookups", "result")
	m.remindersSent = m.counter("reminders_sent_total", "Appointment reminders emitted")
	m.remindersSweeps = m.counter("reminder_sweeps_total", "Reminder sweeps executed")
	m.deliveries = m.counterVec("message_deliveries_total", "Outgoing message delivery attempts by outcome", "outcome")
	m.outboxSize = m.gauge("outbox_size", "Messages waiting in the outbox, pending or failed")
	m.profileCompletion = m.gauge("profile_completion_score", "Last computed profile completion score")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds", "HTTP request duration in milliseconds", "endpoint", "method", "status_code")

	m.queueSize = m.gauge("queue_size", "Current size of the delivery queue")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum delivery queue capacity")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Delivery queue utilization ratio (current size / capacity)")
	m.queueEnqueueRate = m.counter("queue_enqueue_total", "Total number of deliveries enqueued")
	m.queueDequeueRate = m.counter("queue_dequeue_total", "Total number of deliveries dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Total number of enqueue errors")

	m.workerCount = m.gauge("worker_count", "Configured number of delivery workers")
	m.workerActiveCount = m.gauge("worker_active_count", "Number of delivery workers running")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Delivery processing latency in milliseconds")
	m.workerErrorRate = m.counter("worker_errors_total", "Total number of delivery worker errors")

	m.errorRateByComponent = m.counterVec("errors_by_component_total", "Total number of errors by component", "component", "error_type")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total", "Total number of errors by endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "System memory usage in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
}

// RecordOperation counts one feature operation and its latency.
func RecordOperation(feature, op, outcome string, latencyMs float64) {
	globalManager.operations.WithLabelValues(feature, op, outcome).Inc()
	globalManager.operationLatency.WithLabelValues(feature, op).Observe(latencyMs)
}

// RecordInFlightRejection counts a mutation refused by the in-flight guard.
func RecordInFlightRejection(feature string) {
	globalManager.inflightRejected.WithLabelValues(feature).Inc()
}

// RecordLatencyGateDelay records an artificial delay in milliseconds.
func RecordLatencyGateDelay(delayMs float64) {
	globalManager.latencyGateDelay.Observe(delayMs)
}

// UpdateStoreRecords sets the record count of a named store.
func UpdateStoreRecords(store string, count int) {
	globalManager.storeRecords.WithLabelValues(store).Set(float64(count))
}

// RecordDashboardCache counts a dashboard cache hit or miss.
func RecordDashboardCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	globalManager.dashboardCache.WithLabelValues(result).Inc()
}

// RecordReminderSent increments the reminders counter.
func RecordReminderSent() {
	globalManager.remindersSent.Inc()
}

// RecordReminderSweep increments the reminder sweep counter.
func RecordReminderSweep() {
	globalManager.remindersSweeps.Inc()
}

// RecordDelivery counts a message delivery attempt.
func RecordDelivery(outcome string) {
	globalManager.deliveries.WithLabelValues(outcome).Inc()
}

// UpdateOutboxSize sets the number of messages held in the outbox.
func UpdateOutboxSize(size int) {
	globalManager.outboxSize.Set(float64(size))
}

// UpdateProfileCompletion sets the last computed completion score.
func UpdateProfileCompletion(score int) {
	globalManager.profileCompletion.Set(float64(score))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Queue Metrics Functions.

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueRate.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueRate.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// Worker Metrics Functions.

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateWorkerActiveCount sets the number of active workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActiveCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrorRate.Inc()
}

// Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
