package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Pipeline metrics
	LinesRead      *prometheus.CounterVec
	ReadErrors     *prometheus.CounterVec
	MalformedLines *prometheus.CounterVec
	RecordsMatched *prometheus.CounterVec
	RunsActive     prometheus.Gauge
	RunsTotal      prometheus.Counter

	// Sink metrics
	SinkWrites        *prometheus.CounterVec
	SinkWriteDuration *prometheus.HistogramVec

	// Live fan-out metrics
	WSConnections prometheus.Gauge
	FanoutDropped *prometheus.CounterVec
}

// NewMetrics creates a metrics collector on the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates a metrics collector on the given registry.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logtide_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "logtide_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		// Pipeline metrics
		LinesRead: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logtide_lines_read_total",
				Help: "Total number of raw lines read from log sources",
			},
			[]string{"source"},
		),
		ReadErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logtide_read_errors_total",
				Help: "Total number of mid-stream read errors",
			},
			[]string{"source"},
		),
		MalformedLines: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logtide_malformed_lines_total",
				Help: "Total number of lines that failed to decode",
			},
			[]string{"source"},
		),
		RecordsMatched: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logtide_records_matched_total",
				Help: "Total number of records inside the requested time window",
			},
			[]string{"source"},
		),
		RunsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "logtide_runs_active",
				Help: "Number of pipeline runs currently tailing a source",
			},
		),
		RunsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "logtide_runs_total",
				Help: "Total number of pipeline runs started",
			},
		),

		// Sink metrics
		SinkWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logtide_sink_writes_total",
				Help: "Total number of sink write attempts",
			},
			[]string{"sink", "status"},
		),
		SinkWriteDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "logtide_sink_write_duration_seconds",
				Help:    "Sink write duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"sink"},
		),

		// Live fan-out metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "logtide_ws_connections",
				Help: "Number of active live-tail WebSocket connections",
			},
		),
		FanoutDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logtide_fanout_dropped_total",
				Help: "Total number of records dropped by slow live subscribers",
			},
			[]string{"source"},
		),
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordLine records one raw line read from a source
func (m *Metrics) RecordLine(source string) {
	m.LinesRead.WithLabelValues(source).Inc()
}

// RecordReadError records a mid-stream read failure
func (m *Metrics) RecordReadError(source string) {
	m.ReadErrors.WithLabelValues(source).Inc()
}

// RecordMalformedLine records a line that failed to decode
func (m *Metrics) RecordMalformedLine(source string) {
	m.MalformedLines.WithLabelValues(source).Inc()
}

// RecordMatch records a record admitted by the window filter
func (m *Metrics) RecordMatch(source string) {
	m.RecordsMatched.WithLabelValues(source).Inc()
}

// RecordSinkWrite records a sink write attempt and its outcome
func (m *Metrics) RecordSinkWrite(sink, status string, duration time.Duration) {
	m.SinkWrites.WithLabelValues(sink, status).Inc()
	m.SinkWriteDuration.WithLabelValues(sink).Observe(duration.Seconds())
}

// RecordFanoutDrop records a record a slow subscriber missed
func (m *Metrics) RecordFanoutDrop(source string) {
	m.FanoutDropped.WithLabelValues(source).Inc()
}

// RunStarted marks one pipeline run as active
func (m *Metrics) RunStarted() {
	m.RunsTotal.Inc()
	m.RunsActive.Inc()
}

// RunFinished marks one pipeline run as done
func (m *Metrics) RunFinished() {
	m.RunsActive.Dec()
}

// IncWSConnections increments live-tail connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements live-tail connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}
