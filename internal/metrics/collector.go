package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "aegisshield"
	subsystem = "irregular_report"
)

// Collector holds all metrics for the report export service
type Collector struct {
	// Export metrics
	exportsTotal   *prometheus.CounterVec
	exportErrors   *prometheus.CounterVec
	exportDuration *prometheus.HistogramVec
	exportSize     *prometheus.HistogramVec
	modelErrors    prometheus.Counter

	// Ticket metrics
	ticketsIssued    prometheus.Counter
	ticketsRedeemed  prometheus.Counter
	ticketsNotFound  prometheus.Counter
	activeExportJobs prometheus.Gauge

	// HTTP metrics
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewCollector creates a metrics collector registered with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		exportsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "exports_total",
			Help:      "Total number of report exports",
		}, []string{"format"}),
		exportErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "export_errors_total",
			Help:      "Total number of failed report exports",
		}, []string{"format", "reason"}),
		exportDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "export_duration_seconds",
			Help:      "Time spent rendering a report export",
			Buckets:   prometheus.DefBuckets,
		}, []string{"format"}),
		exportSize: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "export_size_bytes",
			Help:      "Size of rendered report exports",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		}, []string{"format"}),
		modelErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "model_errors_total",
			Help:      "Total number of reports rejected as malformed",
		}),
		ticketsIssued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tickets_issued_total",
			Help:      "Total number of download tickets issued",
		}),
		ticketsRedeemed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tickets_redeemed_total",
			Help:      "Total number of download tickets redeemed",
		}),
		ticketsNotFound: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "tickets_not_found_total",
			Help:      "Total number of downloads with an unknown or expired ticket",
		}),
		activeExportJobs: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "active_exports",
			Help:      "Number of exports currently rendering",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// ExportStarted marks an export as in flight.
func (c *Collector) ExportStarted() {
	c.activeExportJobs.Inc()
}

// ExportFinished records the outcome of an export started with ExportStarted.
// reason is empty on success.
func (c *Collector) ExportFinished(format string, duration time.Duration, size int, reason string) {
	c.activeExportJobs.Dec()
	c.exportsTotal.WithLabelValues(format).Inc()
	c.exportDuration.WithLabelValues(format).Observe(duration.Seconds())
	if reason != "" {
		c.exportErrors.WithLabelValues(format, reason).Inc()
		if reason == "model" {
			c.modelErrors.Inc()
		}
		return
	}
	c.exportSize.WithLabelValues(format).Observe(float64(size))
}

// TicketIssued counts a stored export.
func (c *Collector) TicketIssued() {
	c.ticketsIssued.Inc()
}

// TicketRedeemed counts a download attempt.
func (c *Collector) TicketRedeemed(found bool) {
	if found {
		c.ticketsRedeemed.Inc()
		return
	}
	c.ticketsNotFound.Inc()
}

// ObserveHTTP records one served request.
func (c *Collector) ObserveHTTP(method, route, status string, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, status).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
