// Package metrics exposes Prometheus observability primitives.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the application's Prometheus instruments.
type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram
	invoices       *prometheus.CounterVec
}

// New registers and returns the application metrics.
func New() *Metrics {
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invobook_http_requests_total",
		Help: "Counts HTTP requests by method, route, and status.",
	}, []string{"method", "route", "status"})

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "invobook_http_duration_seconds",
		Help:    "HTTP request latency per method/route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	renders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invobook_pdf_renders_total",
		Help: "PDF render outcomes.",
	}, []string{"outcome"})

	renderDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "invobook_pdf_render_duration_seconds",
		Help:    "PDF render latency.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	invoices := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invobook_invoices_total",
		Help: "Invoices created by status.",
	}, []string{"status"})

	prometheus.MustRegister(
		httpRequests,
		httpDuration,
		renders,
		renderDuration,
		invoices,
	)

	return &Metrics{
		httpRequests:   httpRequests,
		httpDuration:   httpDuration,
		renders:        renders,
		renderDuration: renderDuration,
		invoices:       invoices,
	}
}

// ObserveHTTPRequest records one served request and its latency.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveRender records a PDF render outcome and its latency.
func (m *Metrics) ObserveRender(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.renders.WithLabelValues(outcome).Inc()
	m.renderDuration.Observe(duration.Seconds())
}

// ObserveInvoiceCreated counts a created invoice by status.
func (m *Metrics) ObserveInvoiceCreated(status string) {
	if m == nil {
		return
	}
	if status == "" {
		status = "unknown"
	}
	m.invoices.WithLabelValues(status).Inc()
}

// GinMiddleware instruments every request with the HTTP counters. The
// route template is used as the label, not the raw path, to keep
// cardinality bounded.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
