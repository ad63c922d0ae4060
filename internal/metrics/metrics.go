package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"buildledger/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the API. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	storeOps        *prometheus.CounterVec
	numbersIssued   *prometheus.CounterVec
	deletionReviews *prometheus.CounterVec
	deletionPending prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "buildledger_http_requests_total",
		Help: "Counts HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "buildledger_http_request_duration_seconds",
		Help:    "HTTP request latency per method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	storeOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "buildledger_store_operations_total",
		Help: "Backend loads and saves by collection and result.",
	}, []string{"collection", "op", "result"})

	numbersIssued := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "buildledger_document_numbers_issued_total",
		Help: "Quotation and invoice numbers assigned.",
	}, []string{"kind"})

	deletionReviews := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "buildledger_deletion_reviews_total",
		Help: "Deletion requests reviewed by decision.",
	}, []string{"decision"})

	deletionPending := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "buildledger_deletion_requests_pending",
		Help: "Deletion requests waiting for review.",
	})

	registry.MustRegister(
		httpRequests,
		httpDuration,
		storeOps,
		numbersIssued,
		deletionReviews,
		deletionPending,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:        registry,
		httpRequests:    httpRequests,
		httpDuration:    httpDuration,
		storeOps:        storeOps,
		numbersIssued:   numbersIssued,
		deletionReviews: deletionReviews,
		deletionPending: deletionPending,
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveStoreOp implements store.Recorder. A missing optional collection
// is an expected outcome, so it is labelled separately from failures.
func (m *Metrics) ObserveStoreOp(collection, op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, store.ErrNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	m.storeOps.WithLabelValues(collection, op, result).Inc()
}

func (m *Metrics) NumberIssued(kind string) {
	if m == nil {
		return
	}
	m.numbersIssued.WithLabelValues(kind).Inc()
}

func (m *Metrics) DeletionReviewed(decision string) {
	if m == nil {
		return
	}
	m.deletionReviews.WithLabelValues(decision).Inc()
}

func (m *Metrics) SetDeletionPending(n int) {
	if m == nil {
		return
	}
	m.deletionPending.Set(float64(n))
}

// Middleware records request counts and latency keyed by the matched route
// template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
