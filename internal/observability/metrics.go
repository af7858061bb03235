// Package observability exposes Prometheus metrics for the glucoscope service.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/glucoscope/glucoscope/pkg/scoring"
)

// Metrics owns its registry so independent instances can coexist in tests.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	assessmentsTotal  *prometheus.CounterVec
	riskScore         prometheus.Histogram
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	publishFailures   prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		assessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assessments_total",
			Help: "Total assessments stored, by risk category.",
		}, []string{"category"}),
		riskScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "assessment_risk_score",
			Help:    "Distribution of stored risk scores.",
			Buckets: []float64{0.05, 0.1, 0.2, scoring.MediumThreshold, 0.45, scoring.HighThreshold, 0.75, scoring.Ceiling},
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "record_cache_hits_total",
			Help: "Total record cache hits observed.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "record_cache_misses_total",
			Help: "Total record cache misses observed.",
		}),
		publishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "event_publish_failures_total",
			Help: "Total assessment events that could not be published.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.assessmentsTotal,
		m.riskScore,
		m.cacheHits,
		m.cacheMisses,
		m.publishFailures,
	)

	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler counts and times requests under a fixed route label.
func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) AssessmentStored(a scoring.Assessment) {
	if m == nil {
		return
	}
	m.assessmentsTotal.WithLabelValues(string(a.RiskCategory)).Inc()
	m.riskScore.Observe(a.RiskScore)
}

func (m *Metrics) PublishFailed() {
	if m == nil {
		return
	}
	m.publishFailures.Inc()
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}
