package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wastegate",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wastegate",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "wastegate",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Classifier metrics
	classifierRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wastegate",
			Subsystem: "classifier",
			Name:      "runs_total",
			Help:      "Total number of classifier runs",
		},
		[]string{"classifier"},
	)

	classifierRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wastegate",
			Subsystem: "classifier",
			Name:      "run_duration_seconds",
			Help:      "Duration of a classifier run in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"classifier"},
	)

	recommendationsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wastegate",
			Subsystem: "classifier",
			Name:      "recommendations_emitted_total",
			Help:      "Total recommendations and findings emitted by detection class",
		},
		[]string{"detection_class"},
	)

	// Safety interceptor metrics
	safeopsVerdictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wastegate",
			Subsystem: "safeops",
			Name:      "verdicts_total",
			Help:      "Total SafeOps verdicts by outcome",
		},
		[]string{"outcome"},
	)

	// Guard metrics
	guardChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wastegate",
			Subsystem: "guard",
			Name:      "checks_total",
			Help:      "Total guard coordinator checks by outcome",
		},
		[]string{"outcome"},
	)

	guardDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wastegate",
			Subsystem: "guard",
			Name:      "denials_total",
			Help:      "Total guard denials by denial code",
		},
		[]string{"code"},
	)

	// Circuit breaker metrics
	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "wastegate",
			Subsystem: "breaker",
			Name:      "state",
			Help:      "Circuit breaker state per cached tenant (0=closed, 1=open, 2=half-open)",
		},
		[]string{"tenant_id"},
	)

	breakerTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wastegate",
			Subsystem: "breaker",
			Name:      "transitions_total",
			Help:      "Total circuit breaker state transitions",
		},
		[]string{"from", "to"},
	)

	breakerCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "wastegate",
			Subsystem: "breaker",
			Name:      "cache_size",
			Help:      "Number of tenant breakers currently cached in-process",
		},
	)

	breakerCacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "wastegate",
			Subsystem: "breaker",
			Name:      "cache_evictions_total",
			Help:      "Total tenant breakers evicted from the cache",
		},
	)

	// Remediation metrics
	remediationExecutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "wastegate",
			Subsystem: "remediation",
			Name:      "executions_total",
			Help:      "Total remediation executions by final status",
		},
		[]string{"status"},
	)

	// Database metrics
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "wastegate",
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "table"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordClassifierRun records one classifier run and its duration
func RecordClassifierRun(classifier string, duration time.Duration) {
	classifierRunsTotal.WithLabelValues(classifier).Inc()
	classifierRunDuration.WithLabelValues(classifier).Observe(duration.Seconds())
}

// RecordRecommendationsEmitted adds to the emitted counter for a detection class
func RecordRecommendationsEmitted(detectionClass string, count int) {
	recommendationsEmitted.WithLabelValues(detectionClass).Add(float64(count))
}

// RecordSafeOpsVerdict records a SafeOps verdict outcome (allowed or denied)
func RecordSafeOpsVerdict(outcome string) {
	safeopsVerdictsTotal.WithLabelValues(outcome).Inc()
}

// RecordGuardCheck records a guard coordinator check outcome (passed or denied)
func RecordGuardCheck(outcome string) {
	guardChecksTotal.WithLabelValues(outcome).Inc()
}

// RecordGuardDenial records a guard denial by machine code
func RecordGuardDenial(code string) {
	guardDenialsTotal.WithLabelValues(code).Inc()
}

// SetBreakerState sets the state gauge for a tenant's breaker
func SetBreakerState(tenantID string, state float64) {
	breakerState.WithLabelValues(tenantID).Set(state)
}

// DeleteBreakerState drops the state gauge for an evicted tenant
func DeleteBreakerState(tenantID string) {
	breakerState.DeleteLabelValues(tenantID)
}

// RecordBreakerTransition records a breaker state transition
func RecordBreakerTransition(from, to string) {
	breakerTransitionsTotal.WithLabelValues(from, to).Inc()
}

// SetBreakerCacheSize sets the tenant breaker cache size gauge
func SetBreakerCacheSize(size float64) {
	breakerCacheSize.Set(size)
}

// RecordBreakerEviction records one cache eviction
func RecordBreakerEviction() {
	breakerCacheEvictions.Inc()
}

// RecordRemediationExecution records a remediation execution outcome
func RecordRemediationExecution(status string) {
	remediationExecutions.WithLabelValues(status).Inc()
}

// RecordDBQuery records a database query duration
func RecordDBQuery(operation, table string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}
