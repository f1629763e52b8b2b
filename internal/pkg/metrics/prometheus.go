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
			Namespace: "pausely",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pausely",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "pausely",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Auth metrics
	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pausely",
			Subsystem: "auth",
			Name:      "attempts_total",
			Help:      "Total number of authentication attempts",
		},
		[]string{"operation", "outcome"},
	)

	authRateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pausely",
			Subsystem: "auth",
			Name:      "rate_limited_total",
			Help:      "Authentication attempts rejected by the sliding-window limiter",
		},
		[]string{"operation"},
	)

	// Subscription metrics
	subscriptionOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pausely",
			Subsystem: "subscriptions",
			Name:      "operations_total",
			Help:      "Total number of subscription lifecycle operations",
		},
		[]string{"operation"},
	)

	// Briefing worker metrics
	briefingRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pausely",
			Subsystem: "briefing",
			Name:      "runs_total",
			Help:      "Total number of daily briefing runs",
		},
	)

	briefingInsightsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pausely",
			Subsystem: "briefing",
			Name:      "insights_generated_total",
			Help:      "Insights generated by the daily briefing worker",
		},
	)

	briefingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "pausely",
			Subsystem: "briefing",
			Name:      "run_duration_seconds",
			Help:      "Duration of a briefing run in seconds",
			Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60},
		},
	)

	// Billing webhook metrics
	webhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pausely",
			Subsystem: "billing",
			Name:      "webhook_events_total",
			Help:      "Billing webhook events received",
		},
		[]string{"event", "outcome"},
	)
)

// RecordAuthAttempt records the outcome of an authentication attempt
func RecordAuthAttempt(operation, outcome string) {
	authAttemptsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordAuthRateLimited records a rate-limited authentication attempt
func RecordAuthRateLimited(operation string) {
	authRateLimitedTotal.WithLabelValues(operation).Inc()
}

// RecordSubscriptionOp records a subscription lifecycle operation
func RecordSubscriptionOp(operation string) {
	subscriptionOpsTotal.WithLabelValues(operation).Inc()
}

// RecordBriefingRun records a completed briefing run
func RecordBriefingRun(insights int, duration time.Duration) {
	briefingRunsTotal.Inc()
	briefingInsightsGenerated.Add(float64(insights))
	briefingDuration.Observe(duration.Seconds())
}

// RecordWebhookEvent records a billing webhook event
func RecordWebhookEvent(event, outcome string) {
	webhookEventsTotal.WithLabelValues(event, outcome).Inc()
}

// Handler returns the prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware instruments HTTP requests with request count, duration and
// in-flight gauges. The chi route pattern is used instead of the raw URL so
// per-user paths do not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		status := strconv.Itoa(sw.status)
		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
