// Package metrics provides Prometheus metrics collection for the pantry service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// PantryOperationsTotal counts inventory and shopping list mutations.
	PantryOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_operations_total",
			Help: "Total number of pantry operations",
		},
		[]string{"operation", "result"},
	)

	// CookDuration tracks how long a cook takes including persistence.
	CookDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pantry_cook_duration_seconds",
			Help:    "Cook duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// StoreConflictsTotal counts optimistic write conflicts per backend.
	StoreConflictsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_store_conflicts_total",
			Help: "Total number of version conflicts on pantry writes",
		},
		[]string{"store"},
	)

	// CircuitBreakerState is 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// ReportsGeneratedTotal counts shopping list documents by sink.
	ReportsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_reports_generated_total",
			Help: "Total number of generated shopping list reports",
		},
		[]string{"sink", "result"},
	)

	// RateLimitedTotal counts requests rejected by a rate limiter, by the
	// kind of client key ("ip" or "household").
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Total number of requests rejected by rate limiting",
		},
		[]string{"scope"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordPantryOperation records the outcome of a pantry mutation.
func RecordPantryOperation(operation, result string) {
	PantryOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordCook records a cook attempt.
func RecordCook(duration time.Duration, result string) {
	CookDuration.Observe(duration.Seconds())
	PantryOperationsTotal.WithLabelValues("cook", result).Inc()
}

// RecordStoreConflict counts a version conflict on the named store.
func RecordStoreConflict(store string) {
	StoreConflictsTotal.WithLabelValues(store).Inc()
}

// SetCircuitBreakerState publishes a breaker state.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordReport records a shopping list report delivery.
func RecordReport(sink, result string) {
	ReportsGeneratedTotal.WithLabelValues(sink, result).Inc()
}

// RecordRateLimited counts a rejected request.
func RecordRateLimited(scope string) {
	RateLimitedTotal.WithLabelValues(scope).Inc()
}
