package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Budorazhka/LastDance-sub001/internal/usecase"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsRouted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_routed_total",
			Help: "New leads by queue and routing outcome",
		},
		[]string{"source", "outcome"},
	)

	leadAssignments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_assignments_total",
			Help: "Manual assignment changes on existing leads",
		},
		[]string{"kind"},
	)

	leadsInPool = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "leads_in_pool",
			Help: "Leads currently in the pool by queue and assignment state",
		},
		[]string{"source", "state"},
	)

	notificationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_errors_total",
			Help: "Assignment notices that could not be delivered",
		},
		[]string{"channel"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// DistributionMetrics implements usecase.RoutingObserver and worker.StatsSink.
type DistributionMetrics struct{}

var _ usecase.RoutingObserver = DistributionMetrics{}

func (DistributionMetrics) LeadRouted(source string, mode usecase.RoutingMode, assigned bool) {
	outcome := string(mode)
	if mode == usecase.RoutingAuto && !assigned {
		outcome = "unassigned"
	}
	leadsRouted.WithLabelValues(source, outcome).Inc()
}

func (DistributionMetrics) AssignmentChanged(kind string) {
	leadAssignments.WithLabelValues(kind).Inc()
}

func (DistributionMetrics) NotificationFailed(channel string) {
	notificationErrors.WithLabelValues(channel).Inc()
}

func (DistributionMetrics) SetPoolSize(source, state string, n int) {
	leadsInPool.WithLabelValues(source, state).Set(float64(n))
}
