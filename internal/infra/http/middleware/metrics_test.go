package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/Budorazhka/LastDance-sub001/internal/usecase"
)

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/leads/{leadId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/leads/{leadId}", "404"))
	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/leads/"+id, nil))
	}
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/leads/{leadId}", "404"))

	assert.Equal(t, 2.0, after-before)
	assert.Equal(t, 0.0, testutil.ToFloat64(activeConnections))
}

func TestDistributionMetricsRoutingOutcome(t *testing.T) {
	m := DistributionMetrics{}
	counter := func(outcome string) float64 {
		return testutil.ToFloat64(leadsRouted.WithLabelValues("rent", outcome))
	}
	auto, unassigned, manual := counter("auto"), counter("unassigned"), counter("manual")

	m.LeadRouted("rent", usecase.RoutingAuto, true)
	m.LeadRouted("rent", usecase.RoutingAuto, false)
	m.LeadRouted("rent", usecase.RoutingManual, false)

	assert.Equal(t, auto+1, counter("auto"))
	assert.Equal(t, unassigned+1, counter("unassigned"))
	assert.Equal(t, manual+1, counter("manual"))
}

func TestDistributionMetricsCountersAndGauge(t *testing.T) {
	m := DistributionMetrics{}

	assign := testutil.ToFloat64(leadAssignments.WithLabelValues("assign"))
	m.AssignmentChanged("assign")
	assert.Equal(t, assign+1, testutil.ToFloat64(leadAssignments.WithLabelValues("assign")))

	failed := testutil.ToFloat64(notificationErrors.WithLabelValues("smtp"))
	m.NotificationFailed("smtp")
	assert.Equal(t, failed+1, testutil.ToFloat64(notificationErrors.WithLabelValues("smtp")))

	m.SetPoolSize("primary", "unassigned", 7)
	assert.Equal(t, 7.0, testutil.ToFloat64(leadsInPool.WithLabelValues("primary", "unassigned")))
}
