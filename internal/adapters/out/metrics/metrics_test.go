package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"localeats/internal/adapters/out/metrics"
	"localeats/internal/core/domain/model/order"
	"localeats/internal/core/domain/model/user"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsTransitionsAndConflicts(t *testing.T) {
	m := metrics.New()

	m.RecordTransition(order.Ready, order.PickedUp, user.Driver)
	m.RecordTransition(order.Ready, order.PickedUp, user.Driver)
	m.RecordTransition(order.Pending, order.Confirmed, user.RestaurantOwner)
	m.RecordClaimConflict()

	count, err := testutil.GatherAndCount(m.Registry(), "localeats_order_transitions_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	count, err = testutil.GatherAndCount(m.Registry(), "localeats_order_claim_conflicts_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_HandlerExposesRequests(t *testing.T) {
	m := metrics.New()
	m.WatchSubscriptions(func() int { return 3 })
	done := m.StartRequest(http.MethodGet, "/api/v1/driver/pool")
	done(http.StatusOK)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `localeats_http_requests_total{method="GET",path="/api/v1/driver/pool",status="200"} 1`)
	assert.Contains(t, string(body), "localeats_feed_subscriptions 3")
	assert.Contains(t, string(body), "localeats_http_requests_in_flight 0")
}
