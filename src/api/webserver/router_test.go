package webserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicledger/govledger/src/api/store"
)

func TestHealth(t *testing.T) {
	g, _ := newTestServer(t)

	w := doRequest(t, g, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "civicledger-api", body["service"])
	assert.NotEmpty(t, body["version"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestRouteNotFound(t *testing.T) {
	g, _ := newTestServer(t)

	w := doRequest(t, g, http.MethodGet, "/api/nothing-here", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	decode(t, w, &body)
	assert.Equal(t, "Route not found", body["error"])
}

func TestAnalyticsOverviewEndpoint(t *testing.T) {
	g, _ := newTestServer(t)

	w := doRequest(t, g, http.MethodGet, "/api/analytics/overview", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var ov store.Overview
	decode(t, w, &ov)
	assert.Equal(t, 0, ov.TotalPolicies)
	assert.Equal(t, "0.00", ov.UtilizationRate)

	createPolicy(t, g)
	w = doRequest(t, g, http.MethodGet, "/api/analytics/overview", nil)
	decode(t, w, &ov)
	assert.Equal(t, 1, ov.TotalPolicies)
	assert.Equal(t, "10000.00", ov.TotalAllocated)
}

func TestTransactionsLimitValidation(t *testing.T) {
	g, _ := newTestServer(t)

	w := doRequest(t, g, http.MethodGet, "/api/transactions?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, g, http.MethodGet, "/api/transactions?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, g, http.MethodGet, "/api/transactions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiterWindow(t *testing.T) {
	rl := NewRateLimiter(2, 200*time.Millisecond)

	assert.True(t, rl.allow("client"))
	assert.True(t, rl.allow("client"))
	assert.False(t, rl.allow("client"), "third request inside the window must be rejected")
	assert.True(t, rl.allow("other"), "keys are independent")

	time.Sleep(250 * time.Millisecond)
	assert.True(t, rl.allow("client"), "window must slide")
}
