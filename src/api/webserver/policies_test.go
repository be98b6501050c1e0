package webserver

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicledger/govledger/src/api/types"
)

func TestCreateAndListPolicies(t *testing.T) {
	g, _ := newTestServer(t)

	for i := 0; i < 3; i++ {
		createPolicy(t, g)
	}

	w := doRequest(t, g, http.MethodGet, "/api/policies", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed []types.PolicyView
	decode(t, w, &listed)
	require.Len(t, listed, 3)
	for _, p := range listed {
		assert.Equal(t, "Rural Road Rehabilitation", p.Title)
		assert.Equal(t, "1000000", p.FundAllocation.String())
		assert.Equal(t, "0", p.FundReleased.String())
		assert.Equal(t, types.PolicyDraft, p.Status)
		assert.Equal(t, []string{"village roads only"}, p.EligibilityCriteria)
	}
}

func TestGetPolicy(t *testing.T) {
	g, _ := newTestServer(t)
	created := createPolicy(t, g)
	id := created["id"].(string)

	w := doRequest(t, g, http.MethodGet, "/api/policies/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, g, http.MethodGet, "/api/policies/missing-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]string
	decode(t, w, &body)
	assert.Contains(t, body["error"], "not found")
}

func TestCreatePolicyValidation(t *testing.T) {
	g, _ := newTestServer(t)

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing title", func(b map[string]any) { delete(b, "title") }},
		{"missing allocation", func(b map[string]any) { delete(b, "fund_allocation") }},
		{"fractional allocation", func(b map[string]any) { b["fund_allocation"] = "12.5" }},
		{"negative allocation", func(b map[string]any) { b["fund_allocation"] = "-100" }},
		{"non-numeric allocation", func(b map[string]any) { b["fund_allocation"] = "lots" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validPolicyBody()
			tt.mutate(body)
			w := doRequest(t, g, http.MethodPost, "/api/policies", body)
			assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", w.Body.String())
		})
	}
}

func TestCreatePolicySanitizesMarkup(t *testing.T) {
	g, _ := newTestServer(t)

	body := validPolicyBody()
	body["title"] = "<b>Road Fund</b>"
	w := doRequest(t, g, http.MethodPost, "/api/policies", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created types.PolicyView
	decode(t, w, &created)
	assert.Equal(t, "Road Fund", created.Title)
}

func TestActivatePolicy(t *testing.T) {
	g, _ := newTestServer(t)
	created := createPolicy(t, g)
	id := created["id"].(string)

	w := doRequest(t, g, http.MethodPut, fmt.Sprintf("/api/policies/%s/activate", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view types.PolicyView
	decode(t, w, &view)
	assert.Equal(t, types.PolicyActive, view.Status)

	w = doRequest(t, g, http.MethodPut, "/api/policies/missing/activate", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestReleaseFundsScenario walks the documented end-to-end case: an
// over-allocation attempt is rejected without side effects, then a fitting
// release moves funds and records exactly one Release transaction.
func TestReleaseFundsScenario(t *testing.T) {
	g, _ := newTestServer(t)
	created := createPolicy(t, g)
	id := created["id"].(string)

	w := doRequest(t, g, http.MethodPost, fmt.Sprintf("/api/policies/%s/release-funds", id), map[string]any{
		"amount":     "1200000",
		"to_address": "0xNAGPUR-PWD",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var errBody map[string]string
	decode(t, w, &errBody)
	assert.Contains(t, errBody["error"], "insufficient funds")

	// Rejection must be state-free.
	w = doRequest(t, g, http.MethodGet, "/api/policies/"+id, nil)
	var unchanged types.PolicyView
	decode(t, w, &unchanged)
	assert.Equal(t, "0", unchanged.FundReleased.String())

	w = doRequest(t, g, http.MethodGet, "/api/transactions/policy/"+id, nil)
	var txs []types.TransactionView
	decode(t, w, &txs)
	assert.Empty(t, txs)

	// Fitting release succeeds.
	w = doRequest(t, g, http.MethodPost, fmt.Sprintf("/api/policies/%s/release-funds", id), map[string]any{
		"amount":     "400000",
		"to_address": "0xNAGPUR-PWD",
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var result struct {
		Policy        types.PolicyView `json:"policy"`
		TransactionID string           `json:"transaction_id"`
	}
	decode(t, w, &result)
	assert.Equal(t, "400000", result.Policy.FundReleased.String())
	assert.NotEmpty(t, result.TransactionID)

	w = doRequest(t, g, http.MethodGet, "/api/transactions/policy/"+id, nil)
	decode(t, w, &txs)
	require.Len(t, txs, 1)
	assert.Equal(t, result.TransactionID, txs[0].ID)
	assert.Equal(t, types.TxRelease, txs[0].Type)
	assert.Equal(t, "400000", txs[0].Amount.String())
	assert.Equal(t, types.TxCompleted, txs[0].Status)
	assert.Equal(t, "0xNAGPUR-PWD", txs[0].ToAddress)
}

func TestReleaseFundsNotFound(t *testing.T) {
	g, _ := newTestServer(t)
	w := doRequest(t, g, http.MethodPost, "/api/policies/missing/release-funds", map[string]any{
		"amount":     "100",
		"to_address": "0xPWD",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
