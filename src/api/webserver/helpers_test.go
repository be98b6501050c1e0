package webserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/civicledger/govledger/src/api/analysis"
	"github.com/civicledger/govledger/src/api/config"
	"github.com/civicledger/govledger/src/api/realtime"
	"github.com/civicledger/govledger/src/api/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() config.Config {
	return config.Config{
		Port:          "0",
		AllowedOrigin: "http://localhost:3000",
		RateLimit:     1000,
		RateWindow:    time.Minute,
		MaxBodyBytes:  1 << 20,
	}
}

// newTestServer wires an unseeded store into a fresh router.
func newTestServer(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	st := store.New(analysis.NewKeywordAnalyzer())
	hub := realtime.NewHub(testConfig().AllowedOrigin, func(topic string) (any, bool) {
		switch topic {
		case realtime.TopicPolicies:
			return st.ListPolicies(), true
		case realtime.TopicComplaints:
			return st.ListComplaints(), true
		case realtime.TopicProposals:
			return st.ListProposals(), true
		case realtime.TopicTransactions:
			return st.AllTransactions(), true
		default:
			return nil, false
		}
	})
	return New(testConfig(), st, hub), st
}

func doRequest(t *testing.T, g *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), "body: %s", w.Body.String())
}

func validPolicyBody() map[string]any {
	return map[string]any{
		"title":                "Rural Road Rehabilitation",
		"description":          "Resurfacing works",
		"category":             "Infrastructure",
		"fund_allocation":      "1000000",
		"beneficiary_count":    500,
		"district":             "Nagpur",
		"eligibility_criteria": []string{"village roads only"},
		"execution_conditions": []string{"quarterly audit"},
	}
}

func createPolicy(t *testing.T, g *gin.Engine) map[string]any {
	t.Helper()
	w := doRequest(t, g, http.MethodPost, "/api/policies", validPolicyBody())
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	var created map[string]any
	decode(t, w, &created)
	return created
}
