package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanspareilsmyn/insightlens/internal/analyzer"
	"github.com/sanspareilsmyn/insightlens/internal/config"
	"github.com/sanspareilsmyn/insightlens/internal/table"
)

var now = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *analyzer.Suite) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	suite := analyzer.NewSuite(zap.NewNop(), analyzer.WithClock(func() time.Time { return now }))
	defaults := config.AnalyzersConfig{
		Customer:    config.CustomerConfig{Segment: "loyal", WindowDays: 30},
		Market:      config.MarketConfig{Period: "7D", WindowSize: 1},
		Operational: config.OperationalConfig{KeyMetric: "revenue", WindowSize: 3},
	}
	srv := NewServer(config.HTTPConfig{Addr: ":0", Mode: "release"}, NewHandler(suite, defaults, zap.NewNop()), zap.NewNop())
	return srv, suite
}

func do(t *testing.T, srv *Server, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	resp := httptest.NewRecorder()
	srv.Engine.ServeHTTP(resp, req)

	var decoded map[string]interface{}
	if strings.HasPrefix(strings.TrimSpace(resp.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &decoded))
	}
	return resp, decoded
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := do(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "go_goroutines")
}

func TestCustomerBehavior_Uninitialized(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := do(t, srv, http.MethodGet, "/api/v1/customer-behavior", "")
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, body["error"], "data not initialized")
}

func TestCustomerBehavior_UsesDefaultsAndQuery(t *testing.T) {
	srv, suite := newTestServer(t)
	suite.Customer.UpdateData(table.Table{
		{"segment": "loyal", "timestamp": now.Add(-24 * time.Hour), "purchase_count": 4, "revenue_per_purchase": 10.0},
		{"segment": "new", "timestamp": now.Add(-24 * time.Hour), "purchase_count": 1, "revenue_per_purchase": 2.0},
	})

	resp, body := do(t, srv, http.MethodGet, "/api/v1/customer-behavior", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "customer", body["analyzer"])
	params := body["params"].(map[string]interface{})
	assert.Equal(t, "loyal", params["segment"])
	assert.Equal(t, float64(30), params["window"])
	metrics := body["metrics"].(map[string]interface{})
	assert.Equal(t, 4.0, metrics["purchase_frequency"])

	resp, body = do(t, srv, http.MethodGet, "/api/v1/customer-behavior?segment=new&window=7", "")
	require.Equal(t, http.StatusOK, resp.Code)
	metrics = body["metrics"].(map[string]interface{})
	assert.Equal(t, 2.0, metrics["average_spending"])
}

func TestBadWindowParam(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, target := range []string{
		"/api/v1/customer-behavior?window=abc",
		"/api/v1/market-trends?window=1.5",
		"/api/v1/operational-metrics?window=ten",
	} {
		resp, body := do(t, srv, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, resp.Code, target)
		assert.Contains(t, body["error"], "failed to parse window", target)
	}
}

func TestMarketTrends(t *testing.T) {
	srv, suite := newTestServer(t)
	suite.Market.UpdateData(table.Table{
		{"date": "2026-10-13", "revenue": 10},
		{"date": "2026-10-12", "revenue": 20},
		{"date": "2026-10-11", "revenue": 30},
	})

	resp, body := do(t, srv, http.MethodGet, "/api/v1/market-trends?period=7D", "")
	require.Equal(t, http.StatusOK, resp.Code)
	metrics := body["metrics"].(map[string]interface{})
	assert.Equal(t, 20.0, metrics["average_growth"])
	assert.Equal(t, 30.0, metrics["max_revenue"])
	assert.Equal(t, 10.0, metrics["min_revenue"])

	resp, _ = do(t, srv, http.MethodGet, "/api/v1/market-trends?period=soon", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestOperationalMetrics_NaNBecomesNull(t *testing.T) {
	srv, suite := newTestServer(t)
	suite.Operational.UpdateData(table.Table{{"revenue": nil}})

	resp, body := do(t, srv, http.MethodGet, "/api/v1/operational-metrics", "")
	require.Equal(t, http.StatusOK, resp.Code)
	metrics := body["metrics"].(map[string]interface{})
	assert.Contains(t, metrics, "average_change")
	assert.Nil(t, metrics["average_change"])
}

func TestReplaceDataset(t *testing.T) {
	srv, suite := newTestServer(t)

	resp, body := do(t, srv, http.MethodPut, "/api/v1/datasets/operational", `[{"revenue":10},{"revenue":20},{"revenue":30}]`)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, float64(3), body["rows"])
	assert.Equal(t, 3, suite.Operational.Dataset().Len())

	resp, body = do(t, srv, http.MethodGet, "/api/v1/operational-metrics?metric=revenue&window=3", "")
	require.Equal(t, http.StatusOK, resp.Code)
	metrics := body["metrics"].(map[string]interface{})
	assert.Equal(t, 20.0, metrics["average_change"])
	assert.Equal(t, 30.0, metrics["max_value"])
	assert.Equal(t, 10.0, metrics["min_value"])

	resp, _ = do(t, srv, http.MethodPut, "/api/v1/datasets/inventory", `[]`)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp, _ = do(t, srv, http.MethodPut, "/api/v1/datasets/market", `{"rows":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestReplaceDataset_NullBodyKeepsData(t *testing.T) {
	srv, suite := newTestServer(t)
	suite.Operational.UpdateData(table.Table{{"revenue": 1.0}})

	resp, body := do(t, srv, http.MethodPut, "/api/v1/datasets/operational", `null`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, body["error"], "JSON array")
	assert.Equal(t, 1, suite.Operational.Dataset().Len())

	resp, _ = do(t, srv, http.MethodGet, "/api/v1/operational-metrics?window=1", "")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestListDatasets(t *testing.T) {
	srv, suite := newTestServer(t)
	suite.Market.UpdateData(table.Table{{}, {}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/datasets", nil)
	resp := httptest.NewRecorder()
	srv.Engine.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body, 3)
	assert.Equal(t, "market", body[1]["dataset"])
	assert.Equal(t, float64(2), body[1]["rows"])
}
