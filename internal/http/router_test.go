package http

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numjklpp1/parts-management-pro/internal/handlers"
	"github.com/numjklpp1/parts-management-pro/internal/health"
	"github.com/numjklpp1/parts-management-pro/internal/ledger"
	"github.com/numjklpp1/parts-management-pro/internal/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := ledger.NewMemoryStore()
	inv := services.NewInventoryService(store)
	tasks := services.NewTaskService(store, inv, true)
	advisory := services.NewAdvisoryService(services.NewMockAdvisor())

	router := NewRouter(
		handlers.NewInventoryHandler(inv),
		handlers.NewTaskHandler(tasks),
		handlers.NewAdvisoryHandler(advisory, inv),
		handlers.NewHealthHandler(health.NewHealthChecker(store)),
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *nethttp.Response {
	t.Helper()
	resp, err := nethttp.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getJSON(t *testing.T, url string) *nethttp.Response {
	t.Helper()
	resp, err := nethttp.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRouter_SubmitAndProjectFlow(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/records", `{
		"category": "玻璃拉門", "name": "UG3A-L", "specification": "框_噴完", "quantity": 4
	}`)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/records", `{
		"category": "玻璃拉門", "name": "UG3A-L", "specification": "完成", "quantity": 10
	}`)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	var result struct {
		State   string `json:"state"`
		Records []struct {
			Specification string `json:"specification"`
			Quantity      int    `json:"quantity"`
		} `json:"records"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "committed", result.State)
	require.Len(t, result.Records, 2)
	assert.Equal(t, -4, result.Records[1].Quantity)

	resp = getJSON(t, srv.URL+"/api/stock?stage=完成&model=UG3A-L")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var stock struct {
		Stock int `json:"stock"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stock))
	assert.Equal(t, 10, stock.Stock)
}

func TestRouter_SubmitValidation(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/records", `{"category": "玻璃拉門"}`)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/records", `not json`)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/records", `{
		"category": "玻璃拉門", "name": "XX9Z", "specification": "完成", "quantity": 1
	}`)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body.Message, "XX9Z")
}

func TestRouter_TaskLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/tasks", `{"base_model": "AK3B", "quantity": 120}`)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	resp = getJSON(t, srv.URL+"/api/tasks")
	var listing struct {
		Tasks []struct {
			Name      string `json:"name"`
			Remaining int    `json:"remaining"`
		} `json:"tasks"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	require.Len(t, listing.Tasks, 2)
	assert.Equal(t, "AK3B-L", listing.Tasks[0].Name)

	// Gate: completion must come from the finished stage.
	resp = postJSON(t, srv.URL+"/api/tasks/0/complete", `{"done_quantity": 50, "specification": "框_噴完"}`)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/tasks/0/complete", `{"done_quantity": 50, "specification": "完成"}`)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var completion struct {
		Removed   bool `json:"removed"`
		Remaining int  `json:"remaining"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&completion))
	assert.False(t, completion.Removed)
	assert.Equal(t, 70, completion.Remaining)

	resp = postJSON(t, srv.URL+"/api/tasks/1/prioritize", ``)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	req, err := nethttp.NewRequest(nethttp.MethodDelete, srv.URL+"/api/tasks/0", nil)
	require.NoError(t, err)
	delResp, err := nethttp.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	require.Equal(t, nethttp.StatusOK, delResp.StatusCode)

	resp = getJSON(t, srv.URL+"/api/tasks")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listing))
	require.Len(t, listing.Tasks, 1)
	assert.Equal(t, "AK3B-L", listing.Tasks[0].Name)
	assert.Equal(t, 70, listing.Tasks[0].Remaining)

	// Non-numeric index reaches the handler and is rejected there.
	delReq, err := nethttp.NewRequest(nethttp.MethodDelete, srv.URL+"/api/tasks/abc", nil)
	require.NoError(t, err)
	badResp, err := nethttp.DefaultClient.Do(delReq)
	require.NoError(t, err)
	defer badResp.Body.Close()
	assert.Equal(t, nethttp.StatusBadRequest, badResp.StatusCode)
}

func TestRouter_AdjustAndSummary(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/stock/adjust", `{
		"edited": {"完成": {"UG3A-L": 6}}
	}`)
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)

	resp = getJSON(t, srv.URL+"/api/stock/summary")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var summary struct {
		Summary map[string]map[string]int `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, 6, summary.Summary["完成"]["UG3A-L"])
}

func TestRouter_DashboardAndAdvisory(t *testing.T) {
	srv := newTestServer(t)

	resp := getJSON(t, srv.URL+"/api/dashboard")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/advisory/analysis", `{}`)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var analysis struct {
		Analysis string `json:"analysis"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&analysis))
	assert.NotEmpty(t, analysis.Analysis)

	resp = postJSON(t, srv.URL+"/api/advisory/suggestion", `{"category": "抽屜", "name": "小抽"}`)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer(t)

	resp := getJSON(t, srv.URL+"/health")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp = getJSON(t, srv.URL+"/health/ready")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp = getJSON(t, srv.URL+"/metrics")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}
