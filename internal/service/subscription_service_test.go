package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breakwater-app/breakwater/internal/detect"
	"github.com/breakwater-app/breakwater/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	s := store.NewMemoryStore()
	svc := NewSubscriptionService(s, detect.New(detect.DefaultConfig(), nil), nil)
	mux := http.NewServeMux()
	svc.Register(mux)
	srv := httptest.NewServer(svc.Middleware(mux))
	t.Cleanup(srv.Close)
	return srv, s
}

func netflixBatch() recomputeRequest {
	var req recomputeRequest
	for _, d := range []string{"2024-01-05", "2024-02-05", "2024-03-06", "2024-04-04"} {
		req.Transactions = append(req.Transactions, detect.Transaction{
			Name: "NETFLIX.COM *91001", Amount: 15.99, Date: d,
		})
	}
	return req
}

func postJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(method, url, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRecomputeAndList(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, http.MethodPost, srv.URL+"/api/recurring/recompute", netflixBatch())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[listResponse](t, resp)
	require.Len(t, got.Subscriptions, 1)
	assert.Equal(t, "Netflix", got.Subscriptions[0].Name)
	assert.Equal(t, detect.StatusSuggested, got.Subscriptions[0].Status)
	assert.Zero(t, got.AnnualTotal, "suggested records do not count toward the total")

	listResp, err := http.Get(srv.URL + "/api/subscriptions")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	listed := decode[listResponse](t, listResp)
	require.Len(t, listed.Subscriptions, 1)
	assert.Equal(t, got.Subscriptions[0].ID, listed.Subscriptions[0].ID)
}

func TestRecomputeBadBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/recurring/recompute", "application/json",
		bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPatchConfirm(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, http.MethodPost, srv.URL+"/api/recurring/recompute", netflixBatch())
	got := decode[listResponse](t, resp)
	require.Len(t, got.Subscriptions, 1)
	id := got.Subscriptions[0].ID

	confirmed := detect.StatusConfirmed
	patchResp := postJSON(t, http.MethodPatch, srv.URL+"/api/subscriptions", patchRequest{
		ID:    id,
		Patch: store.Patch{Status: &confirmed},
	})
	require.Equal(t, http.StatusOK, patchResp.StatusCode)
	updated := decode[detect.Candidate](t, patchResp)
	assert.Equal(t, detect.StatusConfirmed, updated.Status)

	listResp, err := http.Get(srv.URL + "/api/subscriptions")
	require.NoError(t, err)
	listed := decode[listResponse](t, listResp)
	assert.Equal(t, 191.88, listed.AnnualTotal)
}

func TestPatchErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	confirmed := detect.StatusConfirmed
	resp := postJSON(t, http.MethodPatch, srv.URL+"/api/subscriptions", patchRequest{
		ID:    "missing",
		Patch: store.Patch{Status: &confirmed},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, http.MethodPatch, srv.URL+"/api/subscriptions", patchRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestPatchInvalidStatus(t *testing.T) {
	srv, st := newTestServer(t)

	seed := &detect.Candidate{ID: "a", Name: "Netflix", Amount: 15.99,
		Cadence: detect.CadenceMonthly, AnnualCost: 191.88, Status: detect.StatusSuggested}
	_, err := st.UpsertMany(context.Background(), []*detect.Candidate{seed})
	require.NoError(t, err)

	bad := detect.Status("archived")
	resp := postJSON(t, http.MethodPatch, srv.URL+"/api/subscriptions", patchRequest{
		ID:    "a",
		Patch: store.Patch{Status: &bad},
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCashflowEndpoint(t *testing.T) {
	srv, st := newTestServer(t)

	confirmed := &detect.Candidate{ID: "a", Name: "Netflix", Amount: 15.99,
		Cadence: detect.CadenceMonthly, AnnualCost: 191.88, Category: "Media",
		Status: detect.StatusConfirmed}
	_, err := st.UpsertMany(context.Background(), []*detect.Candidate{confirmed})
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/api/cashflow?months=4")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[CashflowProjection](t, resp)
	require.Len(t, got.Months, 4)
	assert.Equal(t, 15.99, got.MonthlyTotal)

	resp, err = http.Get(srv.URL + "/api/cashflow?months=abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInfrastructureEndpoint(t *testing.T) {
	srv, st := newTestServer(t)

	ctx := context.Background()
	for i, cat := range []string{"Media", "Media", "SaaS"} {
		id := fmt.Sprintf("sub-%d", i)
		_, err := st.UpsertMany(ctx, []*detect.Candidate{{
			ID: id, Name: id, Amount: 10, Cadence: detect.CadenceMonthly,
			AnnualCost: 120, Category: cat,
		}})
		require.NoError(t, err)
		status := detect.StatusConfirmed
		_, err = st.Update(ctx, id, store.Patch{Status: &status})
		require.NoError(t, err)
	}

	resp, err := http.Get(srv.URL + "/api/infrastructure")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[ClustersResponse](t, resp)
	require.Len(t, got.Clusters, 2)
	assert.Equal(t, "Media", got.Clusters[0].Category)
	assert.Equal(t, 240.0, got.Clusters[0].AnnualTotal)
	assert.Equal(t, 360.0, got.AnnualTotal)
}

func TestHealthAndRequestID(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
