/*
handlers_test.go - HTTP tests for the API handlers

Tests for:
- Single and running calculations (status, amounts, history records)
- Rate primitives and annuity endpoints
- Error mapping (400 / 404)
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/interest-engine/interest"
	"github.com/warp/interest-engine/store/sqlite"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestServer(t *testing.T) (*Handler, http.Handler) {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	h := NewHandler(store, log)
	seq := 0
	h.newID = func() string {
		seq++
		return fmt.Sprintf("calc-%d", seq)
	}
	clock := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	return h, NewRouter(h, Options{})
}

func do(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// =============================================================================
// INTEREST
// =============================================================================

func TestComputeInterest_Created(t *testing.T) {
	// GIVEN: A calendar-months period from Jan 15 to Apr 10
	// WHEN: Posting it
	// THEN: 17.56 is returned and the calculation is recorded
	_, srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/interest?events=true", `{
		"from": "2022-01-15", "to": "2022-04-10",
		"balance": "1500.00", "rate": "0.05",
		"convention": "actual_periods", "calendar_months": true
	}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "calc-1", body["id"])
	assert.Equal(t, "single", body["kind"])

	result := body["result"].(map[string]any)
	assert.Equal(t, "17.56", result["amount"])
	assert.Equal(t, float64(1756), result["amount_cents"])
	assert.Equal(t, map[string]any{"date": "2022-05-01", "anchor_day": float64(1)}, result["next_interest"])
	assert.Len(t, result["events"], 4)

	rec = do(t, srv, http.MethodGet, "/api/calculations/calc-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stored := decode(t, rec)
	assert.Equal(t, "2022-01-15", stored["input"].(map[string]any)["from"])
	assert.Len(t, stored["result"].(map[string]any)["events"], 4)
}

func TestComputeInterest_WithoutEvents(t *testing.T) {
	_, srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/interest",
		`{"from":"2021-11-01","to":"2022-07-15","balance":"1050.00","rate":"0.2"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	result := decode(t, rec)["result"].(map[string]any)
	assert.Equal(t, float64(14729), result["amount_cents"])
	assert.NotContains(t, result, "events")
}

func TestComputeInterest_ClientErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"from":`},
		{"reversed dates", `{"from":"2022-06-01","to":"2022-01-01","balance":"1","rate":"0.05"}`},
		{"unknown convention", `{"from":"2022-01-01","to":"2022-06-01","balance":"1","rate":"0.05","convention":"30/360"}`},
		{"cursor too far", `{"from":"2022-02-01","to":"2022-06-15","balance":"1500","rate":"0.05",
			"convention":"actual_periods","next_interest":{"date":"2022-03-02"}}`},
		{"invalid rate", `{"from":"2022-01-01","to":"2022-06-01","balance":"1","rate":"-1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, srv := newTestServer(t)

			rec := do(t, srv, http.MethodPost, "/api/interest", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode(t, rec)["error"])

			recs, err := h.Store.List(context.Background(), interest.RecordFilter{})
			require.NoError(t, err)
			assert.Empty(t, recs, "failed calculations are not recorded")
		})
	}
}

func TestComputeRunning(t *testing.T) {
	_, srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/interest/running", `{
		"convention": "actual_days",
		"compound": "monthly",
		"periods": [
			{"from": "2022-01-01", "to": "2022-01-15", "balance": "1000.00", "rate": "0.05"},
			{"from": "2022-01-15", "to": "2022-04-01", "balance": "1500.00", "rate": "0.05"}
		]
	}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "running", body["kind"])
	result := body["result"].(map[string]any)
	assert.Equal(t, float64(1759), result["amount_cents"])
	assert.Len(t, result["periods"], 2)
}

// =============================================================================
// RATES
// =============================================================================

func TestRates(t *testing.T) {
	_, srv := newTestServer(t)

	tests := []struct {
		path  string
		cents float64
	}{
		{"/api/rates/monthly?balance=15.00&rate=0.05", 6},
		{"/api/rates/yearly?balance=15.00&rate=0.1", 150},
		{"/api/rates/days?balance=730.00&rate=0.05&days=30", 300},
	}
	for _, tt := range tests {
		rec := do(t, srv, http.MethodGet, tt.path, "")
		require.Equal(t, http.StatusOK, rec.Code, tt.path)
		assert.Equal(t, tt.cents, decode(t, rec)["amount_cents"], tt.path)
	}

	rec := do(t, srv, http.MethodGet, "/api/rates/monthly?balance=abc&rate=0.05", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/rates/days?balance=1&rate=0.05", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRates_RejectsRateAtOrBelowMinusOne(t *testing.T) {
	// GIVEN: Rates the monthly primitive cannot value
	// WHEN: Asking each rate endpoint
	// THEN: 400 instead of a garbage amount
	_, srv := newTestServer(t)

	for _, path := range []string{
		"/api/rates/monthly?balance=1000&rate=-2",
		"/api/rates/monthly?balance=1000&rate=-1",
		"/api/rates/yearly?balance=1000&rate=-1.5",
		"/api/rates/days?balance=1000&rate=-3&days=10",
	} {
		rec := do(t, srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Contains(t, decode(t, rec)["details"], "invalid interest rate", path)
	}
}

// =============================================================================
// ANNUITY
// =============================================================================

func TestAnnuityPayment(t *testing.T) {
	_, srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/annuity/payment", `{"principal":"100000.00","rate":"0.08","months":120}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(121328), decode(t, rec)["payment_cents"])

	rec = do(t, srv, http.MethodPost, "/api/annuity/payment", `{"principal":"0","rate":"0.08","months":120}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnnuitySchedule(t *testing.T) {
	_, srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/annuity/schedule",
		`{"principal":"1200.00","rate":"0.03","months":20,"start":"2024-01-31"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "31.29", body["total_interest"])
	installments := body["installments"].([]any)
	require.Len(t, installments, 20)
	first := installments[0].(map[string]any)
	assert.Equal(t, "2024-02-29", first["due"])
	assert.Equal(t, "61.59", first["payment"])
	assert.Equal(t, "0", installments[19].(map[string]any)["remaining"])
}

// =============================================================================
// HISTORY
// =============================================================================

func TestListCalculations(t *testing.T) {
	_, srv := newTestServer(t)
	single := `{"from":"2022-01-01","to":"2022-02-01","balance":"100","rate":"0.05"}`
	do(t, srv, http.MethodPost, "/api/interest", single)
	do(t, srv, http.MethodPost, "/api/interest", single)
	do(t, srv, http.MethodPost, "/api/scenarios/mortgage-top-up/run", "")

	rec := do(t, srv, http.MethodGet, "/api/calculations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []CalculationSummaryDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 3)
	assert.Equal(t, "calc-3", all[0].ID)
	assert.Equal(t, "running", all[0].Kind)

	rec = do(t, srv, http.MethodGet, "/api/calculations?kind=single&limit=1", "")
	var limited []CalculationSummaryDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &limited))
	require.Len(t, limited, 1)
	assert.Equal(t, "calc-2", limited[0].ID)

	rec = do(t, srv, http.MethodGet, "/api/calculations?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCalculation_Until(t *testing.T) {
	// GIVEN: A recorded calendar-months calculation with four events
	// WHEN: Fetching it with ?until= on the last month step
	// THEN: Only the events up to that date are returned
	_, srv := newTestServer(t)
	do(t, srv, http.MethodPost, "/api/interest", `{
		"from": "2022-01-15", "to": "2022-04-10",
		"balance": "1500.00", "rate": "0.05",
		"convention": "actual_periods", "calendar_months": true
	}`)

	rec := do(t, srv, http.MethodGet, "/api/calculations/calc-1?until=2022-04-01", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	events := decode(t, rec)["result"].(map[string]any)["events"].([]any)
	require.Len(t, events, 3)
	assert.Equal(t, "2022-02-01", events[0].(map[string]any)["at"])
	assert.Equal(t, "2022-04-01", events[2].(map[string]any)["at"])

	rec = do(t, srv, http.MethodGet, "/api/calculations/calc-1?until=2022-99-01", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCalculation_NotFound(t *testing.T) {
	_, srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/calculations/does-not-exist", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
