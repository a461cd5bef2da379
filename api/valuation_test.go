package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuePosition(t *testing.T) {
	// GIVEN: A posted history and two projected half years
	// WHEN: Valuing with two discount factors
	// THEN: Future interest is discounted on each period's start
	_, srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/valuation/position", `{
		"posted": [
			{"from": "2023-06-01", "to": "2023-11-30", "principal": "1200.00", "interest": "0.54"},
			{"from": "2023-12-01", "to": "2024-05-31", "principal": "1050.00", "interest": "17.30"}
		],
		"projected": [
			{"from": "2024-01-01", "to": "2024-07-01", "balance": "1000.00", "rate": "0.05"},
			{"from": "2024-07-01", "to": "2025-01-01", "balance": "800.00", "rate": "0.05"}
		],
		"discount_factors": [
			{"date": "2024-01-01", "fraction": "0.02"},
			{"date": "2025-01-01", "fraction": "0.06"}
		]
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "17.84", body["posted_interest"])
	assert.Equal(t, "150", body["repayment"])
	assert.Equal(t, "42.71", body["future_interest"])
}

func TestValuePosition_ClientErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"posted":`},
		{"bad date", `{"projected":[{"from":"2024-13-01","to":"2025-01-01","balance":"1","rate":"0.05"}]}`},
		{"factors out of order", `{"discount_factors":[{"date":"2025-01-01","fraction":"0.1"},{"date":"2024-01-01","fraction":"0.1"}]}`},
		{"reversed projected period", `{"projected":[{"from":"2025-01-01","to":"2024-01-01","balance":"1","rate":"0.05"}]}`},
		{"invalid rate", `{"projected":[{"from":"2024-01-01","to":"2025-01-01","balance":"1","rate":"-2"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, srv := newTestServer(t)

			rec := do(t, srv, http.MethodPost, "/api/valuation/position", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestInterpolate(t *testing.T) {
	_, srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/valuation/interpolate", `{
		"start": {"date": "2023-01-01", "amount": "180.00"},
		"end": {"date": "2023-02-01", "amount": "150.00"},
		"dates": ["2023-01-12", "2023-01-24"]
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var points []PointDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	require.Len(t, points, 2)
	assert.Equal(t, "2023-01-12", points[0].Date)
	assert.Equal(t, "169.35", points[0].Amount.String())
	assert.Equal(t, "157.74", points[1].Amount.String())

	rec = do(t, srv, http.MethodPost, "/api/valuation/interpolate", `{
		"start": {"date": "2023-01-01", "amount": "180.00"},
		"end": {"date": "2023-02-01", "amount": "150.00"},
		"dates": ["2023-02-01"]
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
