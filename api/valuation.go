package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warp/interest-engine/interest"
	"github.com/warp/interest-engine/valuation"
)

// =============================================================================
// VALUATION HANDLERS
// =============================================================================

// ValuePosition returns posted interest, repayment and discounted future
// interest of a loan or deposit.
// POST /api/valuation/position
func (h *Handler) ValuePosition(w http.ResponseWriter, r *http.Request) {
	var req PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	pos, err := positionFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid position", err)
		return
	}

	sum, err := pos.Value()
	if err != nil {
		h.writeDomainError(w, r, "Valuation failed", err)
		return
	}

	h.logger(r).WithField("future_interest", int64(sum.FutureInterest)).Debug("position valued")
	writeJSON(w, http.StatusOK, PositionValueDTO{
		PostedInterest: sum.PostedInterest.Decimal(),
		Repayment:      sum.Repayment.Decimal(),
		FutureInterest: sum.FutureInterest.Decimal(),
	})
}

// Interpolate returns linearly interpolated amounts.
// POST /api/valuation/interpolate
func (h *Handler) Interpolate(w http.ResponseWriter, r *http.Request) {
	var req InterpolateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := pointFromDTO("start", req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start", err)
		return
	}
	end, err := pointFromDTO("end", req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end", err)
		return
	}
	dates := make([]interest.Date, len(req.Dates))
	for i, s := range req.Dates {
		if dates[i], err = interest.ParseDate(s); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date", err)
			return
		}
	}

	points, err := valuation.Interpolate(start, end, dates...)
	if err != nil {
		h.writeDomainError(w, r, "Interpolation failed", err)
		return
	}

	out := make([]PointDTO, len(points))
	for i, p := range points {
		out[i] = PointDTO{Date: p.At.String(), Amount: p.Amount.Decimal()}
	}
	writeJSON(w, http.StatusOK, out)
}

func positionFromRequest(req PositionRequest) (valuation.Position, error) {
	var pos valuation.Position

	for i, p := range req.Posted {
		from, to, err := parseSpan(p.From, p.To)
		if err != nil {
			return pos, fmt.Errorf("posted %d: %w", i, err)
		}
		pos.Posted = append(pos.Posted, valuation.Posted{
			From:      from,
			To:        to,
			Principal: interest.CentsFromDecimal(p.Principal),
			Interest:  interest.CentsFromDecimal(p.Interest),
		})
	}

	for i, p := range req.Projected {
		from, to, err := parseSpan(p.From, p.To)
		if err != nil {
			return pos, fmt.Errorf("projected %d: %w", i, err)
		}
		pos.Projected = append(pos.Projected, valuation.Projected{
			From:         from,
			To:           to,
			StartBalance: interest.CentsFromDecimal(p.Balance),
			Rate:         p.Rate.InexactFloat64(),
		})
	}

	if len(req.DiscountFactors) > 0 {
		factors, err := valuation.NewDiscountFactors()
		if err != nil {
			return pos, err
		}
		for _, f := range req.DiscountFactors {
			at, err := interest.ParseDate(f.Date)
			if err != nil {
				return pos, fmt.Errorf("discount factor: %w", err)
			}
			if err := factors.Add(valuation.Factor{At: at, Fraction: f.Fraction.InexactFloat64()}); err != nil {
				return pos, err
			}
		}
		pos.Factors = factors
	}

	return pos, nil
}

func parseSpan(from, to string) (interest.Date, interest.Date, error) {
	f, err := interest.ParseDate(from)
	if err != nil {
		return interest.Date{}, interest.Date{}, err
	}
	t, err := interest.ParseDate(to)
	if err != nil {
		return interest.Date{}, interest.Date{}, err
	}
	return f, t, nil
}

func pointFromDTO(field string, p PointDTO) (valuation.Point, error) {
	at, err := interest.ParseDate(p.Date)
	if err != nil {
		return valuation.Point{}, fmt.Errorf("%s: %w", field, err)
	}
	return valuation.Point{At: at, Amount: interest.CentsFromDecimal(p.Amount)}, nil
}
