/*
handlers.go - HTTP API handlers for the interest engine

PURPOSE:
  Exposes the interest engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the interest and annuity packages.
  Every computation is recorded in the calculation history.

ENDPOINTS:
  Interest:
    POST   /api/interest               Compute one period
    POST   /api/interest/running       Compute consecutive periods

  Rates:
    GET    /api/rates/monthly          One month at the geometric monthly rate
    GET    /api/rates/yearly           One year of simple interest
    GET    /api/rates/days             Day pro-rata

  Annuities:
    POST   /api/annuity/payment        Monthly installment
    POST   /api/annuity/schedule       Full repayment schedule

  Valuation:
    POST   /api/valuation/position     Posted, repaid and future interest
    POST   /api/valuation/interpolate  Linear amounts between two points

  History:
    GET    /api/calculations           List recorded calculations
    GET    /api/calculations/{id}      One calculation with input and events
                                       (?until=YYYY-MM-DD trims the events)

  Scenarios:
    GET    /api/scenarios              List canned calculations
    POST   /api/scenarios/{id}/run     Run one

QUERY FLAGS:
  ?events=true on the interest endpoints includes the itemized events.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Calculation or scenario not found
  - 500: Internal errors (logged)

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Canned calculations
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/interest-engine/annuity"
	"github.com/warp/interest-engine/factory"
	"github.com/warp/interest-engine/interest"
	"github.com/warp/interest-engine/valuation"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   interest.CalculationStore
	Factory *factory.PeriodFactory
	Log     *logrus.Logger

	now   func() time.Time
	newID func() string
}

// NewHandler creates a new handler with the given store and logger.
func NewHandler(store interest.CalculationStore, log *logrus.Logger) *Handler {
	return &Handler{
		Store:   store,
		Factory: factory.NewPeriodFactory(),
		Log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// =============================================================================
// INTEREST HANDLERS
// =============================================================================

// ComputeInterest computes a single period.
// POST /api/interest
func (h *Handler) ComputeInterest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	dto, err := h.computeSingle(r, body)
	if err != nil {
		h.writeDomainError(w, r, "Interest calculation failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

func (h *Handler) computeSingle(r *http.Request, body []byte) (CalculationDTO, error) {
	period, err := h.Factory.ParsePeriod(string(body))
	if err != nil {
		return CalculationDTO{}, err
	}
	res, err := interest.Compute(period)
	if err != nil {
		return CalculationDTO{}, err
	}

	rec := interest.CalculationRecord{
		ID:         h.newID(),
		Kind:       interest.KindSingle,
		Convention: period.Convention,
		Compound:   period.Compound,
		InputJSON:  string(body),
		Amount:     res.Amount,
		NextDate:   res.Cursor.Next,
		AnchorDay:  res.Cursor.AnchorDay,
		CreatedAt:  h.now().UTC(),
		Events:     res.Events,
	}
	if err := h.Store.Save(r.Context(), rec); err != nil {
		return CalculationDTO{}, err
	}

	h.logger(r).WithFields(logrus.Fields{
		"calculation_id": rec.ID,
		"convention":     period.Convention.String(),
		"amount":         res.Amount.String(),
	}).Info("interest computed")

	return CalculationDTO{
		ID:        rec.ID,
		Kind:      string(rec.Kind),
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		Result:    factory.ResultToJSON(res, wantEvents(r)),
	}, nil
}

// ComputeRunning computes consecutive periods with a threaded cursor.
// POST /api/interest/running
func (h *Handler) ComputeRunning(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	dto, err := h.computeRunning(r, body)
	if err != nil {
		h.writeDomainError(w, r, "Running interest calculation failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

func (h *Handler) computeRunning(r *http.Request, body []byte) (CalculationDTO, error) {
	periods, opts, err := h.Factory.ParseRunning(string(body))
	if err != nil {
		return CalculationDTO{}, err
	}
	res, err := interest.Running(periods, opts)
	if err != nil {
		return CalculationDTO{}, err
	}

	rec := interest.CalculationRecord{
		ID:         h.newID(),
		Kind:       interest.KindRunning,
		Convention: opts.Convention,
		Compound:   opts.Compound,
		InputJSON:  string(body),
		Amount:     res.Amount,
		NextDate:   res.Cursor.Next,
		AnchorDay:  res.Cursor.AnchorDay,
		CreatedAt:  h.now().UTC(),
		Events:     res.Schedule(),
	}
	if err := h.Store.Save(r.Context(), rec); err != nil {
		return CalculationDTO{}, err
	}

	h.logger(r).WithFields(logrus.Fields{
		"calculation_id": rec.ID,
		"periods":        len(periods),
		"amount":         res.Amount.String(),
	}).Info("running interest computed")

	return CalculationDTO{
		ID:        rec.ID,
		Kind:      string(rec.Kind),
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		Result:    factory.RunningResultToJSON(res, wantEvents(r)),
	}, nil
}

// =============================================================================
// RATE HANDLERS
// =============================================================================

// MonthlyRate returns one month of interest.
// GET /api/rates/monthly?balance=1500.00&rate=0.05
func (h *Handler) MonthlyRate(w http.ResponseWriter, r *http.Request) {
	h.rate(w, r, false, func(balance interest.Cents, rate float64, _ int) interest.Cents {
		return interest.MonthlyRate(balance, rate)
	})
}

// YearlyRate returns one year of simple interest.
// GET /api/rates/yearly?balance=1500.00&rate=0.05
func (h *Handler) YearlyRate(w http.ResponseWriter, r *http.Request) {
	h.rate(w, r, false, func(balance interest.Cents, rate float64, _ int) interest.Cents {
		return interest.YearlyRate(balance, rate)
	})
}

// DayProRata returns interest for a number of days.
// GET /api/rates/days?balance=1500.00&rate=0.05&days=30
func (h *Handler) DayProRata(w http.ResponseWriter, r *http.Request) {
	h.rate(w, r, true, interest.DayProRata)
}

func (h *Handler) rate(w http.ResponseWriter, r *http.Request, needDays bool,
	fn func(interest.Cents, float64, int) interest.Cents) {
	q := r.URL.Query()

	balance, err := decimal.NewFromString(q.Get("balance"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid balance", err)
		return
	}
	rate, err := decimal.NewFromString(q.Get("rate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rate", err)
		return
	}
	if err := interest.ValidateRate(rate.InexactFloat64()); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rate", err)
		return
	}
	var days int
	if needDays {
		if days, err = strconv.Atoi(q.Get("days")); err != nil || days < 0 {
			writeError(w, http.StatusBadRequest, "Invalid days", err)
			return
		}
	}

	amount := fn(interest.CentsFromDecimal(balance), rate.InexactFloat64(), days)
	writeJSON(w, http.StatusOK, RateDTO{
		Balance:     balance,
		Rate:        rate,
		Days:        days,
		Amount:      amount.Decimal(),
		AmountCents: int64(amount),
	})
}

// =============================================================================
// ANNUITY HANDLERS
// =============================================================================

// AnnuityPayment returns the monthly installment.
// POST /api/annuity/payment
func (h *Handler) AnnuityPayment(w http.ResponseWriter, r *http.Request) {
	var req AnnuityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	payment, err := annuity.Payment(interest.CentsFromDecimal(req.Principal), req.Rate.InexactFloat64(), req.Months)
	if err != nil {
		h.writeDomainError(w, r, "Annuity calculation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, PaymentDTO{Payment: payment.Decimal(), PaymentCents: int64(payment)})
}

// AnnuitySchedule returns the repayment schedule.
// POST /api/annuity/schedule
func (h *Handler) AnnuitySchedule(w http.ResponseWriter, r *http.Request) {
	var req AnnuityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start := interest.DateOf(h.now())
	if req.Start != "" {
		var err error
		if start, err = interest.ParseDate(req.Start); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid start date", err)
			return
		}
	}

	plan, err := annuity.Schedule(interest.CentsFromDecimal(req.Principal), req.Rate.InexactFloat64(), req.Months, start)
	if err != nil {
		h.writeDomainError(w, r, "Annuity calculation failed", err)
		return
	}

	dto := ScheduleDTO{
		Payment:       plan[0].Payment.Decimal(),
		TotalInterest: plan.TotalInterest().Decimal(),
		Installments:  make([]InstallmentDTO, len(plan)),
	}
	for i, in := range plan {
		dto.Installments[i] = InstallmentDTO{
			Number:    in.Number,
			Due:       in.Due.String(),
			Interest:  in.Interest.Decimal(),
			Principal: in.Principal.Decimal(),
			Payment:   in.Payment.Decimal(),
			Remaining: in.Remaining.Decimal(),
		}
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// HISTORY HANDLERS
// =============================================================================

// ListCalculations returns recorded calculations, newest first.
// GET /api/calculations?kind=single&limit=20
func (h *Handler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	filter := interest.RecordFilter{Kind: interest.CalculationKind(r.URL.Query().Get("kind"))}
	if s := r.URL.Query().Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		filter.Limit = limit
	}

	recs, err := h.Store.List(r.Context(), filter)
	if err != nil {
		h.writeDomainError(w, r, "Failed to list calculations", err)
		return
	}

	dtos := make([]CalculationSummaryDTO, len(recs))
	for i, rec := range recs {
		dtos[i] = CalculationSummaryDTO{
			ID:           rec.ID,
			Kind:         string(rec.Kind),
			Convention:   rec.Convention.String(),
			Compound:     rec.Compound.String(),
			Amount:       rec.Amount.Decimal(),
			AmountCents:  int64(rec.Amount),
			NextInterest: rec.NextDate.String(),
			AnchorDay:    rec.AnchorDay,
			CreatedAt:    rec.CreatedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCalculation returns one calculation with its input and events.
// ?until=YYYY-MM-DD keeps only the events up to and including that date.
// GET /api/calculations/{id}
func (h *Handler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	events := func(s interest.Schedule) interest.Schedule { return s }
	if v := r.URL.Query().Get("until"); v != "" {
		until, err := interest.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid until date", err)
			return
		}
		events = func(s interest.Schedule) interest.Schedule { return s.Until(until) }
	}

	rec, err := h.Store.Get(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, "Calculation not found", err)
		return
	}

	writeJSON(w, http.StatusOK, CalculationDTO{
		ID:        rec.ID,
		Kind:      string(rec.Kind),
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		Input:     json.RawMessage(rec.InputJSON),
		Result: map[string]any{
			"amount":        rec.Amount.Decimal(),
			"amount_cents":  int64(rec.Amount),
			"next_interest": factory.CursorJSON{Date: rec.NextDate.String(), AnchorDay: rec.AnchorDay},
			"events":        factory.EventsToJSON(events(rec.Events)),
		},
	})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine errors to HTTP status codes. Unexpected
// errors are logged and returned as 500.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case factory.IsClientError(err), annuity.IsClientError(err), valuation.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	case interest.IsNotFound(err), errors.Is(err, errScenarioNotFound):
		writeError(w, http.StatusNotFound, message, err)
	default:
		h.logger(r).WithError(err).Error(message)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func (h *Handler) logger(r *http.Request) *logrus.Entry {
	return h.Log.WithField("request_id", middleware.GetReqID(r.Context()))
}

func wantEvents(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("events"))
	return v
}
