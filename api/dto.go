/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication that are not already
  covered by the factory package. Calculation inputs and results use
  factory.PeriodJSON, factory.RunningJSON and their result counterparts
  so the API, the CLI and the scenarios share one wire format.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Calculations:
    CalculationDTO, CalculationSummaryDTO

  Rates:
    RateDTO

  Annuities:
    AnnuityRequest, PaymentDTO, InstallmentDTO, ScheduleDTO

  Scenarios:
    ScenarioDTO

VALIDATION:
  Validation is done in handlers and in the factory, not in DTOs.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/period.go, factory/result.go: Calculation wire types
*/
package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CALCULATIONS
// =============================================================================

// CalculationDTO is a stored calculation with its result. Exactly one of
// Result and Running is set, depending on Kind.
type CalculationDTO struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	CreatedAt string          `json:"created_at"`
	Input     json.RawMessage `json:"input,omitempty"`
	Result    any             `json:"result"`
}

// CalculationSummaryDTO is a list entry without input or events.
type CalculationSummaryDTO struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	Convention   string          `json:"convention"`
	Compound     string          `json:"compound"`
	Amount       decimal.Decimal `json:"amount"`
	AmountCents  int64           `json:"amount_cents"`
	NextInterest string          `json:"next_interest,omitempty"`
	AnchorDay    int             `json:"anchor_day,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

// =============================================================================
// RATES
// =============================================================================

// RateDTO is the result of a single rate primitive.
type RateDTO struct {
	Balance     decimal.Decimal `json:"balance"`
	Rate        decimal.Decimal `json:"rate"`
	Days        int             `json:"days,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	AmountCents int64           `json:"amount_cents"`
}

// =============================================================================
// ANNUITIES
// =============================================================================

type AnnuityRequest struct {
	Principal decimal.Decimal `json:"principal"`
	Rate      decimal.Decimal `json:"rate"`
	Months    int             `json:"months"`
	Start     string          `json:"start,omitempty"` // schedule only; default today
}

type PaymentDTO struct {
	Payment      decimal.Decimal `json:"payment"`
	PaymentCents int64           `json:"payment_cents"`
}

type InstallmentDTO struct {
	Number    int             `json:"number"`
	Due       string          `json:"due"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Payment   decimal.Decimal `json:"payment"`
	Remaining decimal.Decimal `json:"remaining"`
}

type ScheduleDTO struct {
	Payment       decimal.Decimal  `json:"payment"`
	TotalInterest decimal.Decimal  `json:"total_interest"`
	Installments  []InstallmentDTO `json:"installments"`
}

// =============================================================================
// VALUATION
// =============================================================================

type PostedDTO struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
}

type ProjectedDTO struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	Balance decimal.Decimal `json:"balance"`
	Rate    decimal.Decimal `json:"rate"`
}

// FactorDTO is a discount factor: the fraction discounted on Date.
type FactorDTO struct {
	Date     string          `json:"date"`
	Fraction decimal.Decimal `json:"fraction"`
}

// PositionRequest values a loan or deposit.
type PositionRequest struct {
	Posted          []PostedDTO    `json:"posted"`
	Projected       []ProjectedDTO `json:"projected"`
	DiscountFactors []FactorDTO    `json:"discount_factors"`
}

type PositionValueDTO struct {
	PostedInterest decimal.Decimal `json:"posted_interest"`
	Repayment      decimal.Decimal `json:"repayment"`
	FutureInterest decimal.Decimal `json:"future_interest"`
}

type PointDTO struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// InterpolateRequest asks for amounts on Dates between Start and End.
type InterpolateRequest struct {
	Start PointDTO `json:"start"`
	End   PointDTO `json:"end"`
	Dates []string `json:"dates"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes a canned calculation.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"` // single, running
}

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
