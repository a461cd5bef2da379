/*
Package factory provides JSON to Go conversion for interest calculations.

PURPOSE:
  Converts JSON calculation requests into interest.Period values and
  RunningOptions, and results back into JSON. The API server, the
  interestcalc CLI and the canned scenarios all speak this format.

JSON SCHEMA (single period):
  {
    "from": "2022-01-15",
    "to": "2022-04-10",
    "balance": "1500.00",
    "rate": "0.05",
    "convention": "actual_periods",
    "calendar_months": true,
    "compound": "monthly",
    "next_interest": {"date": "2022-02-01", "anchor_day": 1}
  }

JSON SCHEMA (running):
  {
    "convention": "actual_days",
    "compound": "monthly",
    "periods": [
      {"from": "2022-01-01", "to": "2022-01-15", "balance": "1000.00", "rate": "0.05"},
      {"from": "2022-01-15", "to": "2022-04-01", "balance": "1500.00", "rate": "0.05"}
    ]
  }

  Balances are in major units; rates are fractions per annum. Both accept
  JSON strings or numbers and are parsed exactly with shopspring/decimal.
  An empty convention means actual_days, an empty compound means none.

USAGE:
  factory := NewPeriodFactory()
  period, err := factory.ParsePeriod(jsonString)
  res, err := interest.Compute(period)

SEE ALSO:
  - interest/types.go: Period definition
  - factory/presets.go: Ready-made requests
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/interest-engine/interest"
)

// ErrInvalidInput wraps malformed JSON, dates and amounts.
var ErrInvalidInput = errors.New("invalid calculation input")

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) || interest.IsClientError(err)
}

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// PeriodJSON is the JSON representation of a period.
type PeriodJSON struct {
	From           string          `json:"from"`
	To             string          `json:"to"`
	Balance        decimal.Decimal `json:"balance"`
	Rate           decimal.Decimal `json:"rate"`
	Convention     string          `json:"convention,omitempty"`
	CalendarMonths bool            `json:"calendar_months,omitempty"`
	Compound       string          `json:"compound,omitempty"`
	NextInterest   *CursorJSON     `json:"next_interest,omitempty"`
}

// CursorJSON is the next compounding date and its anchor day.
type CursorJSON struct {
	Date      string `json:"date"`
	AnchorDay int    `json:"anchor_day,omitempty"`
}

// RunningJSON is a list of periods with shared settings. Per-period
// convention, calendar and compound fields are ignored.
type RunningJSON struct {
	Convention     string       `json:"convention,omitempty"`
	CalendarMonths bool         `json:"calendar_months,omitempty"`
	Compound       string       `json:"compound,omitempty"`
	Periods        []PeriodJSON `json:"periods"`
}

// =============================================================================
// PERIOD FACTORY
// =============================================================================

// PeriodFactory converts JSON requests to interest types.
type PeriodFactory struct{}

func NewPeriodFactory() *PeriodFactory {
	return &PeriodFactory{}
}

// ParsePeriod parses a JSON string into a Period.
func (f *PeriodFactory) ParsePeriod(jsonStr string) (interest.Period, error) {
	var pj PeriodJSON
	if err := json.Unmarshal([]byte(jsonStr), &pj); err != nil {
		return interest.Period{}, fmt.Errorf("%w: failed to parse period JSON: %v", ErrInvalidInput, err)
	}
	return f.FromJSON(pj)
}

// FromJSON converts PeriodJSON to an interest.Period. The result is not
// validated beyond what parsing requires; Compute validates.
func (f *PeriodFactory) FromJSON(pj PeriodJSON) (interest.Period, error) {
	from, err := parseDate("from", pj.From)
	if err != nil {
		return interest.Period{}, err
	}
	to, err := parseDate("to", pj.To)
	if err != nil {
		return interest.Period{}, err
	}
	conv, err := parseConvention(pj.Convention)
	if err != nil {
		return interest.Period{}, err
	}
	mode, err := interest.ParseCompoundMode(pj.Compound)
	if err != nil {
		return interest.Period{}, err
	}

	p := interest.Period{
		From:           from,
		To:             to,
		StartBalance:   interest.CentsFromDecimal(pj.Balance),
		Rate:           pj.Rate.InexactFloat64(),
		Convention:     conv,
		CalendarMonths: pj.CalendarMonths,
		Compound:       mode,
	}

	if pj.NextInterest != nil {
		next, err := parseDate("next_interest.date", pj.NextInterest.Date)
		if err != nil {
			return interest.Period{}, err
		}
		p.NextInterest = &interest.Cursor{Next: next, AnchorDay: pj.NextInterest.AnchorDay}
	}

	return p, nil
}

// ParseRunning parses a JSON string into periods and shared options.
func (f *PeriodFactory) ParseRunning(jsonStr string) ([]interest.Period, interest.RunningOptions, error) {
	var rj RunningJSON
	if err := json.Unmarshal([]byte(jsonStr), &rj); err != nil {
		return nil, interest.RunningOptions{}, fmt.Errorf("%w: failed to parse running JSON: %v", ErrInvalidInput, err)
	}
	return f.RunningFromJSON(rj)
}

// RunningFromJSON converts RunningJSON to periods and shared options.
func (f *PeriodFactory) RunningFromJSON(rj RunningJSON) ([]interest.Period, interest.RunningOptions, error) {
	var opts interest.RunningOptions
	conv, err := parseConvention(rj.Convention)
	if err != nil {
		return nil, opts, err
	}
	mode, err := interest.ParseCompoundMode(rj.Compound)
	if err != nil {
		return nil, opts, err
	}
	opts = interest.RunningOptions{Convention: conv, CalendarMonths: rj.CalendarMonths, Compound: mode}

	if len(rj.Periods) == 0 {
		return nil, opts, fmt.Errorf("%w: at least one period is required", ErrInvalidInput)
	}

	periods := make([]interest.Period, 0, len(rj.Periods))
	for i, pj := range rj.Periods {
		// Shared settings win; drop per-period ones so they cannot fail parsing.
		pj.Convention, pj.Compound, pj.NextInterest = "", "", nil
		p, err := f.FromJSON(pj)
		if err != nil {
			return nil, opts, fmt.Errorf("period %d: %w", i, err)
		}
		periods = append(periods, p)
	}
	return periods, opts, nil
}

// ToJSON converts a Period to PeriodJSON.
func (f *PeriodFactory) ToJSON(p interest.Period) PeriodJSON {
	pj := PeriodJSON{
		From:           p.From.String(),
		To:             p.To.String(),
		Balance:        p.StartBalance.Decimal(),
		Rate:           decimal.NewFromFloat(p.Rate),
		Convention:     p.Convention.String(),
		CalendarMonths: p.CalendarMonths,
		Compound:       p.Compound.String(),
	}
	if p.NextInterest != nil {
		pj.NextInterest = &CursorJSON{Date: p.NextInterest.Next.String(), AnchorDay: p.NextInterest.AnchorDay}
	}
	return pj
}

// RunningToJSON converts periods and options to RunningJSON.
func (f *PeriodFactory) RunningToJSON(periods []interest.Period, opts interest.RunningOptions) RunningJSON {
	rj := RunningJSON{
		Convention:     opts.Convention.String(),
		CalendarMonths: opts.CalendarMonths,
		Compound:       opts.Compound.String(),
	}
	for _, p := range periods {
		pj := f.ToJSON(p)
		pj.Convention, pj.CalendarMonths, pj.Compound, pj.NextInterest = "", false, "", nil
		rj.Periods = append(rj.Periods, pj)
	}
	return rj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseDate(field, s string) (interest.Date, error) {
	if s == "" {
		return interest.Date{}, fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	d, err := interest.ParseDate(s)
	if err != nil {
		return interest.Date{}, fmt.Errorf("%w: %s: %v", ErrInvalidInput, field, err)
	}
	return d, nil
}

func parseConvention(s string) (interest.Convention, error) {
	if s == "" {
		return interest.ActualDays, nil
	}
	return interest.ParseConvention(s)
}
