package factory

import (
	"github.com/shopspring/decimal"

	"github.com/warp/interest-engine/interest"
)

// =============================================================================
// RESULT JSON
// =============================================================================

// ResultJSON is the JSON representation of a single-period result.
// Amounts are in major units, with the raw cents alongside.
type ResultJSON struct {
	Amount       decimal.Decimal `json:"amount"`
	AmountCents  int64           `json:"amount_cents"`
	NextInterest CursorJSON      `json:"next_interest"`
	EndBalance   decimal.Decimal `json:"end_balance"`
	Breakdown    BreakdownJSON   `json:"breakdown"`
	Events       []EventJSON     `json:"events,omitempty"`
}

type BreakdownJSON struct {
	Head       decimal.Decimal `json:"head"`
	Years      decimal.Decimal `json:"years"`
	Months     decimal.Decimal `json:"months"`
	Tail       decimal.Decimal `json:"tail"`
	HeadDays   int             `json:"head_days"`
	YearCount  int             `json:"year_count"`
	MonthCount int             `json:"month_count"`
	TailDays   int             `json:"tail_days"`
}

type EventJSON struct {
	At      string          `json:"at"`
	Kind    string          `json:"kind"`
	Amount  decimal.Decimal `json:"amount"`
	Balance decimal.Decimal `json:"balance"`
	Days    int             `json:"days,omitempty"`
}

// RunningResultJSON is the JSON representation of a running result.
type RunningResultJSON struct {
	Amount       decimal.Decimal `json:"amount"`
	AmountCents  int64           `json:"amount_cents"`
	NextInterest CursorJSON      `json:"next_interest"`
	Periods      []ResultJSON    `json:"periods"`
}

// ResultToJSON converts a Result. Events are included when withEvents is set.
func ResultToJSON(res interest.Result, withEvents bool) ResultJSON {
	b := res.Breakdown
	rj := ResultJSON{
		Amount:       res.Amount.Decimal(),
		AmountCents:  int64(res.Amount),
		NextInterest: cursorToJSON(res.Cursor),
		EndBalance:   res.EndBalance.Decimal(),
		Breakdown: BreakdownJSON{
			Head:       b.Head.Decimal(),
			Years:      b.Years.Decimal(),
			Months:     b.Months.Decimal(),
			Tail:       b.Tail.Decimal(),
			HeadDays:   b.HeadDays,
			YearCount:  b.YearCount,
			MonthCount: b.MonthCount,
			TailDays:   b.TailDays,
		},
	}
	if withEvents {
		rj.Events = EventsToJSON(res.Events)
	}
	return rj
}

// RunningResultToJSON converts a RunningResult.
func RunningResultToJSON(res interest.RunningResult, withEvents bool) RunningResultJSON {
	rj := RunningResultJSON{
		Amount:       res.Amount.Decimal(),
		AmountCents:  int64(res.Amount),
		NextInterest: cursorToJSON(res.Cursor),
		Periods:      make([]ResultJSON, 0, len(res.Periods)),
	}
	for _, p := range res.Periods {
		rj.Periods = append(rj.Periods, ResultToJSON(p, withEvents))
	}
	return rj
}

func EventsToJSON(events []interest.AccrualEvent) []EventJSON {
	out := make([]EventJSON, 0, len(events))
	for _, e := range events {
		out = append(out, EventJSON{
			At:      e.At.String(),
			Kind:    string(e.Kind),
			Amount:  e.Amount.Decimal(),
			Balance: e.Balance.Decimal(),
			Days:    e.Days,
		})
	}
	return out
}

func cursorToJSON(c interest.Cursor) CursorJSON {
	return CursorJSON{Date: c.Next.String(), AnchorDay: c.AnchorDay}
}
