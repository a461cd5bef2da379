/*
Package interest computes accrued interest over arbitrary date ranges.

PURPOSE:
  Converts (dates, balance, rate, convention) into an integer amount in the
  smallest currency denomination, and chains such computations across
  consecutive periods whose balance or rate changes mid-stream.

KEY CONCEPTS IN THIS FILE (types.go):
  - Cents: Signed integer money amount (no currency attached)
  - Convention: Day-count convention (ActualDays, ActualPeriods, EqualMonths)
  - CompoundMode: None or Monthly
  - Period: The unit of computation
  - Cursor: The next compounding date, threaded between periods

DESIGN PRINCIPLES:
  1. Pure: Compute is a function of the Period's current field values.
     Nothing is cached, so mutating Rate or To and recomputing is safe.
  2. Integer money: every component is rounded half away from zero before
     it is summed. Fractions never carry across components.
  3. Explicit cursor: the compounding cursor is returned in the Result
     instead of being written back into the Period.

USAGE:
  p := interest.Period{
      From:         interest.NewDate(2022, time.January, 1),
      To:           interest.NewDate(2023, time.January, 1),
      StartBalance: 150000,
      Rate:         0.05,
      Convention:   interest.ActualPeriods,
  }
  res, err := interest.Compute(p)

SEE ALSO:
  - convention.go: Day-count primitives (MonthlyRate, YearlyRate, DayProRata)
  - splitter.go: Head / years / months / days decomposition
  - compounding.go: Month-by-month walk
  - running.go: Chaining periods
*/
package interest

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CENTS - Money in the smallest denomination
// =============================================================================

type Cents int64

// Decimal returns the amount in major units (2 decimal places).
func (c Cents) Decimal() decimal.Decimal { return decimal.New(int64(c), -2) }

func (c Cents) String() string { return c.Decimal().StringFixed(2) }

// CentsFromDecimal converts a major-unit amount, rounding half away from zero.
func CentsFromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Shift(2).Round(0).IntPart())
}

// roundCents rounds a float amount half away from zero.
func roundCents(v float64) Cents { return Cents(math.Round(v)) }

// =============================================================================
// CONVENTION - Closed enum of day-count conventions
// =============================================================================

type Convention int

const (
	// ActualDays: interest is proportional to elapsed days / 365.
	ActualDays Convention = iota + 1
	// ActualPeriods: whole years, whole months (geometric monthly rate) and
	// remaining days pro-rata.
	ActualPeriods
	// EqualMonths: as ActualPeriods but a piece ending after day 30 loses a day.
	EqualMonths
)

var conventionNames = map[Convention]string{
	ActualDays:    "actual_days",
	ActualPeriods: "actual_periods",
	EqualMonths:   "equal_months",
}

func (c Convention) Valid() bool {
	_, ok := conventionNames[c]
	return ok
}

func (c Convention) String() string {
	if name, ok := conventionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("convention(%d)", int(c))
}

// periodic reports whether the convention decomposes into years and months.
func (c Convention) periodic() bool { return c == ActualPeriods || c == EqualMonths }

func ParseConvention(s string) (Convention, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for c, name := range conventionNames {
		if name == key {
			return c, nil
		}
	}
	return 0, &UnknownConventionError{Value: s}
}

// =============================================================================
// COMPOUND MODE
// =============================================================================

type CompoundMode int

const (
	CompoundNone CompoundMode = iota
	CompoundMonthly
)

var compoundNames = map[CompoundMode]string{
	CompoundNone:    "none",
	CompoundMonthly: "monthly",
}

func (m CompoundMode) Valid() bool {
	_, ok := compoundNames[m]
	return ok
}

func (m CompoundMode) String() string {
	if name, ok := compoundNames[m]; ok {
		return name
	}
	return fmt.Sprintf("compound(%d)", int(m))
}

// ParseCompoundMode accepts "none", "monthly" and the empty string (none).
func ParseCompoundMode(s string) (CompoundMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return CompoundNone, nil
	}
	for m, name := range compoundNames {
		if name == key {
			return m, nil
		}
	}
	return 0, &UnknownCompoundModeError{Value: s}
}

// =============================================================================
// CURSOR - Next compounding date, carried across period boundaries
// =============================================================================

// Cursor marks where the next compounding step is due. AnchorDay is the
// day-of-month the compounding schedule is anchored to; it differs from
// Next.Day() when Next was clamped into a short month.
type Cursor struct {
	Next      Date
	AnchorDay int
}

// CursorAt returns a cursor anchored on the day of d.
func CursorAt(d Date) Cursor { return Cursor{Next: d, AnchorDay: d.Day()} }

// DefaultCursor is one calendar month after from, anchored on from's day.
func DefaultCursor(from Date) Cursor {
	return Cursor{Next: AddMonthsClamped(from, 1), AnchorDay: from.Day()}
}

func (c Cursor) IsZero() bool { return c.Next.IsZero() }

func (c Cursor) anchor() int {
	if c.AnchorDay <= 0 {
		return c.Next.Day()
	}
	return c.AnchorDay
}

// =============================================================================
// PERIOD - The unit of computation
// =============================================================================

// Period is an interest-bearing balance over [From, To). Fields may be
// changed between calls to Compute; nothing is memoized.
type Period struct {
	From         Date
	To           Date
	StartBalance Cents
	Rate         float64 // fraction per annum, e.g. 0.05; may be zero or negative
	Convention   Convention

	// CalendarMonths pro-rates the span up to the next 1st of a month and
	// counts whole months from there.
	CalendarMonths bool
	Compound       CompoundMode

	// NextInterest is the compounding cursor. nil means one month after From.
	NextInterest *Cursor
}

// cursor resolves the effective cursor. A cursor on or before From is stale.
func (p Period) cursor() Cursor {
	if p.NextInterest == nil || !p.NextInterest.Next.After(p.From) {
		return DefaultCursor(p.From)
	}
	return Cursor{Next: p.NextInterest.Next, AnchorDay: p.NextInterest.anchor()}
}

func (p Period) String() string {
	return fmt.Sprintf("[%s, %s) %s @ %g %s/%s", p.From, p.To, p.StartBalance, p.Rate, p.Convention, p.Compound)
}

// =============================================================================
// RESULT
// =============================================================================

// Breakdown itemizes the amount. YearCount and MonthCount are the whole
// units counted after the head; TailDays is the (adjusted) remainder.
type Breakdown struct {
	Head       Cents
	Years      Cents
	Months     Cents
	Tail       Cents
	HeadDays   int
	YearCount  int
	MonthCount int
	TailDays   int
}

func (b Breakdown) Total() Cents { return b.Head + b.Years + b.Months + b.Tail }

type Result struct {
	Amount    Cents
	Cursor    Cursor
	Breakdown Breakdown
	Events    []AccrualEvent

	// EndBalance is StartBalance plus capitalized interest. Without
	// compounding it equals StartBalance.
	EndBalance Cents
}
