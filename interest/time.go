package interest

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Day-granular calendar date (interest never accrues intra-day)
// =============================================================================

// Date is a Gregorian calendar date. The zero value is "unset".
type Date struct {
	Time time.Time
}

const dateLayout = "2006-01-02"

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }
func (d Date) Equal(other Date) bool  { return d.Time.Equal(other.Time) }
func (d Date) After(other Date) bool  { return d.Time.After(other.Time) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int         { return d.Time.Year() }
func (d Date) Month() time.Month { return d.Time.Month() }
func (d Date) Day() int          { return d.Time.Day() }
func (d Date) IsZero() bool      { return d.Time.IsZero() }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time.Format(dateLayout)
}

// MinDate returns the earlier of two dates.
func MinDate(a, b Date) Date {
	if a.After(b) {
		return b
	}
	return a
}

// =============================================================================
// CALENDAR HELPERS
// =============================================================================

func DaysBetween(from, to Date) int { return int(to.Time.Sub(from.Time).Hours() / 24) }

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfNextMonth returns the 1st of the month following d.
func StartOfNextMonth(d Date) Date {
	return Date{Time: time.Date(d.Year(), d.Month()+1, 1, 0, 0, 0, 0, time.UTC)}
}

func EndOfMonth(year int, month time.Month) Date {
	return NewDate(year, month, DaysInMonth(year, month))
}

func AddMonthsClamped(d Date, months int) Date {
	first := time.Date(d.Year(), d.Month()+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	day := d.Day()
	if last := DaysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return NewDate(first.Year(), first.Month(), day)
}

// NextCompoundingDate shifts from one calendar month forward. When the
// clamped shift lands on day 28 or later but before anchorDay, the date is
// moved to anchorDay if that day exists in the month. This keeps a day-31
// anchor rolling through 30-day months and February.
func NextCompoundingDate(from Date, anchorDay int) Date {
	next := AddMonthsClamped(from, 1)
	if next.Day() < anchorDay && next.Day() >= 28 &&
		anchorDay <= DaysInMonth(next.Year(), next.Month()) {
		next = NewDate(next.Year(), next.Month(), anchorDay)
	}
	return next
}

// =============================================================================
// SPAN - Calendar decomposition of an interval
// =============================================================================

// Span is an elapsed interval in whole years, whole months and remaining days.
// 2022-01-31 to 2022-03-31 is 2 months and 0 days regardless of day count.
type Span struct {
	Years  int
	Months int
	Days   int
}

func (s Span) TotalMonths() int { return s.Years*12 + s.Months }

func (s Span) IsZero() bool { return s == Span{} }

func (s Span) String() string {
	return fmt.Sprintf("%dy%dm%dd", s.Years, s.Months, s.Days)
}

// Elapsed decomposes [from, to) using calendar arithmetic. from must not be
// after to.
func Elapsed(from, to Date) Span {
	months := (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
	for months > 0 && AddMonthsClamped(from, months).After(to) {
		months--
	}
	return Span{
		Years:  months / 12,
		Months: months % 12,
		Days:   DaysBetween(AddMonthsClamped(from, months), to),
	}
}
