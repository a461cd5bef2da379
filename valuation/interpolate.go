/*
Package valuation values interest-bearing positions and shares.

PURPOSE:
  Consumers of the interest engine that answer "what is this worth":
  interest already posted, principal repaid, interest still to come on
  projected periods, and the estimated value of a share. Future amounts can
  be discounted with dated discount factors.

KEY CONCEPTS:
  Point:            An amount known on a date
  DiscountFactors:  Dated fractions, interpolated between dates
  Position:         A loan or deposit: posted history plus projected periods
  Stock:            Price and dividend history of one share

SEE ALSO:
  - interest/calculator.go: Compute, used for projected periods
*/
package valuation

import (
	"errors"
	"fmt"
	"math"

	"github.com/warp/interest-engine/interest"
)

var (
	ErrPointOrder  = errors.New("start date must be before end date")
	ErrDateOutside = errors.New("date outside interpolation span")
)

// DateOutsideError reports a requested date outside [From, To).
type DateOutsideError struct {
	At, From, To interest.Date
}

func (e *DateOutsideError) Error() string {
	return fmt.Sprintf("date %s outside [%s, %s)", e.At, e.From, e.To)
}

func (e *DateOutsideError) Unwrap() error { return ErrDateOutside }

// Point is an amount known on a date.
type Point struct {
	At     interest.Date
	Amount interest.Cents
}

// Interpolate spreads the change from start to end linearly over the days
// between them and returns the amount on each requested date. Dates must
// lie in [start.At, end.At).
func Interpolate(start, end Point, dates ...interest.Date) ([]Point, error) {
	if !start.At.Before(end.At) {
		return nil, fmt.Errorf("%w: %s >= %s", ErrPointOrder, start.At, end.At)
	}

	span := float64(interest.DaysBetween(start.At, end.At))
	delta := float64(end.Amount - start.Amount)
	out := make([]Point, 0, len(dates))
	for _, at := range dates {
		if at.Before(start.At) || !at.Before(end.At) {
			return nil, &DateOutsideError{At: at, From: start.At, To: end.At}
		}
		days := float64(interest.DaysBetween(start.At, at))
		amount := interest.Cents(math.Round(days/span*delta)) + start.Amount
		out = append(out, Point{At: at, Amount: amount})
	}
	return out, nil
}

// IsClientError returns true if the error is due to invalid caller input,
// including engine validation errors from projected periods.
func IsClientError(err error) bool {
	return errors.Is(err, ErrPointOrder) ||
		errors.Is(err, ErrDateOutside) ||
		errors.Is(err, ErrFactorOrder) ||
		errors.Is(err, ErrInvalidFactor) ||
		errors.Is(err, ErrHistoryTooShort) ||
		errors.Is(err, ErrQuoteOrder) ||
		errors.Is(err, ErrCannotValue) ||
		interest.IsClientError(err)
}
