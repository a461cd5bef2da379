package valuation

import (
	"errors"
	"fmt"
	"math"

	"github.com/warp/interest-engine/interest"
)

var (
	ErrHistoryTooShort = errors.New("share history needs at least two quotes")
	ErrQuoteOrder      = errors.New("share quotes must be in ascending date order")
	ErrCannotValue     = errors.New("cannot value share on date")
)

// Quote is a share's price and the dividend paid for the period ending on At.
type Quote struct {
	At       interest.Date
	Price    interest.Cents
	Dividend interest.Cents
}

// Stock values one share from its history.
type Stock struct {
	history []Quote
	factors *DiscountFactors
}

// NewStock validates the history. factors may be nil.
func NewStock(history []Quote, factors *DiscountFactors) (*Stock, error) {
	if len(history) < 2 {
		return nil, ErrHistoryTooShort
	}
	for i := 1; i < len(history); i++ {
		if !history[i].At.After(history[i-1].At) {
			return nil, fmt.Errorf("%w: %s after %s", ErrQuoteOrder, history[i].At, history[i-1].At)
		}
	}
	return &Stock{history: history, factors: factors}, nil
}

// Growth is the mean price change between consecutive quotes, floored.
func (s *Stock) Growth() interest.Cents {
	first, last := s.history[0], s.history[len(s.history)-1]
	steps := float64(len(s.history) - 1)
	return interest.Cents(math.Floor(float64(last.Price-first.Price) / steps))
}

func (s *Stock) MeanDividend() interest.Cents {
	var total interest.Cents
	for _, q := range s.history {
		total += q.Dividend
	}
	return interest.Cents(math.Round(float64(total) / float64(len(s.history))))
}

// ValueAt returns the quoted price on at, or the price interpolated
// between the quotes around it. Dates outside the history fail.
func (s *Stock) ValueAt(at interest.Date) (interest.Cents, error) {
	for i, q := range s.history {
		if q.At.Equal(at) {
			return q.Price, nil
		}
		if i > 0 && at.Before(q.At) && at.After(s.history[i-1].At) {
			prev := s.history[i-1]
			points, err := Interpolate(Point{At: prev.At, Amount: prev.Price}, Point{At: q.At, Amount: q.Price}, at)
			if err != nil {
				return 0, err
			}
			return points[0].Amount, nil
		}
	}
	return 0, fmt.Errorf("%w %s: outside history", ErrCannotValue, at)
}

// EstimatedValue projects the price past the last quote: the mean growth
// per year pro-rated over the elapsed years, months and days, plus the mean
// dividend for each whole year. Growth and dividends are discounted on at.
func (s *Stock) EstimatedValue(at interest.Date) (interest.Cents, error) {
	last := s.history[len(s.history)-1]
	if !at.After(last.At) {
		return 0, fmt.Errorf("%w %s: within history, use ValueAt", ErrCannotValue, at)
	}

	growth := s.Growth()
	span := interest.Elapsed(last.At, at)
	valueGrowth := interest.Cents(span.Years)*growth +
		interest.Cents(math.Round(float64(growth)*float64(span.Months)/12)) +
		interest.Cents(math.Round(float64(growth)*float64(span.Days)/365))
	dividends := interest.Cents(span.Years) * s.MeanDividend()

	return last.Price + s.factors.Discount(valueGrowth, at) + s.factors.Discount(dividends, at), nil
}
