package valuation

import (
	"errors"
	"fmt"
	"math"

	"github.com/warp/interest-engine/interest"
)

var (
	ErrFactorOrder   = errors.New("discount factor dates must be ascending")
	ErrInvalidFactor = errors.New("discount factor must be a finite fraction")
)

// Factor is the fraction of an amount to discount when it falls on At.
type Factor struct {
	At       interest.Date
	Fraction float64
}

// DiscountFactors is an ordered set of factors. Between two factor dates
// the fraction is interpolated by day; after the last date it stays at the
// last fraction; before the first date nothing is discounted. A nil
// *DiscountFactors discounts nothing.
type DiscountFactors struct {
	factors []Factor
}

// NewDiscountFactors builds a set from factors in ascending date order.
func NewDiscountFactors(factors ...Factor) (*DiscountFactors, error) {
	d := &DiscountFactors{factors: make([]Factor, 0, len(factors))}
	for _, f := range factors {
		if err := d.Add(f); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Add appends f. Its date must be after every date already present.
func (d *DiscountFactors) Add(f Factor) error {
	if math.IsNaN(f.Fraction) || math.IsInf(f.Fraction, 0) {
		return fmt.Errorf("%w: %v on %s", ErrInvalidFactor, f.Fraction, f.At)
	}
	if n := len(d.factors); n > 0 && !f.At.After(d.factors[n-1].At) {
		return fmt.Errorf("%w: %s after %s", ErrFactorOrder, f.At, d.factors[n-1].At)
	}
	d.factors = append(d.factors, f)
	return nil
}

func (d *DiscountFactors) Len() int {
	if d == nil {
		return 0
	}
	return len(d.factors)
}

// FractionAt returns the discount fraction applying on at.
func (d *DiscountFactors) FractionAt(at interest.Date) float64 {
	if d.Len() == 0 {
		return 0
	}
	for i := 0; i+1 < len(d.factors); i++ {
		lo, hi := d.factors[i], d.factors[i+1]
		if at.Before(lo.At) || at.After(hi.At) {
			continue
		}
		days := float64(interest.DaysBetween(lo.At, at))
		span := float64(interest.DaysBetween(lo.At, hi.At))
		return lo.Fraction + days*(hi.Fraction-lo.Fraction)/span
	}

	var fraction float64
	for _, f := range d.factors {
		if f.At.After(at) {
			break
		}
		fraction = f.Fraction
	}
	return fraction
}

// Discount returns amount less round(amount * FractionAt(at)).
func (d *DiscountFactors) Discount(amount interest.Cents, at interest.Date) interest.Cents {
	fraction := d.FractionAt(at)
	if fraction == 0 {
		return amount
	}
	return amount - interest.Cents(math.Round(float64(amount)*fraction))
}
