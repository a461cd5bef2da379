package valuation

import (
	"fmt"

	"github.com/warp/interest-engine/interest"
)

// Posted is a past period of a position: the principal outstanding during
// it and the interest actually posted.
type Posted struct {
	From      interest.Date
	To        interest.Date
	Principal interest.Cents
	Interest  interest.Cents
}

// Projected is a future period whose interest is estimated.
type Projected struct {
	From         interest.Date
	To           interest.Date
	StartBalance interest.Cents
	Rate         float64
}

// Position is a loan (a liability) or a deposit (an asset); both are
// valued the same way.
type Position struct {
	Posted    []Posted
	Projected []Projected
	Factors   *DiscountFactors
}

// Summary is the valuation of a position.
type Summary struct {
	PostedInterest interest.Cents
	Repayment      interest.Cents
	FutureInterest interest.Cents
}

// PostedInterest sums the interest posted in the history.
func (p Position) PostedInterest() interest.Cents {
	var total interest.Cents
	for _, h := range p.Posted {
		total += h.Interest
	}
	return total
}

// Repayment is the principal repaid across the history: the drop in
// principal from one posted period to the next, each drop discounted on the
// date of the later period.
func (p Position) Repayment() interest.Cents {
	if len(p.Posted) < 2 {
		return 0
	}
	if p.Factors.Len() == 0 {
		return p.Posted[0].Principal - p.Posted[len(p.Posted)-1].Principal
	}

	var total interest.Cents
	for i := 1; i < len(p.Posted); i++ {
		drop := p.Posted[i-1].Principal - p.Posted[i].Principal
		total += p.Factors.Discount(drop, p.Posted[i].From)
	}
	return total
}

// FutureInterest estimates the interest of every projected period with
// ActualPeriods and no compounding, discounted on each period's start.
func (p Position) FutureInterest() (interest.Cents, error) {
	var total interest.Cents
	for i, f := range p.Projected {
		res, err := interest.Compute(interest.Period{
			From:         f.From,
			To:           f.To,
			StartBalance: f.StartBalance,
			Rate:         f.Rate,
			Convention:   interest.ActualPeriods,
		})
		if err != nil {
			return 0, fmt.Errorf("projected period %d: %w", i, err)
		}
		total += p.Factors.Discount(res.Amount, f.From)
	}
	return total, nil
}

// Value computes the full summary.
func (p Position) Value() (Summary, error) {
	future, err := p.FutureInterest()
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		PostedInterest: p.PostedInterest(),
		Repayment:      p.Repayment(),
		FutureInterest: future,
	}, nil
}
