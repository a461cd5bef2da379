package annuity

import "github.com/warp/interest-engine/interest"

// Installment is one month of an annuity schedule.
type Installment struct {
	Number    int
	Due       interest.Date
	Interest  interest.Cents
	Principal interest.Cents
	Payment   interest.Cents
	Remaining interest.Cents
}

// Plan is a full repayment schedule.
type Plan []Installment

func (p Plan) TotalInterest() interest.Cents {
	var total interest.Cents
	for _, in := range p {
		total += in.Interest
	}
	return total
}

// Last returns the final installment. The plan must not be empty.
func (p Plan) Last() Installment { return p[len(p)-1] }

// Schedule lays out the installments of an annuity starting on start. The
// first installment is due one month after start; due dates keep start's
// day of month, clamped into short months.
//
// Each month's interest is interest.MonthlyRate on the remaining principal.
// The payment is the closed form at the nominal rate annualRate/12, which is
// slightly higher, so the last installment is smaller than the others and,
// at high rates over long terms, the loan is repaid before months run out.
// The plan stops at the installment that clears the balance.
func Schedule(principal interest.Cents, annualRate float64, months int, start interest.Date) (Plan, error) {
	payment, err := Payment(principal, annualRate, months)
	if err != nil {
		return nil, err
	}

	var (
		plan      = make(Plan, 0, months)
		remaining = principal
	)
	for n := 1; n <= months; n++ {
		in := Installment{
			Number:   n,
			Due:      interest.AddMonthsClamped(start, n),
			Interest: interest.MonthlyRate(remaining, annualRate),
		}
		in.Principal = payment - in.Interest
		if n == months || in.Principal > remaining {
			in.Principal = remaining
		}
		in.Payment = in.Interest + in.Principal
		remaining -= in.Principal
		in.Remaining = remaining
		plan = append(plan, in)
		if remaining == 0 {
			break
		}
	}
	return plan, nil
}
