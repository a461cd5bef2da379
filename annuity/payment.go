/*
Package annuity computes fixed monthly payments and repayment schedules.

PURPOSE:
  An annuity repays principal plus interest in equal monthly installments.
  The installment is the closed form at the nominal monthly rate (annual
  rate / 12). The interest part of each installment is interest.MonthlyRate
  on the outstanding balance; the rest repays principal. The last
  installment clears whatever is left and is usually a little smaller.

USAGE:
  pay, err := annuity.Payment(10_000_000, 0.08, 120) // 121328
  plan, err := annuity.Schedule(120000, 0.03, 20, interest.NewDate(2024, time.January, 15))

SEE ALSO:
  - interest/convention.go: MonthlyRate, ValidateRate
*/
package annuity

import (
	"errors"
	"math"

	"github.com/warp/interest-engine/interest"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrPrincipalRequired = errors.New("annuity principal must be greater than zero")
	ErrPeriodsRequired   = errors.New("annuity must run for at least one month")
)

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrPrincipalRequired) ||
		errors.Is(err, ErrPeriodsRequired) ||
		errors.Is(err, interest.ErrInvalidRate)
}

// =============================================================================
// PAYMENT
// =============================================================================

// Payment returns the monthly installment that repays principal over months
// at annualRate: P * r / (1 - (1+r)^-n) with r = annualRate/12. A zero rate
// splits the principal evenly.
func Payment(principal interest.Cents, annualRate float64, months int) (interest.Cents, error) {
	if err := validate(principal, annualRate, months); err != nil {
		return 0, err
	}
	r := monthlyRate(annualRate)
	if r == 0 {
		return interest.Cents(math.Round(float64(principal) / float64(months))), nil
	}
	p := float64(principal) * r / (1 - math.Pow(1+r, -float64(months)))
	return interest.Cents(math.Round(p)), nil
}

func monthlyRate(annualRate float64) float64 { return annualRate / 12 }

func validate(principal interest.Cents, annualRate float64, months int) error {
	if principal <= 0 {
		return ErrPrincipalRequired
	}
	if months <= 0 {
		return ErrPeriodsRequired
	}
	return interest.ValidateRate(annualRate)
}
