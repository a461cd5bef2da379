package interest

import "math"

// =============================================================================
// DAY-COUNT PRIMITIVES
// =============================================================================

const daysPerYear = 365

// MonthlyRate is one month of interest at the geometric monthly equivalent
// of annualRate: round(balance * ((1+annualRate)^(1/12) - 1)).
func MonthlyRate(balance Cents, annualRate float64) Cents {
	return roundCents(float64(balance) * (math.Pow(1+annualRate, 1.0/12) - 1))
}

// YearlyRate is one year of simple interest: round(balance * annualRate).
func YearlyRate(balance Cents, annualRate float64) Cents {
	return roundCents(float64(balance) * annualRate)
}

// DayProRata is round(balance * annualRate * days / 365).
func DayProRata(balance Cents, annualRate float64, days int) Cents {
	return roundCents(float64(balance) * annualRate * float64(days) / daysPerYear)
}

// Amount computes interest on balance over [from, to) without compounding,
// calendar alignment or cursor.
func Amount(balance Cents, annualRate float64, from, to Date, conv Convention) (Cents, error) {
	res, err := Compute(Period{
		From:         from,
		To:           to,
		StartBalance: balance,
		Rate:         annualRate,
		Convention:   conv,
	})
	if err != nil {
		return 0, err
	}
	return res.Amount, nil
}

// dayCount counts the days of a piece ending on to. Under EqualMonths a
// piece ending after day 30 loses one day; the count never goes negative.
func dayCount(conv Convention, from, to Date) int {
	return adjustDays(conv, to, DaysBetween(from, to))
}

func adjustDays(conv Convention, end Date, days int) int {
	if conv == EqualMonths && end.Day() > 30 {
		days--
	}
	if days < 0 {
		return 0
	}
	return days
}

// ValidateRate rejects rates the primitives cannot value: NaN, infinities
// and anything at or below -100%.
func ValidateRate(rate float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= -1 {
		return &InvalidRateError{Rate: rate}
	}
	return nil
}
