package factory

import (
	"encoding/json"
)

// =============================================================================
// PRESET REQUESTS
// =============================================================================
//
// Ready-made JSON requests for common products. Balances and rates are
// passed as strings in major units and fractions ("1500.00", "0.05").

// SavingsDepositJSON returns a monthly-compounding deposit on calendar
// months: interest is credited on the 1st, the first month pro-rata.
func SavingsDepositJSON(from, to, balance, rate string) string {
	pj := map[string]interface{}{
		"from":            from,
		"to":              to,
		"balance":         balance,
		"rate":            rate,
		"convention":      "actual_days",
		"calendar_months": true,
		"compound":        "monthly",
	}
	b, _ := json.MarshalIndent(pj, "", "  ")
	return string(b)
}

// TermLoanJSON returns a simple-interest loan on equal months.
func TermLoanJSON(from, to, balance, rate string) string {
	pj := map[string]interface{}{
		"from":       from,
		"to":         to,
		"balance":    balance,
		"rate":       rate,
		"convention": "equal_months",
	}
	b, _ := json.MarshalIndent(pj, "", "  ")
	return string(b)
}

// TopUp is a balance change at a date, in major units.
type TopUp struct {
	At      string
	Balance string
}

// MortgageTopUpJSON returns a running request for a mortgage whose balance
// changes at each top-up. The first period starts at from with balance;
// each top-up starts a new period. Rate is constant.
func MortgageTopUpJSON(from, to, balance, rate string, topUps ...TopUp) string {
	var periods []map[string]interface{}
	start, current := from, balance
	for _, tu := range topUps {
		periods = append(periods, map[string]interface{}{
			"from": start, "to": tu.At, "balance": current, "rate": rate,
		})
		start, current = tu.At, tu.Balance
	}
	periods = append(periods, map[string]interface{}{
		"from": start, "to": to, "balance": current, "rate": rate,
	})

	rj := map[string]interface{}{
		"convention": "actual_periods",
		"compound":   "monthly",
		"periods":    periods,
	}
	b, _ := json.MarshalIndent(rj, "", "  ")
	return string(b)
}
