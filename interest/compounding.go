package interest

// =============================================================================
// COMPOUNDING ENGINE - Month-by-month walk
// =============================================================================

// monthSteps returns the compounding dates in (start, to], one calendar
// month apart and anchored on anchorDay. The walk always terminates: every
// step moves forward by at least 28 days.
func monthSteps(start, to Date, anchorDay int) []Date {
	var steps []Date
	at := start
	for {
		next := NextCompoundingDate(at, anchorDay)
		if next.After(to) {
			return steps
		}
		steps = append(steps, next)
		at = next
	}
}

// walk capitalizes one month of interest per step. ActualDays values each
// step on its actual day count; the periodic conventions use MonthlyRate.
// It returns the interest accrued and the balance after the last step.
func walk(p Period, start Date, balance Cents, steps []Date) (Cents, Cents, []AccrualEvent) {
	var (
		accrued Cents
		events  = make([]AccrualEvent, 0, len(steps))
		from    = start
	)
	for _, at := range steps {
		var step Cents
		if p.Convention == ActualDays {
			step = DayProRata(balance, p.Rate, DaysBetween(from, at))
		} else {
			step = MonthlyRate(balance, p.Rate)
		}
		events = append(events, AccrualEvent{At: at, Kind: AccrualMonth, Amount: step, Balance: balance})
		balance += step
		accrued += step
		from = at
	}
	return accrued, balance, events
}

// nextCursor advances the cursor one step past the last compounding date
// reached in the span.
func nextCursor(start Date, steps []Date, anchorDay int) Cursor {
	last := start
	if len(steps) > 0 {
		last = steps[len(steps)-1]
	}
	return Cursor{Next: NextCompoundingDate(last, anchorDay), AnchorDay: anchorDay}
}
