package interest

// =============================================================================
// ACCRUAL EVENTS - Itemized pieces of a computation
// =============================================================================

// AccrualEvent is a single accrued piece of interest. At is the date the
// piece ends on; Balance is the interest-bearing balance it was computed on.
type AccrualEvent struct {
	At      Date
	Kind    AccrualKind
	Amount  Cents
	Balance Cents
	Days    int // pro-rata pieces only
}

type AccrualKind string

const (
	AccrualHead  AccrualKind = "head"  // pro-rata up to the cursor or the next 1st of a month
	AccrualYear  AccrualKind = "year"  // one whole year of simple interest
	AccrualMonth AccrualKind = "month" // one whole month (compounded when CompoundMonthly)
	AccrualTail  AccrualKind = "tail"  // pro-rata remainder after whole units
	AccrualDays  AccrualKind = "days"  // ActualDays over the whole span
)

// Schedule is the ordered list of events of one or more computations.
type Schedule []AccrualEvent

// Total sums the event amounts.
func (s Schedule) Total() Cents {
	var total Cents
	for _, e := range s {
		total += e.Amount
	}
	return total
}

// Until returns the events ending on or before at.
func (s Schedule) Until(at Date) Schedule {
	var out Schedule
	for _, e := range s {
		if e.At.After(at) {
			break
		}
		out = append(out, e)
	}
	return out
}
