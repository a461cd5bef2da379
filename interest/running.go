/*
running.go - Running interest across consecutive periods

PURPOSE:
  A liability or asset whose balance or rate changed over time is a list of
  periods, each with its own StartBalance and Rate. Running computes them
  as one continuous accrual: the compounding cursor returned by one period
  is handed to the next, so a mid-month top-up does not reset the
  compounding anchor.

WHAT IS THREADED:
  Only the cursor. Principal is NOT rolled forward; every period's
  StartBalance is supplied by the caller.

EXAMPLE:
  res, err := interest.Running([]interest.Period{
      {From: jan1, To: jan15, StartBalance: 100000, Rate: 0.05},
      {From: jan15, To: jul1, StartBalance: 150000, Rate: 0.05},
  }, interest.RunningOptions{Convention: interest.ActualDays, Compound: interest.CompoundMonthly})
*/
package interest

import "fmt"

// RunningOptions are shared by every period of a running computation and
// override the per-period settings.
type RunningOptions struct {
	Convention     Convention
	CalendarMonths bool
	Compound       CompoundMode
}

type RunningResult struct {
	Amount  Cents
	Cursor  Cursor
	Periods []Result
}

// Schedule concatenates the events of all periods.
func (r RunningResult) Schedule() Schedule {
	var s Schedule
	for _, p := range r.Periods {
		s = append(s, p.Events...)
	}
	return s
}

// Running sums the interest of periods in order. The cursor starts one
// month after the first period's From. The input slice is not modified.
func Running(periods []Period, opts RunningOptions) (RunningResult, error) {
	var out RunningResult
	if len(periods) == 0 {
		return out, nil
	}

	cursor := DefaultCursor(periods[0].From)
	out.Periods = make([]Result, 0, len(periods))
	for i, p := range periods {
		p.Convention = opts.Convention
		p.CalendarMonths = opts.CalendarMonths
		p.Compound = opts.Compound
		p.NextInterest = &cursor

		res, err := Compute(p)
		if err != nil {
			return RunningResult{}, fmt.Errorf("period %d %s: %w", i, p, err)
		}
		out.Amount += res.Amount
		out.Periods = append(out.Periods, res)
		cursor = res.Cursor
	}
	out.Cursor = cursor
	return out, nil
}
