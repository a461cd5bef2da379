package interest

// =============================================================================
// COMPUTE - Single-period entry point
// =============================================================================

// Compute returns the interest accrued over p and the cursor at which the
// next compounding step is due. It validates eagerly on every call since
// Period fields may be mutated between calls.
func Compute(p Period) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	return compute(p, p.cursor())
}

// Validate checks the fields Compute depends on.
func (p Period) Validate() error {
	if p.From.IsZero() || p.To.IsZero() {
		return ErrMissingDate
	}
	if p.From.After(p.To) {
		return &DateOrderError{From: p.From, To: p.To}
	}
	if !p.Convention.Valid() {
		return &UnknownConventionError{Value: int(p.Convention)}
	}
	if !p.Compound.Valid() {
		return &UnknownCompoundModeError{Value: int(p.Compound)}
	}
	return ValidateRate(p.Rate)
}

func compute(p Period, c Cursor) (Result, error) {
	pl, err := split(p, c)
	if err != nil {
		return Result{}, err
	}

	var (
		res      = Result{EndBalance: p.StartBalance}
		compound = p.Compound == CompoundMonthly
	)

	head, headDays := headAmount(p, pl)
	if pl.hasHead(p) {
		res.Breakdown.Head, res.Breakdown.HeadDays = head, headDays
		res.Events = append(res.Events, AccrualEvent{
			At: pl.headEnd, Kind: AccrualHead, Amount: head, Balance: p.StartBalance, Days: headDays,
		})
	}

	if !pl.hasMain(p) {
		// The next compounding date lies beyond To: nothing to capitalize.
		res.Cursor = Cursor{Next: pl.mainStart, AnchorDay: pl.anchorDay}
		return finish(p, res), nil
	}

	steps := monthSteps(pl.mainStart, p.To, pl.anchorDay)
	last := pl.mainStart
	if len(steps) > 0 {
		last = steps[len(steps)-1]
	}
	tailDays := adjustDays(p.Convention, p.To, DaysBetween(last, p.To))

	b := &res.Breakdown
	b.TailDays = tailDays
	if compound {
		balance := p.StartBalance + head
		accrued, balance, events := walk(p, pl.mainStart, balance, steps)
		b.Months, b.MonthCount = accrued, len(steps)
		b.Tail = DayProRata(balance, p.Rate, tailDays)
		res.Events = append(res.Events, events...)
		res.Events = appendTail(res.Events, p.To, b.Tail, balance, tailDays)
		res.EndBalance = balance
	} else {
		years, months, events := simpleUnits(p, steps)
		b.Years, b.Months = years, months
		b.YearCount, b.MonthCount = len(steps)/12, len(steps)%12
		b.Tail = DayProRata(p.StartBalance, p.Rate, tailDays)
		res.Events = append(res.Events, events...)
		res.Events = appendTail(res.Events, p.To, b.Tail, p.StartBalance, tailDays)
	}

	res.Cursor = nextCursor(pl.mainStart, steps, pl.anchorDay)
	return finish(p, res), nil
}

// finish totals the breakdown. ActualDays without compounding is a single
// day count over the whole span; the cursor is kept from the walk.
func finish(p Period, res Result) Result {
	if p.Convention == ActualDays && p.Compound == CompoundNone {
		days := DaysBetween(p.From, p.To)
		amount := DayProRata(p.StartBalance, p.Rate, days)
		res.Breakdown = Breakdown{Tail: amount, TailDays: days}
		res.Events = []AccrualEvent{{At: p.To, Kind: AccrualDays, Amount: amount, Balance: p.StartBalance, Days: days}}
	}
	res.Amount = res.Breakdown.Total()
	return res
}

func appendTail(events []AccrualEvent, at Date, amount, balance Cents, days int) []AccrualEvent {
	if days == 0 {
		return events
	}
	return append(events, AccrualEvent{At: at, Kind: AccrualTail, Amount: amount, Balance: balance, Days: days})
}

// ComputeWithCursor computes p as if its NextInterest were c.
func ComputeWithCursor(p Period, c Cursor) (Result, error) {
	p.NextInterest = &c
	return Compute(p)
}
