package interest

// =============================================================================
// PERIOD SPLITTER - Head / whole units / tail decomposition
// =============================================================================

// plan is the decomposition of a period before any amount is valued.
//
//	[From, headEnd)   pro-rata head (empty when mainStart == From)
//	[mainStart, To)   whole years and months, then the tail
//
// When mainStart is after To the whole period is head and there is no
// main span.
type plan struct {
	headEnd   Date
	mainStart Date
	anchorDay int
}

func (pl plan) hasHead(p Period) bool { return pl.mainStart.After(p.From) }

func (pl plan) hasMain(p Period) bool { return !pl.mainStart.After(p.To) }

// split decides where the head ends and which day anchors the month walk.
//
// With CalendarMonths the head runs to the next 1st of a month. Otherwise
// the cursor bounds the head: a cursor one month out, either by plain
// calendar arithmetic or as the anchored step from From (Feb 28 -> Mar 31
// on a day-31 anchor), is a whole month and is left to the month walk.
// Under a periodic convention a cursor further than that is rejected.
func split(p Period, c Cursor) (plan, error) {
	if p.CalendarMonths {
		if p.From.Day() == 1 {
			return plan{headEnd: p.From, mainStart: p.From, anchorDay: 1}, nil
		}
		next := StartOfNextMonth(p.From)
		return plan{headEnd: MinDate(next, p.To), mainStart: next, anchorDay: 1}, nil
	}

	span := Elapsed(p.From, c.Next)
	if span == (Span{Months: 1}) || c.Next.Equal(NextCompoundingDate(p.From, c.anchor())) {
		return plan{headEnd: p.From, mainStart: p.From, anchorDay: c.anchor()}, nil
	}
	if p.Convention.periodic() && span.TotalMonths() > 0 {
		return plan{}, &CursorTooFarError{From: p.From, Cursor: c.Next, Elapsed: span}
	}
	return plan{headEnd: MinDate(c.Next, p.To), mainStart: c.Next, anchorDay: c.anchor()}, nil
}

// headAmount values [From, headEnd) on the start balance.
func headAmount(p Period, pl plan) (Cents, int) {
	if !pl.hasHead(p) {
		return 0, 0
	}
	days := dayCount(p.Convention, p.From, pl.headEnd)
	return DayProRata(p.StartBalance, p.Rate, days), days
}

// simpleUnits values whole years and months on the start balance: each
// year at YearlyRate, each remaining month at MonthlyRate.
func simpleUnits(p Period, steps []Date) (years, months Cents, events []AccrualEvent) {
	fullYears := len(steps) / 12
	perYear := YearlyRate(p.StartBalance, p.Rate)
	perMonth := MonthlyRate(p.StartBalance, p.Rate)
	for i, at := range steps {
		n := i + 1
		switch {
		case n <= fullYears*12 && n%12 == 0:
			years += perYear
			events = append(events, AccrualEvent{At: at, Kind: AccrualYear, Amount: perYear, Balance: p.StartBalance})
		case n > fullYears*12:
			months += perMonth
			events = append(events, AccrualEvent{At: at, Kind: AccrualMonth, Amount: perMonth, Balance: p.StartBalance})
		}
	}
	return years, months, events
}
