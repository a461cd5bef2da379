package interest_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/interest-engine/interest"
)

func TestMonthlyRate(t *testing.T) {
	assert.Equal(t, interest.Cents(6), interest.MonthlyRate(1500, 0.05))
	assert.Equal(t, interest.Cents(6838), interest.MonthlyRate(115000, 1.0))
	assert.Equal(t, interest.Cents(0), interest.MonthlyRate(1500, 0))
}

func TestYearlyRate(t *testing.T) {
	assert.Equal(t, interest.Cents(150), interest.YearlyRate(1500, 0.1))
	assert.Equal(t, interest.Cents(300000), interest.YearlyRate(150000, 2.0))
	assert.Equal(t, interest.Cents(-1000), interest.YearlyRate(100000, -0.01))
}

func TestDayProRata_LinearInDays(t *testing.T) {
	// GIVEN: 73000 at 5% accrues exactly 10 per day
	// WHEN: Doubling the number of days
	// THEN: The amount doubles
	once := interest.DayProRata(73000, 0.05, 30)
	twice := interest.DayProRata(73000, 0.05, 60)
	assert.Equal(t, interest.Cents(300), once)
	assert.Equal(t, 2*once, twice)
}

func TestDayProRata_RoundsHalfAwayFromZero(t *testing.T) {
	// 73 * 1.0 * 2.5 / 365 = 0.5
	assert.Equal(t, interest.Cents(1), interest.DayProRata(73, 2.5, 1))
	assert.Equal(t, interest.Cents(-1), interest.DayProRata(-73, 2.5, 1))
}

func TestCents_String(t *testing.T) {
	assert.Equal(t, "1234.56", interest.Cents(123456).String())
	assert.Equal(t, "-0.05", interest.Cents(-5).String())
	assert.Equal(t, interest.Cents(123457), interest.CentsFromDecimal(decimal.RequireFromString("1234.565")))
}

func TestParseConvention(t *testing.T) {
	for _, c := range []interest.Convention{interest.ActualDays, interest.ActualPeriods, interest.EqualMonths} {
		parsed, err := interest.ParseConvention(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := interest.ParseConvention("30/360")
	assert.True(t, errors.Is(err, interest.ErrUnknownConvention))
	assert.False(t, interest.Convention(0).Valid(), "zero value must be invalid")
}

func TestParseCompoundMode(t *testing.T) {
	m, err := interest.ParseCompoundMode("")
	require.NoError(t, err)
	assert.Equal(t, interest.CompoundNone, m)

	m, err = interest.ParseCompoundMode("Monthly")
	require.NoError(t, err)
	assert.Equal(t, interest.CompoundMonthly, m)

	_, err = interest.ParseCompoundMode("daily")
	var modeErr *interest.UnknownCompoundModeError
	assert.ErrorAs(t, err, &modeErr)
}

func TestAmount_ActualDays(t *testing.T) {
	amount, err := interest.Amount(105000, 0.2,
		date(2021, time.November, 1), date(2022, time.July, 15), interest.ActualDays)
	require.NoError(t, err)
	assert.Equal(t, interest.Cents(14729), amount)
}

func TestValidateRate(t *testing.T) {
	for _, ok := range []float64{0, 0.05, -0.5, 3} {
		assert.NoError(t, interest.ValidateRate(ok), "%v", ok)
	}
	for _, bad := range []float64{-1, -2, math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := interest.ValidateRate(bad)
		assert.ErrorIs(t, err, interest.ErrInvalidRate, "%v", bad)
		var rateErr *interest.InvalidRateError
		assert.ErrorAs(t, err, &rateErr)
	}
}
