package valuation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/interest-engine/interest"
	"github.com/warp/interest-engine/valuation"
)

func date(year int, month time.Month, day int) interest.Date {
	return interest.NewDate(year, month, day)
}

func TestInterpolate_SpreadsLinearly(t *testing.T) {
	// GIVEN: 180.00 on Jan 1 falling to 150.00 on Feb 1
	// WHEN: Asking for Jan 12 and Jan 24
	// THEN: The drop is spread per day and rounded
	start := valuation.Point{At: date(2023, time.January, 1), Amount: 18000}
	end := valuation.Point{At: date(2023, time.February, 1), Amount: 15000}

	got, err := valuation.Interpolate(start, end, date(2023, time.January, 12), date(2023, time.January, 24))

	require.NoError(t, err)
	assert.Equal(t, []valuation.Point{
		{At: date(2023, time.January, 12), Amount: 16935},
		{At: date(2023, time.January, 24), Amount: 15774},
	}, got)
}

func TestInterpolate_NoDates(t *testing.T) {
	got, err := valuation.Interpolate(
		valuation.Point{At: date(2023, time.January, 12), Amount: 1000},
		valuation.Point{At: date(2023, time.January, 17), Amount: 5000},
	)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInterpolate_StartIsIncludedEndIsNot(t *testing.T) {
	start := valuation.Point{At: date(2023, time.March, 11), Amount: 2000}
	end := valuation.Point{At: date(2023, time.March, 28), Amount: 4500}

	got, err := valuation.Interpolate(start, end, start.At)
	require.NoError(t, err)
	assert.Equal(t, interest.Cents(2000), got[0].Amount)

	for _, at := range []interest.Date{date(2023, time.April, 2), end.At, date(2023, time.January, 8)} {
		_, err := valuation.Interpolate(start, end, at)
		assert.ErrorIs(t, err, valuation.ErrDateOutside, at.String())
		var outside *valuation.DateOutsideError
		require.ErrorAs(t, err, &outside)
		assert.Equal(t, at, outside.At)
	}
}

func TestInterpolate_PointOrder(t *testing.T) {
	_, err := valuation.Interpolate(
		valuation.Point{At: date(2023, time.January, 6), Amount: 6700},
		valuation.Point{At: date(2021, time.January, 3), Amount: 9980},
		date(2022, time.July, 5),
	)
	assert.ErrorIs(t, err, valuation.ErrPointOrder)
}

func TestInterpolate_WritesDownAnAsset(t *testing.T) {
	start := valuation.Point{At: date(2023, time.October, 6), Amount: 670000}
	end := valuation.Point{At: date(2028, time.October, 6), Amount: 10000}
	var dates []interest.Date
	for y := 2024; y <= 2028; y++ {
		dates = append(dates, date(y, time.January, 1))
	}

	got, err := valuation.Interpolate(start, end, dates...)

	require.NoError(t, err)
	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i].Amount, got[i-1].Amount)
	}
	assert.Greater(t, got[4].Amount, end.Amount)
}
