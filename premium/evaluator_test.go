package premium_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-premium/generic"
	"github.com/warp/shift-premium/premium"
)

// =============================================================================
// REFERENCE SCENARIOS
// =============================================================================

func TestEvaluate_StoreMondayDayShift(t *testing.T) {
	// GIVEN: Store, Monday 08:00-17:00, 30 min break, 160/h, 30% tax
	// THEN: 8.5h, no premium (shift ends before 18:15), net 952

	res, err := premium.Evaluate(shift(premium.AreaStore, date(2025, time.March, 10), "08:00", "17:00", 30, "160", "30"))
	require.NoError(t, err)

	assertDec(t, "8.5", res.TotalHours, "total hours")
	assertDec(t, "1360", res.BasePay, "base pay")
	assert.Empty(t, res.Breakdown)
	assertDec(t, "0", res.TotalPremium, "premium")
	assertDec(t, "1360", res.GrossSalary, "gross")
	assertDec(t, "952", res.NetSalary, "net")
}

func TestEvaluate_StoreSunday(t *testing.T) {
	// GIVEN: Store, Sunday 10:00-18:00, no break, 200/h, no tax
	// THEN: The full-day Sunday window doubles the pay

	res, err := premium.Evaluate(shift(premium.AreaStore, date(2025, time.March, 9), "10:00", "18:00", 0, "200", "0"))
	require.NoError(t, err)

	assertDec(t, "8", res.TotalHours, "total hours")
	assertDec(t, "1600", res.BasePay, "base pay")
	require.Len(t, res.Breakdown, 1)
	assert.Equal(t, "Sunday premium", res.Breakdown[0].Label)
	assert.Equal(t, generic.Percent(100), res.Breakdown[0].Percentage)
	assertDec(t, "8", res.Breakdown[0].Hours, "sunday hours")
	assertDec(t, "1600", res.Breakdown[0].Amount, "sunday amount")
	assertDec(t, "3200", res.GrossSalary, "gross")
	assertDec(t, "3200", res.NetSalary, "net")
}

func TestEvaluate_WarehouseMondayEarlyMorning(t *testing.T) {
	// GIVEN: Warehouse, Monday 05:00-08:00, 150/h
	// THEN: 1h at 70% (night), 1h at 40% (morning), 1h without premium

	res, err := premium.Evaluate(shift(premium.AreaWarehouse, date(2025, time.March, 10), "05:00", "08:00", 0, "150", "0"))
	require.NoError(t, err)

	assertDec(t, "3", res.TotalHours, "total hours")
	assertDec(t, "450", res.BasePay, "base pay")
	require.Len(t, res.Breakdown, 2)

	assert.Equal(t, "Night premium", res.Breakdown[0].Label)
	assert.Equal(t, premium.KindNight, res.Breakdown[0].Kind)
	assertDec(t, "1", res.Breakdown[0].Hours, "night hours")
	assertDec(t, "105", res.Breakdown[0].Amount, "night amount")

	assert.Equal(t, "Morning premium (40%)", res.Breakdown[1].Label)
	assertDec(t, "1", res.Breakdown[1].Hours, "morning hours")
	assertDec(t, "60", res.Breakdown[1].Amount, "morning amount")

	assertDec(t, "615", res.GrossSalary, "gross")
}

func TestEvaluate_WarehouseTuesdayEarlyMorningHasNoNightPremium(t *testing.T) {
	res, err := premium.Evaluate(shift(premium.AreaWarehouse, date(2025, time.March, 11), "05:00", "08:00", 0, "150", "0"))
	require.NoError(t, err)

	require.Len(t, res.Breakdown, 1)
	assert.Equal(t, "Morning premium (40%)", res.Breakdown[0].Label)
	assertDec(t, "510", res.GrossSalary, "gross")
}

func TestEvaluate_HolidayOnSaturdayWarehouse(t *testing.T) {
	res, err := premium.Evaluate(shift(premium.AreaWarehouse, date(2025, time.November, 1), "08:00", "12:00", 0, "100", "0"))
	require.NoError(t, err)

	require.Len(t, res.Breakdown, 1)
	assert.Equal(t, "Holiday", res.Breakdown[0].Label)
	assertDec(t, "400", res.Breakdown[0].Amount, "holiday amount")
	assertDec(t, "800", res.GrossSalary, "gross")
	assert.True(t, res.Day.IsPublicHoliday)
	assert.Equal(t, "All Saints' Day", res.Day.HolidayName)
}

// =============================================================================
// MIDNIGHT AND BOUNDARIES
// =============================================================================

func TestEvaluate_CrossesMidnight(t *testing.T) {
	// GIVEN: Store, Friday 22:00 - Saturday 02:00
	// THEN: End is moved to the next day and the night window reaches it

	fri := date(2025, time.March, 14)
	res, err := premium.Evaluate(shift(premium.AreaStore, fri, "22:00", "02:00", 0, "100", "0"))
	require.NoError(t, err)

	assert.Equal(t, fri.AtMillis(22, 0, 0, 0), res.ShiftStart)
	assert.Equal(t, date(2025, time.March, 15).AtMillis(2, 0, 0, 0), res.ShiftEnd)
	assertDec(t, "4", res.TotalHours, "total hours")
	require.Len(t, res.Breakdown, 1)
	assert.Equal(t, "Night premium (70%)", res.Breakdown[0].Label)
	assertDec(t, "280", res.Breakdown[0].Amount, "night amount")
	assertDec(t, "680", res.GrossSalary, "gross")
}

func TestEvaluate_EveningAndNightSplit(t *testing.T) {
	// Store Tuesday 17:00-21:00: 18:15-20:00 at 50%, 20:00-21:00 at 70%
	res, err := premium.Evaluate(shift(premium.AreaStore, date(2025, time.March, 11), "17:00", "21:00", 0, "160", "0"))
	require.NoError(t, err)

	require.Len(t, res.Breakdown, 2)
	assertDec(t, "1.75", res.Breakdown[0].Hours, "evening hours")
	assertDec(t, "140", res.Breakdown[0].Amount, "evening amount")
	assertDec(t, "1", res.Breakdown[1].Hours, "night hours")
	assertDec(t, "112", res.Breakdown[1].Amount, "night amount")
	assertDec(t, "892", res.GrossSalary, "gross")
}

func TestEvaluate_SundayWindowEndsOneMillisecondBeforeMidnight(t *testing.T) {
	// Sunday 20:00 - Monday 02:00 only overlaps the Sunday window until
	// 23:59:59.999; Monday morning has no Store window.
	res, err := premium.Evaluate(shift(premium.AreaStore, date(2025, time.March, 9), "20:00", "02:00", 0, "100", "0"))
	require.NoError(t, err)

	require.Len(t, res.Breakdown, 1)
	hours := res.Breakdown[0].Hours
	assert.True(t, hours.LessThan(dec("4")), "got %s", hours)
	assert.True(t, hours.GreaterThan(dec("3.9999")), "got %s", hours)
}

func TestEvaluate_ZeroLengthShift(t *testing.T) {
	res, err := premium.Evaluate(shift(premium.AreaStore, date(2025, time.March, 11), "19:00", "19:00", 0, "160", "30"))
	require.NoError(t, err)

	assertDec(t, "0", res.TotalHours, "total hours")
	assert.Empty(t, res.Breakdown)
	assertDec(t, "0", res.NetSalary, "net")
}

func TestEvaluate_BreakIsNotPlacedInsideWindows(t *testing.T) {
	// The break reduces base hours only; premium overlap uses the full span.
	res, err := premium.Evaluate(shift(premium.AreaStore, date(2025, time.March, 9), "10:00", "18:00", 60, "100", "0"))
	require.NoError(t, err)

	assertDec(t, "7", res.TotalHours, "total hours")
	assertDec(t, "8", res.Breakdown[0].Hours, "sunday hours")
}

// =============================================================================
// TAX
// =============================================================================

func TestEvaluate_TaxBounds(t *testing.T) {
	s := shift(premium.AreaStore, date(2025, time.March, 9), "10:00", "14:00", 0, "100", "0")

	res, err := premium.Evaluate(s)
	require.NoError(t, err)
	assert.True(t, res.NetSalary.Equal(res.GrossSalary))

	s.TaxRate = dec("100")
	res, err = premium.Evaluate(s)
	require.NoError(t, err)
	assert.True(t, res.NetSalary.IsZero())

	s.TaxRate = dec("32.5")
	res, err = premium.Evaluate(s)
	require.NoError(t, err)
	assertDec(t, "540", res.NetSalary, "net")
}

// =============================================================================
// INVARIANTS
// =============================================================================

func TestEvaluate_GrossIsBasePlusBreakdown(t *testing.T) {
	shifts := []premium.Shift{
		shift(premium.AreaStore, date(2025, time.March, 11), "17:20", "23:40", 25, "173.5", "31"),
		shift(premium.AreaWarehouse, date(2025, time.March, 10), "03:10", "12:50", 45, "151.25", "28"),
		shift(premium.AreaECommerce, date(2025, time.April, 19), "21:00", "05:00", 30, "149", "30"),
		shift(premium.AreaStore, date(2025, time.December, 24), "09:07", "15:53", 13, "160", "30"),
	}
	for _, s := range shifts {
		res, err := premium.Evaluate(s)
		require.NoError(t, err)

		sum := res.BasePay
		for _, e := range res.Breakdown {
			assert.True(t, e.Hours.IsPositive())
			sum = sum.Add(e.Amount)
		}
		assert.True(t, sum.Equal(res.GrossSalary), "gross %s != %s", res.GrossSalary, sum)
		assert.True(t, generic.AfterTax(res.GrossSalary, s.TaxRate).Equal(res.NetSalary))
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	s := shift(premium.AreaWarehouse, date(2025, time.June, 20), "16:00", "01:00", 30, "155.5", "30")

	first, err := premium.Evaluate(s)
	require.NoError(t, err)
	second, err := premium.Evaluate(s)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEvaluate_ConcurrentCallers(t *testing.T) {
	ev := premium.NewEvaluator(nil)
	s := shift(premium.AreaStore, date(2025, time.March, 14), "16:00", "02:00", 30, "160", "30")
	want, err := ev.Evaluate(s)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := ev.Evaluate(s)
			assert.NoError(t, err)
			assert.True(t, got.GrossSalary.Equal(want.GrossSalary))
		}()
	}
	wg.Wait()
}

// =============================================================================
// INVALID INPUT
// =============================================================================

func TestEvaluate_RejectsInvalidInput(t *testing.T) {
	base := shift(premium.AreaStore, date(2025, time.March, 10), "10:00", "12:00", 0, "160", "30")

	cases := []struct {
		name   string
		mutate func(*premium.Shift)
		want   error
	}{
		{"unknown area", func(s *premium.Shift) { s.Area = "Office" }, generic.ErrInvalidWorkArea},
		{"empty area", func(s *premium.Shift) { s.Area = "" }, generic.ErrInvalidWorkArea},
		{"break longer than shift", func(s *premium.Shift) { s.BreakMinutes = 121 }, generic.ErrNegativeDuration},
		{"negative break", func(s *premium.Shift) { s.BreakMinutes = -5 }, generic.ErrInvalidRate},
		{"negative wage", func(s *premium.Shift) { s.BaseWage = dec("-1") }, generic.ErrInvalidRate},
		{"tax above 100", func(s *premium.Shift) { s.TaxRate = dec("100.5") }, generic.ErrInvalidRate},
		{"negative tax", func(s *premium.Shift) { s.TaxRate = dec("-1") }, generic.ErrInvalidRate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := base
			tc.mutate(&s)
			assert.ErrorIs(t, s.Validate(), tc.want)

			res, err := premium.Evaluate(s)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, generic.ErrInvalidInput)
			assert.True(t, generic.IsClientError(err))
			assert.Equal(t, premium.Result{}, res)
		})
	}
}

func TestEvaluate_BreakEqualToShiftIsZeroHours(t *testing.T) {
	res, err := premium.Evaluate(shift(premium.AreaStore, date(2025, time.March, 10), "10:00", "12:00", 120, "160", "30"))
	require.NoError(t, err)
	assertDec(t, "0", res.TotalHours, "total hours")
}

func TestParseWorkArea(t *testing.T) {
	cases := map[string]premium.WorkArea{
		"Store":     premium.AreaStore,
		"butik":     premium.AreaStore,
		"Warehouse": premium.AreaWarehouse,
		"Lager":     premium.AreaWarehouse,
		"ECommerce": premium.AreaECommerce,
		"E-handel":  premium.AreaECommerce,
	}
	for in, want := range cases {
		got, err := premium.ParseWorkArea(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := premium.ParseWorkArea("Office")
	var inErr *generic.InvalidInputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, "workArea", inErr.Field)
}
