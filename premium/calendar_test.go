package premium_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/warp/shift-premium/generic"
	"github.com/warp/shift-premium/premium"
)

func TestClassify_PublicHoliday(t *testing.T) {
	day := premium.Classify(date(2025, time.December, 25))

	assert.True(t, day.IsPublicHoliday)
	assert.Equal(t, "Christmas Day", day.HolidayName)
	assert.Equal(t, premium.EveNone, day.Eve)
	assert.Equal(t, time.Thursday, day.Weekday)
}

func TestClassify_EveDays(t *testing.T) {
	cases := []struct {
		date generic.TimePoint
		eve  premium.EveKind
	}{
		{date(2025, time.April, 19), premium.EveEaster},
		{date(2025, time.June, 20), premium.EveMidsummer},
		{date(2025, time.December, 24), premium.EveChristmas},
		{date(2025, time.December, 31), premium.EveNewYears},
	}
	for _, tc := range cases {
		t.Run(string(tc.eve), func(t *testing.T) {
			day := premium.Classify(tc.date)
			assert.Equal(t, tc.eve, day.Eve)
			assert.False(t, day.IsPublicHoliday)
		})
	}
}

func TestClassify_OrdinaryDay(t *testing.T) {
	day := premium.Classify(date(2025, time.March, 10))

	assert.False(t, day.IsPublicHoliday)
	assert.Empty(t, day.HolidayName)
	assert.Equal(t, premium.EveNone, day.Eve)
	assert.Equal(t, time.Monday, day.Weekday)
}

func TestClassify_OutsideScheduleYearIsOrdinary(t *testing.T) {
	// GIVEN: Christmas Eve and Christmas Day of a year the tables don't cover
	// THEN: Both classify as ordinary days; only the weekday is known

	eve := premium.Classify(date(2026, time.December, 24))
	xmas := premium.Classify(date(2026, time.December, 25))

	assert.Equal(t, premium.EveNone, eve.Eve)
	assert.False(t, xmas.IsPublicHoliday)
	assert.Equal(t, time.Thursday, eve.Weekday)
}

func TestClassify_HolidayAndEveBothReported(t *testing.T) {
	// GIVEN: A calendar where the same date is listed as holiday and eve
	// THEN: Both flags are set and the generator treats it as a holiday

	dt := date(2025, time.December, 24)
	c := premium.NewClassifier(
		generic.DateTable{Year: 2025, Entries: []generic.Holiday{{Date: dt, Name: "Christmas Eve"}}},
		[]premium.Eve{{Date: dt, Kind: premium.EveChristmas}},
	)

	day := c.Classify(dt)
	assert.True(t, day.IsPublicHoliday)
	assert.Equal(t, premium.EveChristmas, day.Eve)

	ws, err := premium.GenerateWindows(premium.AreaStore, day)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Holiday"}, labels(ws))
	assert.Equal(t, premium.DayHoliday, premium.TypeOf(day).Kind)
}

func TestClassifier_Tables(t *testing.T) {
	c := premium.DefaultClassifier()

	assert.Len(t, c.Holidays(2025), 13)
	assert.Len(t, c.Eves(2025), 4)
	assert.Empty(t, c.Holidays(2024))
	assert.Empty(t, c.Eves(2026))
}

func TestClassifier_HolidaysReturnsCopy(t *testing.T) {
	c := premium.DefaultClassifier()

	hs := c.Holidays(2025)
	hs[0].Name = "changed"

	assert.Equal(t, "New Year's Day", c.Holidays(2025)[0].Name)
}
