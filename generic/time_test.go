package generic_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-premium/generic"
)

func TestParseClock(t *testing.T) {
	valid := map[string]generic.Clock{
		"00:00":   {Hour: 0, Minute: 0},
		"08:05":   {Hour: 8, Minute: 5},
		"8:05":    {Hour: 8, Minute: 5},
		"23:59":   {Hour: 23, Minute: 59},
		" 17:30 ": {Hour: 17, Minute: 30},
	}
	for in, want := range valid {
		got, err := generic.ParseClock(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "24:00", "12:60", "1230", "12:5", "ab:cd", "-1:00", "+8:00", "12:30:00", "123:00"} {
		_, err := generic.ParseClock(in)
		assert.ErrorIs(t, err, generic.ErrInvalidClock, in)
		assert.ErrorIs(t, err, generic.ErrInvalidInput, in)
	}
}

func TestClock_Before(t *testing.T) {
	assert.True(t, generic.MustParseClock("08:00").Before(generic.MustParseClock("08:01")))
	assert.True(t, generic.MustParseClock("07:59").Before(generic.MustParseClock("08:00")))
	assert.False(t, generic.MustParseClock("08:00").Before(generic.MustParseClock("08:00")))
	assert.Equal(t, "06:05", generic.Clock{Hour: 6, Minute: 5}.String())
}

func TestParseDate(t *testing.T) {
	d, err := generic.ParseDate("2025-12-24")
	require.NoError(t, err)
	assert.Equal(t, generic.NewTimePoint(2025, time.December, 24), d)
	assert.Equal(t, time.Wednesday, d.Weekday())

	_, err = generic.ParseDate("24/12/2025")
	assert.ErrorIs(t, err, generic.ErrInvalidDate)
}

func TestTimePoint_AtMillisRollsIntoNextDay(t *testing.T) {
	d := generic.NewTimePoint(2025, time.December, 31)

	assert.Equal(t, time.Date(2026, time.January, 1, 6, 0, 0, 0, time.UTC), d.AtMillis(30, 0, 0, 0))
	assert.Equal(t, time.Date(2025, time.December, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC), d.EndOfDay())
}

func TestOverlap(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2025, time.March, 10, h, 0, 0, 0, time.UTC) }

	cases := []struct {
		name       string
		a, b, c, d int
		want       time.Duration
	}{
		{"disjoint before", 1, 2, 3, 4, 0},
		{"touching", 1, 3, 3, 5, 0},
		{"partial", 1, 4, 3, 6, time.Hour},
		{"contained", 1, 10, 3, 5, 2 * time.Hour},
		{"identical", 2, 4, 2, 4, 2 * time.Hour},
		{"inverted shift", 5, 1, 0, 10, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := generic.Overlap(at(tc.a), at(tc.b), at(tc.c), at(tc.d))
			swapped := generic.Overlap(at(tc.c), at(tc.d), at(tc.a), at(tc.b))
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, swapped, "overlap must be symmetric")
		})
	}

	assert.True(t, generic.OverlapHours(at(1), at(4), at(3), at(6)).Equal(decimal.NewFromInt(1)))
}

func TestInterval_Contains(t *testing.T) {
	start := time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC)
	iv := generic.Interval{Start: start, End: start.Add(time.Hour)}

	assert.True(t, iv.Contains(start))
	assert.False(t, iv.Contains(start.Add(time.Hour)))
	assert.Equal(t, time.Hour, iv.Duration())
}

func TestPeriodFor(t *testing.T) {
	d := generic.NewTimePoint(2025, time.March, 12) // Wednesday

	month := generic.PeriodFor(generic.PeriodCalendarMonth, d)
	assert.Equal(t, "[2025-03-01, 2025-03-31]", month.String())

	feb := generic.PeriodFor(generic.PeriodCalendarMonth, generic.NewTimePoint(2024, time.February, 10))
	assert.Equal(t, "[2024-02-01, 2024-02-29]", feb.String())

	week := generic.PeriodFor(generic.PeriodISOWeek, d)
	assert.Equal(t, "[2025-03-10, 2025-03-16]", week.String())

	sunday := generic.PeriodFor(generic.PeriodISOWeek, generic.NewTimePoint(2025, time.March, 16))
	assert.Equal(t, "[2025-03-10, 2025-03-16]", sunday.String())

	year := generic.PeriodFor(generic.PeriodCalendarYear, d)
	assert.Equal(t, "[2025-01-01, 2025-12-31]", year.String())
	assert.Len(t, year.Days(), 365)
}

func TestParsePeriodType(t *testing.T) {
	pt, err := generic.ParsePeriodType("")
	require.NoError(t, err)
	assert.Equal(t, generic.PeriodCalendarMonth, pt)

	_, err = generic.ParsePeriodType("fortnight")
	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)
}

func TestPeriod_Validate(t *testing.T) {
	p := generic.Period{Start: generic.NewTimePoint(2025, time.March, 2), End: generic.NewTimePoint(2025, time.March, 1)}
	assert.ErrorIs(t, p.Validate(), generic.ErrInvalidPeriod)
}
