package premium

import (
	"time"

	"github.com/warp/shift-premium/generic"
)

// =============================================================================
// AGREEMENT CALENDAR 2025
// =============================================================================

// ScheduleYear is the only year the compiled-in tables cover. Dates in any
// other year classify as ordinary days.
const ScheduleYear = 2025

func date2025(month time.Month, day int) generic.TimePoint {
	return generic.NewTimePoint(ScheduleYear, month, day)
}

func holidays2025() generic.DateTable {
	return generic.DateTable{
		Year: ScheduleYear,
		Entries: []generic.Holiday{
			{Date: date2025(time.January, 1), Name: "New Year's Day"},
			{Date: date2025(time.January, 6), Name: "Epiphany"},
			{Date: date2025(time.April, 18), Name: "Good Friday"},
			{Date: date2025(time.April, 20), Name: "Easter Sunday"},
			{Date: date2025(time.April, 21), Name: "Easter Monday"},
			{Date: date2025(time.May, 1), Name: "May Day"},
			{Date: date2025(time.May, 29), Name: "Ascension Day"},
			{Date: date2025(time.June, 6), Name: "National Day"},
			{Date: date2025(time.June, 8), Name: "Whit Sunday"},
			{Date: date2025(time.June, 21), Name: "Midsummer Day"},
			{Date: date2025(time.November, 1), Name: "All Saints' Day"},
			{Date: date2025(time.December, 25), Name: "Christmas Day"},
			{Date: date2025(time.December, 26), Name: "Boxing Day"},
		},
	}
}

// Eve is a dated eve day.
type Eve struct {
	Date generic.TimePoint
	Kind EveKind
}

func eves2025() []Eve {
	return []Eve{
		{Date: date2025(time.April, 19), Kind: EveEaster},
		{Date: date2025(time.June, 20), Kind: EveMidsummer},
		{Date: date2025(time.December, 24), Kind: EveChristmas},
		{Date: date2025(time.December, 31), Kind: EveNewYears},
	}
}

// =============================================================================
// CLASSIFIER
// =============================================================================

// Classifier resolves dates against fixed holiday and eve tables.
// It is read-only after construction and safe for concurrent use.
type Classifier struct {
	holidays generic.HolidayCalendar
	eves     []Eve
}

// NewClassifier builds a classifier over the given tables.
func NewClassifier(holidays generic.HolidayCalendar, eves []Eve) *Classifier {
	own := make([]Eve, len(eves))
	copy(own, eves)
	return &Classifier{holidays: holidays, eves: own}
}

var defaultClassifier = NewClassifier(holidays2025(), eves2025())

// DefaultClassifier returns the classifier for the published 2025 schedule.
func DefaultClassifier() *Classifier { return defaultClassifier }

// Classify determines holiday status, eve kind and weekday for date.
// A date can match at most one eve entry. If a date were both a holiday and
// an eve, both flags are reported and the holiday takes precedence when
// windows are generated.
func (c *Classifier) Classify(date generic.TimePoint) CalendarDay {
	day := CalendarDay{Date: date, Weekday: date.Weekday()}
	if h, ok := c.holidays.Lookup(date); ok {
		day.IsPublicHoliday = true
		day.HolidayName = h.Name
	}
	for _, e := range c.eves {
		if e.Date.SameDate(date) {
			day.Eve = e.Kind
			break
		}
	}
	return day
}

// Holidays lists the holiday table for year (empty outside the schedule year).
func (c *Classifier) Holidays(year int) []generic.Holiday {
	return c.holidays.Holidays(year)
}

// Eves lists the eve table for year.
func (c *Classifier) Eves(year int) []Eve {
	var out []Eve
	for _, e := range c.eves {
		if e.Date.Year() == year {
			out = append(out, e)
		}
	}
	return out
}

// Classify uses the default 2025 classifier.
func Classify(date generic.TimePoint) CalendarDay {
	return defaultClassifier.Classify(date)
}
