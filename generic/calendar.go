package generic

// =============================================================================
// HOLIDAY CALENDAR - Year-scoped date tables
// =============================================================================

// Holiday is a named calendar date from a published table.
type Holiday struct {
	Date TimePoint
	Name string
}

// HolidayCalendar provides holiday lookup functionality.
type HolidayCalendar interface {
	// Lookup returns the entry matching date (year, month and day) if any.
	Lookup(date TimePoint) (Holiday, bool)

	// Holidays returns all entries of the given year, in table order.
	Holidays(year int) []Holiday
}

// DateTable is a fixed list of dates valid for exactly one calendar year.
// A date from any other year never matches; callers fall back to ordinary
// weekday rules for it.
type DateTable struct {
	Year    int
	Entries []Holiday
}

var _ HolidayCalendar = DateTable{}

func (t DateTable) Lookup(date TimePoint) (Holiday, bool) {
	if date.Year() != t.Year {
		return Holiday{}, false
	}
	for _, h := range t.Entries {
		if h.Date.SameDate(date) {
			return h, true
		}
	}
	return Holiday{}, false
}

func (t DateTable) Holidays(year int) []Holiday {
	if year != t.Year {
		return nil
	}
	out := make([]Holiday, len(t.Entries))
	copy(out, t.Entries)
	return out
}

// Contains is Lookup without the entry.
func (t DateTable) Contains(date TimePoint) bool {
	_, ok := t.Lookup(date)
	return ok
}
