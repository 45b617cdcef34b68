package generic

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// INTERVAL - Half-open span between two instants
// =============================================================================

// Interval is the half-open span [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration is End - Start. It is negative for an inverted interval.
func (iv Interval) Duration() time.Duration { return iv.End.Sub(iv.Start) }

// Contains reports whether t lies in [Start, End).
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Overlap returns the duration shared by iv and other, or zero when they
// are disjoint or merely touch.
func (iv Interval) Overlap(other Interval) time.Duration {
	return Overlap(iv.Start, iv.End, other.Start, other.End)
}

// Overlap is max(0, min(end1, end2) - max(start1, start2)).
// It is symmetric in its two intervals.
func Overlap(start1, end1, start2, end2 time.Time) time.Duration {
	start := start1
	if start2.After(start) {
		start = start2
	}
	end := end1
	if end2.Before(end) {
		end = end2
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// OverlapHours is Overlap expressed in fractional hours.
func OverlapHours(start1, end1, start2, end2 time.Time) decimal.Decimal {
	return Hours(Overlap(start1, end1, start2, end2))
}

// =============================================================================
// PERIOD - Inclusive range of calendar dates
// =============================================================================

// Period is the inclusive date range [Start, End].
type Period struct {
	Start TimePoint
	End   TimePoint
}

// Contains returns true if the time point is within the period [Start, End]
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

// Days returns all days in the period as a slice of TimePoints.
func (p Period) Days() []TimePoint {
	var days []TimePoint
	current := p.Start
	for current.BeforeOrEqual(p.End) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

// Validate rejects a period whose end precedes its start.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// PAY PERIODS - Which period a shift date is paid in
// =============================================================================

// PeriodType defines how pay periods are laid out.
type PeriodType string

const (
	PeriodCalendarMonth PeriodType = "calendar_month" // 1st - last day of month
	PeriodCalendarYear  PeriodType = "calendar_year"  // Jan 1 - Dec 31
	PeriodISOWeek       PeriodType = "iso_week"       // Monday - Sunday
)

// ParsePeriodType maps an external name to a PeriodType. Empty means
// calendar month, the usual payroll cycle.
func ParsePeriodType(s string) (PeriodType, error) {
	switch PeriodType(s) {
	case "":
		return PeriodCalendarMonth, nil
	case PeriodCalendarMonth, PeriodCalendarYear, PeriodISOWeek:
		return PeriodType(s), nil
	}
	return "", &InvalidInputError{Field: "period", Value: s, Reason: "unknown period type", Err: ErrInvalidPeriod}
}

// PeriodFor returns the pay period of the given type that contains date.
func PeriodFor(pt PeriodType, date TimePoint) Period {
	switch pt {
	case PeriodCalendarYear:
		return Period{Start: StartOfYear(date.Year()), End: EndOfYear(date.Year())}

	case PeriodISOWeek:
		// time.Weekday has Sunday = 0; ISO weeks start on Monday.
		offset := (int(date.Weekday()) + 6) % 7
		start := date.AddDays(-offset)
		return Period{Start: start, End: start.AddDays(6)}

	default:
		return Period{Start: StartOfMonth(date.Year(), date.Month()), End: EndOfMonth(date.Year(), date.Month())}
	}
}

func StartOfYear(year int) TimePoint                    { return NewTimePoint(year, time.January, 1) }
func EndOfYear(year int) TimePoint                      { return NewTimePoint(year, time.December, 31) }
func StartOfMonth(year int, month time.Month) TimePoint { return NewTimePoint(year, month, 1) }
func EndOfMonth(year int, month time.Month) TimePoint {
	return StartOfMonth(year, month).AddMonths(1).AddDays(-1)
}
