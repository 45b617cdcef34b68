package generic

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// TIME POINT - Calendar date (day granularity, UTC-anchored)
// =============================================================================

// TimePoint is a calendar date. All instants derived from it are wall-clock
// instants in UTC so that shift arithmetic is unaffected by DST transitions.
type TimePoint struct {
	Time time.Time
}

// DateLayout is the ISO date format used on every external surface.
const DateLayout = "2006-01-02"

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates t to its calendar date (taken in t's own location).
func FromTime(t time.Time) TimePoint {
	return NewTimePoint(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (TimePoint, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return TimePoint{}, &InvalidInputError{Field: "date", Value: s, Reason: "use YYYY-MM-DD", Err: ErrInvalidDate}
	}
	return FromTime(t), nil
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.Time.Before(other.Time) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.Time.Equal(other.Time) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.Time.After(other.Time) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return !tp.Before(other) }

// SameDate reports whether year, month and day-of-month all match.
func (tp TimePoint) SameDate(other TimePoint) bool {
	return tp.Year() == other.Year() && tp.Month() == other.Month() && tp.Day() == other.Day()
}

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint   { return TimePoint{Time: tp.Time.AddDate(0, 0, n)} }
func (tp TimePoint) AddMonths(n int) TimePoint { return TimePoint{Time: tp.Time.AddDate(0, n, 0)} }

// At returns the instant at the given clock time on this date.
// Each call builds a fresh value; nothing is shared between instants.
func (tp TimePoint) At(c Clock) time.Time {
	return time.Date(tp.Year(), tp.Month(), tp.Day(), c.Hour, c.Minute, 0, 0, time.UTC)
}

// AtMillis returns the instant hh:mm:ss.mmm on this date. Hours past 23 roll
// into the following day, so AtMillis(30, 0, 0, 0) is 06:00 the next morning.
func (tp TimePoint) AtMillis(hour, minute, sec, ms int) time.Time {
	return time.Date(tp.Year(), tp.Month(), tp.Day(), hour, minute, sec, ms*int(time.Millisecond), time.UTC)
}

// StartOfDay is 00:00:00.000 on this date.
func (tp TimePoint) StartOfDay() time.Time { return tp.AtMillis(0, 0, 0, 0) }

// EndOfDay is 23:59:59.999 on this date.
func (tp TimePoint) EndOfDay() time.Time { return tp.AtMillis(23, 59, 59, 999) }

// Properties
func (tp TimePoint) Year() int             { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month     { return tp.Time.Month() }
func (tp TimePoint) Day() int              { return tp.Time.Day() }
func (tp TimePoint) Weekday() time.Weekday { return tp.Time.Weekday() }

func (tp TimePoint) String() string {
	return tp.Time.Format(DateLayout)
}

// =============================================================================
// CLOCK - Time of day, minute precision
// =============================================================================

// Clock is a 24-hour time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "HH:MM" (24-hour). "8:05" is accepted, "24:00" is not.
func ParseClock(s string) (Clock, error) {
	invalid := &InvalidInputError{Field: "time", Value: s, Reason: "use HH:MM (24-hour)", Err: ErrInvalidClock}

	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(mm) != 2 || hh == "" || len(hh) > 2 || !digits(hh) || !digits(mm) {
		return Clock{}, invalid
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return Clock{}, invalid
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return Clock{}, invalid
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MustParseClock is ParseClock for compiled-in constants; it panics on error.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Before reports whether c is strictly earlier in the day than other.
func (c Clock) Before(other Clock) bool {
	return c.Hour < other.Hour || (c.Hour == other.Hour && c.Minute < other.Minute)
}

func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute) }
