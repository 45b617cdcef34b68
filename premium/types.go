// Package premium computes inconvenient-hours ("OB") supplements for a single
// work shift under the retail collective agreement's rate schedule.
// It uses the generic package for dates, intervals and decimal arithmetic.
package premium

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-premium/generic"
)

// =============================================================================
// WORK AREA
// =============================================================================

// WorkArea selects which premium schedule applies. Closed set.
type WorkArea string

const (
	AreaStore     WorkArea = "Store"
	AreaWarehouse WorkArea = "Warehouse"
	AreaECommerce WorkArea = "ECommerce"
)

// WorkAreas lists every valid area in display order.
var WorkAreas = []WorkArea{AreaStore, AreaWarehouse, AreaECommerce}

// ParseWorkArea accepts the English names and the agreement's Swedish ones
// (Butik, Lager, E-handel), case-insensitively.
func ParseWorkArea(s string) (WorkArea, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "store", "butik":
		return AreaStore, nil
	case "warehouse", "lager":
		return AreaWarehouse, nil
	case "ecommerce", "e-commerce", "e-handel":
		return AreaECommerce, nil
	}
	return "", &generic.InvalidInputError{Field: "workArea", Value: s, Reason: "must be Store, Warehouse or ECommerce", Err: generic.ErrInvalidWorkArea}
}

// Valid reports whether a is one of the three known areas.
func (a WorkArea) Valid() bool {
	switch a {
	case AreaStore, AreaWarehouse, AreaECommerce:
		return true
	}
	return false
}

func (a WorkArea) validate() error {
	if !a.Valid() {
		return &generic.InvalidInputError{Field: "workArea", Value: string(a), Reason: "must be Store, Warehouse or ECommerce", Err: generic.ErrInvalidWorkArea}
	}
	return nil
}

// =============================================================================
// CALENDAR DAY
// =============================================================================

// EveKind identifies the special eve days that carry their own schedule.
type EveKind string

const (
	EveNone      EveKind = ""
	EveEaster    EveKind = "easter_eve"
	EveMidsummer EveKind = "midsummer_eve"
	EveChristmas EveKind = "christmas_eve"
	EveNewYears  EveKind = "new_years_eve"
)

// CalendarDay is a date with its classification under the agreement calendar.
type CalendarDay struct {
	Date            generic.TimePoint
	IsPublicHoliday bool
	HolidayName     string
	Eve             EveKind
	Weekday         time.Weekday // Sunday = 0
}

// =============================================================================
// PREMIUM WINDOW
// =============================================================================

// WindowKind is a machine-readable tag for a window, for callers that
// localize labels.
type WindowKind string

const (
	KindHoliday  WindowKind = "holiday"
	KindSunday   WindowKind = "sunday"
	KindSaturday WindowKind = "saturday"
	KindMorning  WindowKind = "morning"
	KindEvening  WindowKind = "evening"
	KindNight    WindowKind = "night"
)

// Window is a span during which worked time earns Percent on top of the
// base wage. Windows for one day never overlap; time outside every window
// earns no premium.
type Window struct {
	Start   time.Time
	End     time.Time
	Percent generic.Percent
	Label   string
	Kind    WindowKind
}

// Interval returns the window as a generic.Interval.
func (w Window) Interval() generic.Interval {
	return generic.Interval{Start: w.Start, End: w.End}
}

// =============================================================================
// SHIFT
// =============================================================================

// Shift is one worked shift together with the pay parameters to apply.
type Shift struct {
	Area         WorkArea
	Date         generic.TimePoint
	Start        generic.Clock
	End          generic.Clock
	BreakMinutes int
	BaseWage     decimal.Decimal // per hour
	TaxRate      decimal.Decimal // percent, 0..100
}

// Interval resolves the shift to absolute instants. An end clock earlier
// than the start clock means the shift runs past midnight into the next day.
// Equal clocks give an empty shift.
func (s Shift) Interval() generic.Interval {
	endDate := s.Date
	if s.End.Before(s.Start) {
		endDate = s.Date.AddDays(1)
	}
	return generic.Interval{Start: s.Date.At(s.Start), End: endDate.At(s.End)}
}

// paidDuration is the shift span minus the break. Negative when the break
// is longer than the span.
func (s Shift) paidDuration() time.Duration {
	return s.Interval().Duration() - time.Duration(s.BreakMinutes)*time.Minute
}

// =============================================================================
// RESULT
// =============================================================================

// BreakdownEntry is the premium earned inside one window.
type BreakdownEntry struct {
	Label      string
	Kind       WindowKind
	Percentage generic.Percent
	Hours      decimal.Decimal
	Amount     decimal.Decimal
}

// Result is the pay for one shift. Breakdown follows window generation
// order and omits windows the shift does not touch.
type Result struct {
	Day          CalendarDay
	ShiftStart   time.Time
	ShiftEnd     time.Time
	TotalHours   decimal.Decimal
	BasePay      decimal.Decimal
	TotalPremium decimal.Decimal
	GrossSalary  decimal.Decimal
	NetSalary    decimal.Decimal
	Breakdown    []BreakdownEntry
}

// =============================================================================
// PREFERENCES
// =============================================================================

// Preferences are caller-supplied defaults for the fields a request leaves
// out. The engine never stores them.
type Preferences struct {
	Area         WorkArea
	Start        generic.Clock
	End          generic.Clock
	BreakMinutes int
	BaseWage     decimal.Decimal
	TaxRate      decimal.Decimal
}

// DefaultPreferences: Store, 08:00-17:00, 30 minute break, 160/h, 30% tax.
func DefaultPreferences() Preferences {
	return Preferences{
		Area:         AreaStore,
		Start:        generic.Clock{Hour: 8},
		End:          generic.Clock{Hour: 17},
		BreakMinutes: 30,
		BaseWage:     decimal.NewFromInt(160),
		TaxRate:      decimal.NewFromInt(30),
	}
}
