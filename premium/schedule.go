/*
schedule.go - Premium window generation

PURPOSE:
  Turns a work area and a classified day into the ordered list of premium
  windows for that day. The agreement defines a finite set of day types, so
  the schedule is a lookup table, not a rule engine.

RESOLUTION (first match wins):
  1. Public holiday (any area)             -> holiday
  2. Eve day, Store                        -> saturday
  3. Eve day, Warehouse/ECommerce
       Easter Eve                          -> saturday
       any other eve                       -> weekday
  4. Otherwise by weekday                  -> sunday | saturday | weekday

TABLE:
  area        holiday   saturday              sunday   weekday
  Store       00-24 100 12-24 100             00-24 100 18:15-20 50, 20-06 70
  Warehouse   00-24 100 00-06 70, 06-23 40,   00-24 100 [Mon: 00-06 70,] 06-07 40,
  ECommerce             23-24 70                        18-23 40, 23-06 70

  "24" is 23:59:59.999 on the same day; "-06" after 20/23 is 06:00 the
  following morning.

ADDING A SCHEDULE:
  Add a day class or an area column to the schedules map. Do not generalize.
*/
package premium

import (
	"time"

	"github.com/warp/shift-premium/generic"
)

// =============================================================================
// DAY TYPE
// =============================================================================

// DayKind tags the variant held by a DayType.
type DayKind int

const (
	DayHoliday DayKind = iota
	DayEve
	DayOrdinary
)

// DayType is the tagged variant {Holiday, Eve(kind), Weekday(0..6)}.
type DayType struct {
	Kind    DayKind
	Eve     EveKind
	Weekday time.Weekday
}

// TypeOf reduces a classified day to its DayType. Holiday beats eve.
func TypeOf(day CalendarDay) DayType {
	switch {
	case day.IsPublicHoliday:
		return DayType{Kind: DayHoliday, Weekday: day.Weekday}
	case day.Eve != EveNone:
		return DayType{Kind: DayEve, Eve: day.Eve, Weekday: day.Weekday}
	default:
		return DayType{Kind: DayOrdinary, Weekday: day.Weekday}
	}
}

// dayClass is the column of the schedule table a day resolves to.
type dayClass string

const (
	classHoliday  dayClass = "holiday"
	classSaturday dayClass = "saturday"
	classSunday   dayClass = "sunday"
	classWeekday  dayClass = "weekday"
)

func resolve(area WorkArea, dt DayType) dayClass {
	switch dt.Kind {
	case DayHoliday:
		return classHoliday
	case DayEve:
		if area == AreaStore || dt.Eve == EveEaster {
			return classSaturday
		}
		return classWeekday
	}

	switch dt.Weekday {
	case time.Sunday:
		return classSunday
	case time.Saturday:
		return classSaturday
	default:
		return classWeekday
	}
}

// =============================================================================
// SCHEDULE TABLE
// =============================================================================

type windowFunc func(day generic.TimePoint) []Window

var warehouseSchedule = map[dayClass]windowFunc{
	classHoliday:  holidayWindows,
	classSaturday: warehouseSaturdayWindows,
	classSunday:   sundayWindows,
	classWeekday:  warehouseWeekdayWindows,
}

var schedules = map[WorkArea]map[dayClass]windowFunc{
	AreaStore: {
		classHoliday:  holidayWindows,
		classSaturday: storeSaturdayWindows,
		classSunday:   sundayWindows,
		classWeekday:  storeWeekdayWindows,
	},
	AreaWarehouse: warehouseSchedule,
	AreaECommerce: warehouseSchedule,
}

// GenerateWindows returns the premium windows for area on day, in
// generation order. An unknown area is rejected; there is no default.
func GenerateWindows(area WorkArea, day CalendarDay) ([]Window, error) {
	if err := area.validate(); err != nil {
		return nil, err
	}
	build := schedules[area][resolve(area, TypeOf(day))]
	return build(day.Date), nil
}

// =============================================================================
// WINDOW BUILDERS
// =============================================================================

// Every boundary is built directly from the date; no instant is derived by
// adjusting another.

func at(day generic.TimePoint, hour, minute int) time.Time {
	return day.AtMillis(hour, minute, 0, 0)
}

func nextMorning(day generic.TimePoint) time.Time {
	return day.AddDays(1).AtMillis(6, 0, 0, 0)
}

func holidayWindows(day generic.TimePoint) []Window {
	return []Window{
		{Start: day.StartOfDay(), End: day.EndOfDay(), Percent: 100, Label: "Holiday", Kind: KindHoliday},
	}
}

func sundayWindows(day generic.TimePoint) []Window {
	return []Window{
		{Start: day.StartOfDay(), End: day.EndOfDay(), Percent: 100, Label: "Sunday premium", Kind: KindSunday},
	}
}

func storeSaturdayWindows(day generic.TimePoint) []Window {
	return []Window{
		{Start: at(day, 12, 0), End: day.EndOfDay(), Percent: 100, Label: "Saturday premium (100%)", Kind: KindSaturday},
	}
}

func storeWeekdayWindows(day generic.TimePoint) []Window {
	return []Window{
		{Start: at(day, 18, 15), End: at(day, 20, 0), Percent: 50, Label: "Evening premium (50%)", Kind: KindEvening},
		{Start: at(day, 20, 0), End: nextMorning(day), Percent: 70, Label: "Night premium (70%)", Kind: KindNight},
	}
}

func warehouseSaturdayWindows(day generic.TimePoint) []Window {
	return []Window{
		{Start: day.StartOfDay(), End: at(day, 6, 0), Percent: 70, Label: "Night premium", Kind: KindNight},
		{Start: at(day, 6, 0), End: at(day, 23, 0), Percent: 40, Label: "Saturday premium (40%)", Kind: KindSaturday},
		{Start: at(day, 23, 0), End: day.EndOfDay(), Percent: 70, Label: "Night premium", Kind: KindNight},
	}
}

// warehouseWeekdayWindows also serves eves redirected to weekday rules, so
// the Monday check uses the real weekday of the date.
func warehouseWeekdayWindows(day generic.TimePoint) []Window {
	windows := make([]Window, 0, 4)
	if day.Weekday() == time.Monday {
		windows = append(windows, Window{Start: day.StartOfDay(), End: at(day, 6, 0), Percent: 70, Label: "Night premium", Kind: KindNight})
	}
	return append(windows,
		Window{Start: at(day, 6, 0), End: at(day, 7, 0), Percent: 40, Label: "Morning premium (40%)", Kind: KindMorning},
		Window{Start: at(day, 18, 0), End: at(day, 23, 0), Percent: 40, Label: "Evening premium (40%)", Kind: KindEvening},
		Window{Start: at(day, 23, 0), End: nextMorning(day), Percent: 70, Label: "Night premium", Kind: KindNight},
	)
}
