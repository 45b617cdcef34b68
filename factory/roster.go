package factory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/teambition/rrule-go"
	"github.com/warp/shift-premium/generic"
	"github.com/warp/shift-premium/premium"
)

// =============================================================================
// ROSTERS - Recurring shifts
// =============================================================================

// MaxRosterShifts bounds one roster expansion (a year of daily shifts).
const MaxRosterShifts = 366

// RosterJSON is a shift template repeated by an RFC 5545 rule, e.g.
//
//	{"workArea":"Lager","startTime":"22:00","endTime":"06:00",
//	 "recurrence":"FREQ=WEEKLY;BYDAY=FR,SA","from":"2025-03-01","to":"2025-03-31"}
//
// Occurrences are taken between from and to inclusive. Any DTSTART inside
// the rule is replaced by from.
type RosterJSON struct {
	ShiftTemplateJSON
	Recurrence string `json:"recurrence" validate:"required"`
	From       string `json:"from" validate:"required"`
	To         string `json:"to" validate:"required"`
}

// ParseRoster parses a JSON roster and expands it.
func (f *RequestFactory) ParseRoster(jsonStr string) ([]premium.Shift, error) {
	var rj RosterJSON
	if err := json.Unmarshal([]byte(jsonStr), &rj); err != nil {
		return nil, fmt.Errorf("%w: failed to parse roster JSON: %v", generic.ErrInvalidInput, err)
	}
	return f.ExpandRoster(rj)
}

// ExpandRoster returns one shift per distinct occurrence date, in date
// order. Rules finer than daily are rejected, as are ranges that would
// yield more than MaxRosterShifts shifts.
func (f *RequestFactory) ExpandRoster(rj RosterJSON) ([]premium.Shift, error) {
	if err := f.check(rj); err != nil {
		return nil, err
	}

	from, err := generic.ParseDate(rj.From)
	if err != nil {
		return nil, renameField(err, "from")
	}
	to, err := generic.ParseDate(rj.To)
	if err != nil {
		return nil, renameField(err, "to")
	}
	period := generic.Period{Start: from, End: to}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	template, err := f.fromTemplate(rj.ShiftTemplateJSON)
	if err != nil {
		return nil, err
	}

	dates, err := occurrences(rj.Recurrence, period)
	if err != nil {
		return nil, err
	}

	shifts := make([]premium.Shift, len(dates))
	for i, d := range dates {
		s := template
		s.Date = d
		shifts[i] = s
	}
	return shifts, nil
}

func occurrences(rule string, period generic.Period) ([]generic.TimePoint, error) {
	invalid := func(reason string) error {
		return &generic.InvalidInputError{Field: "recurrence", Value: rule, Reason: reason, Err: generic.ErrInvalidRecurrence}
	}

	opt, err := rrule.StrToROption(strings.TrimPrefix(strings.TrimSpace(rule), "RRULE:"))
	if err != nil {
		return nil, invalid(err.Error())
	}
	if opt.Freq > rrule.DAILY {
		return nil, invalid("frequency must be DAILY or coarser")
	}
	opt.Dtstart = period.Start.StartOfDay()

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, invalid(err.Error())
	}
	set := rrule.Set{}
	set.RRule(r)

	var dates []generic.TimePoint
	for _, t := range set.Between(period.Start.StartOfDay(), period.End.EndOfDay(), true) {
		d := generic.FromTime(t)
		if n := len(dates); n > 0 && dates[n-1].SameDate(d) {
			continue
		}
		if len(dates) == MaxRosterShifts {
			return nil, invalid(fmt.Sprintf("more than %d occurrences", MaxRosterShifts))
		}
		dates = append(dates, d)
	}
	return dates, nil
}

func renameField(err error, field string) error {
	if iie, ok := err.(*generic.InvalidInputError); ok {
		iie.Field = field
	}
	return err
}
