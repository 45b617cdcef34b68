package api

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/shift-premium/factory"
	"github.com/warp/shift-premium/generic"
	"github.com/warp/shift-premium/premium"
)

// =============================================================================
// REQUEST DTOs
// =============================================================================

// CalculationRequest is the CalculationRequest of the engine interface.
type CalculationRequest = factory.CalculationJSON

// RosterRequest is a recurring shift template.
type RosterRequest = factory.RosterJSON

// =============================================================================
// RESPONSE DTOs
// =============================================================================

// BreakdownDTO is one obBreakdown entry.
type BreakdownDTO struct {
	Label      string  `json:"label"`
	Kind       string  `json:"kind"`
	Amount     float64 `json:"amount"`
	Percentage int     `json:"percentage"`
	Hours      float64 `json:"hours"`
}

// CalendarDayDTO represents a classified date.
type CalendarDayDTO struct {
	Date            string `json:"date"`
	Weekday         string `json:"weekday"`
	WeekdayNumber   int    `json:"weekdayNumber"` // Sunday = 0
	IsPublicHoliday bool   `json:"isPublicHoliday"`
	HolidayName     string `json:"holidayName,omitempty"`
	Eve             string `json:"eve,omitempty"`
}

// CalculationResultDTO is the CalculationResult of the engine interface plus
// the resolved shift span and day classification.
type CalculationResultDTO struct {
	GrossSalary  float64        `json:"grossSalary"`
	NetSalary    float64        `json:"netSalary"`
	TotalHours   float64        `json:"totalHours"`
	BasePay      float64        `json:"basePay"`
	ObBreakdown  []BreakdownDTO `json:"obBreakdown"`
	TotalPremium float64        `json:"totalPremium"`
	ShiftStart   string         `json:"shiftStart"`
	ShiftEnd     string         `json:"shiftEnd"`
	Day          CalendarDayDTO `json:"day"`
}

// WindowDTO represents one premium window.
type WindowDTO struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	Percentage int    `json:"percentage"`
	Label      string `json:"label"`
	Kind       string `json:"kind"`
}

// WindowsDTO is the window preview for one area and date.
type WindowsDTO struct {
	WorkArea string         `json:"workArea"`
	Day      CalendarDayDTO `json:"day"`
	Windows  []WindowDTO    `json:"windows"`
}

// HolidayDTO represents a public holiday.
type HolidayDTO struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// EveDTO represents an eve day.
type EveDTO struct {
	Date string `json:"date"`
	Kind string `json:"kind"`
}

// HolidaysDTO is the agreement calendar for one year.
type HolidaysDTO struct {
	Year     int          `json:"year"`
	Holidays []HolidayDTO `json:"holidays"`
	Eves     []EveDTO     `json:"eves"`
}

// StoredCalculationDTO represents a calculation from the history.
type StoredCalculationDTO struct {
	ID        string               `json:"id"`
	CreatedAt string               `json:"createdAt"`
	Request   CalculationRequest   `json:"request"`
	Result    CalculationResultDTO `json:"result"`
}

// SummaryDTO totals several shifts.
type SummaryDTO struct {
	Period       string         `json:"period,omitempty"`
	Shifts       int            `json:"shifts"`
	TotalHours   float64        `json:"totalHours"`
	BasePay      float64        `json:"basePay"`
	TotalPremium float64        `json:"totalPremium"`
	GrossSalary  float64        `json:"grossSalary"`
	NetSalary    float64        `json:"netSalary"`
	Premiums     []BreakdownDTO `json:"premiums"`
}

// RosterShiftDTO is one evaluated roster occurrence.
type RosterShiftDTO struct {
	Date   string               `json:"date"`
	Result CalculationResultDTO `json:"result"`
}

// RosterResultDTO is the response of a roster evaluation.
type RosterResultDTO struct {
	Shifts  []RosterShiftDTO `json:"shifts"`
	Summary SummaryDTO       `json:"summary"`
}

// ScenarioDTO represents a reference scenario.
type ScenarioDTO struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	Description         string             `json:"description"`
	Request             CalculationRequest `json:"request"`
	ExpectedGrossSalary float64            `json:"expectedGrossSalary"`
	ExpectedNetSalary   float64            `json:"expectedNetSalary"`
}

// ScenarioRunDTO is the outcome of running a scenario.
type ScenarioRunDTO struct {
	Scenario ScenarioDTO          `json:"scenario"`
	Result   CalculationResultDTO `json:"result"`
	Matches  bool                 `json:"matches"`
	SavedID  string               `json:"savedId,omitempty"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

// instantLayout keeps millisecond precision so 23:59:59.999 stays visible.
const instantLayout = "2006-01-02T15:04:05.000Z07:00"

func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func toBreakdownDTOs(entries []premium.BreakdownEntry) []BreakdownDTO {
	out := make([]BreakdownDTO, len(entries))
	for i, e := range entries {
		out[i] = BreakdownDTO{
			Label:      e.Label,
			Kind:       string(e.Kind),
			Amount:     num(e.Amount),
			Percentage: int(e.Percentage),
			Hours:      num(e.Hours),
		}
	}
	return out
}

func toCalendarDayDTO(day premium.CalendarDay) CalendarDayDTO {
	return CalendarDayDTO{
		Date:            day.Date.String(),
		Weekday:         day.Weekday.String(),
		WeekdayNumber:   int(day.Weekday),
		IsPublicHoliday: day.IsPublicHoliday,
		HolidayName:     day.HolidayName,
		Eve:             string(day.Eve),
	}
}

func toResultDTO(r premium.Result) CalculationResultDTO {
	return CalculationResultDTO{
		GrossSalary:  num(r.GrossSalary),
		NetSalary:    num(r.NetSalary),
		TotalHours:   num(r.TotalHours),
		BasePay:      num(r.BasePay),
		ObBreakdown:  toBreakdownDTOs(r.Breakdown),
		TotalPremium: num(r.TotalPremium),
		ShiftStart:   r.ShiftStart.Format(instantLayout),
		ShiftEnd:     r.ShiftEnd.Format(instantLayout),
		Day:          toCalendarDayDTO(r.Day),
	}
}

func toWindowDTOs(windows []premium.Window) []WindowDTO {
	out := make([]WindowDTO, len(windows))
	for i, w := range windows {
		out[i] = WindowDTO{
			Start:      w.Start.Format(instantLayout),
			End:        w.End.Format(instantLayout),
			Percentage: int(w.Percent),
			Label:      w.Label,
			Kind:       string(w.Kind),
		}
	}
	return out
}

func toSummaryDTO(s premium.Summary) SummaryDTO {
	return SummaryDTO{
		Shifts:       s.Shifts,
		TotalHours:   num(s.TotalHours),
		BasePay:      num(s.BasePay),
		TotalPremium: num(s.TotalPremium),
		GrossSalary:  num(s.GrossSalary),
		NetSalary:    num(s.NetSalary),
		Premiums:     toBreakdownDTOs(s.Premiums),
	}
}

func toHolidaysDTO(year int, holidays []generic.Holiday, eves []premium.Eve) HolidaysDTO {
	dto := HolidaysDTO{Year: year, Holidays: []HolidayDTO{}, Eves: []EveDTO{}}
	for _, h := range holidays {
		dto.Holidays = append(dto.Holidays, HolidayDTO{Date: h.Date.String(), Name: h.Name})
	}
	for _, e := range eves {
		dto.Eves = append(dto.Eves, EveDTO{Date: e.Date.String(), Kind: string(e.Kind)})
	}
	return dto
}

func (h *Handler) toStoredDTO(c premium.Calculation) StoredCalculationDTO {
	return StoredCalculationDTO{
		ID:        c.ID,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
		Request:   h.Factory.ToJSON(c.Shift),
		Result:    toResultDTO(c.Result),
	}
}
