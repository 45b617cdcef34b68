/*
Package factory converts JSON shift requests into premium.Shift values.

PURPOSE:
  The presentation layer sends loosely typed JSON: clock strings, optional
  numbers, area names in English or Swedish. The factory validates that
  shape, fills omitted fields from premium.Preferences and hands the engine
  a fully typed Shift. The engine itself never sees JSON.

JSON SCHEMA (single shift):
  {
    "workArea": "Store",          // Store | Warehouse | ECommerce | Butik | Lager | E-handel
    "date": "2025-03-10",         // required
    "startTime": "08:00",         // HH:MM, 24h
    "endTime": "17:00",           // earlier than startTime = ends next day
    "breakMinutes": 30,
    "baseWage": 160,
    "taxRate": 30
  }

  Every field except date may be omitted; omitted fields come from the
  factory's Preferences.

ROSTERS:
  See roster.go. A roster is the same template plus an RFC 5545 recurrence
  rule and a from/to date range.

VALIDATION:
  Struct tags are checked with go-playground/validator first. Failures are
  returned as *ValidationError listing every offending field. Clock, date
  and area parsing errors are *generic.InvalidInputError. Both match
  generic.ErrInvalidInput with errors.Is.

USAGE:
  f := factory.NewRequestFactory(premium.DefaultPreferences())
  shift, err := f.ParseCalculation(`{"date":"2025-03-10","workArea":"Lager"}`)
  result, err := premium.Evaluate(shift)

SEE ALSO:
  - premium/types.go: Shift and Preferences
  - generic/errors.go: error sentinels
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/warp/shift-premium/generic"
	"github.com/warp/shift-premium/premium"
)

// =============================================================================
// JSON SCHEMA
// =============================================================================

// ShiftTemplateJSON holds the fields shared by single calculations and
// rosters. Pointer fields distinguish "omitted" from zero.
type ShiftTemplateJSON struct {
	WorkArea     string   `json:"workArea,omitempty" validate:"omitempty,max=32"`
	StartTime    string   `json:"startTime,omitempty"`
	EndTime      string   `json:"endTime,omitempty"`
	BreakMinutes *int     `json:"breakMinutes,omitempty" validate:"omitempty,gte=0,lte=1440"`
	BaseWage     *float64 `json:"baseWage,omitempty" validate:"omitempty,gte=0"`
	TaxRate      *float64 `json:"taxRate,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// CalculationJSON is the wire form of one CalculationRequest.
type CalculationJSON struct {
	ShiftTemplateJSON
	Date string `json:"date" validate:"required"`
}

// =============================================================================
// VALIDATION ERRORS
// =============================================================================

// FieldError is one failed struct-tag rule.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError collects every FieldError from one request.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return generic.ErrInvalidInput }

// =============================================================================
// REQUEST FACTORY
// =============================================================================

// RequestFactory turns JSON requests into shifts.
type RequestFactory struct {
	Prefs    premium.Preferences
	validate *validator.Validate
}

// NewRequestFactory creates a factory that fills omitted fields from prefs.
func NewRequestFactory(prefs premium.Preferences) *RequestFactory {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &RequestFactory{Prefs: prefs, validate: v}
}

// ParseCalculation parses a JSON string into a Shift.
func (f *RequestFactory) ParseCalculation(jsonStr string) (premium.Shift, error) {
	var cj CalculationJSON
	if err := json.Unmarshal([]byte(jsonStr), &cj); err != nil {
		return premium.Shift{}, fmt.Errorf("%w: failed to parse calculation JSON: %v", generic.ErrInvalidInput, err)
	}
	return f.FromJSON(cj)
}

// FromJSON validates cj and converts it to a Shift.
func (f *RequestFactory) FromJSON(cj CalculationJSON) (premium.Shift, error) {
	if err := f.check(cj); err != nil {
		return premium.Shift{}, err
	}

	date, err := generic.ParseDate(cj.Date)
	if err != nil {
		return premium.Shift{}, err
	}

	shift, err := f.fromTemplate(cj.ShiftTemplateJSON)
	if err != nil {
		return premium.Shift{}, err
	}
	shift.Date = date
	return shift, nil
}

// ToJSON converts a Shift back to its wire form with every field set.
func (f *RequestFactory) ToJSON(s premium.Shift) CalculationJSON {
	brk := s.BreakMinutes
	wage := s.BaseWage.InexactFloat64()
	tax := s.TaxRate.InexactFloat64()
	return CalculationJSON{
		ShiftTemplateJSON: ShiftTemplateJSON{
			WorkArea:     string(s.Area),
			StartTime:    s.Start.String(),
			EndTime:      s.End.String(),
			BreakMinutes: &brk,
			BaseWage:     &wage,
			TaxRate:      &tax,
		},
		Date: s.Date.String(),
	}
}

func (f *RequestFactory) check(v any) error {
	err := f.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", generic.ErrInvalidInput, err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// fromTemplate applies preferences to omitted fields and parses the rest.
// Date is left zero.
func (f *RequestFactory) fromTemplate(tj ShiftTemplateJSON) (premium.Shift, error) {
	shift := premium.Shift{
		Area:         f.Prefs.Area,
		Start:        f.Prefs.Start,
		End:          f.Prefs.End,
		BreakMinutes: f.Prefs.BreakMinutes,
		BaseWage:     f.Prefs.BaseWage,
		TaxRate:      f.Prefs.TaxRate,
	}

	if tj.WorkArea != "" {
		area, err := premium.ParseWorkArea(tj.WorkArea)
		if err != nil {
			return premium.Shift{}, err
		}
		shift.Area = area
	}
	if tj.StartTime != "" {
		c, err := parseClockField("startTime", tj.StartTime)
		if err != nil {
			return premium.Shift{}, err
		}
		shift.Start = c
	}
	if tj.EndTime != "" {
		c, err := parseClockField("endTime", tj.EndTime)
		if err != nil {
			return premium.Shift{}, err
		}
		shift.End = c
	}
	if tj.BreakMinutes != nil {
		shift.BreakMinutes = *tj.BreakMinutes
	}
	if tj.BaseWage != nil {
		shift.BaseWage = decimal.NewFromFloat(*tj.BaseWage)
	}
	if tj.TaxRate != nil {
		shift.TaxRate = decimal.NewFromFloat(*tj.TaxRate)
	}
	return shift, nil
}

func parseClockField(field, s string) (generic.Clock, error) {
	c, err := generic.ParseClock(s)
	if err != nil {
		var iie *generic.InvalidInputError
		if errors.As(err, &iie) {
			iie.Field = field
		}
		return generic.Clock{}, err
	}
	return c, nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// jsonFieldName makes validator report the wire name instead of the Go one.
func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
