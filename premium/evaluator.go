package premium

import (
	"github.com/shopspring/decimal"
	"github.com/warp/shift-premium/generic"
)

// =============================================================================
// EVALUATOR - Shift -> itemized pay
// =============================================================================

// Evaluator prices shifts against one agreement calendar. It holds no
// mutable state; a single Evaluator may serve any number of goroutines.
type Evaluator struct {
	Classifier *Classifier
}

// NewEvaluator returns an evaluator over c, or over the 2025 calendar when c
// is nil.
func NewEvaluator(c *Classifier) *Evaluator {
	if c == nil {
		c = DefaultClassifier()
	}
	return &Evaluator{Classifier: c}
}

var hundredRate = decimal.NewFromInt(100)

// Validate checks everything Evaluate would reject, without computing pay.
func (s Shift) Validate() error {
	if err := s.Area.validate(); err != nil {
		return err
	}
	if s.BreakMinutes < 0 {
		return &generic.InvalidInputError{Field: "breakMinutes", Value: s.BreakMinutes, Reason: "must be >= 0", Err: generic.ErrInvalidRate}
	}
	if s.BaseWage.IsNegative() {
		return &generic.InvalidInputError{Field: "baseWage", Value: s.BaseWage, Reason: "must be >= 0", Err: generic.ErrInvalidRate}
	}
	if s.TaxRate.IsNegative() || s.TaxRate.GreaterThan(hundredRate) {
		return &generic.InvalidInputError{Field: "taxRate", Value: s.TaxRate, Reason: "must be within 0..100", Err: generic.ErrInvalidRate}
	}
	if s.paidDuration() < 0 {
		return &generic.InvalidInputError{
			Field:  "breakMinutes",
			Value:  s.BreakMinutes,
			Reason: "break is longer than the shift " + s.Start.String() + "-" + s.End.String(),
			Err:    generic.ErrNegativeDuration,
		}
	}
	return nil
}

// Evaluate computes base pay, the premium breakdown and gross/net pay for
// one shift. It either returns a complete result or an error; nothing is
// partially filled.
//
// A break longer than the shift is rejected with ErrNegativeDuration rather
// than producing negative hours.
func (e *Evaluator) Evaluate(s Shift) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}

	shift := s.Interval()
	paid := s.paidDuration()

	day := e.Classifier.Classify(s.Date)
	windows, err := GenerateWindows(s.Area, day)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Day:          day,
		ShiftStart:   shift.Start,
		ShiftEnd:     shift.End,
		TotalHours:   generic.Hours(paid),
		BasePay:      generic.PayFor(paid, s.BaseWage),
		TotalPremium: decimal.Zero,
		Breakdown:    []BreakdownEntry{},
	}

	// Overlap is measured against the full shift span; the break is not
	// placed anywhere inside it.
	for _, w := range windows {
		overlap := shift.Overlap(w.Interval())
		if overlap <= 0 {
			continue
		}
		amount := generic.PremiumFor(overlap, s.BaseWage, w.Percent)
		res.TotalPremium = res.TotalPremium.Add(amount)
		res.Breakdown = append(res.Breakdown, BreakdownEntry{
			Label:      w.Label,
			Kind:       w.Kind,
			Percentage: w.Percent,
			Hours:      generic.Hours(overlap),
			Amount:     amount,
		})
	}

	res.GrossSalary = res.BasePay.Add(res.TotalPremium)
	res.NetSalary = generic.AfterTax(res.GrossSalary, s.TaxRate)
	return res, nil
}

// Evaluate prices s against the 2025 calendar.
func Evaluate(s Shift) (Result, error) {
	return NewEvaluator(nil).Evaluate(s)
}
