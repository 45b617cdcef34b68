/*
Package generic provides the domain-agnostic building blocks of the pay engine.

PURPOSE:
  Dates, clock times, intervals and decimal quantities that any rate
  schedule needs, independent of which collective agreement is applied.
  The premium package builds the agreement-specific rules on top.

KEY CONCEPTS IN THIS FILE (types.go):
  - Percent: A whole-number premium percentage
  - Hours: Conversion from time.Duration to exact decimal hours

DESIGN PRINCIPLES:
  1. Immutability: Every value is a plain value type, never mutated in place
  2. Precision: Uses decimal.Decimal so gross = base + premiums holds exactly
  3. Purity: Nothing in this package performs I/O or keeps global state

USAGE:
  worked := generic.Hours(8*time.Hour + 30*time.Minute) // 8.5
  pay := generic.PayFor(8*time.Hour+30*time.Minute, decimal.NewFromInt(160)) // 1360

SEE ALSO:
  - time.go: TimePoint and Clock
  - period.go: Interval overlap and pay periods
  - calendar.go: Year-scoped holiday tables
*/
package generic

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PERCENT
// =============================================================================

// Percent is a non-negative whole-number percentage (70 means 70%).
type Percent int

// =============================================================================
// DURATION -> DECIMAL
// =============================================================================

var (
	hundred     = decimal.NewFromInt(100)
	msPerHour   = decimal.NewFromInt(int64(time.Hour / time.Millisecond))
	msPerHour00 = msPerHour.Mul(hundred)
)

// Hours converts d to decimal hours at millisecond resolution.
func Hours(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(d.Milliseconds()).Div(msPerHour)
}

// PayFor is d × rate per hour. The single division happens last, so whole
// and half hours at whole-unit rates come out exact.
func PayFor(d time.Duration, rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(d.Milliseconds()).Mul(rate).Div(msPerHour)
}

// PremiumFor is d × rate × p/100, again dividing once at the end.
func PremiumFor(d time.Duration, rate decimal.Decimal, p Percent) decimal.Decimal {
	return decimal.NewFromInt(d.Milliseconds()).Mul(rate).Mul(decimal.NewFromInt(int64(p))).Div(msPerHour00)
}

// AfterTax is gross × (1 - rate/100).
func AfterTax(gross, ratePercent decimal.Decimal) decimal.Decimal {
	return gross.Mul(hundred.Sub(ratePercent)).Div(hundred)
}
