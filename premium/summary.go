package premium

import "github.com/shopspring/decimal"

// =============================================================================
// SUMMARY - Totals across several evaluated shifts
// =============================================================================

// Summary aggregates results, e.g. every shift of a roster or a pay period.
// Premiums holds one entry per (label, percentage) in first-seen order.
type Summary struct {
	Shifts       int
	TotalHours   decimal.Decimal
	BasePay      decimal.Decimal
	TotalPremium decimal.Decimal
	GrossSalary  decimal.Decimal
	NetSalary    decimal.Decimal
	Premiums     []BreakdownEntry
}

type premiumKey struct {
	label   string
	percent int
}

// Summarize adds up results. Net is the sum of per-shift nets, so shifts
// taxed at different rates still total correctly.
func Summarize(results []Result) Summary {
	sum := Summary{
		Shifts:       len(results),
		TotalHours:   decimal.Zero,
		BasePay:      decimal.Zero,
		TotalPremium: decimal.Zero,
		GrossSalary:  decimal.Zero,
		NetSalary:    decimal.Zero,
		Premiums:     []BreakdownEntry{},
	}
	index := make(map[premiumKey]int)

	for _, r := range results {
		sum.TotalHours = sum.TotalHours.Add(r.TotalHours)
		sum.BasePay = sum.BasePay.Add(r.BasePay)
		sum.TotalPremium = sum.TotalPremium.Add(r.TotalPremium)
		sum.GrossSalary = sum.GrossSalary.Add(r.GrossSalary)
		sum.NetSalary = sum.NetSalary.Add(r.NetSalary)

		for _, e := range r.Breakdown {
			k := premiumKey{label: e.Label, percent: int(e.Percentage)}
			i, ok := index[k]
			if !ok {
				index[k] = len(sum.Premiums)
				sum.Premiums = append(sum.Premiums, BreakdownEntry{
					Label: e.Label, Kind: e.Kind, Percentage: e.Percentage,
					Hours: e.Hours, Amount: e.Amount,
				})
				continue
			}
			sum.Premiums[i].Hours = sum.Premiums[i].Hours.Add(e.Hours)
			sum.Premiums[i].Amount = sum.Premiums[i].Amount.Add(e.Amount)
		}
	}
	return sum
}

// EvaluateAll prices every shift, stopping at the first invalid one.
func (e *Evaluator) EvaluateAll(shifts []Shift) ([]Result, Summary, error) {
	results := make([]Result, 0, len(shifts))
	for _, s := range shifts {
		r, err := e.Evaluate(s)
		if err != nil {
			return nil, Summary{}, err
		}
		results = append(results, r)
	}
	return results, Summarize(results), nil
}
