package premium_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-premium/generic"
	"github.com/warp/shift-premium/premium"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) generic.TimePoint {
	return generic.NewTimePoint(year, month, day)
}

func clock(s string) generic.Clock {
	return generic.MustParseClock(s)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, got.Equal(dec(want)), "%s: want %s, got %s", field, want, got)
}

func shift(area premium.WorkArea, day generic.TimePoint, start, end string, breakMin int, wage, tax string) premium.Shift {
	return premium.Shift{
		Area:         area,
		Date:         day,
		Start:        clock(start),
		End:          clock(end),
		BreakMinutes: breakMin,
		BaseWage:     dec(wage),
		TaxRate:      dec(tax),
	}
}

func windowsFor(t *testing.T, area premium.WorkArea, day generic.TimePoint) []premium.Window {
	t.Helper()
	ws, err := premium.GenerateWindows(area, premium.Classify(day))
	require.NoError(t, err)
	return ws
}

func labels(ws []premium.Window) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Label
	}
	return out
}
