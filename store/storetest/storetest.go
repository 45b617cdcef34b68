// Package storetest holds the behaviour every premium.Store must share.
// Each implementation runs Run from its own tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-premium/generic"
	"github.com/warp/shift-premium/premium"
)

// Calculation evaluates a shift on date and wraps it for storage.
func Calculation(t *testing.T, id, date string, area premium.WorkArea, start, end string, created time.Time) premium.Calculation {
	t.Helper()

	d, err := generic.ParseDate(date)
	require.NoError(t, err)
	shift := premium.Shift{
		Area:         area,
		Date:         d,
		Start:        generic.MustParseClock(start),
		End:          generic.MustParseClock(end),
		BreakMinutes: 30,
		BaseWage:     decimal.NewFromInt(160),
		TaxRate:      decimal.NewFromInt(30),
	}
	res, err := premium.Evaluate(shift)
	require.NoError(t, err)
	return premium.Calculation{ID: id, CreatedAt: created.UTC(), Shift: shift, Result: res}
}

func ids(cs []premium.Calculation) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

// Run exercises s, which must start empty.
func Run(t *testing.T, newStore func(t *testing.T) premium.Store) {
	ctx := context.Background()
	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	t.Run("save and get round trip", func(t *testing.T) {
		s := newStore(t)
		// GIVEN: a warehouse shift with two premium lines
		c := Calculation(t, "calc-1", "2025-03-10", premium.AreaWarehouse, "05:00", "08:00", base)
		require.Len(t, c.Result.Breakdown, 2)

		// WHEN: it is saved and read back
		require.NoError(t, s.SaveCalculation(ctx, c))
		got, err := s.GetCalculation(ctx, "calc-1")
		require.NoError(t, err)

		// THEN: every field survives
		assert.Equal(t, c.ID, got.ID)
		assert.True(t, c.CreatedAt.Equal(got.CreatedAt))
		assert.Equal(t, c.Shift.Area, got.Shift.Area)
		assert.Equal(t, c.Shift.Date, got.Shift.Date)
		assert.Equal(t, c.Shift.Start, got.Shift.Start)
		assert.Equal(t, c.Shift.End, got.Shift.End)
		assert.Equal(t, c.Shift.BreakMinutes, got.Shift.BreakMinutes)
		assert.True(t, c.Shift.BaseWage.Equal(got.Shift.BaseWage))
		assert.True(t, c.Shift.TaxRate.Equal(got.Shift.TaxRate))

		assert.Equal(t, c.Result.Day, got.Result.Day)
		assert.True(t, c.Result.ShiftStart.Equal(got.Result.ShiftStart))
		assert.True(t, c.Result.ShiftEnd.Equal(got.Result.ShiftEnd))
		assert.True(t, c.Result.TotalHours.Equal(got.Result.TotalHours))
		assert.True(t, c.Result.BasePay.Equal(got.Result.BasePay))
		assert.True(t, c.Result.TotalPremium.Equal(got.Result.TotalPremium))
		assert.True(t, c.Result.GrossSalary.Equal(got.Result.GrossSalary))
		assert.True(t, c.Result.NetSalary.Equal(got.Result.NetSalary))

		require.Len(t, got.Result.Breakdown, 2)
		for i, want := range c.Result.Breakdown {
			line := got.Result.Breakdown[i]
			assert.Equal(t, want.Label, line.Label)
			assert.Equal(t, want.Kind, line.Kind)
			assert.Equal(t, want.Percentage, line.Percentage)
			assert.True(t, want.Hours.Equal(line.Hours))
			assert.True(t, want.Amount.Equal(line.Amount))
		}
	})

	t.Run("holiday name survives", func(t *testing.T) {
		s := newStore(t)
		c := Calculation(t, "hol", "2025-11-01", premium.AreaStore, "10:00", "14:00", base)
		require.NoError(t, s.SaveCalculation(ctx, c))

		got, err := s.GetCalculation(ctx, "hol")
		require.NoError(t, err)
		assert.True(t, got.Result.Day.IsPublicHoliday)
		assert.Equal(t, "All Saints' Day", got.Result.Day.HolidayName)
	})

	t.Run("empty breakdown stays empty", func(t *testing.T) {
		s := newStore(t)
		c := Calculation(t, "plain", "2025-03-10", premium.AreaStore, "08:00", "17:00", base)
		require.Empty(t, c.Result.Breakdown)
		require.NoError(t, s.SaveCalculation(ctx, c))

		got, err := s.GetCalculation(ctx, "plain")
		require.NoError(t, err)
		assert.NotNil(t, got.Result.Breakdown)
		assert.Empty(t, got.Result.Breakdown)
	})

	t.Run("duplicate id", func(t *testing.T) {
		s := newStore(t)
		c := Calculation(t, "dup", "2025-03-10", premium.AreaStore, "08:00", "17:00", base)
		require.NoError(t, s.SaveCalculation(ctx, c))

		err := s.SaveCalculation(ctx, c)
		assert.ErrorIs(t, err, generic.ErrDuplicateCalculation)
	})

	t.Run("unknown id", func(t *testing.T) {
		s := newStore(t)

		_, err := s.GetCalculation(ctx, "nope")
		assert.ErrorIs(t, err, generic.ErrCalculationNotFound)
		assert.ErrorIs(t, s.DeleteCalculation(ctx, "nope"), generic.ErrCalculationNotFound)
	})

	t.Run("list filters by shift date and orders", func(t *testing.T) {
		s := newStore(t)
		// GIVEN: calculations saved out of order, one outside the period
		for _, c := range []premium.Calculation{
			Calculation(t, "c", "2025-03-12", premium.AreaStore, "08:00", "17:00", base),
			Calculation(t, "b2", "2025-03-10", premium.AreaStore, "08:00", "17:00", base.Add(time.Hour)),
			Calculation(t, "b1", "2025-03-10", premium.AreaStore, "08:00", "17:00", base),
			Calculation(t, "out", "2025-04-01", premium.AreaStore, "08:00", "17:00", base),
			Calculation(t, "a", "2025-03-01", premium.AreaStore, "08:00", "17:00", base),
		} {
			require.NoError(t, s.SaveCalculation(ctx, c))
		}

		// WHEN: March is listed
		march := generic.Period{
			Start: generic.NewTimePoint(2025, time.March, 1),
			End:   generic.NewTimePoint(2025, time.March, 31),
		}
		got, err := s.ListCalculations(ctx, march)
		require.NoError(t, err)

		// THEN: shift date order, then creation order; April excluded
		assert.Equal(t, []string{"a", "b1", "b2", "c"}, ids(got))
	})

	t.Run("list empty", func(t *testing.T) {
		s := newStore(t)
		got, err := s.ListCalculations(ctx, generic.Period{
			Start: generic.NewTimePoint(2025, time.January, 1),
			End:   generic.NewTimePoint(2025, time.December, 31),
		})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		c := Calculation(t, "gone", "2025-03-10", premium.AreaStore, "08:00", "17:00", base)
		require.NoError(t, s.SaveCalculation(ctx, c))

		require.NoError(t, s.DeleteCalculation(ctx, "gone"))
		_, err := s.GetCalculation(ctx, "gone")
		assert.ErrorIs(t, err, generic.ErrCalculationNotFound)
	})

	t.Run("delete created before cutoff", func(t *testing.T) {
		s := newStore(t)
		old := Calculation(t, "old", "2025-03-10", premium.AreaStore, "08:00", "17:00", base.AddDate(0, 0, -30))
		edge := Calculation(t, "edge", "2025-03-10", premium.AreaStore, "08:00", "17:00", base)
		fresh := Calculation(t, "fresh", "2025-03-10", premium.AreaStore, "08:00", "17:00", base.Add(time.Minute))
		for _, c := range []premium.Calculation{old, edge, fresh} {
			require.NoError(t, s.SaveCalculation(ctx, c))
		}

		n, err := s.DeleteCreatedBefore(ctx, base)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n, "cutoff itself is kept")

		_, err = s.GetCalculation(ctx, "old")
		assert.ErrorIs(t, err, generic.ErrCalculationNotFound)
		_, err = s.GetCalculation(ctx, "edge")
		assert.NoError(t, err)
		_, err = s.GetCalculation(ctx, "fresh")
		assert.NoError(t, err)
	})
}
