package generic_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warp/shift-premium/generic"
)

func TestDateTable_YearScoped(t *testing.T) {
	table := generic.DateTable{
		Year: 2025,
		Entries: []generic.Holiday{
			{Date: generic.NewTimePoint(2025, time.December, 25), Name: "Christmas Day"},
		},
	}

	h, ok := table.Lookup(generic.NewTimePoint(2025, time.December, 25))
	assert.True(t, ok)
	assert.Equal(t, "Christmas Day", h.Name)

	assert.False(t, table.Contains(generic.NewTimePoint(2026, time.December, 25)))
	assert.False(t, table.Contains(generic.NewTimePoint(2025, time.December, 24)))
	assert.Len(t, table.Holidays(2025), 1)
	assert.Nil(t, table.Holidays(2026))
}

func TestPayArithmetic(t *testing.T) {
	wage := decimal.NewFromInt(160)

	assert.True(t, generic.Hours(8*time.Hour+30*time.Minute).Equal(decimal.RequireFromString("8.5")))
	assert.True(t, generic.PayFor(8*time.Hour+30*time.Minute, wage).Equal(decimal.NewFromInt(1360)))
	assert.True(t, generic.PremiumFor(105*time.Minute, wage, 50).Equal(decimal.NewFromInt(140)))
	assert.True(t, generic.PayFor(20*time.Minute, decimal.NewFromInt(150)).Equal(decimal.NewFromInt(50)))
	assert.True(t, generic.AfterTax(decimal.NewFromInt(1360), decimal.NewFromInt(30)).Equal(decimal.NewFromInt(952)))
	assert.True(t, generic.AfterTax(decimal.NewFromInt(1360), decimal.NewFromInt(100)).IsZero())
}

func TestErrorHelpers(t *testing.T) {
	inErr := &generic.InvalidInputError{Field: "start_time", Value: "25:00", Reason: "use HH:MM", Err: generic.ErrInvalidClock}
	wrapped := fmt.Errorf("parse request: %w", inErr)

	assert.ErrorIs(t, wrapped, generic.ErrInvalidClock)
	assert.True(t, generic.IsClientError(wrapped))
	assert.False(t, generic.IsRetryable(wrapped))
	assert.Equal(t, `start_time "25:00": use HH:MM`, inErr.Error())

	assert.True(t, generic.IsNotFound(fmt.Errorf("get: %w", generic.ErrCalculationNotFound)))
	assert.True(t, generic.IsRetryable(errors.New("database is locked")))
	assert.False(t, generic.IsRetryable(nil))

	bare := &generic.InvalidInputError{Field: "x"}
	assert.ErrorIs(t, bare, generic.ErrInvalidInput)
}
