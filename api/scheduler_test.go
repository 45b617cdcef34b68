package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-premium/generic"
	"github.com/warp/shift-premium/premium"
	"github.com/warp/shift-premium/store/memory"
	"github.com/warp/shift-premium/store/storetest"
)

func seedHistory(t *testing.T, created ...time.Time) *memory.Memory {
	t.Helper()
	store := memory.NewMemory()
	for i, c := range created {
		calc := storetest.Calculation(t, string(rune('a'+i)), "2025-03-10", premium.AreaStore, "08:00", "17:00", c)
		require.NoError(t, store.SaveCalculation(context.Background(), calc))
	}
	return store
}

func TestRetentionScheduler_Prune(t *testing.T) {
	// GIVEN: calculations created 500, 400 and 10 days ago
	now := time.Date(2026, time.June, 1, 3, 0, 0, 0, time.UTC)
	store := seedHistory(t,
		now.AddDate(0, 0, -500),
		now.AddDate(0, 0, -400),
		now.AddDate(0, 0, -10),
	)
	rs, err := NewRetentionScheduler(store, 400, "0 3 * * *", quietLogger())
	require.NoError(t, err)
	rs.Now = func() time.Time { return now }

	// WHEN: a run happens
	n, err := rs.Prune(context.Background())

	// THEN: only the one older than the window is gone; the cutoff itself is kept
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, now, rs.LastRun())

	left, err := store.ListCalculations(context.Background(), generic.PeriodFor(generic.PeriodCalendarYear, generic.NewTimePoint(2025, time.March, 10)))
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, []string{"b", "c"}, []string{left[0].ID, left[1].ID})
}

func TestRetentionScheduler_Disabled(t *testing.T) {
	store := seedHistory(t, time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC))

	rs, err := NewRetentionScheduler(store, 0, "not a schedule", quietLogger())
	require.NoError(t, err)
	assert.False(t, rs.Enabled())

	rs.Start()
	defer rs.Stop()

	n, err := rs.Prune(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.True(t, rs.NextRunTime().IsZero())
	assert.True(t, rs.LastRun().IsZero())
}

func TestRetentionScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewRetentionScheduler(memory.NewMemory(), 30, "every night", quietLogger())
	assert.Error(t, err)
}

func TestRetentionScheduler_StartSchedulesNextRun(t *testing.T) {
	rs, err := NewRetentionScheduler(memory.NewMemory(), 30, "0 3 * * *", quietLogger())
	require.NoError(t, err)

	rs.Start()
	defer rs.Stop()

	next := rs.NextRunTime()
	require.False(t, next.IsZero())
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())
}

func TestRetentionScheduler_StoreError(t *testing.T) {
	rs, err := NewRetentionScheduler(failingStore{}, 30, "@daily", quietLogger())
	require.NoError(t, err)

	_, err = rs.Prune(context.Background())
	assert.ErrorIs(t, err, errDiskFull)
	assert.True(t, rs.LastRun().IsZero())
}
