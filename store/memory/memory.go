// Package memory provides an in-memory premium.Store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/shift-premium/generic"
	"github.com/warp/shift-premium/premium"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

var _ premium.Store = (*Memory)(nil)

type Memory struct {
	mu           sync.RWMutex
	calculations map[string]premium.Calculation
}

func NewMemory() *Memory {
	return &Memory{calculations: make(map[string]premium.Calculation)}
}

// SaveCalculation stores a copy of c. Duplicate ids are rejected.
func (m *Memory) SaveCalculation(_ context.Context, c premium.Calculation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.calculations[c.ID]; ok {
		return generic.ErrDuplicateCalculation
	}
	m.calculations[c.ID] = clone(c)
	return nil
}

func (m *Memory) GetCalculation(_ context.Context, id string) (*premium.Calculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.calculations[id]
	if !ok {
		return nil, generic.ErrCalculationNotFound
	}
	out := clone(c)
	return &out, nil
}

func (m *Memory) ListCalculations(_ context.Context, p generic.Period) ([]premium.Calculation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []premium.Calculation{}
	for _, c := range m.calculations {
		if p.Contains(c.Shift.Date) {
			result = append(result, clone(c))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !a.Shift.Date.Equal(b.Shift.Date) {
			return a.Shift.Date.Before(b.Shift.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return result, nil
}

func (m *Memory) DeleteCalculation(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.calculations[id]; !ok {
		return generic.ErrCalculationNotFound
	}
	delete(m.calculations, id)
	return nil
}

func (m *Memory) DeleteCreatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, c := range m.calculations {
		if c.CreatedAt.Before(cutoff) {
			delete(m.calculations, id)
			n++
		}
	}
	return n, nil
}

// Reset drops everything.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calculations = make(map[string]premium.Calculation)
	return nil
}

// clone copies the breakdown so callers can't mutate stored state.
func clone(c premium.Calculation) premium.Calculation {
	lines := make([]premium.BreakdownEntry, len(c.Result.Breakdown))
	copy(lines, c.Result.Breakdown)
	c.Result.Breakdown = lines
	return c
}
