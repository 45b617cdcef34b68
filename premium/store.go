package premium

import (
	"context"
	"time"

	"github.com/warp/shift-premium/generic"
)

// =============================================================================
// CALCULATION HISTORY
// =============================================================================

// Calculation is an evaluated shift kept for later reference. The engine
// itself never persists anything; callers that want history use a Store.
type Calculation struct {
	ID        string
	CreatedAt time.Time
	Shift     Shift
	Result    Result
}

// Store persists calculations.
//
// IMPLEMENTATIONS:
//   - store/sqlite: SQLite
//   - store/memory: in-memory, for tests and the CLI
type Store interface {
	// SaveCalculation inserts c. IDs are unique.
	SaveCalculation(ctx context.Context, c Calculation) error

	// GetCalculation returns generic.ErrCalculationNotFound for an unknown id.
	GetCalculation(ctx context.Context, id string) (*Calculation, error)

	// ListCalculations returns calculations whose shift date lies in p,
	// ordered by shift date, then creation time.
	ListCalculations(ctx context.Context, p generic.Period) ([]Calculation, error)

	// DeleteCalculation returns generic.ErrCalculationNotFound for an unknown id.
	DeleteCalculation(ctx context.Context, id string) error

	// DeleteCreatedBefore removes calculations created before cutoff and
	// reports how many were removed.
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
