/*
Package sqlite provides a SQLite-backed premium.Store.

PURPOSE:
  Keeps a history of evaluated shifts so a worker can look back at what a
  pay period's shifts were worth. The engine itself is pure; only the API
  layer writes here.

KEY TABLES:
  calculations:      One row per evaluated shift: the input, the day
                     classification and the totals
  calculation_lines: Premium breakdown lines, ordered by position

MONEY:
  Every amount is stored as a decimal string (shopspring/decimal implements
  sql.Scanner and driver.Valuer), never as REAL, so a stored result reads
  back exactly equal.

TIMESTAMPS:
  shift_date is YYYY-MM-DD. created_at, shift_start and shift_end use a
  fixed-width UTC layout so string comparison matches time order.

INDEXES:
  - idx_calculations_shift_date: pay period listings
  - idx_calculations_created_at: retention cleanup

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. An in-memory database is pinned to a
  single connection, otherwise every pooled connection would see its own
  empty database.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't block
  the single writer.

USAGE:
  store, err := sqlite.New("./data/obpay.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - premium/store.go: Interface definition
  - store/memory: In-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/warp/shift-premium/generic"
	"github.com/warp/shift-premium/premium"
)

// timeLayout is fixed width so that lexical order equals time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var _ premium.Store = (*Store)(nil)

// Store implements premium.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS calculations (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		work_area TEXT NOT NULL,
		shift_date TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		break_minutes INTEGER NOT NULL,
		base_wage TEXT NOT NULL,
		tax_rate TEXT NOT NULL,
		is_public_holiday INTEGER NOT NULL DEFAULT 0,
		holiday_name TEXT,
		eve_kind TEXT,
		shift_start TEXT NOT NULL,
		shift_end TEXT NOT NULL,
		total_hours TEXT NOT NULL,
		base_pay TEXT NOT NULL,
		total_premium TEXT NOT NULL,
		gross_salary TEXT NOT NULL,
		net_salary TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_calculations_shift_date
		ON calculations(shift_date, created_at);
	CREATE INDEX IF NOT EXISTS idx_calculations_created_at
		ON calculations(created_at);

	CREATE TABLE IF NOT EXISTS calculation_lines (
		calculation_id TEXT NOT NULL REFERENCES calculations(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		label TEXT NOT NULL,
		kind TEXT NOT NULL,
		percentage INTEGER NOT NULL,
		hours TEXT NOT NULL,
		amount TEXT NOT NULL,
		PRIMARY KEY (calculation_id, position)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CALCULATIONS
// =============================================================================

// SaveCalculation inserts the calculation and its lines in one transaction.
func (s *Store) SaveCalculation(ctx context.Context, c premium.Calculation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	day := c.Result.Day
	_, err = tx.ExecContext(ctx, `
		INSERT INTO calculations (
			id, created_at, work_area, shift_date, start_time, end_time,
			break_minutes, base_wage, tax_rate,
			is_public_holiday, holiday_name, eve_kind,
			shift_start, shift_end,
			total_hours, base_pay, total_premium, gross_salary, net_salary
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, formatTime(c.CreatedAt), string(c.Shift.Area), c.Shift.Date.String(),
		c.Shift.Start.String(), c.Shift.End.String(),
		c.Shift.BreakMinutes, c.Shift.BaseWage, c.Shift.TaxRate,
		day.IsPublicHoliday, nullString(day.HolidayName), nullString(string(day.Eve)),
		formatTime(c.Result.ShiftStart), formatTime(c.Result.ShiftEnd),
		c.Result.TotalHours, c.Result.BasePay, c.Result.TotalPremium,
		c.Result.GrossSalary, c.Result.NetSalary,
	)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("%w: %s", generic.ErrDuplicateCalculation, c.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to insert calculation: %w", err)
	}

	for i, line := range c.Result.Breakdown {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO calculation_lines (calculation_id, position, label, kind, percentage, hours, amount)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			c.ID, i, line.Label, string(line.Kind), int(line.Percentage), line.Hours, line.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert calculation line: %w", err)
		}
	}

	return tx.Commit()
}

const selectCalculation = `
	SELECT id, created_at, work_area, shift_date, start_time, end_time,
		break_minutes, base_wage, tax_rate,
		is_public_holiday, holiday_name, eve_kind,
		shift_start, shift_end,
		total_hours, base_pay, total_premium, gross_salary, net_salary
	FROM calculations`

// GetCalculation retrieves one calculation with its lines.
func (s *Store) GetCalculation(ctx context.Context, id string) (*premium.Calculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := scanCalculation(s.db.QueryRowContext(ctx, selectCalculation+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, generic.ErrCalculationNotFound
	}
	if err != nil {
		return nil, err
	}

	lines, err := s.queryLines(ctx, "WHERE calculation_id = ?", id)
	if err != nil {
		return nil, err
	}
	c.Result.Breakdown = linesByID(lines)[c.ID]
	if c.Result.Breakdown == nil {
		c.Result.Breakdown = []premium.BreakdownEntry{}
	}
	return &c, nil
}

// ListCalculations returns calculations whose shift date falls in p.
func (s *Store) ListCalculations(ctx context.Context, p generic.Period) ([]premium.Calculation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	from, to := p.Start.String(), p.End.String()
	rows, err := s.db.QueryContext(ctx,
		selectCalculation+" WHERE shift_date BETWEEN ? AND ? ORDER BY shift_date, created_at, id",
		from, to,
	)
	if err != nil {
		return nil, err
	}

	result := []premium.Calculation{}
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// Lines are fetched after the first cursor is closed; an in-memory
	// database has only one connection.
	lines, err := s.queryLines(ctx,
		"WHERE calculation_id IN (SELECT id FROM calculations WHERE shift_date BETWEEN ? AND ?)",
		from, to,
	)
	if err != nil {
		return nil, err
	}
	byID := linesByID(lines)
	for i := range result {
		result[i].Result.Breakdown = byID[result[i].ID]
		if result[i].Result.Breakdown == nil {
			result[i].Result.Breakdown = []premium.BreakdownEntry{}
		}
	}
	return result, nil
}

// DeleteCalculation removes a calculation; its lines cascade.
func (s *Store) DeleteCalculation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM calculations WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return generic.ErrCalculationNotFound
	}
	return nil
}

// DeleteCreatedBefore removes calculations created strictly before cutoff.
func (s *Store) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM calculations WHERE created_at < ?", formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to delete old calculations: %w", err)
	}
	return res.RowsAffected()
}

// Reset deletes all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"calculation_lines", "calculations"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// SCANNING
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCalculation(row rowScanner) (premium.Calculation, error) {
	var (
		c                                 premium.Calculation
		createdAt, area, date, start, end string
		holidayName, eveKind              sql.NullString
		shiftStart, shiftEnd              string
	)

	err := row.Scan(
		&c.ID, &createdAt, &area, &date, &start, &end,
		&c.Shift.BreakMinutes, &c.Shift.BaseWage, &c.Shift.TaxRate,
		&c.Result.Day.IsPublicHoliday, &holidayName, &eveKind,
		&shiftStart, &shiftEnd,
		&c.Result.TotalHours, &c.Result.BasePay, &c.Result.TotalPremium,
		&c.Result.GrossSalary, &c.Result.NetSalary,
	)
	if err != nil {
		return premium.Calculation{}, err
	}

	c.Shift.Area = premium.WorkArea(area)
	if c.Shift.Date, err = generic.ParseDate(date); err != nil {
		return premium.Calculation{}, err
	}
	if c.Shift.Start, err = generic.ParseClock(start); err != nil {
		return premium.Calculation{}, err
	}
	if c.Shift.End, err = generic.ParseClock(end); err != nil {
		return premium.Calculation{}, err
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return premium.Calculation{}, err
	}
	if c.Result.ShiftStart, err = parseTime(shiftStart); err != nil {
		return premium.Calculation{}, err
	}
	if c.Result.ShiftEnd, err = parseTime(shiftEnd); err != nil {
		return premium.Calculation{}, err
	}

	c.Result.Day.Date = c.Shift.Date
	c.Result.Day.Weekday = c.Shift.Date.Weekday()
	c.Result.Day.HolidayName = holidayName.String
	c.Result.Day.Eve = premium.EveKind(eveKind.String)
	return c, nil
}

type lineRow struct {
	calculationID string
	entry         premium.BreakdownEntry
}

func (s *Store) queryLines(ctx context.Context, where string, args ...any) ([]lineRow, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT calculation_id, label, kind, percentage, hours, amount FROM calculation_lines "+
			where+" ORDER BY calculation_id, position",
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []lineRow
	for rows.Next() {
		var (
			l    lineRow
			kind string
			pct  int
		)
		if err := rows.Scan(&l.calculationID, &l.entry.Label, &kind, &pct, &l.entry.Hours, &l.entry.Amount); err != nil {
			return nil, err
		}
		l.entry.Kind = premium.WindowKind(kind)
		l.entry.Percentage = generic.Percent(pct)
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func linesByID(lines []lineRow) map[string][]premium.BreakdownEntry {
	out := make(map[string][]premium.BreakdownEntry)
	for _, l := range lines {
		out[l.calculationID] = append(out[l.calculationID], l.entry)
	}
	return out
}

// =============================================================================
// HELPERS
// =============================================================================

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q in database: %w", s, err)
	}
	return t, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || se.ExtendedCode == sqlite3.ErrConstraintUnique
}
