/*
errors.go - Centralized error types for the pay engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Every failure of an evaluation is local to that call and deterministic:
  retrying identical input fails identically, so callers surface the error.

ERROR CATEGORIES:
  1. Input errors - Malformed or out-of-range request values
  2. Lookup errors - Stored calculations that do not exist
  3. Conflict errors - Duplicate calculation ids

USAGE:
  if errors.Is(err, generic.ErrInvalidInput) {
      // 400 Bad Request
  }

  var in *generic.InvalidInputError
  if errors.As(err, &in) {
      log.Printf("field %s rejected: %s", in.Field, in.Reason)
  }

SEE ALSO:
  - premium/evaluator.go: Raises most of these
  - api/handlers.go: Maps them to HTTP status codes
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidInput is the root of every input error below.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidWorkArea is returned for a category outside the closed set.
	// There is no fallback schedule.
	ErrInvalidWorkArea = fmt.Errorf("%w: unknown work area", ErrInvalidInput)

	// ErrInvalidClock is returned for a time of day that is not HH:MM.
	ErrInvalidClock = fmt.Errorf("%w: malformed time of day", ErrInvalidInput)

	// ErrInvalidDate is returned for a date that is not YYYY-MM-DD.
	ErrInvalidDate = fmt.Errorf("%w: malformed date", ErrInvalidInput)

	// ErrNegativeDuration is returned when the break is longer than the shift.
	ErrNegativeDuration = fmt.Errorf("%w: break exceeds shift length", ErrInvalidInput)

	// ErrInvalidRate is returned for a negative wage, negative break or a tax
	// rate outside 0..100.
	ErrInvalidRate = fmt.Errorf("%w: value out of range", ErrInvalidInput)

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = fmt.Errorf("%w: invalid period", ErrInvalidInput)

	// ErrInvalidRecurrence is returned for an unparseable or unbounded roster rule.
	ErrInvalidRecurrence = fmt.Errorf("%w: invalid recurrence", ErrInvalidInput)

	// ErrCalculationNotFound is returned when a stored calculation doesn't exist.
	ErrCalculationNotFound = errors.New("calculation not found")

	// ErrDuplicateCalculation is returned when saving an id that already exists.
	ErrDuplicateCalculation = errors.New("duplicate calculation id")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidInputError names the offending field. Err is the specific sentinel.
type InvalidInputError struct {
	Field  string
	Value  any
	Reason string
	Err    error
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, fmt.Sprint(e.Value), e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	if e.Err == nil {
		return ErrInvalidInput
	}
	return e.Err
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsRetryable reports whether err might succeed on retry. Evaluation is
// deterministic, so only failures outside the engine (storage) qualify.
func IsRetryable(err error) bool {
	return err != nil && !IsClientError(err) && !IsNotFound(err) && !IsConflict(err)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCalculationNotFound)
}

// IsConflict returns true if the error is a uniqueness violation.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateCalculation)
}
