/*
errors.go - Error types for the metrics engine

PURPOSE:
  All engine errors in one place. The engine deliberately errs on almost
  nothing: malformed clock strings are "no punch", missing schedules are
  "unscheduled day". Only structurally invalid requests fail.

SEE ALSO:
  - calendar.go: ParsePeriod wraps ErrInvalidPeriod
  - source.go: Service wraps store failures with these sentinels
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPeriod is returned when a period string cannot be parsed
	// into a year/month. The aggregator returns no metrics in this case,
	// never a partial computation.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrNilProfile is returned when Compute is handed a nil profile.
	ErrNilProfile = errors.New("nil employee profile")
)

// IsClientError reports whether the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPeriod)
}

// IsNotFound reports whether the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound)
}

// PeriodError carries the offending period string for API surfaces.
type PeriodError struct {
	Raw string
}

func (e *PeriodError) Error() string {
	return fmt.Sprintf("invalid period %q (want YYYY-MM)", e.Raw)
}

func (e *PeriodError) Unwrap() error { return ErrInvalidPeriod }
