/*
source.go - Collaborator contracts and the fetching service

PURPOSE:
  The engine core is a pure function; fetching is the caller's concern.
  DataSource is the abstract contract the surrounding application
  implements (store/sqlite does), and Service is the thin convenience
  that fetches a snapshot and invokes Compute. Nothing here caches or
  retries: callers retry failed upstream fetches before invoking.
*/
package engine

import "context"

// DataSource supplies the externally owned inputs for one computation.
type DataSource interface {
	// EmployeeProfile returns the profile, or nil when unknown.
	EmployeeProfile(ctx context.Context, employeeID string) (*EmployeeProfile, error)

	// Attendance returns the employee's attendance records for the month.
	Attendance(ctx context.Context, employeeID string, period YearMonth) ([]AttendanceRecord, error)

	// Observances returns the full holiday-observance list; the engine
	// filters to the target month.
	Observances(ctx context.Context) ([]ObservanceEntry, error)

	// LeaveWindows returns the employee's leave windows; the engine
	// filters to windows intersecting the target month.
	LeaveWindows(ctx context.Context, employeeID string) ([]LeaveWindow, error)
}

// Service fetches a snapshot from the DataSource and runs the aggregator.
type Service struct {
	Source DataSource
	Opts   Options
}

func NewService(source DataSource) *Service {
	return &Service{Source: source}
}

// MonthlyMetrics computes the metrics for one (employee, month) pair.
func (s *Service) MonthlyMetrics(ctx context.Context, employeeID string, period YearMonth) (MonthlyMetrics, error) {
	profile, err := s.Source.EmployeeProfile(ctx, employeeID)
	if err != nil {
		return MonthlyMetrics{}, err
	}
	if profile == nil {
		return MonthlyMetrics{}, ErrEmployeeNotFound
	}

	records, err := s.Source.Attendance(ctx, employeeID, period)
	if err != nil {
		return MonthlyMetrics{}, err
	}
	observances, err := s.Source.Observances(ctx)
	if err != nil {
		return MonthlyMetrics{}, err
	}
	leaves, err := s.Source.LeaveWindows(ctx, employeeID)
	if err != nil {
		return MonthlyMetrics{}, err
	}

	return Compute(profile, period, records, observances, leaves, s.Opts)
}
