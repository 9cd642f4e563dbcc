package engine_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
)

func wantHours(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestCompute_EmptyScheduleEmptyMonth(t *testing.T) {
	// GIVEN a profile with no schedule and no attendance
	p := &engine.EmployeeProfile{ID: "emp-0", Roles: []engine.Role{engine.RoleStaff}}
	period := engine.YearMonth{Year: 2026, Month: time.March}

	m, err := engine.Compute(p, period, nil, nil, nil, engine.Options{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	// THEN every metric is zero; idle days never accrue anything
	for _, f := range []struct {
		name string
		val  decimal.Decimal
	}{
		{"tardiness", m.Tardiness}, {"undertime", m.Undertime},
		{"absences", m.Absences}, {"overtime", m.Overtime},
		{"worked", m.TotalWorked}, {"instructional", m.InstructionalPaid},
	} {
		if !f.val.IsZero() {
			t.Errorf("%s = %s, want 0", f.name, f.val)
		}
	}
}

func TestCompute_MonthScenario(t *testing.T) {
	// GIVEN a Mon-Fri 08:00-17:00 employee in March 2026 (22 weekdays):
	// one clean day, one late day with a long evening, a whole-day
	// observance, and a two-day approved leave
	p := standardProfile()
	period := engine.YearMonth{Year: 2026, Month: time.March}

	records := []engine.AttendanceRecord{
		{Date: date(2), ClockIn: "08:00", ClockOut: "17:00"},
		{Date: date(3), ClockIn: "08:15", ClockOut: "17:30"},
	}
	obs := []engine.ObservanceEntry{{Date: date(4), Kind: engine.ObservanceWhole}}
	leaves := []engine.LeaveWindow{{Start: date(5), End: date(6), Status: "approved"}}

	m, err := engine.Compute(p, period, records, obs, leaves, engine.Options{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	// THEN the two worked days account for tardiness and overtime, the
	// observance and leave days are excused, and the remaining 17
	// weekdays are absences
	wantHours(t, "tardiness", m.Tardiness, "0.25")
	wantHours(t, "undertime", m.Undertime, "0")
	wantHours(t, "overtime", m.Overtime, "0.25")
	wantHours(t, "weekday overtime", m.WeekdayOvertime, "0.25")
	wantHours(t, "weekend overtime", m.WeekendOvertime, "0")
	wantHours(t, "observance overtime", m.ObservanceOvertime, "0")
	wantHours(t, "total worked", m.TotalWorked, "16.25")
	wantHours(t, "absences", m.Absences, "136")
}

func TestCompute_SubHourPunchAcrossBreak(t *testing.T) {
	// GIVEN a month whose only punch pair is 15 minutes straddling 13:00
	p := standardProfile()
	period := engine.YearMonth{Year: 2026, Month: time.March}
	records := []engine.AttendanceRecord{
		{Date: date(2), ClockIn: "12:50", ClockOut: "13:05"},
	}

	m, err := engine.Compute(p, period, records, nil, nil, engine.Options{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	// THEN the break deduction floors at the span; the total never dips
	// below zero
	wantHours(t, "total worked", m.TotalWorked, "0")
	if m.TotalWorked.IsNegative() {
		t.Errorf("total worked went negative: %s", m.TotalWorked)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	// GIVEN identical inputs
	p := standardProfile()
	period := engine.YearMonth{Year: 2026, Month: time.March}
	records := []engine.AttendanceRecord{
		{Date: date(2), ClockIn: "08:07", ClockOut: "17:02"},
		{Date: date(3), ClockIn: "8:00 AM", ClockOut: "5:00 PM"},
	}

	// WHEN the month is computed twice
	first, err := engine.Compute(p, period, records, nil, nil, engine.Options{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	second, err := engine.Compute(p, period, records, nil, nil, engine.Options{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	// THEN the results are identical
	if !reflect.DeepEqual(first, second) {
		t.Errorf("recomputation differs:\n%+v\n%+v", first, second)
	}
}

func TestCompute_DuplicateRecordLastWins(t *testing.T) {
	// GIVEN two records for the same date
	p := standardProfile()
	period := engine.YearMonth{Year: 2026, Month: time.March}
	records := []engine.AttendanceRecord{
		{Date: date(2), ClockIn: "08:30", ClockOut: "17:00"},
		{Date: date(2), ClockIn: "08:00", ClockOut: "17:00"},
	}

	m, err := engine.Compute(p, period, records, nil, nil, engine.Options{})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	// THEN only the later record counts, so no tardiness
	wantHours(t, "tardiness", m.Tardiness, "0")
}

func TestCompute_InputValidation(t *testing.T) {
	period := engine.YearMonth{Year: 2026, Month: time.March}

	if _, err := engine.Compute(nil, period, nil, nil, nil, engine.Options{}); !errors.Is(err, engine.ErrNilProfile) {
		t.Errorf("nil profile error = %v, want ErrNilProfile", err)
	}
	p := standardProfile()
	if _, err := engine.Compute(p, engine.YearMonth{}, nil, nil, nil, engine.Options{}); !errors.Is(err, engine.ErrInvalidPeriod) {
		t.Errorf("zero period error = %v, want ErrInvalidPeriod", err)
	}
}

// =============================================================================
// SERVICE - fetch-then-compute over a DataSource
// =============================================================================

type stubSource struct {
	profile *engine.EmployeeProfile
	records []engine.AttendanceRecord
}

func (s *stubSource) EmployeeProfile(_ context.Context, id string) (*engine.EmployeeProfile, error) {
	if s.profile != nil && s.profile.ID == id {
		return s.profile, nil
	}
	return nil, nil
}

func (s *stubSource) Attendance(context.Context, string, engine.YearMonth) ([]engine.AttendanceRecord, error) {
	return s.records, nil
}

func (s *stubSource) Observances(context.Context) ([]engine.ObservanceEntry, error) {
	return nil, nil
}

func (s *stubSource) LeaveWindows(context.Context, string) ([]engine.LeaveWindow, error) {
	return nil, nil
}

func TestService_MonthlyMetrics(t *testing.T) {
	src := &stubSource{
		profile: standardProfile(),
		records: []engine.AttendanceRecord{
			{Date: date(2), ClockIn: "08:00", ClockOut: "17:00"},
		},
	}
	svc := engine.NewService(src)
	period := engine.YearMonth{Year: 2026, Month: time.March}

	m, err := svc.MonthlyMetrics(context.Background(), "emp-1", period)
	if err != nil {
		t.Fatalf("MonthlyMetrics: %v", err)
	}
	wantHours(t, "total worked", m.TotalWorked, "8")

	// An unknown employee maps to the not-found sentinel.
	if _, err := svc.MonthlyMetrics(context.Background(), "nobody", period); !errors.Is(err, engine.ErrEmployeeNotFound) {
		t.Errorf("unknown employee error = %v, want ErrEmployeeNotFound", err)
	}
}
