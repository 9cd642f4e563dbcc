/*
Package factory builds canned demo data for the payroll engine.

PURPOSE:
  Seeds a store with representative employees - a plain administrator, an
  instructor paid purely by the hour, and a mixed-role registrar who also
  teaches - plus a month of punches, an observance, and a leave window.
  Useful for demos and for exercising every day-evaluator state against a
  realistic dataset.

USAGE:
  store, _ := sqlite.New(":memory:")
  if err := factory.Seed(ctx, store); err != nil { ... }

SEE ALSO:
  - api/handlers.go: POST /api/demo/seed
  - engine/day.go: the states this dataset exercises
*/
package factory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
)

// Sink is the subset of store operations seeding needs.
// *sqlite.Store satisfies it.
type Sink interface {
	SaveEmployee(ctx context.Context, p engine.EmployeeProfile) error
	UpsertAttendance(ctx context.Context, employeeID string, rec engine.AttendanceRecord) error
	SaveObservance(ctx context.Context, o engine.ObservanceEntry, name string) error
	SaveLeaveWindow(ctx context.Context, employeeID string, w engine.LeaveWindow) error
}

// Seed loads the canned dataset into the sink for the current month.
func Seed(ctx context.Context, sink Sink) error {
	now := time.Now().UTC()
	period := engine.YearMonth{Year: now.Year(), Month: now.Month()}

	for _, p := range DemoEmployees() {
		if err := sink.SaveEmployee(ctx, p); err != nil {
			return err
		}
	}

	// Every scheduled weekday gets punches: slightly late mornings for the
	// administrator, generous hours for the instructor.
	for day := 1; day <= period.Days(); day++ {
		date := period.DateAt(day)
		if date.IsWeekend() {
			continue
		}
		if err := sink.UpsertAttendance(ctx, "emp-admin", engine.AttendanceRecord{
			Date: date, ClockIn: "08:07", ClockOut: "17:02",
		}); err != nil {
			return err
		}
		if date.Weekday() == time.Wednesday {
			if err := sink.UpsertAttendance(ctx, "emp-instructor", engine.AttendanceRecord{
				Date: date, ClockIn: "9:00 AM", ClockOut: "3:30 PM",
			}); err != nil {
				return err
			}
		}
		if err := sink.UpsertAttendance(ctx, "emp-registrar", engine.AttendanceRecord{
			Date: date, ClockIn: "07:58", ClockOut: "18:15",
		}); err != nil {
			return err
		}
	}

	// Mid-month whole-day observance.
	if err := sink.SaveObservance(ctx, engine.ObservanceEntry{
		Date: period.DateAt(15),
		Kind: engine.ObservanceWhole,
	}, "Foundation Day"); err != nil {
		return err
	}

	// The administrator takes two days of leave.
	return sink.SaveLeaveWindow(ctx, "emp-admin", engine.LeaveWindow{
		Start:  period.DateAt(22),
		End:    period.DateAt(23),
		Status: "approved",
	})
}

// DemoEmployees returns the canned profiles.
func DemoEmployees() []engine.EmployeeProfile {
	weekdays := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
	}

	admin := engine.EmployeeProfile{
		ID:         "emp-admin",
		Name:       "Alice Ramos",
		Roles:      []engine.Role{engine.RoleAdministrator},
		BaseSalary: decimal.NewFromInt(24000),
	}
	for _, wd := range weekdays {
		admin.Schedule = append(admin.Schedule, engine.ScheduleEntry{
			Weekday: wd,
			Start:   8 * engine.MinutesPerHour,
			End:     17 * engine.MinutesPerHour,
			Origin:  engine.RoleAdministrator,
		})
	}

	instructorRate := decimal.NewFromInt(350)
	instructor := engine.EmployeeProfile{
		ID:         "emp-instructor",
		Name:       "Ben Ocampo",
		Roles:      []engine.Role{engine.RoleCollegeInstructor},
		HourlyRate: &instructorRate,
		Supplemental: []engine.SupplementalHourEntry{
			{Weekday: time.Wednesday, Hours: decimal.NewFromInt(4), Origin: engine.RoleCollegeInstructor},
		},
	}

	registrar := engine.EmployeeProfile{
		ID:         "emp-registrar",
		Name:       "Carla Dizon",
		Roles:      []engine.Role{engine.RoleRegistrar, engine.RoleCollegeInstructor},
		BaseSalary: decimal.NewFromInt(30000),
	}
	for _, wd := range weekdays {
		registrar.Schedule = append(registrar.Schedule, engine.ScheduleEntry{
			Weekday: wd,
			Start:   8 * engine.MinutesPerHour,
			End:     17 * engine.MinutesPerHour,
			Origin:  engine.RoleRegistrar,
		})
	}
	// Afternoon teaching load layered on top of the registrar window.
	registrar.Schedule = append(registrar.Schedule, engine.ScheduleEntry{
		Weekday: time.Monday,
		Start:   14 * engine.MinutesPerHour,
		End:     17 * engine.MinutesPerHour,
		Origin:  engine.RoleCollegeInstructor,
	})

	return []engine.EmployeeProfile{admin, instructor, registrar}
}
