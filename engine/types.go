/*
Package engine converts raw daily clock punches into monthly payroll metrics.

PURPOSE:
  This package contains the attendance-to-payroll core: parsing noisy
  clock strings, resolving per-role weekly schedules, applying the fixed
  midday break policy, classifying every calendar day, and aggregating the
  month into tardiness, undertime, overtime, absence, and paid-hour totals.

KEY CONCEPTS IN THIS FILE (types.go):
  - Minutes: minutes-since-midnight and minute durations (plain int)
  - Role: an employee role label; one role is designated instructional
  - EmployeeProfile: identity + roles + salary + weekly schedule entries
  - AttendanceRecord / ObservanceEntry / LeaveWindow: externally owned inputs
  - MonthlyMetrics: the derived output, recomputed fresh on every call

DESIGN PRINCIPLES:
  1. Purity: the engine is a pure function of its inputs; no I/O, no cache
  2. Precision: minute accumulators are ints; conversion to fractional
     hours (decimal, 2dp) happens once, at the aggregation boundary
  3. Permissiveness: dirty business data (bad clock strings, missing
     schedules) classifies, it never errors

SEE ALSO:
  - clock.go: clock string parsing
  - schedule.go: weekly schedule resolution
  - day.go: per-day classification and evaluation
  - month.go: the monthly aggregator
*/
package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MINUTES - Time of day and durations, in minutes
// =============================================================================

// Minutes is a count of minutes: either minutes-since-midnight for a wall
// clock value, or a duration. Wall clock values past MinutesPerDay denote
// an overnight span extended into the next day.
type Minutes int

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * 60

	// The fixed unpaid midday break window. Not configurable per employee.
	BreakStart  Minutes = 12 * MinutesPerHour
	BreakEnd    Minutes = 13 * MinutesPerHour
	BreakLength Minutes = MinutesPerHour
)

// Hours converts a minute total to fractional hours rounded to 2 decimals.
// Call this only at the aggregation boundary, never per day.
func (m Minutes) Hours() decimal.Decimal {
	return decimal.NewFromInt(int64(m)).Div(decimal.NewFromInt(MinutesPerHour)).Round(2)
}

func (m Minutes) Clock() string {
	return fmt.Sprintf("%02d:%02d", int(m)/MinutesPerHour%24, int(m)%MinutesPerHour)
}

func minMinutes(a, b Minutes) Minutes {
	if a < b {
		return a
	}
	return b
}

func maxMinutes(a, b Minutes) Minutes {
	if a > b {
		return a
	}
	return b
}

// =============================================================================
// ROLES
// =============================================================================

// Role labels an employee function. RoleCollegeInstructor is the designated
// instructional role: its schedule contributions are subject to hours-only
// commitments and overlap-based paid-hour capping.
type Role string

const (
	RoleAdministrator     Role = "administrator"
	RoleRegistrar         Role = "registrar"
	RoleStaff             Role = "staff"
	RoleCollegeInstructor Role = "college_instructor"
)

// Instructional reports whether this role is the designated instructional role.
func (r Role) Instructional() bool { return r == RoleCollegeInstructor }

// =============================================================================
// EMPLOYEE PROFILE - Externally owned, read-only to the engine
// =============================================================================

// ScheduleEntry is one per-weekday clock window contributed by a role.
// End <= Start denotes an overnight window.
type ScheduleEntry struct {
	Weekday time.Weekday
	Start   Minutes
	End     Minutes
	Origin  Role
}

// SupplementalHourEntry is an hours-only commitment with no clock times,
// used when a role's load is hours-based rather than a fixed window.
type SupplementalHourEntry struct {
	Weekday time.Weekday
	Hours   decimal.Decimal
	Origin  Role
}

func (e SupplementalHourEntry) minutes() Minutes {
	return Minutes(e.Hours.Mul(decimal.NewFromInt(MinutesPerHour)).IntPart())
}

// EmployeeProfile is the employee configuration the engine computes from.
type EmployeeProfile struct {
	ID    string
	Name  string
	Roles []Role

	BaseSalary decimal.Decimal

	// Explicit hourly rate override (instructional employees).
	HourlyRate *decimal.Decimal

	// Explicit fixed hours-per-day; zero means derive from the schedule.
	HoursPerDay decimal.Decimal

	Schedule     []ScheduleEntry
	Supplemental []SupplementalHourEntry
}

func (p *EmployeeProfile) HasRole(r Role) bool {
	for _, have := range p.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// HasInstructionalRole reports whether any role is instructional.
func (p *EmployeeProfile) HasInstructionalRole() bool {
	for _, r := range p.Roles {
		if r.Instructional() {
			return true
		}
	}
	return false
}

// HasNonInstructionalRole reports whether any role is not instructional.
func (p *EmployeeProfile) HasNonInstructionalRole() bool {
	for _, r := range p.Roles {
		if !r.Instructional() {
			return true
		}
	}
	return false
}

// InstructionalOnly reports whether the employee holds only the
// instructional role. Such employees accrue absences for deficits but
// never overtime, and are paid by an explicit hourly rate.
func (p *EmployeeProfile) InstructionalOnly() bool {
	return p.HasInstructionalRole() && !p.HasNonInstructionalRole()
}

// =============================================================================
// ATTENDANCE / OBSERVANCE / LEAVE - Collaborator-supplied inputs
// =============================================================================

// AttendanceRecord holds the raw punches for one employee on one date.
// Clock fields are kept as raw strings: attendance data originates from
// untrusted imports, so parsing (and tolerating garbage) is the engine's job.
type AttendanceRecord struct {
	Date     Date
	ClockIn  string
	ClockOut string
}

// ObservanceKind distinguishes whole from half holiday observances.
type ObservanceKind string

const (
	ObservanceWhole ObservanceKind = "whole"
	ObservanceHalf  ObservanceKind = "half"
)

// ObservanceEntry marks a calendar-wide holiday or suspension.
// A cutoff present without an explicit whole kind implies a half day
// (rainy-day suspensions arrive this way).
type ObservanceEntry struct {
	Date   Date
	Kind   ObservanceKind
	Cutoff string // raw clock string, optional
}

// IsWhole reports whether this observance excuses the whole day.
func (o ObservanceEntry) IsWhole() bool {
	if o.Kind == ObservanceWhole {
		return true
	}
	if o.Kind == "" {
		// No kind and no cutoff: treat as whole-day.
		_, ok := ParseClock(o.Cutoff)
		return !ok
	}
	return false
}

// LeaveWindow is an inclusive date range during which no attendance
// metric accrues. A zero End means a single-day window.
type LeaveWindow struct {
	Start  Date
	End    Date
	Status string
}

// Contains reports whether d falls inside the window.
func (w LeaveWindow) Contains(d Date) bool {
	end := w.End
	if end.IsZero() {
		end = w.Start
	}
	return !d.Before(w.Start) && !d.After(end)
}

// Approved reports whether the window should exclude days from accounting.
// An empty status is treated as approved for backwards compatibility with
// imported records that carry no workflow state.
func (w LeaveWindow) Approved() bool {
	return w.Status == "" || w.Status == "approved"
}

// =============================================================================
// MONTHLY METRICS - The derived output
// =============================================================================

// MonthlyMetrics is the aggregate for one (employee, month) pair. All
// figures are hours, rounded to 2 decimals at the aggregation boundary.
// It is a derived value: recomputed on every call, never persisted here.
type MonthlyMetrics struct {
	EmployeeID string
	Period     YearMonth

	Tardiness decimal.Decimal
	Undertime decimal.Decimal
	Absences  decimal.Decimal

	Overtime           decimal.Decimal
	WeekdayOvertime    decimal.Decimal
	WeekendOvertime    decimal.Decimal
	ObservanceOvertime decimal.Decimal

	TotalWorked       decimal.Decimal
	InstructionalPaid decimal.Decimal

	// Derived pay rates, attached by the service layer when requested.
	RatePerDay  *decimal.Decimal
	RatePerHour *decimal.Decimal
}
