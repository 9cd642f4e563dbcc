/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for API communication, decoupling the engine's domain
  model from the external contract. Request types carry validator tags;
  handlers run them through a shared validator before touching the store.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - engine/types.go: The domain model these map onto
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// EMPLOYEE TYPES
// =============================================================================

// ScheduleEntryDTO is one timed weekday window.
type ScheduleEntryDTO struct {
	Weekday string `json:"weekday" validate:"required"`
	Start   string `json:"start" validate:"required"` // clock string, e.g. "08:00"
	End     string `json:"end" validate:"required"`
	Origin  string `json:"origin" validate:"required"`
}

// SupplementalEntryDTO is one hours-only weekday commitment.
type SupplementalEntryDTO struct {
	Weekday string  `json:"weekday" validate:"required"`
	Hours   float64 `json:"hours" validate:"gt=0"`
	Origin  string  `json:"origin" validate:"required"`
}

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Roles        []string               `json:"roles"`
	BaseSalary   string                 `json:"base_salary"`
	HourlyRate   *string                `json:"hourly_rate,omitempty"`
	HoursPerDay  string                 `json:"hours_per_day,omitempty"`
	Schedule     []ScheduleEntryDTO     `json:"schedule,omitempty"`
	Supplemental []SupplementalEntryDTO `json:"supplemental,omitempty"`
}

// SaveEmployeeRequest creates or replaces an employee profile.
type SaveEmployeeRequest struct {
	ID           string                 `json:"id" validate:"required"`
	Name         string                 `json:"name" validate:"required"`
	Roles        []string               `json:"roles" validate:"required,min=1,dive,required"`
	BaseSalary   float64                `json:"base_salary" validate:"gte=0"`
	HourlyRate   *float64               `json:"hourly_rate,omitempty" validate:"omitempty,gte=0"`
	HoursPerDay  float64                `json:"hours_per_day,omitempty" validate:"gte=0"`
	Schedule     []ScheduleEntryDTO     `json:"schedule,omitempty" validate:"dive"`
	Supplemental []SupplementalEntryDTO `json:"supplemental,omitempty" validate:"dive"`
}

// =============================================================================
// ATTENDANCE / OBSERVANCE / LEAVE TYPES
// =============================================================================

// AttendanceRecordDTO carries one day's raw punches. Clock strings are
// deliberately unvalidated: garbage means "no punch", never a 400.
type AttendanceRecordDTO struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	ClockIn  string `json:"clock_in,omitempty"`
	ClockOut string `json:"clock_out,omitempty"`
}

// ImportAttendanceRequest upserts a batch of attendance records.
type ImportAttendanceRequest struct {
	Records []AttendanceRecordDTO `json:"records" validate:"required,min=1,dive"`
}

// ObservanceRequest adds a holiday/suspension entry.
type ObservanceRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Kind   string `json:"kind,omitempty" validate:"omitempty,oneof=whole half"`
	Cutoff string `json:"cutoff,omitempty"`
	Name   string `json:"name,omitempty"`
}

// LeaveWindowRequest adds a leave window.
type LeaveWindowRequest struct {
	Start  string `json:"start" validate:"required,datetime=2006-01-02"`
	End    string `json:"end,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=approved pending rejected"`
}

// =============================================================================
// METRICS / PAYSLIP TYPES
// =============================================================================

// MetricsDTO is the monthly aggregate in response form. Hour figures are
// already rounded to 2 decimals by the engine.
type MetricsDTO struct {
	EmployeeID string `json:"employee_id"`
	Period     string `json:"period"`

	Tardiness string `json:"tardiness"`
	Undertime string `json:"undertime"`
	Absences  string `json:"absences"`

	Overtime           string `json:"overtime"`
	WeekdayOvertime    string `json:"weekday_overtime"`
	WeekendOvertime    string `json:"weekend_overtime"`
	ObservanceOvertime string `json:"observance_overtime"`

	TotalWorked       string `json:"total_worked"`
	InstructionalPaid string `json:"instructional_paid"`

	RatePerDay  *string `json:"rate_per_day,omitempty"`
	RatePerHour *string `json:"rate_per_hour,omitempty"`
}

// PayslipDTO is the assembled employee-month payslip.
type PayslipDTO struct {
	EmployeeID string `json:"employee_id"`
	Period     string `json:"period"`

	BasePay          string `json:"base_pay"`
	OvertimePay      string `json:"overtime_pay"`
	InstructionalPay string `json:"instructional_pay"`
	Gross            string `json:"gross"`

	TardinessDeduction string `json:"tardiness_deduction"`
	UndertimeDeduction string `json:"undertime_deduction"`
	AbsenceDeduction   string `json:"absence_deduction"`

	SSS            string `json:"sss"`
	PhilHealth     string `json:"philhealth"`
	PagIbig        string `json:"pagibig"`
	WithholdingTax string `json:"withholding_tax"`

	TotalDeductions string `json:"total_deductions"`
	Net             string `json:"net"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(p engine.EmployeeProfile) EmployeeDTO {
	roles := make([]string, len(p.Roles))
	for i, r := range p.Roles {
		roles[i] = string(r)
	}

	dto := EmployeeDTO{
		ID:          p.ID,
		Name:        p.Name,
		Roles:       roles,
		BaseSalary:  p.BaseSalary.String(),
		HoursPerDay: p.HoursPerDay.String(),
	}
	if p.HourlyRate != nil {
		s := p.HourlyRate.String()
		dto.HourlyRate = &s
	}
	for _, e := range p.Schedule {
		dto.Schedule = append(dto.Schedule, ScheduleEntryDTO{
			Weekday: engine.WeekdayCode(e.Weekday),
			Start:   e.Start.Clock(),
			End:     e.End.Clock(),
			Origin:  string(e.Origin),
		})
	}
	for _, e := range p.Supplemental {
		hours, _ := e.Hours.Float64()
		dto.Supplemental = append(dto.Supplemental, SupplementalEntryDTO{
			Weekday: engine.WeekdayCode(e.Weekday),
			Hours:   hours,
			Origin:  string(e.Origin),
		})
	}
	return dto
}

func toMetricsDTO(m engine.MonthlyMetrics) MetricsDTO {
	dto := MetricsDTO{
		EmployeeID:         m.EmployeeID,
		Period:             m.Period.String(),
		Tardiness:          m.Tardiness.StringFixed(2),
		Undertime:          m.Undertime.StringFixed(2),
		Absences:           m.Absences.StringFixed(2),
		Overtime:           m.Overtime.StringFixed(2),
		WeekdayOvertime:    m.WeekdayOvertime.StringFixed(2),
		WeekendOvertime:    m.WeekendOvertime.StringFixed(2),
		ObservanceOvertime: m.ObservanceOvertime.StringFixed(2),
		TotalWorked:        m.TotalWorked.StringFixed(2),
		InstructionalPaid:  m.InstructionalPaid.StringFixed(2),
	}
	if m.RatePerDay != nil {
		s := m.RatePerDay.StringFixed(2)
		dto.RatePerDay = &s
	}
	if m.RatePerHour != nil {
		s := m.RatePerHour.StringFixed(2)
		dto.RatePerHour = &s
	}
	return dto
}

func toPayslipDTO(slip payroll.Payslip) PayslipDTO {
	return PayslipDTO{
		EmployeeID:         slip.EmployeeID,
		Period:             slip.Period.String(),
		BasePay:            slip.BasePay.StringFixed(2),
		OvertimePay:        slip.OvertimePay.StringFixed(2),
		InstructionalPay:   slip.InstructionalPay.StringFixed(2),
		Gross:              slip.Gross.StringFixed(2),
		TardinessDeduction: slip.TardinessDeduction.StringFixed(2),
		UndertimeDeduction: slip.UndertimeDeduction.StringFixed(2),
		AbsenceDeduction:   slip.AbsenceDeduction.StringFixed(2),
		SSS:                slip.SSS.StringFixed(2),
		PhilHealth:         slip.PhilHealth.StringFixed(2),
		PagIbig:            slip.PagIbig.StringFixed(2),
		WithholdingTax:     slip.WithholdingTax.StringFixed(2),
		TotalDeductions:    slip.TotalDeductions.StringFixed(2),
		Net:                slip.Net.StringFixed(2),
	}
}

func decimalFromFloat(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }
