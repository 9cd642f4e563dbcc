/*
Package payroll derives pay rates and statutory deductions from the
metrics the engine produces.

PURPOSE:
  Everything here is pure arithmetic over decimals: per-day/per-hour rate
  derivation from base salary and the resolved schedule, the mandatory
  contribution formulas, and the payslip assembly that folds metrics and
  rates into line items.

KEY CONSTANT:
  288 paid days per year under the semi-monthly schedule, so
  ratePerDay = round(baseSalary * 12 / 288, 2).

SEE ALSO:
  - statutory.go: contribution and withholding-tax brackets
  - payslip.go: line-item assembly
*/
package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
)

// Paid days per year under the semi-monthly schedule.
var paidDaysPerYear = decimal.NewFromInt(288)

var twelve = decimal.NewFromInt(12)

var minutesPerHour = decimal.NewFromInt(engine.MinutesPerHour)

// Rates are the derived pay rates for one employee.
type Rates struct {
	// PerDay is nil for instructional-only employees: they are paid by an
	// explicit hourly rate, never a derived daily one.
	PerDay *decimal.Decimal

	// PerHour is the daily rate spread over hours-per-day, or the
	// explicit instructional rate. Nil when neither can be resolved.
	PerHour *decimal.Decimal

	// HoursPerDay is the explicit employee field when positive, otherwise
	// the mean resolved weekday duration, floored at one hour.
	HoursPerDay decimal.Decimal
}

// DeriveRates computes the employee's pay rates. summaryRate is the
// payroll-summary-provided instructional rate, the last fallback before
// "undefined" for instructional-only employees.
func DeriveRates(p *engine.EmployeeProfile, sched engine.WeeklySchedule, summaryRate *decimal.Decimal) Rates {
	r := Rates{HoursPerDay: hoursPerDay(p, sched)}

	if p.InstructionalOnly() {
		switch {
		case p.HourlyRate != nil:
			r.PerHour = p.HourlyRate
		case summaryRate != nil:
			r.PerHour = summaryRate
		}
		return r
	}

	perDay := clampMoney(p.BaseSalary).Mul(twelve).Div(paidDaysPerYear).Round(2)
	r.PerDay = &perDay

	perHour := perDay.Div(r.HoursPerDay).Round(2)
	r.PerHour = &perHour
	return r
}

func hoursPerDay(p *engine.EmployeeProfile, sched engine.WeeklySchedule) decimal.Decimal {
	if p.HoursPerDay.IsPositive() {
		return p.HoursPerDay
	}
	mean := sched.MeanDuration()
	if mean.LessThan(minutesPerHour) {
		mean = minutesPerHour // one-hour floor
	}
	return mean.Div(minutesPerHour)
}

// clampMoney floors negative monetary inputs to zero. Statutory and rate
// formulas never reject dirty inputs, they clamp.
func clampMoney(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
