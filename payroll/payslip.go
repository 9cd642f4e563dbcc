/*
payslip.go - Line-item assembly

PURPOSE:
  Folds MonthlyMetrics, derived rates, and the statutory formulas into the
  gross/deduction/net line items payroll presentation consumes. Attendance
  shortfalls are priced at the hourly rate; overtime at 1.25x; the
  instructional-paid bucket at the instructional rate.
*/
package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
)

var overtimeMultiplier = decimal.NewFromFloat(1.25)

// StatutoryConfig selects the collaborator table and PhilHealth variant.
type StatutoryConfig struct {
	SSS               SSSTable
	PhilHealthVariant PhilHealthVariant
	InstructionalRate *decimal.Decimal // summary-provided fallback rate
}

// Payslip is one employee-month of payroll line items.
type Payslip struct {
	EmployeeID string
	Period     engine.YearMonth

	BasePay          decimal.Decimal
	OvertimePay      decimal.Decimal
	InstructionalPay decimal.Decimal
	Gross            decimal.Decimal

	TardinessDeduction decimal.Decimal
	UndertimeDeduction decimal.Decimal
	AbsenceDeduction   decimal.Decimal

	SSS            decimal.Decimal
	PhilHealth     decimal.Decimal
	PagIbig        decimal.Decimal
	WithholdingTax decimal.Decimal

	TotalDeductions decimal.Decimal
	Net             decimal.Decimal

	Rates Rates
}

// BuildPayslip assembles the payslip for one computed month.
func BuildPayslip(p *engine.EmployeeProfile, m engine.MonthlyMetrics, cfg StatutoryConfig) Payslip {
	sss := cfg.SSS
	if sss == nil {
		sss = DefaultSSS
	}
	variant := cfg.PhilHealthVariant
	if variant == 0 {
		variant = PhilHealthSemiMonthly
	}

	rates := DeriveRates(p, engine.ResolveSchedule(p), cfg.InstructionalRate)
	hourly := decimal.Zero
	if rates.PerHour != nil {
		hourly = *rates.PerHour
	}

	slip := Payslip{
		EmployeeID: m.EmployeeID,
		Period:     m.Period,
		Rates:      rates,
	}

	if p.InstructionalOnly() {
		// Paid purely by the hour against the instructional bucket.
		slip.InstructionalPay = m.InstructionalPaid.Mul(hourly).Round(2)
	} else {
		slip.BasePay = clampMoney(p.BaseSalary)
		slip.OvertimePay = m.Overtime.Mul(hourly).Mul(overtimeMultiplier).Round(2)
		slip.InstructionalPay = m.InstructionalPaid.Mul(instructionalRate(p, cfg)).Round(2)

		slip.TardinessDeduction = m.Tardiness.Mul(hourly).Round(2)
		slip.UndertimeDeduction = m.Undertime.Mul(hourly).Round(2)
		slip.AbsenceDeduction = m.Absences.Mul(hourly).Round(2)

		slip.SSS = sss(slip.BasePay)
		slip.PhilHealth = PhilHealth(slip.BasePay, variant)
		slip.PagIbig = PagIbig(slip.BasePay)
		slip.WithholdingTax = WithholdingTax(slip.BasePay, slip.SSS, slip.PagIbig, slip.PhilHealth)
	}

	slip.Gross = slip.BasePay.Add(slip.OvertimePay).Add(slip.InstructionalPay)
	slip.TotalDeductions = slip.TardinessDeduction.
		Add(slip.UndertimeDeduction).
		Add(slip.AbsenceDeduction).
		Add(slip.SSS).
		Add(slip.PhilHealth).
		Add(slip.PagIbig).
		Add(slip.WithholdingTax)
	slip.Net = slip.Gross.Sub(slip.TotalDeductions).Round(2)
	return slip
}

func instructionalRate(p *engine.EmployeeProfile, cfg StatutoryConfig) decimal.Decimal {
	if p.HourlyRate != nil {
		return *p.HourlyRate
	}
	if cfg.InstructionalRate != nil {
		return *cfg.InstructionalRate
	}
	return decimal.Zero
}
