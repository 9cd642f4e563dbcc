package payroll_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/payroll-engine/engine"
	"github.com/warp/payroll-engine/payroll"
)

func TestBuildPayslip_SalariedEmployee(t *testing.T) {
	// GIVEN a 24,000/month employee with a quarter hour of tardiness, a
	// quarter hour of overtime, and one absent 8-hour day
	p := weekdayProfile(24000)
	m := engine.MonthlyMetrics{
		EmployeeID: "emp-1",
		Period:     engine.YearMonth{Year: 2026, Month: time.March},
		Tardiness:  d("0.25"),
		Overtime:   d("0.25"),
		Absences:   d("8"),
	}

	slip := payroll.BuildPayslip(p, m, payroll.StatutoryConfig{})

	// THEN earnings price against the 125/hour rate, overtime at 1.25x
	wantDecimal(t, "base pay", slip.BasePay, "24000")
	wantDecimal(t, "overtime pay", slip.OvertimePay, "39.06")
	wantDecimal(t, "gross", slip.Gross, "24039.06")

	// AND attendance shortfalls price at the straight hourly rate
	wantDecimal(t, "tardiness deduction", slip.TardinessDeduction, "31.25")
	wantDecimal(t, "undertime deduction", slip.UndertimeDeduction, "0")
	wantDecimal(t, "absence deduction", slip.AbsenceDeduction, "1000")

	// AND the statutory lines follow the base salary
	wantDecimal(t, "sss", slip.SSS, "1080")
	wantDecimal(t, "philhealth", slip.PhilHealth, "600")
	wantDecimal(t, "pag-ibig", slip.PagIbig, "200")
	wantDecimal(t, "withholding tax", slip.WithholdingTax, "193.20")

	wantDecimal(t, "total deductions", slip.TotalDeductions, "3104.45")
	wantDecimal(t, "net", slip.Net, "20934.61")
}

func TestBuildPayslip_InstructionalOnly(t *testing.T) {
	// GIVEN an hourly instructor with 16 paid instructional hours
	rate := decimal.NewFromInt(350)
	p := &engine.EmployeeProfile{
		ID:         "emp-2",
		Roles:      []engine.Role{engine.RoleCollegeInstructor},
		HourlyRate: &rate,
	}
	m := engine.MonthlyMetrics{
		EmployeeID:        "emp-2",
		Period:            engine.YearMonth{Year: 2026, Month: time.March},
		InstructionalPaid: d("16"),
	}

	slip := payroll.BuildPayslip(p, m, payroll.StatutoryConfig{})

	// THEN pay is purely hours * rate with no statutory lines
	wantDecimal(t, "instructional pay", slip.InstructionalPay, "5600")
	wantDecimal(t, "base pay", slip.BasePay, "0")
	wantDecimal(t, "gross", slip.Gross, "5600")
	wantDecimal(t, "sss", slip.SSS, "0")
	wantDecimal(t, "philhealth", slip.PhilHealth, "0")
	wantDecimal(t, "total deductions", slip.TotalDeductions, "0")
	wantDecimal(t, "net", slip.Net, "5600")
}

func TestBuildPayslip_PhilHealthVariantSelection(t *testing.T) {
	p := weekdayProfile(24000)
	m := engine.MonthlyMetrics{EmployeeID: "emp-1"}

	semi := payroll.BuildPayslip(p, m, payroll.StatutoryConfig{PhilHealthVariant: payroll.PhilHealthSemiMonthly})
	quarterly := payroll.BuildPayslip(p, m, payroll.StatutoryConfig{PhilHealthVariant: payroll.PhilHealthQuarterly})

	wantDecimal(t, "semi-monthly philhealth", semi.PhilHealth, "600")
	wantDecimal(t, "quarterly philhealth", quarterly.PhilHealth, "300")
}

func TestBuildPayslip_CustomSSSTable(t *testing.T) {
	// GIVEN an injected bracket table replacing the built-in approximation
	p := weekdayProfile(24000)
	m := engine.MonthlyMetrics{EmployeeID: "emp-1"}
	flat := func(decimal.Decimal) decimal.Decimal { return d("990") }

	slip := payroll.BuildPayslip(p, m, payroll.StatutoryConfig{SSS: flat})

	wantDecimal(t, "sss", slip.SSS, "990")
}

func TestBuildPayslip_MixedRoleInstructionalPay(t *testing.T) {
	// GIVEN a salaried employee who also teaches, with the teaching rate
	// supplied by the payroll summary
	summary := decimal.NewFromInt(300)
	p := weekdayProfile(30000)
	p.Roles = append(p.Roles, engine.RoleCollegeInstructor)
	m := engine.MonthlyMetrics{
		EmployeeID:        "emp-3",
		InstructionalPaid: d("12"),
	}

	slip := payroll.BuildPayslip(p, m, payroll.StatutoryConfig{InstructionalRate: &summary})

	// THEN the instructional bucket prices at the summary rate on top of
	// the base salary
	wantDecimal(t, "base pay", slip.BasePay, "30000")
	wantDecimal(t, "instructional pay", slip.InstructionalPay, "3600")
	wantDecimal(t, "gross", slip.Gross, "33600")
}
