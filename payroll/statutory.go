/*
statutory.go - Mandatory contribution and withholding-tax formulas

PURPOSE:
  Pure, stateless bracket/percentage functions. Negative inputs clamp to
  zero; nothing here ever returns an error for dirty salary data.

PHILHEALTH VARIANTS:
  The source system divides the 5% premium by 2 at one call site and by 4
  at another. Which divisor is correct is an open question with the
  system owner, so BOTH are exposed as named variants and callers must
  pick one explicitly.

SSS:
  The SSS bracket table is an external collaborator: inject any function
  from base salary to employee contribution. DefaultSSS approximates the
  published table as 4.5% of the salary credit clamped to its floor and
  ceiling.
*/
package payroll

import "github.com/shopspring/decimal"

// =============================================================================
// PHILHEALTH
// =============================================================================

// PhilHealthVariant selects the premium divisor.
type PhilHealthVariant int

const (
	// PhilHealthSemiMonthly divides the 5% premium by 2.
	PhilHealthSemiMonthly PhilHealthVariant = 2

	// PhilHealthQuarterly divides the 5% premium by 4.
	PhilHealthQuarterly PhilHealthVariant = 4
)

var (
	philHealthRate  = decimal.NewFromFloat(0.05)
	philHealthFloor = decimal.NewFromInt(250)
	philHealthCeil  = decimal.NewFromInt(2500)
)

// PhilHealth returns clamp(baseSalary * 0.05 / k, 250, 2500) for the
// selected variant.
func PhilHealth(baseSalary decimal.Decimal, variant PhilHealthVariant) decimal.Decimal {
	k := decimal.NewFromInt(int64(variant))
	premium := clampMoney(baseSalary).Mul(philHealthRate).Div(k).Round(2)
	if premium.LessThan(philHealthFloor) {
		return philHealthFloor
	}
	if premium.GreaterThan(philHealthCeil) {
		return philHealthCeil
	}
	return premium
}

// =============================================================================
// SSS - External bracket table collaborator
// =============================================================================

// SSSTable maps base salary to the employee's SSS contribution.
type SSSTable func(baseSalary decimal.Decimal) decimal.Decimal

var (
	sssRate  = decimal.NewFromFloat(0.045)
	sssFloor = decimal.NewFromInt(180)
	sssCeil  = decimal.NewFromInt(1350)
)

// DefaultSSS is the built-in approximation of the bracket table: 4.5% of
// the salary credit, clamped to the published floor and ceiling.
func DefaultSSS(baseSalary decimal.Decimal) decimal.Decimal {
	c := clampMoney(baseSalary).Mul(sssRate).Round(2)
	if c.LessThan(sssFloor) {
		return sssFloor
	}
	if c.GreaterThan(sssCeil) {
		return sssCeil
	}
	return c
}

// =============================================================================
// PAG-IBIG
// =============================================================================

var (
	pagIbigRate = decimal.NewFromFloat(0.02)
	pagIbigCap  = decimal.NewFromInt(200)
)

// PagIbig returns the employee share: 2% of base salary, capped.
func PagIbig(baseSalary decimal.Decimal) decimal.Decimal {
	c := clampMoney(baseSalary).Mul(pagIbigRate).Round(2)
	if c.GreaterThan(pagIbigCap) {
		return pagIbigCap
	}
	return c
}

// =============================================================================
// WITHHOLDING TAX - Progressive monthly brackets
// =============================================================================

type taxBracket struct {
	over decimal.Decimal // taxable income strictly above this enters the bracket
	base decimal.Decimal // fixed tax addition for the bracket
	rate decimal.Decimal // marginal rate on the excess over `over`
}

// Brackets ordered highest first so the first match wins.
var taxBrackets = []taxBracket{
	{decimal.NewFromInt(666666), decimal.NewFromFloat(183541.80), decimal.NewFromFloat(0.35)},
	{decimal.NewFromInt(166666), decimal.NewFromFloat(33541.80), decimal.NewFromFloat(0.30)},
	{decimal.NewFromInt(66666), decimal.NewFromFloat(8541.80), decimal.NewFromFloat(0.25)},
	{decimal.NewFromInt(33332), decimal.NewFromFloat(1875.00), decimal.NewFromFloat(0.20)},
	{decimal.NewFromInt(20832), decimal.Zero, decimal.NewFromFloat(0.15)},
}

// WithholdingTax computes the progressive monthly withholding tax on
// baseSalary net of the mandatory contributions. Result is rounded to 2
// decimals and floored at zero.
func WithholdingTax(baseSalary, sss, pagIbig, philHealth decimal.Decimal) decimal.Decimal {
	taxable := clampMoney(baseSalary).
		Sub(clampMoney(sss)).
		Sub(clampMoney(pagIbig)).
		Sub(clampMoney(philHealth))
	if !taxable.IsPositive() {
		return decimal.Zero
	}

	for _, b := range taxBrackets {
		if taxable.GreaterThan(b.over) {
			tax := b.base.Add(taxable.Sub(b.over).Mul(b.rate)).Round(2)
			if tax.IsNegative() {
				return decimal.Zero
			}
			return tax
		}
	}
	return decimal.Zero // first bracket: 0%
}
