// Package payroll implements the withholding tax calculations used during
// payroll runs. All functions are pure: monetary inputs and outputs are decimal
// currency amounts rounded to 2 decimal places, and nothing here touches storage.
package payroll

import "github.com/shopspring/decimal"

// PayPeriod identifies the pay frequency of a salary amount.
type PayPeriod string

const (
	Weekly      PayPeriod = "WEEKLY"
	BiWeekly    PayPeriod = "BI_WEEKLY"
	SemiMonthly PayPeriod = "SEMI_MONTHLY"
	Monthly     PayPeriod = "MONTHLY"
	Yearly      PayPeriod = "YEARLY"
)

// periodsPerYear returns the number of pay periods in a year. Unknown period
// types return 1: the amount is treated as already annual, a deliberately
// permissive fallback rather than an error.
func periodsPerYear(period PayPeriod) int64 {
	switch period {
	case Weekly:
		return 52
	case BiWeekly:
		return 26
	case SemiMonthly:
		return 24
	case Monthly:
		return 12
	case Yearly:
		return 1
	default:
		return 1
	}
}

// AnnualizeSalary converts a per-period salary amount to its annual equivalent.
func AnnualizeSalary(periodAmount decimal.Decimal, period PayPeriod) decimal.Decimal {
	return periodAmount.Mul(decimal.NewFromInt(periodsPerYear(period))).Round(2)
}

// PeriodizeTax converts an annual tax amount back to a per-period amount.
// Inverse of AnnualizeSalary, dividing by the same multiplier.
func PeriodizeTax(annualTax decimal.Decimal, period PayPeriod) decimal.Decimal {
	return annualTax.Div(decimal.NewFromInt(periodsPerYear(period))).Round(2)
}
