package payroll

import "github.com/shopspring/decimal"

// FilingStatus selects the federal withholding bracket schedule.
type FilingStatus string

const (
	Single               FilingStatus = "SINGLE"
	MarriedFilingJointly FilingStatus = "MARRIED_FILING_JOINTLY"
	HeadOfHousehold      FilingStatus = "HEAD_OF_HOUSEHOLD"
)

// allowanceExemption is the fixed per-allowance reduction of taxable income.
var allowanceExemption = decimal.NewFromInt(4300)

// bracket is one marginal band of a progressive schedule. A nil upper bound
// means the band is unbounded.
type bracket struct {
	upper *decimal.Decimal
	rate  decimal.Decimal
}

func d(v int64) *decimal.Decimal {
	dec := decimal.NewFromInt(v)
	return &dec
}

func rate(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

var federalBrackets = map[FilingStatus][]bracket{
	Single: {
		{d(11600), rate("0.10")},
		{d(47150), rate("0.12")},
		{d(100525), rate("0.22")},
		{d(191950), rate("0.24")},
		{d(243725), rate("0.32")},
		{d(609350), rate("0.35")},
		{nil, rate("0.37")},
	},
	MarriedFilingJointly: {
		{d(23200), rate("0.10")},
		{d(94300), rate("0.12")},
		{d(201050), rate("0.22")},
		{d(383900), rate("0.24")},
		{d(487450), rate("0.32")},
		{d(731200), rate("0.35")},
		{nil, rate("0.37")},
	},
	HeadOfHousehold: {
		{d(16550), rate("0.10")},
		{d(63100), rate("0.12")},
		{d(100500), rate("0.22")},
		{d(191950), rate("0.24")},
		{d(243725), rate("0.32")},
		{d(609350), rate("0.35")},
		{nil, rate("0.37")},
	},
}

// bracketsFor returns the schedule for a filing status. Unknown statuses fall
// back to the SINGLE table.
func bracketsFor(status FilingStatus) []bracket {
	if b, ok := federalBrackets[status]; ok {
		return b
	}
	return federalBrackets[Single]
}

// marginalTax applies a progressive bracket schedule to a taxable amount.
func marginalTax(taxable decimal.Decimal, brackets []bracket) decimal.Decimal {
	tax := decimal.Zero
	lower := decimal.Zero
	for _, b := range brackets {
		if taxable.LessThanOrEqual(lower) {
			break
		}
		upper := taxable
		if b.upper != nil && b.upper.LessThan(taxable) {
			upper = *b.upper
		}
		tax = tax.Add(upper.Sub(lower).Mul(b.rate))
		lower = upper
	}
	return tax
}

// CalculateFederalIncomeTax computes the per-paycheck federal income tax
// withholding. Allowances reduce annualized taxable income by a fixed
// exemption each, floored at zero, before the bracket schedule is applied.
// The bracket tax is periodized to the pay frequency; additionalWithholding
// is a flat per-paycheck surcharge added verbatim, bypassing annualization
// and periodization entirely.
func CalculateFederalIncomeTax(annualizedWages decimal.Decimal, status FilingStatus, allowances int, additionalWithholding decimal.Decimal, period PayPeriod) decimal.Decimal {
	if annualizedWages.LessThanOrEqual(decimal.Zero) {
		return additionalWithholding.Round(2)
	}

	taxable := annualizedWages.Sub(allowanceExemption.Mul(decimal.NewFromInt(int64(allowances))))
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	annualTax := marginalTax(taxable, bracketsFor(status))
	return PeriodizeTax(annualTax, period).Add(additionalWithholding).Round(2)
}
