package payroll

import "github.com/shopspring/decimal"

// Rates and wage bases for the modeled year.
var (
	socialSecurityRate     = decimal.RequireFromString("0.062")
	socialSecurityWageBase = decimal.NewFromInt(168600)

	medicareRate = decimal.RequireFromString("0.0145")

	additionalMedicareRate      = decimal.RequireFromString("0.009")
	additionalMedicareThreshold = decimal.NewFromInt(200000)

	suiWageBase = decimal.NewFromInt(7000)

	// DefaultSUIRate is the state unemployment insurance rate applied when the
	// employer has no state-assigned rate configured.
	DefaultSUIRate = decimal.RequireFromString("0.027")
)

// FICATaxes holds the per-paycheck FICA withholding split.
type FICATaxes struct {
	SocialSecurity     decimal.Decimal `json:"socialSecurity"`
	Medicare           decimal.Decimal `json:"medicare"`
	AdditionalMedicare decimal.Decimal `json:"additionalMedicare"`
}

// Total returns the sum of all FICA components.
func (f FICATaxes) Total() decimal.Decimal {
	return f.SocialSecurity.Add(f.Medicare).Add(f.AdditionalMedicare)
}

// wageBaseTaxable returns the portion of grossPay that still falls under an
// annual cumulative wage base given YTD wages already earned:
// clamp(0, grossPay, wageBase - ytdGross). This single proration shape backs
// Social Security, SUI and (inverted) Additional Medicare.
func wageBaseTaxable(grossPay, ytdGross, wageBase decimal.Decimal) decimal.Decimal {
	remaining := wageBase.Sub(ytdGross)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	if grossPay.LessThan(remaining) {
		return grossPay
	}
	return remaining
}

// CalculateFICATaxes computes Social Security, Medicare and Additional
// Medicare withholding for one paycheck. ytdGross is the cumulative gross pay
// earned before this check.
func CalculateFICATaxes(grossPay, ytdGross decimal.Decimal) FICATaxes {
	ssTaxable := wageBaseTaxable(grossPay, ytdGross, socialSecurityWageBase)

	// Additional Medicare taxes only the slice of this check that pushes
	// cumulative wages past the threshold; equivalently, gross minus the part
	// still under the threshold.
	underThreshold := wageBaseTaxable(grossPay, ytdGross, additionalMedicareThreshold)
	addlTaxable := grossPay.Sub(underThreshold)

	return FICATaxes{
		SocialSecurity:     ssTaxable.Mul(socialSecurityRate).Round(2),
		Medicare:           grossPay.Mul(medicareRate).Round(2),
		AdditionalMedicare: addlTaxable.Mul(additionalMedicareRate).Round(2),
	}
}

// CalculateStateSUI computes state unemployment insurance for one paycheck
// against the $7,000 wage base. rate is state/employer-specific; pass
// DefaultSUIRate when no specific rate applies.
func CalculateStateSUI(grossPay, ytdGross, rate decimal.Decimal) decimal.Decimal {
	return wageBaseTaxable(grossPay, ytdGross, suiWageBase).Mul(rate).Round(2)
}
