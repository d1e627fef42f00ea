package dto

import (
	"github.com/ledgerkeep/ledgerkeep/internal/payroll"
	"github.com/shopspring/decimal"
)

// WithholdingRequest carries everything needed to compute one paycheck's
// withholding. YTDGross covers pay already received this calendar year,
// excluding GrossPay.
type WithholdingRequest struct {
	GrossPay              decimal.Decimal      `json:"grossPay" validate:"required"`
	YTDGross              decimal.Decimal      `json:"ytdGross"`
	PayPeriod             payroll.PayPeriod    `json:"payPeriod" validate:"required"`
	FilingStatus          payroll.FilingStatus `json:"filingStatus" validate:"required"`
	Allowances            int                  `json:"allowances" validate:"min=0"`
	AdditionalWithholding decimal.Decimal      `json:"additionalWithholding"`
	SUIRate               *decimal.Decimal     `json:"suiRate"` // nil uses the configured default
}

// WithholdingResponse itemizes the computed per-paycheck withholding.
type WithholdingResponse struct {
	FederalIncomeTax   decimal.Decimal `json:"federalIncomeTax"`
	SocialSecurity     decimal.Decimal `json:"socialSecurity"`
	Medicare           decimal.Decimal `json:"medicare"`
	AdditionalMedicare decimal.Decimal `json:"additionalMedicare"`
	StateSUI           decimal.Decimal `json:"stateSUI"`
	TotalWithholding   decimal.Decimal `json:"totalWithholding"`
	NetPay             decimal.Decimal `json:"netPay"`
}
