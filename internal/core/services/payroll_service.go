package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/ledgerkeep/ledgerkeep/internal/payroll"
	"github.com/shopspring/decimal"
)

// payrollService wraps the pure withholding calculators behind the service
// surface, applying the configured SUI rate default.
type payrollService struct {
	BaseService
	defaultSUIRate decimal.Decimal
}

// NewPayrollService creates a new PayrollService. A non-positive rate falls
// back to the stock SUI rate.
func NewPayrollService(defaultSUIRate decimal.Decimal) portssvc.PayrollSvc {
	if defaultSUIRate.LessThanOrEqual(decimal.Zero) {
		defaultSUIRate = payroll.DefaultSUIRate
	}
	return &payrollService{defaultSUIRate: defaultSUIRate}
}

var _ portssvc.PayrollSvc = (*payrollService)(nil)

// CalculateWithholding computes federal, FICA and SUI withholding for one
// paycheck and the resulting net pay.
func (s *payrollService) CalculateWithholding(ctx context.Context, req dto.WithholdingRequest) (*dto.WithholdingResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.GrossPay.IsNegative() {
		return nil, fmt.Errorf("%w: gross pay must not be negative", apperrors.ErrValidation)
	}
	if req.YTDGross.IsNegative() {
		return nil, fmt.Errorf("%w: ytd gross must not be negative", apperrors.ErrValidation)
	}
	if req.Allowances < 0 {
		return nil, fmt.Errorf("%w: allowances must not be negative", apperrors.ErrValidation)
	}

	annualized := payroll.AnnualizeSalary(req.GrossPay, req.PayPeriod)
	federal := payroll.CalculateFederalIncomeTax(annualized, req.FilingStatus, req.Allowances, req.AdditionalWithholding, req.PayPeriod)
	fica := payroll.CalculateFICATaxes(req.GrossPay, req.YTDGross)

	suiRate := s.defaultSUIRate
	if req.SUIRate != nil && req.SUIRate.GreaterThan(decimal.Zero) {
		suiRate = *req.SUIRate
	}
	sui := payroll.CalculateStateSUI(req.GrossPay, req.YTDGross, suiRate)

	total := federal.Add(fica.Total()).Add(sui)
	resp := &dto.WithholdingResponse{
		FederalIncomeTax:   federal,
		SocialSecurity:     fica.SocialSecurity,
		Medicare:           fica.Medicare,
		AdditionalMedicare: fica.AdditionalMedicare,
		StateSUI:           sui,
		TotalWithholding:   total,
		NetPay:             req.GrossPay.Sub(total),
	}

	s.LogDebug(ctx, "Withholding calculated",
		slog.String("pay_period", string(req.PayPeriod)),
		slog.String("filing_status", string(req.FilingStatus)),
		slog.String("total", total.StringFixed(2)))
	return resp, nil
}
