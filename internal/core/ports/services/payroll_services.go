package services

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// PayrollSvc wraps the pure withholding calculators behind a request/response
// surface so callers get one itemized result per paycheck.
type PayrollSvc interface {
	// CalculateWithholding computes federal, FICA and SUI withholding for one
	// paycheck and the resulting net pay.
	CalculateWithholding(ctx context.Context, req dto.WithholdingRequest) (*dto.WithholdingResponse, error)
}
