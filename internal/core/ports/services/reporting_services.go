package services

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
)

// ReportingSvc defines the financial report builders.
type ReportingSvc interface {
	// BuildIncomeStatement aggregates revenue and expense activity over a
	// period, combining journal and legacy sources without double counting.
	BuildIncomeStatement(ctx context.Context, companyID string, params dto.IncomeStatementParams) (*domain.IncomeStatement, error)

	// BuildTrialBalance returns per-account debit/credit totals as of a date.
	BuildTrialBalance(ctx context.Context, companyID string, asOf time.Time) (*dto.TrialBalanceResponse, error)
}
