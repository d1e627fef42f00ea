package dto

import (
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IncomeStatementParams defines the period and sources of an income statement.
type IncomeStatementParams struct {
	StartDate time.Time           `json:"startDate" validate:"required"`
	EndDate   time.Time           `json:"endDate" validate:"required,gtefield=StartDate"`
	Source    domain.ReportSource `json:"source" validate:"omitempty,oneof=journal legacy both"`
}

// TrialBalanceResponse wraps trial balance rows with their grand totals.
// A nonzero difference between the totals indicates corrupted entries.
type TrialBalanceResponse struct {
	Rows        []domain.TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal          `json:"totalDebit"`
	TotalCredit decimal.Decimal          `json:"totalCredit"`
}
