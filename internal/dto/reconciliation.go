package dto

import (
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ImportBankTransactionRequest defines one bank statement row to import.
/// Amount is signed: positive for deposits, negative for withdrawals.
type ImportBankTransactionRequest struct {
	BankAccountID string          `json:"bankAccountID" validate:"required,uuid"`
	Date          time.Time       `json:"date" validate:"required"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
}

// StartSessionRequest defines the data needed to open a reconciliation session.
type StartSessionRequest struct {
	BankAccountID  string          `json:"bankAccountID" validate:"required,uuid"`
	StartDate      time.Time       `json:"startDate" validate:"required"`
	EndDate        time.Time       `json:"endDate" validate:"required,gtefield=StartDate"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// AutoMatchOptions overrides the default matching tolerances. Zero values fall
// back to the configured defaults.
type AutoMatchOptions struct {
	ToleranceDays   int             `json:"toleranceDays" validate:"omitempty,min=0,max=90"`
	AmountTolerance decimal.Decimal `json:"amountTolerance"`
}

// AutoMatchResponse reports how many transactions one auto-match run claimed.
type AutoMatchResponse struct {
	MatchedCount int `json:"matchedCount"`
}

// MatchTransactionsRequest lists the bank transactions to toggle manually.
type MatchTransactionsRequest struct {
	TransactionIDs []string `json:"transactionIDs" validate:"required,min=1,dive,uuid"`
}

// SessionResponse defines the data returned for a reconciliation session.
type SessionResponse struct {
	ReconciliationID string                      `json:"reconciliationID"`
	BankAccountID    string                      `json:"bankAccountID"`
	StartDate        time.Time                   `json:"startDate"`
	EndDate          time.Time                   `json:"endDate"`
	OpeningBalance   decimal.Decimal             `json:"openingBalance"`
	ClosingBalance   decimal.Decimal             `json:"closingBalance"`
	Status           domain.ReconciliationStatus `json:"status"`
	ReconciledBy     *string                     `json:"reconciledBy"`
	CompletedAt      *time.Time                  `json:"completedAt"`
}

// ToSessionResponse converts a domain.BankReconciliation to SessionResponse DTO.
func ToSessionResponse(s *domain.BankReconciliation) SessionResponse {
	return SessionResponse{
		ReconciliationID: s.ReconciliationID,
		BankAccountID:    s.BankAccountID,
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		OpeningBalance:   s.OpeningBalance,
		ClosingBalance:   s.ClosingBalance,
		Status:           s.Status,
		ReconciledBy:     s.ReconciledBy,
		CompletedAt:      s.CompletedAt,
	}
}
