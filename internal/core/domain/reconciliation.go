package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStatus indicates the state of a reconciliation session.
type ReconciliationStatus string

const (
	ReconciliationInProgress ReconciliationStatus = "IN_PROGRESS"
	ReconciliationCompleted  ReconciliationStatus = "COMPLETED"
)

// BankAccount represents a bank account whose movements are reconciled against the books.
type BankAccount struct {
	BankAccountID  string          `json:"bankAccountID"` // Primary Key (e.g., UUID)
	CompanyID      string          `json:"companyID"`     // FK -> companies.company_id
	Name           string          `json:"name"`          // User-facing label
	Balance        decimal.Decimal `json:"balance"`       // Bank-reported running balance
	LastReconciled *time.Time      `json:"lastReconciled"`
	AuditFields
}

// BankTransaction is a single imported bank movement. Amount is signed
// (positive = credit/deposit, negative = debit/withdrawal); Debit/Credit hold
// the unsigned split of the same movement.
type BankTransaction struct {
	TransactionID    string          `json:"transactionID"` // Primary Key (e.g., UUID)
	BankAccountID    string          `json:"bankAccountID"` // FK -> bank_accounts.bank_account_id
	Date             time.Time       `json:"date"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Reconciled       bool            `json:"reconciled"`
	ReconciledAt     *time.Time      `json:"reconciledAt"`
	ReconciliationID *string         `json:"reconciliationID"` // Session that claimed this transaction
	MatchedExpenseID *string         `json:"matchedExpenseID"` // Mutually exclusive with MatchedInvoiceID
	MatchedInvoiceID *string         `json:"matchedInvoiceID"`
	AuditFields
}

// BankReconciliation is a per-account reconciliation session over a date window.
// The session owns its date-bounded view of bank transactions but not the
// transactions themselves; they persist across sessions.
type BankReconciliation struct {
	ReconciliationID string               `json:"reconciliationID"` // Primary Key (e.g., UUID)
	BankAccountID    string               `json:"bankAccountID"`    // FK -> bank_accounts.bank_account_id
	StartDate        time.Time            `json:"startDate"`
	EndDate          time.Time            `json:"endDate"`
	OpeningBalance   decimal.Decimal      `json:"openingBalance"`
	ClosingBalance   decimal.Decimal      `json:"closingBalance"`
	Status           ReconciliationStatus `json:"status"`
	ReconciledBy     *string              `json:"reconciledBy"`
	CompletedAt      *time.Time           `json:"completedAt"`
	AuditFields
}

// ReconciliationSummary is the read-only balance computation for a session.
// Difference is reportable data for human review, never an error.
type ReconciliationSummary struct {
	ReconciliationID  string          `json:"reconciliationID"`
	OpeningBalance    decimal.Decimal `json:"openingBalance"`
	ClosingBalance    decimal.Decimal `json:"closingBalance"`
	ClearedBalance    decimal.Decimal `json:"clearedBalance"` // opening + sum of reconciled amounts in window
	Difference        decimal.Decimal `json:"difference"`     // closing - cleared
	ReconciledCount   int             `json:"reconciledCount"`
	UnreconciledCount int             `json:"unreconciledCount"`
}
