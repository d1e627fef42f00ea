package models

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

// BankAccount is the persistence shape of a reconciled bank account.
type BankAccount struct {
	BankAccountID  string          `json:"bankAccountID"`
	CompanyID      string          `json:"companyID"`
	Name           string          `json:"name"`
	Balance        decimal.Decimal `json:"balance"`
	LastReconciled *time.Time      `json:"lastReconciled"`
	AuditFields
}

// BankTransaction is the persistence shape of an imported bank movement.
type BankTransaction struct {
	TransactionID    string          `json:"transactionID"`
	BankAccountID    string          `json:"bankAccountID"`
	Date             time.Time       `json:"date"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Reconciled       bool            `json:"reconciled"`
	ReconciledAt     *time.Time      `json:"reconciledAt"`
	ReconciliationID *string         `json:"reconciliationID"`
	MatchedExpenseID *string         `json:"matchedExpenseID"`
	MatchedInvoiceID *string         `json:"matchedInvoiceID"`
	AuditFields
}

// BankReconciliation is the persistence shape of a reconciliation session.
type BankReconciliation struct {
	ReconciliationID string               `json:"reconciliationID"`
	BankAccountID    string               `json:"bankAccountID"`
	StartDate        time.Time            `json:"startDate"`
	EndDate          time.Time            `json:"endDate"`
	OpeningBalance   decimal.Decimal      `json:"openingBalance"`
	ClosingBalance   decimal.Decimal      `json:"closingBalance"`
	Status           ReconciliationStatus `json:"status"`
	ReconciledBy     *string              `json:"reconciledBy"`
	CompletedAt      *time.Time           `json:"completedAt"`
	AuditFields
}
