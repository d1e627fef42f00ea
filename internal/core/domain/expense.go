package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus gates whether a journal entry should exist for an expense.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "PENDING"
	ExpenseApproved ExpenseStatus = "APPROVED"
	ExpenseRejected ExpenseStatus = "REJECTED"
)

// Expense is an externally-owned business record, read-only from the ledger's perspective.
type Expense struct {
	ExpenseID   string          `json:"expenseID"` // Primary Key (e.g., UUID)
	CompanyID   string          `json:"companyID"` // FK -> companies.company_id
	Category    string          `json:"category"`  // Free-form category label, drives account mapping
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"` // Positive
	Date        time.Time       `json:"date"`
	Status      ExpenseStatus   `json:"status"`
	AuditFields
}
