package models

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

// InvoiceStatus gates whether issuance/payment journal entries should exist.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "DRAFT"
	InvoiceSent  InvoiceStatus = "SENT"
	InvoicePaid  InvoiceStatus = "PAID"
)

// Expense is the persistence shape of an expense record.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	CompanyID   string          `json:"companyID"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Status      ExpenseStatus   `json:"status"`
	AuditFields
}

// Invoice is the persistence shape of an invoice record.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	CompanyID     string          `json:"companyID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	CustomerName  string          `json:"customerName"`
	Total         decimal.Decimal `json:"total"`
	IssueDate     time.Time       `json:"issueDate"`
	PaidDate      *time.Time      `json:"paidDate"`
	Status        InvoiceStatus   `json:"status"`
	AuditFields
}

// LegacyTransaction is the persistence shape of a pre-ledger income record.
type LegacyTransaction struct {
	TransactionID string          `json:"transactionID"`
	CompanyID     string          `json:"companyID"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	AuditFields
}
