package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus gates whether issuance/payment journal entries should exist.
type InvoiceStatus string

const (
	InvoiceDraft InvoiceStatus = "DRAFT"
	InvoiceSent  InvoiceStatus = "SENT"
	InvoicePaid  InvoiceStatus = "PAID"
)

// Invoice is an externally-owned business record, read-only from the ledger's perspective.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"` // Primary Key (e.g., UUID)
	CompanyID     string          `json:"companyID"` // FK -> companies.company_id
	InvoiceNumber string          `json:"invoiceNumber"`
	CustomerName  string          `json:"customerName"`
	Total         decimal.Decimal `json:"total"` // Positive
	IssueDate     time.Time       `json:"issueDate"`
	PaidDate      *time.Time      `json:"paidDate"` // Set when the invoice transitions to PAID
	Status        InvoiceStatus   `json:"status"`
	AuditFields
}
