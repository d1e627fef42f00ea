package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CanonicalEventKind names the recurring business events that post with a
// fixed debit/credit shape.
type CanonicalEventKind string

const (
	EventIncome         CanonicalEventKind = "income"
	EventExpense        CanonicalEventKind = "expense"
	EventInvoiceIssued  CanonicalEventKind = "invoice_issued"
	EventInvoicePayment CanonicalEventKind = "invoice_payment"
)

// CanonicalEventRequest asks the ledger to post the journal entry for one
// business event. Income and expense events carry amount, category and date;
// invoice events carry the invoice ID and derive everything else from the
// invoice record. SourceRecordID links the entry back to the originating
// record via the entry reference.
type CanonicalEventRequest struct {
	Kind           CanonicalEventKind `json:"kind" validate:"required,oneof=income expense invoice_issued invoice_payment"`
	Amount         decimal.Decimal    `json:"amount"`
	Category       string             `json:"category"`
	Description    string             `json:"description"`
	Date           time.Time          `json:"date"`
	SourceRecordID *string            `json:"sourceRecordID" validate:"omitempty,uuid"`
	InvoiceID      string             `json:"invoiceID" validate:"omitempty,uuid"`
}
