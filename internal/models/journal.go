package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry is the persistence shape of a balanced financial event.
type JournalEntry struct {
	EntryID          string      `json:"entryID"`
	EntryNumber      string      `json:"entryNumber"`
	SequenceNumber   int64       `json:"sequenceNumber"`
	EntryYear        int         `json:"entryYear"`
	CompanyID        string      `json:"companyID"`
	EntryDate        time.Time   `json:"entryDate"`
	Description      string      `json:"description"`
	Reference        *string     `json:"reference"`
	CurrencyCode     string      `json:"currencyCode"`
	Status           EntryStatus `json:"status"`
	OriginalEntryID  *string     `json:"originalEntryID"`
	ReversingEntryID *string     `json:"reversingEntryID"`
	AuditFields
}

// JournalEntryLine is the persistence shape of a single entry line.
type JournalEntryLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
	LineNumber  int             `json:"lineNumber"`
	AuditFields
}
