package domain

import (
	"fmt"
	"time"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry represents a single, balanced financial event composed of multiple lines.
// Once posted it is immutable; corrections happen by posting a reversing entry.
type JournalEntry struct {
	EntryID          string      `json:"entryID"`          // Primary Key (e.g., UUID)
	EntryNumber      string      `json:"entryNumber"`      // Human-readable number, JE-<year>-<seq>, unique per company per year
	SequenceNumber   int64       `json:"sequenceNumber"`   // Monotonic sequence within (company, year)
	EntryYear        int         `json:"entryYear"`        // Year component of EntryNumber
	CompanyID        string      `json:"companyID"`        // FK -> companies.company_id (Not Null)
	EntryDate        time.Time   `json:"entryDate"`        // Date the event occurred
	Description      string      `json:"description"`      // User description
	Reference        *string     `json:"reference"`        // Optional link to the originating business record, used for de-duplication
	CurrencyCode     string      `json:"currencyCode"`     // Primary currency of the entry
	Status           EntryStatus `json:"status"`           // Default: Posted
	OriginalEntryID  *string     `json:"originalEntryID"`  // Set on a reversal, points at the entry it negates
	ReversingEntryID *string     `json:"reversingEntryID"` // Set on a reversed entry, points at its reversal
	AuditFields
	Lines []JournalEntryLine `json:"lines,omitempty"` // Often loaded separately
}

// FormatEntryNumber renders the canonical entry number for a company-year sequence.
func FormatEntryNumber(year int, sequence int64) string {
	return fmt.Sprintf("JE-%d-%05d", year, sequence)
}

// IsReversal reports whether the entry is itself a reversing entry.
func (e *JournalEntry) IsReversal() bool {
	return e.OriginalEntryID != nil
}
