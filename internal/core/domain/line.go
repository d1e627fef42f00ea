package domain

import "github.com/shopspring/decimal"

// JournalEntryLine represents a single line item within a JournalEntry, affecting one account.
// Debit and Credit are both non-negative; in the canonical posting patterns exactly one
// of them is nonzero per line, though the model permits both.
type JournalEntryLine struct {
	LineID      string          `json:"lineID"`      // Primary Key (e.g., UUID)
	EntryID     string          `json:"entryID"`     // FK -> JournalEntry.entryID (Not Null)
	AccountID   string          `json:"accountID"`   // FK -> Account.accountID (Not Null)
	Debit       decimal.Decimal `json:"debit"`       // >= 0
	Credit      decimal.Decimal `json:"credit"`      // >= 0
	Description string          `json:"description"` // Nullable
	LineNumber  int             `json:"lineNumber"`  // 1-based, defines display/audit order
	AuditFields
}

// Swapped returns a copy of the line with debit and credit exchanged.
// Used when building reversing entries.
func (l JournalEntryLine) Swapped() JournalEntryLine {
	out := l
	out.Debit = l.Credit
	out.Credit = l.Debit
	return out
}
