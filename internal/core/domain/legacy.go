package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LegacyTransaction is a pre-ledger income record that was never (or not yet)
// mirrored into the journal-entry system. Report aggregation must not count a
// legacy record twice once a journal entry references its id.
type LegacyTransaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (e.g., UUID)
	CompanyID     string          `json:"companyID"`     // FK -> companies.company_id
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"` // Positive income amount
	Date          time.Time       `json:"date"`
	AuditFields
}
