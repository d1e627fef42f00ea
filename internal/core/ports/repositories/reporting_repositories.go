package repositories

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// ReportingReader defines the aggregate read queries behind financial reports.
// These are computed in SQL rather than in memory so reports stay cheap as the
// journal grows.
type ReportingReader interface {
	// SumJournalByAccountType sums journal line activity per account for one
	// account type over a date range. Reversed entries and their reversals
	// cancel each other and therefore both remain included.
	SumJournalByAccountType(ctx context.Context, companyID string, accountType domain.AccountType, from time.Time, to time.Time) ([]domain.CategoryAmount, error)

	// FindReferencedLegacyIDs returns the legacy transaction ids already
	// referenced by posted journal entries for a company. Aggregation excludes
	// these from legacy totals to avoid double counting.
	FindReferencedLegacyIDs(ctx context.Context, companyID string) (map[string]struct{}, error)

	// TrialBalanceRows returns per-account debit/credit totals across all
	// entries of a company as of a date, reversals included.
	TrialBalanceRows(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
