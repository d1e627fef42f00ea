package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// newPgxReportingRepository creates a new repository for report aggregation queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingReader {
	return &PgxReportingRepository{pool: pool}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingReader
var _ portsrepo.ReportingReader = (*PgxReportingRepository)(nil)

// The aggregation queries deliberately carry no entry status predicate. A
// reversal holds the swapped lines of its original, so summing both sides of
// a pair nets to zero; filtering on status would keep only one side.
const sumJournalByAccountTypeQuery = `
	SELECT a.name,
	       SUM(CASE WHEN a.account_type IN ('ASSET', 'EXPENSE')
	                THEN l.debit - l.credit
	                ELSE l.credit - l.debit END) AS net_amount
	FROM journal_entry_lines l
	JOIN journal_entries e ON e.entry_id = l.entry_id
	JOIN accounts a ON a.account_id = l.account_id
	WHERE e.company_id = $1
	  AND a.account_type = $2
	  AND e.entry_date >= $3 AND e.entry_date <= $4
	GROUP BY a.name
	ORDER BY a.name;
`

const trialBalanceQuery = `
	SELECT a.account_id, a.name, a.account_type,
	       COALESCE(SUM(l.debit), 0) AS total_debit,
	       COALESCE(SUM(l.credit), 0) AS total_credit
	FROM journal_entry_lines l
	JOIN journal_entries e ON e.entry_id = l.entry_id
	JOIN accounts a ON a.account_id = l.account_id
	WHERE e.company_id = $1
	  AND e.entry_date <= $2
	GROUP BY a.account_id, a.code, a.name, a.account_type
	ORDER BY a.code;
`

// SumJournalByAccountType sums journal activity per account name for one
// account type. The sign convention follows the normal balance of the type,
// so revenue and expense buckets both come back positive for ordinary
// activity. No status filter: a reversed entry and its reversal are both
// summed, so the pair nets to zero instead of leaving only the reversal's
// swapped lines in the total.
func (r *PgxReportingRepository) SumJournalByAccountType(ctx context.Context, companyID string, accountType domain.AccountType, from time.Time, to time.Time) ([]domain.CategoryAmount, error) {
	rows, err := r.pool.Query(ctx, sumJournalByAccountTypeQuery, companyID, string(accountType), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to sum journal activity for company %s type %s: %w", companyID, accountType, err)
	}
	defer rows.Close()

	amounts := []domain.CategoryAmount{}
	for rows.Next() {
		var ca domain.CategoryAmount
		if scanErr := rows.Scan(&ca.Category, &ca.Amount); scanErr != nil {
			return nil, fmt.Errorf("failed to scan journal sum row: %w", scanErr)
		}
		amounts = append(amounts, ca)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating journal sum rows: %w", rows.Err())
	}
	return amounts, nil
}

// FindReferencedLegacyIDs returns the legacy transaction ids already carried
// into the journal via entry references.
func (r *PgxReportingRepository) FindReferencedLegacyIDs(ctx context.Context, companyID string) (map[string]struct{}, error) {
	query := `
		SELECT DISTINCT reference
		FROM journal_entries
		WHERE company_id = $1 AND reference IS NOT NULL AND status = 'POSTED';
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query referenced legacy ids for company %s: %w", companyID, err)
	}
	defer rows.Close()

	ids := map[string]struct{}{}
	for rows.Next() {
		var ref string
		if scanErr := rows.Scan(&ref); scanErr != nil {
			return nil, fmt.Errorf("failed to scan legacy reference row: %w", scanErr)
		}
		ids[ref] = struct{}{}
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating legacy reference rows: %w", rows.Err())
	}
	return ids, nil
}

// TrialBalanceRows returns per-account debit/credit totals across all entries
// up to the given date. Reversed entries stay in: their reversals carry the
// swapped lines, so each pair contributes equally to both columns and the
// grand totals still balance.
func (r *PgxReportingRepository) TrialBalanceRows(ctx context.Context, companyID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	rows, err := r.pool.Query(ctx, trialBalanceQuery, companyID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance rows for company %s: %w", companyID, err)
	}
	defer rows.Close()

	tbRows := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if scanErr := rows.Scan(&row.AccountID, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); scanErr != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", scanErr)
		}
		tbRows = append(tbRows, row)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", rows.Err())
	}
	return tbRows, nil
}
