package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	"github.com/ledgerkeep/ledgerkeep/internal/models"
	"github.com/ledgerkeep/ledgerkeep/internal/utils/mapping"
	"github.com/ledgerkeep/ledgerkeep/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// uniqueViolation is the Postgres error code raised when the
// (company_id, entry_year, sequence_number) constraint catches a race.
const uniqueViolation = "23505"

// saveEntryMaxAttempts bounds the sequence-conflict retry loop.
const saveEntryMaxAttempts = 3

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal entry and line data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// isUniqueViolation reports whether an error is the Postgres unique-constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// SaveEntry persists an entry and its lines, assigns the company-year
// sequence, and updates cached account balances within one DB transaction.
// For a reversal the original entry is marked REVERSED in the same
// transaction; a lost claim surfaces as ErrConflict with nothing committed.
// Sequence assignment reads the current maximum with a row lock; when two
// transactions still collide on a fresh company-year (no row to lock), the
// unique constraint rejects one and the save retries with a fresh sequence.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine, balanceChanges map[string]decimal.Decimal) (*domain.JournalEntry, error) {
	var lastErr error
	for attempt := 0; attempt < saveEntryMaxAttempts; attempt++ {
		saved, err := r.saveEntryOnce(ctx, entry, lines, balanceChanges)
		if err == nil {
			return saved, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, apperrors.NewAppError(500, "failed to assign entry number for company "+entry.CompanyID+" after retries", lastErr)
}

func (r *PgxJournalRepository) saveEntryOnce(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine, balanceChanges map[string]decimal.Decimal) (*domain.JournalEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	now := entry.CreatedAt
	userID := entry.CreatedBy

	// 1. Assign the next sequence for (company, year). Locking the current
	// maximum row serializes concurrent postings in an existing year.
	var maxSequence int64
	seqQuery := `
		SELECT sequence_number FROM journal_entries
		WHERE company_id = $1 AND entry_year = $2
		ORDER BY sequence_number DESC
		LIMIT 1
		FOR UPDATE;
	`
	err = tx.QueryRow(ctx, seqQuery, entry.CompanyID, entry.EntryYear).Scan(&maxSequence)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewAppError(500, "failed to read entry sequence for company "+entry.CompanyID, err)
	}
	entry.SequenceNumber = maxSequence + 1
	entry.EntryNumber = domain.FormatEntryNumber(entry.EntryYear, entry.SequenceNumber)

	// 2. Insert the entry.
	modelEntry := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (
			entry_id, entry_number, sequence_number, entry_year, company_id, entry_date,
			description, reference, currency_code, status, original_entry_id, reversing_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID,
		modelEntry.EntryNumber,
		modelEntry.SequenceNumber,
		modelEntry.EntryYear,
		modelEntry.CompanyID,
		modelEntry.EntryDate,
		modelEntry.Description,
		modelEntry.Reference,
		modelEntry.CurrencyCode,
		modelEntry.Status,
		modelEntry.OriginalEntryID,
		modelEntry.ReversingEntryID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, err
		}
		return nil, apperrors.NewAppError(500, "failed to insert journal entry "+modelEntry.EntryID, err)
	}

	// 3. Lock affected accounts and apply cached balance changes.
	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock accounts for update", err)
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return nil, apperrors.NewAppError(500, "failed to update account balances", err)
	}

	// 4. Insert the lines as a batch.
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (
			line_id, entry_id, account_id, debit, credit, description, line_number,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, line := range lines {
		modelLine := mapping.ToModelJournalEntryLine(line)
		modelLine.CreatedAt = now
		modelLine.LastUpdatedAt = now
		modelLine.CreatedBy = userID
		modelLine.LastUpdatedBy = userID
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.EntryID,
			modelLine.AccountID,
			modelLine.Debit,
			modelLine.Credit,
			modelLine.Description,
			modelLine.LineNumber,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to execute line batch for entry "+modelEntry.EntryID, err)
	}

	// 5. A reversal claims its original in the same transaction. The status
	// predicate makes the claim atomic: a concurrent reversal of the same
	// entry finds zero rows here and the whole save rolls back, so no second
	// reversal is ever left posted.
	if entry.OriginalEntryID != nil {
		claimQuery := `
			UPDATE journal_entries
			SET status = $2,
			    reversing_entry_id = $3,
			    last_updated_at = $4,
			    last_updated_by = $5
			WHERE entry_id = $1 AND status = 'POSTED' AND reversing_entry_id IS NULL;
		`
		cmdTag, err := tx.Exec(ctx, claimQuery, *entry.OriginalEntryID, models.Reversed, entry.EntryID, now, userID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to mark original entry "+*entry.OriginalEntryID+" reversed", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return nil, fmt.Errorf("%w: entry %s is no longer open for reversal", apperrors.ErrConflict, *entry.OriginalEntryID)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

const entryColumns = `
	entry_id, entry_number, sequence_number, entry_year, company_id, entry_date,
	description, reference, currency_code, status, original_entry_id, reversing_entry_id,
	created_at, created_by, last_updated_at, last_updated_by
`

// scanEntry scans one journal entry row.
func scanEntry(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.SequenceNumber,
		&m.EntryYear,
		&m.CompanyID,
		&m.EntryDate,
		&m.Description,
		&m.Reference,
		&m.CurrencyCode,
		&m.Status,
		&m.OriginalEntryID,
		&m.ReversingEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindEntryByID retrieves a journal entry by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// FindEntryByReference retrieves the posted entry referencing a business
// record. Reversals are excluded so a reversed-then-reposted record resolves
// to the live entry.
func (r *PgxJournalRepository) FindEntryByReference(ctx context.Context, companyID string, reference string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE company_id = $1 AND reference = $2 AND original_entry_id IS NULL
		ORDER BY created_at DESC
		LIMIT 1;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, companyID, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by reference "+reference, err)
	}
	entry := mapping.ToDomainJournalEntry(*m)
	return &entry, nil
}

// ListEntries retrieves a paginated list of entries for a company using
// token-based keyset pagination over (entry_date, created_at).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM journal_entries`
	filterClause := `WHERE company_id = $1`
	if !includeReversals {
		filterClause += ` AND status != 'REVERSED' AND original_entry_id IS NULL`
	}
	orderByClause := `ORDER BY entry_date DESC, created_at DESC`

	args := []interface{}{companyID}
	var query string
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		cursorClause := `AND (entry_date, created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
		query = baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	} else {
		query = baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	}
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for company "+companyID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan entry row for company "+companyID, scanErr)
		}
		modelEntries = append(modelEntries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows for company "+companyID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

const lineColumns = `
	line_id, entry_id, account_id, debit, credit, description, line_number,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanLine(rows pgx.Rows) (models.JournalEntryLine, error) {
	var m models.JournalEntryLine
	err := rows.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&m.Description,
		&m.LineNumber,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindLinesByEntryID retrieves all lines of an entry in line-number order.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE entry_id = $1 ORDER BY line_number;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	modelLines := []models.JournalEntryLine{}
	for rows.Next() {
		m, scanErr := scanLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for entry "+entryID, scanErr)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for entry "+entryID, err)
	}
	return mapping.ToDomainJournalEntryLineSlice(modelLines), nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalEntryLine{}, nil
	}

	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_number;`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry IDs", err)
	}
	defer rows.Close()

	linesMap := make(map[string][]domain.JournalEntryLine)
	for rows.Next() {
		m, scanErr := scanLine(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row during batch fetch", scanErr)
		}
		line := mapping.ToDomainJournalEntryLine(m)
		linesMap[line.EntryID] = append(linesMap[line.EntryID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows during batch fetch", err)
	}

	for _, id := range entryIDs {
		if _, exists := linesMap[id]; !exists {
			linesMap[id] = []domain.JournalEntryLine{}
		}
	}
	return linesMap, nil
}
