package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	"github.com/ledgerkeep/ledgerkeep/internal/models"
	"github.com/ledgerkeep/ledgerkeep/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxReconciliationRepository struct {
	pool *pgxpool.Pool
}

// newPgxReconciliationRepository creates a new repository for bank reconciliation data.
func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{pool: pool}
}

// Ensure PgxReconciliationRepository implements portsrepo.ReconciliationRepositoryFacade
var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

const bankAccountColumns = `bank_account_id, company_id, name, balance, last_reconciled, created_at, created_by, last_updated_at, last_updated_by`

const bankTransactionColumns = `transaction_id, bank_account_id, date, description, amount, debit, credit, reconciled, reconciled_at, reconciliation_id, matched_expense_id, matched_invoice_id, created_at, created_by, last_updated_at, last_updated_by`

const reconciliationColumns = `reconciliation_id, bank_account_id, start_date, end_date, opening_balance, closing_balance, status, reconciled_by, completed_at, created_at, created_by, last_updated_at, last_updated_by`

func scanBankAccount(row pgx.Row) (models.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.BankAccountID,
		&m.CompanyID,
		&m.Name,
		&m.Balance,
		&m.LastReconciled,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanBankTransaction(row pgx.Row) (models.BankTransaction, error) {
	var m models.BankTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.BankAccountID,
		&m.Date,
		&m.Description,
		&m.Amount,
		&m.Debit,
		&m.Credit,
		&m.Reconciled,
		&m.ReconciledAt,
		&m.ReconciliationID,
		&m.MatchedExpenseID,
		&m.MatchedInvoiceID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanReconciliation(row pgx.Row) (models.BankReconciliation, error) {
	var m models.BankReconciliation
	err := row.Scan(
		&m.ReconciliationID,
		&m.BankAccountID,
		&m.StartDate,
		&m.EndDate,
		&m.OpeningBalance,
		&m.ClosingBalance,
		&m.Status,
		&m.ReconciledBy,
		&m.CompletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindBankAccountByID retrieves a bank account by its ID.
func (r *PgxReconciliationRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1;`
	m, err := scanBankAccount(r.pool.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank account %s: %w", bankAccountID, err)
	}
	acc := mapping.ToDomainBankAccount(m)
	return &acc, nil
}

// ListBankAccounts retrieves all bank accounts for a company.
func (r *PgxReconciliationRepository) ListBankAccounts(ctx context.Context, companyID string) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE company_id = $1 ORDER BY name;`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts for company %s: %w", companyID, err)
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		m, scanErr := scanBankAccount(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan bank account row: %w", scanErr)
		}
		accounts = append(accounts, mapping.ToDomainBankAccount(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating bank account rows: %w", rows.Err())
	}
	return accounts, nil
}

// SaveBankAccount inserts a new bank account.
func (r *PgxReconciliationRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	m := mapping.ToModelBankAccount(account)
	query := `
		INSERT INTO bank_accounts (` + bankAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		m.BankAccountID, m.CompanyID, m.Name, m.Balance, m.LastReconciled,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: bank account %s already exists", apperrors.ErrDuplicate, m.BankAccountID)
		}
		return fmt.Errorf("failed to save bank account %s: %w", m.BankAccountID, err)
	}
	return nil
}

// UpdateBankAccountBalance sets the current balance of a bank account.
func (r *PgxReconciliationRepository) UpdateBankAccountBalance(ctx context.Context, bankAccountID string, balance decimal.Decimal, updatedByUserID string, updatedAt time.Time) error {
	query := `
		UPDATE bank_accounts
		SET balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE bank_account_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, bankAccountID, balance, updatedAt, updatedByUserID)
	if err != nil {
		return fmt.Errorf("failed to update balance for bank account %s: %w", bankAccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// TouchLastReconciled records when the account was last reconciled.
func (r *PgxReconciliationRepository) TouchLastReconciled(ctx context.Context, bankAccountID string, at time.Time) error {
	query := `UPDATE bank_accounts SET last_reconciled = $2, last_updated_at = $2 WHERE bank_account_id = $1;`
	cmdTag, err := r.pool.Exec(ctx, query, bankAccountID, at)
	if err != nil {
		return fmt.Errorf("failed to stamp last reconciled on bank account %s: %w", bankAccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindBankTransactionByID retrieves a bank transaction by its ID.
func (r *PgxReconciliationRepository) FindBankTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTransactionColumns + ` FROM bank_transactions WHERE transaction_id = $1;`
	m, err := scanBankTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank transaction %s: %w", transactionID, err)
	}
	txn := mapping.ToDomainBankTransaction(m)
	return &txn, nil
}

func (r *PgxReconciliationRepository) queryBankTransactions(ctx context.Context, query string, args ...any) ([]domain.BankTransaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank transactions: %w", err)
	}
	defer rows.Close()

	txns := []models.BankTransaction{}
	for rows.Next() {
		m, scanErr := scanBankTransaction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan bank transaction row: %w", scanErr)
		}
		txns = append(txns, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating bank transaction rows: %w", rows.Err())
	}
	return mapping.ToDomainBankTransactionSlice(txns), nil
}

// ListUnreconciledTransactions retrieves unreconciled transactions within the
// statement window. Ordering is stable so repeated matching runs walk the
// candidates in the same sequence.
func (r *PgxReconciliationRepository) ListUnreconciledTransactions(ctx context.Context, bankAccountID string, from time.Time, to time.Time) ([]domain.BankTransaction, error) {
	query := `
		SELECT ` + bankTransactionColumns + `
		FROM bank_transactions
		WHERE bank_account_id = $1 AND reconciled = FALSE AND date >= $2 AND date <= $3
		ORDER BY date, transaction_id;
	`
	return r.queryBankTransactions(ctx, query, bankAccountID, from, to)
}

// ListTransactionsBySession retrieves all transactions reconciled under a session.
func (r *PgxReconciliationRepository) ListTransactionsBySession(ctx context.Context, sessionID string) ([]domain.BankTransaction, error) {
	query := `
		SELECT ` + bankTransactionColumns + `
		FROM bank_transactions
		WHERE reconciliation_id = $1
		ORDER BY date, transaction_id;
	`
	return r.queryBankTransactions(ctx, query, sessionID)
}

// SaveBankTransactions persists a batch of imported bank transactions.
func (r *PgxReconciliationRepository) SaveBankTransactions(ctx context.Context, transactions []domain.BankTransaction) error {
	if len(transactions) == 0 {
		return nil
	}

	query := `
		INSERT INTO bank_transactions (` + bankTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	batch := &pgx.Batch{}
	for _, txn := range transactions {
		m := mapping.ToModelBankTransaction(txn)
		batch.Queue(query,
			m.TransactionID, m.BankAccountID, m.Date, m.Description,
			m.Amount, m.Debit, m.Credit,
			m.Reconciled, m.ReconciledAt, m.ReconciliationID,
			m.MatchedExpenseID, m.MatchedInvoiceID,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			if isUniqueViolation(err) {
				batchErr = fmt.Errorf("%w: bank transaction %s already imported", apperrors.ErrDuplicate, transactions[i].TransactionID)
			} else {
				batchErr = fmt.Errorf("failed to insert bank transaction %s: %w", transactions[i].TransactionID, err)
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close bank transaction insert batch: %w", err)
	}
	return batchErr
}

// MatchTransaction marks a transaction reconciled and records its match.
// The reconciled = FALSE guard makes the claim atomic; a row already taken
// by a concurrent run simply reports ok = false.
func (r *PgxReconciliationRepository) MatchTransaction(ctx context.Context, transactionID string, sessionID string, matchedExpenseID *string, matchedInvoiceID *string, reconciledAt time.Time) (bool, error) {
	query := `
		UPDATE bank_transactions
		SET reconciled = TRUE, reconciled_at = $2, reconciliation_id = $3,
		    matched_expense_id = $4, matched_invoice_id = $5, last_updated_at = $2
		WHERE transaction_id = $1 AND reconciled = FALSE;
	`
	cmdTag, err := r.pool.Exec(ctx, query, transactionID, reconciledAt, sessionID, matchedExpenseID, matchedInvoiceID)
	if err != nil {
		return false, fmt.Errorf("failed to match bank transaction %s: %w", transactionID, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

// UnmatchTransaction clears the reconciled flag and match linkage of a transaction.
func (r *PgxReconciliationRepository) UnmatchTransaction(ctx context.Context, transactionID string) error {
	query := `
		UPDATE bank_transactions
		SET reconciled = FALSE, reconciled_at = NULL, reconciliation_id = NULL,
		    matched_expense_id = NULL, matched_invoice_id = NULL, last_updated_at = NOW()
		WHERE transaction_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, transactionID)
	if err != nil {
		return fmt.Errorf("failed to unmatch bank transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindSessionByID retrieves a reconciliation session by its ID.
func (r *PgxReconciliationRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.BankReconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM bank_reconciliations WHERE reconciliation_id = $1;`
	m, err := scanReconciliation(r.pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reconciliation session %s: %w", sessionID, err)
	}
	session := mapping.ToDomainBankReconciliation(m)
	return &session, nil
}

// FindLatestCompletedSession retrieves the most recently completed session, nil when none exists.
func (r *PgxReconciliationRepository) FindLatestCompletedSession(ctx context.Context, bankAccountID string) (*domain.BankReconciliation, error) {
	query := `
		SELECT ` + reconciliationColumns + `
		FROM bank_reconciliations
		WHERE bank_account_id = $1 AND status = 'COMPLETED'
		ORDER BY completed_at DESC
		LIMIT 1;
	`
	m, err := scanReconciliation(r.pool.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest completed session for bank account %s: %w", bankAccountID, err)
	}
	session := mapping.ToDomainBankReconciliation(m)
	return &session, nil
}

// ListSessions retrieves reconciliation sessions for a bank account, newest first.
func (r *PgxReconciliationRepository) ListSessions(ctx context.Context, bankAccountID string, limit int) ([]domain.BankReconciliation, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + reconciliationColumns + `
		FROM bank_reconciliations
		WHERE bank_account_id = $1
		ORDER BY start_date DESC, created_at DESC
		LIMIT $2;
	`
	rows, err := r.pool.Query(ctx, query, bankAccountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions for bank account %s: %w", bankAccountID, err)
	}
	defer rows.Close()

	sessions := []domain.BankReconciliation{}
	for rows.Next() {
		m, scanErr := scanReconciliation(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan reconciliation session row: %w", scanErr)
		}
		sessions = append(sessions, mapping.ToDomainBankReconciliation(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating reconciliation session rows: %w", rows.Err())
	}
	return sessions, nil
}

// SaveSession persists a new reconciliation session.
func (r *PgxReconciliationRepository) SaveSession(ctx context.Context, session domain.BankReconciliation) error {
	m := mapping.ToModelBankReconciliation(session)
	query := `
		INSERT INTO bank_reconciliations (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ReconciliationID, m.BankAccountID, m.StartDate, m.EndDate,
		m.OpeningBalance, m.ClosingBalance, m.Status, m.ReconciledBy, m.CompletedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: reconciliation session %s already exists", apperrors.ErrDuplicate, m.ReconciliationID)
		}
		return fmt.Errorf("failed to save reconciliation session %s: %w", m.ReconciliationID, err)
	}
	return nil
}

// CompleteSession marks a session completed. The status guard keeps a
// finished session from being completed twice.
func (r *PgxReconciliationRepository) CompleteSession(ctx context.Context, sessionID string, closingBalance decimal.Decimal, reconciledBy string, completedAt time.Time) error {
	query := `
		UPDATE bank_reconciliations
		SET status = 'COMPLETED', closing_balance = $2, reconciled_by = $3,
		    completed_at = $4, last_updated_at = $4, last_updated_by = $3
		WHERE reconciliation_id = $1 AND status = 'IN_PROGRESS';
	`
	cmdTag, err := r.pool.Exec(ctx, query, sessionID, closingBalance, reconciledBy, completedAt)
	if err != nil {
		return fmt.Errorf("failed to complete reconciliation session %s: %w", sessionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		_, findErr := r.FindSessionByID(ctx, sessionID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check session status after completion attempt for %s: %w", sessionID, findErr)
		}
		return apperrors.ErrConflict
	}
	return nil
}
