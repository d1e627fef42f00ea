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
)

type PgxRecordsRepository struct {
	pool *pgxpool.Pool
}

// newPgxRecordsRepository creates a new read-side repository for business records.
func newPgxRecordsRepository(pool *pgxpool.Pool) portsrepo.RecordsRepositoryFacade {
	return &PgxRecordsRepository{pool: pool}
}

// Ensure PgxRecordsRepository implements portsrepo.RecordsRepositoryFacade
var _ portsrepo.RecordsRepositoryFacade = (*PgxRecordsRepository)(nil)

const expenseColumns = `expense_id, company_id, category, description, amount, date, status, created_at, created_by, last_updated_at, last_updated_by`

const invoiceColumns = `invoice_id, company_id, invoice_number, customer_name, total, issue_date, paid_date, status, created_at, created_by, last_updated_at, last_updated_by`

const legacyColumns = `transaction_id, company_id, category, description, amount, date, created_at, created_by, last_updated_at, last_updated_by`

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.CompanyID,
		&m.Category,
		&m.Description,
		&m.Amount,
		&m.Date,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.CompanyID,
		&m.InvoiceNumber,
		&m.CustomerName,
		&m.Total,
		&m.IssueDate,
		&m.PaidDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLegacyTransaction(row pgx.Row) (models.LegacyTransaction, error) {
	var m models.LegacyTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.CompanyID,
		&m.Category,
		&m.Description,
		&m.Amount,
		&m.Date,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindExpenseByID retrieves an expense by its ID.
func (r *PgxRecordsRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE expense_id = $1;`
	m, err := scanExpense(r.pool.QueryRow(ctx, query, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	exp := mapping.ToDomainExpense(m)
	return &exp, nil
}

// ListApprovedExpenses retrieves approved expenses for a company. When
// unmatchedOnly is set, expenses already claimed by a reconciled bank
// transaction are excluded.
func (r *PgxRecordsRepository) ListApprovedExpenses(ctx context.Context, companyID string, unmatchedOnly bool) ([]domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		WHERE e.company_id = $1 AND e.status = 'APPROVED'
	`
	if unmatchedOnly {
		query += `
		AND NOT EXISTS (
			SELECT 1 FROM bank_transactions bt
			WHERE bt.matched_expense_id = e.expense_id AND bt.reconciled = TRUE
		)
	`
	}
	query += ` ORDER BY e.date, e.expense_id;`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query approved expenses for company %s: %w", companyID, err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		m, scanErr := scanExpense(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", scanErr)
		}
		expenses = append(expenses, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", rows.Err())
	}
	return mapping.ToDomainExpenseSlice(expenses), nil
}

// FindInvoiceByID retrieves an invoice by its ID.
func (r *PgxRecordsRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1;`
	m, err := scanInvoice(r.pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

// ListPaidInvoices retrieves paid invoices for a company, optionally excluding
// invoices already matched to a reconciled bank transaction.
func (r *PgxRecordsRepository) ListPaidInvoices(ctx context.Context, companyID string, unmatchedOnly bool) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		WHERE i.company_id = $1 AND i.status = 'PAID'
	`
	if unmatchedOnly {
		query += `
		AND NOT EXISTS (
			SELECT 1 FROM bank_transactions bt
			WHERE bt.matched_invoice_id = i.invoice_id AND bt.reconciled = TRUE
		)
	`
	}
	query += ` ORDER BY i.paid_date, i.invoice_id;`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query paid invoices for company %s: %w", companyID, err)
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		m, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan invoice row: %w", scanErr)
		}
		invoices = append(invoices, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", rows.Err())
	}
	return mapping.ToDomainInvoiceSlice(invoices), nil
}

// ListLegacyTransactions retrieves legacy income records within a date range.
func (r *PgxRecordsRepository) ListLegacyTransactions(ctx context.Context, companyID string, from time.Time, to time.Time) ([]domain.LegacyTransaction, error) {
	query := `
		SELECT ` + legacyColumns + `
		FROM legacy_transactions
		WHERE company_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, transaction_id;
	`
	rows, err := r.pool.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy transactions for company %s: %w", companyID, err)
	}
	defer rows.Close()

	txns := []domain.LegacyTransaction{}
	for rows.Next() {
		m, scanErr := scanLegacyTransaction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan legacy transaction row: %w", scanErr)
		}
		txns = append(txns, mapping.ToDomainLegacyTransaction(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating legacy transaction rows: %w", rows.Err())
	}
	return txns, nil
}
