package repositories

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
)

// ExpenseReader defines read operations for expense records
type ExpenseReader interface {
	// FindExpenseByID retrieves an expense by its unique identifier.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListApprovedExpenses retrieves approved expenses for a company that have
	// not yet been matched during reconciliation, ordered by date then ID.
	ListApprovedExpenses(ctx context.Context, companyID string, unmatchedOnly bool) ([]domain.Expense, error)
}

// InvoiceReader defines read operations for invoice records
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListPaidInvoices retrieves paid invoices for a company that have not yet
	// been matched during reconciliation, ordered by paid date then ID.
	ListPaidInvoices(ctx context.Context, companyID string, unmatchedOnly bool) ([]domain.Invoice, error)
}

// LegacyTransactionReader defines read operations for transactions recorded
// outside the journal.
type LegacyTransactionReader interface {
	// ListLegacyTransactions retrieves legacy transactions for a company within
	// a date range.
	ListLegacyTransactions(ctx context.Context, companyID string, from time.Time, to time.Time) ([]domain.LegacyTransaction, error)
}

// RecordsRepositoryFacade combines the business-record reader interfaces
type RecordsRepositoryFacade interface {
	ExpenseReader
	InvoiceReader
	LegacyTransactionReader
}
