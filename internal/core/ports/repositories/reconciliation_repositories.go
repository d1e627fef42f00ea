package repositories

import (
	"context"
	"time"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankAccountReader defines read operations for bank account data
type BankAccountReader interface {
	// FindBankAccountByID retrieves a bank account by its unique identifier.
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves all active bank accounts for a company.
	ListBankAccounts(ctx context.Context, companyID string) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank account data
type BankAccountWriter interface {
	// SaveBankAccount persists a new bank account.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// UpdateBankAccountBalance sets the current balance of a bank account.
	UpdateBankAccountBalance(ctx context.Context, bankAccountID string, balance decimal.Decimal, updatedByUserID string, updatedAt time.Time) error

	// TouchLastReconciled records when the account was last reconciled.
	TouchLastReconciled(ctx context.Context, bankAccountID string, at time.Time) error
}

// BankTransactionReader defines read operations for imported bank transactions
type BankTransactionReader interface {
	// FindBankTransactionByID retrieves a bank transaction by its unique identifier.
	FindBankTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error)

	// ListUnreconciledTransactions retrieves unreconciled transactions for a
	// bank account within the statement window, ordered by date then ID.
	ListUnreconciledTransactions(ctx context.Context, bankAccountID string, from time.Time, to time.Time) ([]domain.BankTransaction, error)

	// ListTransactionsBySession retrieves all transactions reconciled under a session.
	ListTransactionsBySession(ctx context.Context, sessionID string) ([]domain.BankTransaction, error)
}

// BankTransactionWriter defines write operations for imported bank transactions
type BankTransactionWriter interface {
	// SaveBankTransactions persists a batch of imported bank transactions.
	SaveBankTransactions(ctx context.Context, transactions []domain.BankTransaction) error

	// MatchTransaction marks a transaction reconciled and records the matched
	// business record. The update only succeeds if the transaction is still
	// unreconciled; ok reports whether the row was claimed.
	MatchTransaction(ctx context.Context, transactionID string, sessionID string, matchedExpenseID *string, matchedInvoiceID *string, reconciledAt time.Time) (ok bool, err error)

	// UnmatchTransaction clears the reconciled flag and match linkage of a transaction.
	UnmatchTransaction(ctx context.Context, transactionID string) error
}

// ReconciliationSessionReader defines read operations for reconciliation sessions
type ReconciliationSessionReader interface {
	// FindSessionByID retrieves a reconciliation session by its unique identifier.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.BankReconciliation, error)

	// FindLatestCompletedSession retrieves the most recently completed session
	// for a bank account, or nil when none exists.
	FindLatestCompletedSession(ctx context.Context, bankAccountID string) (*domain.BankReconciliation, error)

	// ListSessions retrieves reconciliation sessions for a bank account, newest first.
	ListSessions(ctx context.Context, bankAccountID string, limit int) ([]domain.BankReconciliation, error)
}

// ReconciliationSessionWriter defines write operations for reconciliation sessions
type ReconciliationSessionWriter interface {
	// SaveSession persists a new reconciliation session.
	SaveSession(ctx context.Context, session domain.BankReconciliation) error

	// CompleteSession marks a session completed, stores the final closing
	// balance, and records who closed it and when.
	CompleteSession(ctx context.Context, sessionID string, closingBalance decimal.Decimal, reconciledBy string, completedAt time.Time) error
}

// ReconciliationRepositoryFacade combines all reconciliation-related repository interfaces
type ReconciliationRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
	BankTransactionReader
	BankTransactionWriter
	ReconciliationSessionReader
	ReconciliationSessionWriter
}
