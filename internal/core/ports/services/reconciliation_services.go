package services

import (
	"context"

	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/shopspring/decimal"
)

// ReconciliationReaderSvc defines read operations for reconciliation sessions
type ReconciliationReaderSvc interface {
	// GetSession retrieves a reconciliation session by ID.
	GetSession(ctx context.Context, reconciliationID string) (*domain.BankReconciliation, error)

	// SessionSummary computes the balance summary for a session. The
	// difference is informational and never fails the call.
	SessionSummary(ctx context.Context, reconciliationID string) (*domain.ReconciliationSummary, error)
}

// ReconciliationWriterSvc defines write operations for reconciliation sessions
type ReconciliationWriterSvc interface {
	// StartSession opens a new IN_PROGRESS session over a statement window.
	StartSession(ctx context.Context, req dto.StartSessionRequest, userID string) (*domain.BankReconciliation, error)

	// AutoMatch pairs unreconciled bank transactions with approved expenses
	// and paid invoices within the configured tolerances, first match wins.
	AutoMatch(ctx context.Context, reconciliationID string, opts dto.AutoMatchOptions) (int, error)

	// ManualMatch marks the given transactions reconciled without linking a record.
	ManualMatch(ctx context.Context, reconciliationID string, transactionIDs []string) error

	// ManualUnmatch clears the reconciled flag and any match linkage.
	ManualUnmatch(ctx context.Context, transactionIDs []string) error

	// CompleteSession transitions IN_PROGRESS to COMPLETED and stamps the closer.
	CompleteSession(ctx context.Context, reconciliationID string, closingBalance decimal.Decimal, userID string) (*domain.BankReconciliation, error)

	// ImportBankTransactions stores a batch of bank statement rows.
	ImportBankTransactions(ctx context.Context, rows []dto.ImportBankTransactionRequest, userID string) (int, error)
}

// ReconciliationSvcFacade combines all reconciliation-related service interfaces
type ReconciliationSvcFacade interface {
	ReconciliationReaderSvc
	ReconciliationWriterSvc
}
