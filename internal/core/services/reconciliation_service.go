package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/ledgerkeep/ledgerkeep/internal/platform/logging"
	"github.com/shopspring/decimal"
)

// MatchDefaults carries the configured auto-match tolerances.
type MatchDefaults struct {
	ToleranceDays   int
	AmountTolerance decimal.Decimal
}

// DefaultMatchTolerances returns the stock tolerances used when config
// provides none: seven calendar days and one cent.
func DefaultMatchTolerances() MatchDefaults {
	return MatchDefaults{
		ToleranceDays:   7,
		AmountTolerance: decimal.RequireFromString("0.01"),
	}
}

// reconciliationService implements bank reconciliation sessions and matching.
type reconciliationService struct {
	BaseService
	reconRepo   portsrepo.ReconciliationRepositoryFacade
	recordsRepo portsrepo.RecordsRepositoryFacade
	defaults    MatchDefaults
}

// NewReconciliationService creates a new ReconciliationService.
func NewReconciliationService(reconRepo portsrepo.ReconciliationRepositoryFacade, recordsRepo portsrepo.RecordsRepositoryFacade, defaults MatchDefaults) portssvc.ReconciliationSvcFacade {
	if defaults.ToleranceDays <= 0 {
		defaults.ToleranceDays = DefaultMatchTolerances().ToleranceDays
	}
	if defaults.AmountTolerance.LessThanOrEqual(decimal.Zero) {
		defaults.AmountTolerance = DefaultMatchTolerances().AmountTolerance
	}
	return &reconciliationService{
		reconRepo:   reconRepo,
		recordsRepo: recordsRepo,
		defaults:    defaults,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// StartSession opens a new IN_PROGRESS session over a statement window. The
// opening balance carries over from the last completed session, falling back
// to the bank account's current balance for a first reconciliation.
func (s *reconciliationService) StartSession(ctx context.Context, req dto.StartSessionRequest, userID string) (*domain.BankReconciliation, error) {
	logger := logging.FromCtx(ctx)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	account, err := s.reconRepo.FindBankAccountByID(ctx, req.BankAccountID)
	if err != nil {
		logger.Error("Failed to fetch bank account for session start", slog.String("error", err.Error()), slog.String("bank_account_id", req.BankAccountID))
		return nil, fmt.Errorf("failed to fetch bank account %s: %w", req.BankAccountID, err)
	}

	openingBalance := account.Balance
	prior, err := s.reconRepo.FindLatestCompletedSession(ctx, req.BankAccountID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to look up prior session", slog.String("error", err.Error()), slog.String("bank_account_id", req.BankAccountID))
		return nil, fmt.Errorf("failed to look up prior session: %w", err)
	}
	if prior != nil {
		openingBalance = prior.ClosingBalance
	}

	now := time.Now().UTC()
	session := domain.BankReconciliation{
		ReconciliationID: uuid.NewString(),
		BankAccountID:    req.BankAccountID,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		OpeningBalance:   openingBalance,
		ClosingBalance:   req.ClosingBalance,
		Status:           domain.ReconciliationInProgress,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.reconRepo.SaveSession(ctx, session); err != nil {
		logger.Error("Failed to save reconciliation session", slog.String("error", err.Error()), slog.String("bank_account_id", req.BankAccountID))
		return nil, fmt.Errorf("failed to save reconciliation session: %w", err)
	}

	logger.Info("Reconciliation session started", slog.String("reconciliation_id", session.ReconciliationID), slog.String("bank_account_id", req.BankAccountID))
	return &session, nil
}

// withinDays reports whether two dates are at most tolerance days apart.
func withinDays(a, b time.Time, tolerance int) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= time.Duration(tolerance)*24*time.Hour
}

// amountsClose reports whether two amounts differ by at most the tolerance.
func amountsClose(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// AutoMatch pairs unreconciled bank transactions with approved expenses and
// paid invoices. Candidates are iterated in repository order and the first
// acceptable one wins; there is no scoring, so results depend on that order.
// Each successful pair is one atomic repository update, and a claimed
// candidate leaves the pool for the rest of the run.
func (s *reconciliationService) AutoMatch(ctx context.Context, reconciliationID string, opts dto.AutoMatchOptions) (int, error) {
	logger := logging.FromCtx(ctx)

	session, err := s.reconRepo.FindSessionByID(ctx, reconciliationID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch session %s: %w", reconciliationID, err)
	}
	if session.Status != domain.ReconciliationInProgress {
		return 0, fmt.Errorf("%w: session %s is %s", ErrSessionState, reconciliationID, session.Status)
	}

	account, err := s.reconRepo.FindBankAccountByID(ctx, session.BankAccountID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch bank account %s: %w", session.BankAccountID, err)
	}

	toleranceDays := s.defaults.ToleranceDays
	if opts.ToleranceDays > 0 {
		toleranceDays = opts.ToleranceDays
	}
	amountTolerance := s.defaults.AmountTolerance
	if opts.AmountTolerance.GreaterThan(decimal.Zero) {
		amountTolerance = opts.AmountTolerance
	}

	transactions, err := s.reconRepo.ListUnreconciledTransactions(ctx, session.BankAccountID, session.StartDate, session.EndDate)
	if err != nil {
		return 0, fmt.Errorf("failed to list unreconciled transactions: %w", err)
	}

	expenses, err := s.recordsRepo.ListApprovedExpenses(ctx, account.CompanyID, true)
	if err != nil {
		return 0, fmt.Errorf("failed to list candidate expenses: %w", err)
	}
	invoices, err := s.recordsRepo.ListPaidInvoices(ctx, account.CompanyID, true)
	if err != nil {
		return 0, fmt.Errorf("failed to list candidate invoices: %w", err)
	}

	usedExpenses := make(map[string]struct{})
	usedInvoices := make(map[string]struct{})
	matched := 0
	now := time.Now().UTC()

	for _, txn := range transactions {
		if txn.Debit.GreaterThan(decimal.Zero) {
			// Money out: pair with an approved expense.
			for _, exp := range expenses {
				if _, used := usedExpenses[exp.ExpenseID]; used {
					continue
				}
				if !amountsClose(exp.Amount, txn.Amount.Abs(), amountTolerance) {
					continue
				}
				if !withinDays(exp.Date, txn.Date, toleranceDays) {
					continue
				}
				expenseID := exp.ExpenseID
				ok, err := s.reconRepo.MatchTransaction(ctx, txn.TransactionID, reconciliationID, &expenseID, nil, now)
				if err != nil {
					return matched, fmt.Errorf("failed to match transaction %s: %w", txn.TransactionID, err)
				}
				if ok {
					usedExpenses[exp.ExpenseID] = struct{}{}
					matched++
				}
				break
			}
		} else if txn.Credit.GreaterThan(decimal.Zero) {
			// Money in: pair with a paid invoice on total and paid date.
			for _, inv := range invoices {
				if _, used := usedInvoices[inv.InvoiceID]; used {
					continue
				}
				if inv.PaidDate == nil {
					continue
				}
				if !amountsClose(inv.Total, txn.Amount.Abs(), amountTolerance) {
					continue
				}
				if !withinDays(*inv.PaidDate, txn.Date, toleranceDays) {
					continue
				}
				invoiceID := inv.InvoiceID
				ok, err := s.reconRepo.MatchTransaction(ctx, txn.TransactionID, reconciliationID, nil, &invoiceID, now)
				if err != nil {
					return matched, fmt.Errorf("failed to match transaction %s: %w", txn.TransactionID, err)
				}
				if ok {
					usedInvoices[inv.InvoiceID] = struct{}{}
					matched++
				}
				break
			}
		}
	}

	logger.Info("Auto-match run finished", slog.String("reconciliation_id", reconciliationID), slog.Int("matched", matched), slog.Int("candidates", len(transactions)))
	return matched, nil
}

// ManualMatch marks the given transactions reconciled without linking a record.
func (s *reconciliationService) ManualMatch(ctx context.Context, reconciliationID string, transactionIDs []string) error {
	logger := logging.FromCtx(ctx)

	session, err := s.reconRepo.FindSessionByID(ctx, reconciliationID)
	if err != nil {
		return fmt.Errorf("failed to fetch session %s: %w", reconciliationID, err)
	}
	if session.Status != domain.ReconciliationInProgress {
		return fmt.Errorf("%w: session %s is %s", ErrSessionState, reconciliationID, session.Status)
	}

	now := time.Now().UTC()
	for _, id := range transactionIDs {
		ok, err := s.reconRepo.MatchTransaction(ctx, id, reconciliationID, nil, nil, now)
		if err != nil {
			return fmt.Errorf("failed to match transaction %s: %w", id, err)
		}
		if !ok {
			logger.Debug("Transaction already reconciled, skipping", slog.String("transaction_id", id))
		}
	}
	return nil
}

// ManualUnmatch clears the reconciled flag and any match linkage.
func (s *reconciliationService) ManualUnmatch(ctx context.Context, transactionIDs []string) error {
	for _, id := range transactionIDs {
		if err := s.reconRepo.UnmatchTransaction(ctx, id); err != nil {
			return fmt.Errorf("failed to unmatch transaction %s: %w", id, err)
		}
	}
	return nil
}

// CompleteSession transitions IN_PROGRESS to COMPLETED and stamps the closer.
func (s *reconciliationService) CompleteSession(ctx context.Context, reconciliationID string, closingBalance decimal.Decimal, userID string) (*domain.BankReconciliation, error) {
	logger := logging.FromCtx(ctx)

	session, err := s.reconRepo.FindSessionByID(ctx, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session %s: %w", reconciliationID, err)
	}
	if session.Status != domain.ReconciliationInProgress {
		return nil, fmt.Errorf("%w: session %s is %s", ErrSessionState, reconciliationID, session.Status)
	}

	now := time.Now().UTC()
	if err := s.reconRepo.CompleteSession(ctx, reconciliationID, closingBalance, userID, now); err != nil {
		logger.Error("Failed to complete session", slog.String("error", err.Error()), slog.String("reconciliation_id", reconciliationID))
		return nil, fmt.Errorf("failed to complete session: %w", err)
	}
	if err := s.reconRepo.TouchLastReconciled(ctx, session.BankAccountID, now); err != nil {
		// The session is already completed; a stale lastReconciled stamp is
		// tolerable, so log and continue.
		logger.Warn("Failed to stamp lastReconciled on bank account", slog.String("error", err.Error()), slog.String("bank_account_id", session.BankAccountID))
	}

	session.Status = domain.ReconciliationCompleted
	session.ClosingBalance = closingBalance
	session.ReconciledBy = &userID
	session.CompletedAt = &now
	session.LastUpdatedAt = now
	session.LastUpdatedBy = userID

	logger.Info("Reconciliation session completed", slog.String("reconciliation_id", reconciliationID))
	return session, nil
}

// GetSession retrieves a reconciliation session by ID.
func (s *reconciliationService) GetSession(ctx context.Context, reconciliationID string) (*domain.BankReconciliation, error) {
	session, err := s.reconRepo.FindSessionByID(ctx, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session %s: %w", reconciliationID, err)
	}
	return session, nil
}

// SessionSummary computes the balance summary for a session. The cleared
// balance is the opening balance plus every reconciled movement in the
// window; the difference against the reported closing balance is data for
// human review, never an error.
func (s *reconciliationService) SessionSummary(ctx context.Context, reconciliationID string) (*domain.ReconciliationSummary, error) {
	session, err := s.reconRepo.FindSessionByID(ctx, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session %s: %w", reconciliationID, err)
	}

	reconciled, err := s.reconRepo.ListTransactionsBySession(ctx, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list session transactions: %w", err)
	}
	unreconciled, err := s.reconRepo.ListUnreconciledTransactions(ctx, session.BankAccountID, session.StartDate, session.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list unreconciled transactions: %w", err)
	}

	cleared := session.OpeningBalance
	for _, txn := range reconciled {
		cleared = cleared.Add(txn.Amount)
	}

	return &domain.ReconciliationSummary{
		ReconciliationID:  reconciliationID,
		OpeningBalance:    session.OpeningBalance,
		ClosingBalance:    session.ClosingBalance,
		ClearedBalance:    cleared,
		Difference:        session.ClosingBalance.Sub(cleared),
		ReconciledCount:   len(reconciled),
		UnreconciledCount: len(unreconciled),
	}, nil
}

// ImportBankTransactions stores a batch of bank statement rows. Amounts are
// signed in the input; the unsigned debit/credit split is derived here.
func (s *reconciliationService) ImportBankTransactions(ctx context.Context, rows []dto.ImportBankTransactionRequest, userID string) (int, error) {
	logger := logging.FromCtx(ctx)

	if len(rows) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	transactions := make([]domain.BankTransaction, len(rows))
	for i, row := range rows {
		debit := decimal.Zero
		credit := decimal.Zero
		if row.Amount.IsNegative() {
			debit = row.Amount.Abs()
		} else {
			credit = row.Amount
		}
		transactions[i] = domain.BankTransaction{
			TransactionID: uuid.NewString(),
			BankAccountID: row.BankAccountID,
			Date:          row.Date,
			Description:   row.Description,
			Amount:        row.Amount,
			Debit:         debit,
			Credit:        credit,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := s.reconRepo.SaveBankTransactions(ctx, transactions); err != nil {
		logger.Error("Failed to import bank transactions", slog.String("error", err.Error()), slog.Int("count", len(rows)))
		return 0, fmt.Errorf("failed to import bank transactions: %w", err)
	}

	logger.Info("Bank transactions imported", slog.Int("count", len(transactions)))
	return len(transactions), nil
}
