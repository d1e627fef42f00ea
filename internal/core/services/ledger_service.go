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
	"github.com/ledgerkeep/ledgerkeep/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

const defaultCurrencyCode = "USD"

// ledgerService provides core journal entry operations.
type ledgerService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	recordsRepo portsrepo.RecordsRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, recordsRepo portsrepo.RecordsRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		recordsRepo: recordsRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// buildLines converts request lines to domain lines, validating that each
// line moves money in exactly one direction.
func buildLines(reqLines []dto.CreateEntryLineRequest, entryID string, creatorUserID string, now time.Time) ([]domain.JournalEntryLine, error) {
	lines := make([]domain.JournalEntryLine, len(reqLines))
	for i, lr := range reqLines {
		if lr.Debit.IsNegative() || lr.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if lr.Debit.IsZero() == lr.Credit.IsZero() {
			return nil, fmt.Errorf("%w: line %d must have exactly one of debit or credit set", apperrors.ErrValidation, i+1)
		}
		lines[i] = domain.JournalEntryLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			AccountID:   lr.AccountID,
			Debit:       lr.Debit,
			Credit:      lr.Credit,
			Description: lr.Description,
			LineNumber:  i + 1,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}
	return lines, nil
}

// PostEntry validates and persists a balanced journal entry with its lines.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) PostEntry(ctx context.Context, companyID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := logging.FromCtx(ctx)

	if len(req.Lines) < 2 {
		return nil, ErrEntryMinLines
	}
	if req.Description == "" {
		return nil, ErrDescriptionMissing
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines, err := buildLines(req.Lines, entryID, creatorUserID, now)
	if err != nil {
		return nil, err
	}

	debits, credits := accounting.EntryTotals(lines)
	if debits.Sub(credits).Abs().GreaterThan(accounting.BalanceTolerance) {
		return nil, &UnbalancedEntryError{Debits: debits, Credits: credits}
	}

	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		logger.Error("Failed to fetch accounts for entry posting", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	accountTypes := make(map[string]domain.AccountType, len(accountsMap))
	for _, id := range uniqueStrings(accountIDs) {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: account ID %s", apperrors.ErrNotFound, id)
		}
		if acc.CompanyID != nil && *acc.CompanyID != companyID {
			logger.Warn("Account used in entry belongs to a different company", slog.String("account_id", id), slog.String("company_id", companyID))
			return nil, fmt.Errorf("%w: account %s does not belong to company %s", apperrors.ErrNotFound, id, companyID)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		accountTypes[id] = acc.AccountType
	}

	balanceChanges, err := accounting.BalanceChanges(lines, accountTypes)
	if err != nil {
		logger.Error("Failed to compute balance changes", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("internal error calculating balance changes: %w", err)
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = defaultCurrencyCode
	}

	entry := domain.JournalEntry{
		EntryID:      entryID,
		EntryYear:    req.EntryDate.Year(),
		CompanyID:    companyID,
		EntryDate:    req.EntryDate,
		Description:  req.Description,
		Reference:    req.Reference,
		CurrencyCode: currency,
		Status:       domain.Posted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	// The repository assigns SequenceNumber and EntryNumber inside the save
	// transaction so concurrent postings within a company-year serialize.
	saved, err := s.journalRepo.SaveEntry(ctx, entry, lines, balanceChanges)
	if err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry posted", slog.String("entry_id", saved.EntryID), slog.String("entry_number", saved.EntryNumber))
	saved.Lines = lines
	return saved, nil
}

// resolveAccountByCode resolves a chart code for the company, translating a
// repository miss into the typed AccountNotFoundError the posting contract
// promises.
func (s *ledgerService) resolveAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error) {
	acc, err := s.accountRepo.FindAccountByCode(ctx, companyID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &AccountNotFoundError{Code: code}
		}
		return nil, fmt.Errorf("failed to resolve account code %s: %w", code, err)
	}
	return acc, nil
}

// PostCanonicalEvent posts the fixed-shape entry for a recurring business event.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) PostCanonicalEvent(ctx context.Context, companyID string, req dto.CanonicalEventRequest, creatorUserID string) (*domain.JournalEntry, error) {
	logger := logging.FromCtx(ctx)

	switch req.Kind {
	case dto.EventIncome:
		return s.postIncomeEvent(ctx, companyID, req, creatorUserID)
	case dto.EventExpense:
		return s.postExpenseEvent(ctx, companyID, req, creatorUserID)
	case dto.EventInvoiceIssued:
		return s.postInvoiceIssued(ctx, companyID, req.InvoiceID, creatorUserID)
	case dto.EventInvoicePayment:
		return s.postInvoicePayment(ctx, companyID, req.InvoiceID, creatorUserID)
	default:
		logger.Warn("Unknown canonical event kind", slog.String("kind", string(req.Kind)))
		return nil, fmt.Errorf("%w: unknown event kind %q", apperrors.ErrValidation, req.Kind)
	}
}

// postTwoLine posts the debit/credit pair every canonical event reduces to.
func (s *ledgerService) postTwoLine(ctx context.Context, companyID string, debitAccountID, creditAccountID string, amount decimal.Decimal, date time.Time, description string, reference *string, creatorUserID string) (*domain.JournalEntry, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: event amount must be positive", apperrors.ErrValidation)
	}
	req := dto.CreateEntryRequest{
		CompanyID:   companyID,
		EntryDate:   date,
		Description: description,
		Reference:   reference,
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: debitAccountID, Debit: amount},
			{AccountID: creditAccountID, Credit: amount},
		},
	}
	return s.PostEntry(ctx, companyID, req, creatorUserID)
}

func (s *ledgerService) postIncomeEvent(ctx context.Context, companyID string, req dto.CanonicalEventRequest, creatorUserID string) (*domain.JournalEntry, error) {
	cash, err := s.resolveAccountByCode(ctx, companyID, domain.CodeCash)
	if err != nil {
		return nil, err
	}
	revenue, err := s.resolveAccountByCode(ctx, companyID, IncomeAccountCodeFor(req.Category))
	if err != nil {
		return nil, err
	}
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Income: %s", req.Category)
	}
	return s.postTwoLine(ctx, companyID, cash.AccountID, revenue.AccountID, req.Amount, req.Date, description, req.SourceRecordID, creatorUserID)
}

func (s *ledgerService) postExpenseEvent(ctx context.Context, companyID string, req dto.CanonicalEventRequest, creatorUserID string) (*domain.JournalEntry, error) {
	expense, err := s.resolveAccountByCode(ctx, companyID, ExpenseAccountCodeFor(req.Category))
	if err != nil {
		return nil, err
	}
	cash, err := s.resolveAccountByCode(ctx, companyID, domain.CodeCash)
	if err != nil {
		return nil, err
	}
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Expense: %s", req.Category)
	}
	return s.postTwoLine(ctx, companyID, expense.AccountID, cash.AccountID, req.Amount, req.Date, description, req.SourceRecordID, creatorUserID)
}

func (s *ledgerService) postInvoiceIssued(ctx context.Context, companyID string, invoiceID string, creatorUserID string) (*domain.JournalEntry, error) {
	logger := logging.FromCtx(ctx)

	invoice, err := s.recordsRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoice %s: %w", invoiceID, err)
	}
	if invoice.Status == domain.InvoiceDraft {
		// Issuing a draft is a business-rule gate, not an accounting error.
		// No entry is created and the caller sees a nil entry.
		logger.Debug("Skipping entry for draft invoice", slog.String("invoice_id", invoiceID))
		return nil, nil
	}

	receivable, err := s.resolveAccountByCode(ctx, companyID, domain.CodeAccountsReceivable)
	if err != nil {
		return nil, err
	}
	revenue, err := s.resolveAccountByCode(ctx, companyID, domain.CodeSalesRevenue)
	if err != nil {
		return nil, err
	}
	description := fmt.Sprintf("Invoice %s issued to %s", invoice.InvoiceNumber, invoice.CustomerName)
	reference := invoice.InvoiceID
	return s.postTwoLine(ctx, companyID, receivable.AccountID, revenue.AccountID, invoice.Total, invoice.IssueDate, description, &reference, creatorUserID)
}

func (s *ledgerService) postInvoicePayment(ctx context.Context, companyID string, invoiceID string, creatorUserID string) (*domain.JournalEntry, error) {
	invoice, err := s.recordsRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoice %s: %w", invoiceID, err)
	}
	if invoice.Status != domain.InvoicePaid || invoice.PaidDate == nil {
		return nil, fmt.Errorf("%w: invoice %s is not paid", apperrors.ErrConflict, invoiceID)
	}

	bank, err := s.resolveAccountByCode(ctx, companyID, domain.CodeBank)
	if err != nil {
		return nil, err
	}
	receivable, err := s.resolveAccountByCode(ctx, companyID, domain.CodeAccountsReceivable)
	if err != nil {
		return nil, err
	}
	description := fmt.Sprintf("Payment received for invoice %s", invoice.InvoiceNumber)
	reference := invoice.InvoiceID
	return s.postTwoLine(ctx, companyID, bank.AccountID, receivable.AccountID, invoice.Total, *invoice.PaidDate, description, &reference, creatorUserID)
}

// ReverseEntry creates a reversal entry and marks the original REVERSED.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) ReverseEntry(ctx context.Context, companyID string, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := logging.FromCtx(ctx)

	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Original entry not found for reversal", slog.String("entry_id", entryID))
			return nil, apperrors.ErrNotFound
		}
		logger.Error("Failed to fetch original entry for reversal", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve original entry: %w", err)
	}
	if original.CompanyID != companyID {
		// Obscure existence of entries outside the caller's company.
		return nil, apperrors.ErrNotFound
	}
	if original.Status == domain.Reversed || original.ReversingEntryID != nil {
		return nil, ErrAlreadyReversed
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch original lines for reversal", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve original lines: %w", err)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	reversalLines := make([]domain.JournalEntryLine, len(originalLines))
	accountIDs := make([]string, 0, len(originalLines))
	for i, line := range originalLines {
		swapped := line.Swapped()
		swapped.LineID = uuid.NewString()
		swapped.EntryID = reversalID
		swapped.AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		}
		reversalLines[i] = swapped
		accountIDs = append(accountIDs, line.AccountID)
	}

	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		logger.Error("Failed to fetch accounts for reversal", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to fetch accounts for reversal: %w", err)
	}
	accountTypes := make(map[string]domain.AccountType, len(accountsMap))
	for id, acc := range accountsMap {
		accountTypes[id] = acc.AccountType
	}
	balanceChanges, err := accounting.BalanceChanges(reversalLines, accountTypes)
	if err != nil {
		logger.Error("Failed to compute reversal balance changes", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("internal error calculating reversal balance changes: %w", err)
	}

	reversal := domain.JournalEntry{
		EntryID:         reversalID,
		EntryYear:       original.EntryDate.Year(),
		CompanyID:       companyID,
		EntryDate:       original.EntryDate,
		Description:     fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, original.Description),
		CurrencyCode:    original.CurrencyCode,
		Status:          domain.Posted,
		OriginalEntryID: &original.EntryID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// SaveEntry marks the original REVERSED in the same transaction as the
	// reversal insert. A conflict means another caller claimed the original
	// between our status check and the save.
	saved, err := s.journalRepo.SaveEntry(ctx, reversal, reversalLines, balanceChanges)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Entry was reversed concurrently", slog.String("entry_id", entryID))
			return nil, ErrAlreadyReversed
		}
		logger.Error("Failed to save reversing entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save reversing entry: %w", err)
	}

	logger.Info("Journal entry reversed", slog.String("entry_id", entryID), slog.String("reversal_id", saved.EntryID))
	saved.Lines = reversalLines
	return saved, nil
}

// DeleteWithReversal reverses the entry referencing a deleted business record.
// Absence of such an entry is a recovered no-op: legacy records may predate
// ledger integration.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) DeleteWithReversal(ctx context.Context, companyID string, sourceRecordID string, actorUserID string) error {
	logger := logging.FromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByReference(ctx, companyID, sourceRecordID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Debug("No journal entry references deleted record", slog.String("source_record_id", sourceRecordID))
			return nil
		}
		logger.Error("Failed to look up entry by reference", slog.String("error", err.Error()), slog.String("source_record_id", sourceRecordID))
		return fmt.Errorf("failed to look up entry for record %s: %w", sourceRecordID, err)
	}

	if _, err := s.ReverseEntry(ctx, companyID, entry.EntryID, actorUserID); err != nil {
		if errors.Is(err, ErrAlreadyReversed) {
			logger.Debug("Entry for deleted record already reversed", slog.String("entry_id", entry.EntryID))
			return nil
		}
		return err
	}
	return nil
}

// GetEntryByID retrieves a specific journal entry with its lines.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) GetEntryByID(ctx context.Context, companyID string, entryID string) (*domain.JournalEntry, error) {
	logger := logging.FromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find entry by ID", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}
	if entry.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines

	return entry, nil
}

// ListEntries retrieves a paginated list of entries for a company.
// Implements portssvc.LedgerSvcFacade
func (s *ledgerService) ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := logging.FromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, companyID, limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		logger.Error("Failed to list entries from repository", slog.String("error", err.Error()), slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	if len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i, e := range entries {
			entryIDs[i] = e.EntryID
		}
		linesMap, err := s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			// Continue without lines rather than failing the whole request.
			logger.Warn("Failed to fetch lines for listed entries", slog.String("error", err.Error()))
		} else {
			for i := range entries {
				entries[i].Lines = linesMap[entries[i].EntryID]
			}
		}
	}

	resp := dto.ToListEntriesResponse(entries, nextToken)
	logger.Debug("Entries listed", slog.Int("count", len(entries)))
	return &resp, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
