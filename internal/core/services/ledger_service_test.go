package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/core/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalEntryLine, balanceChanges map[string]decimal.Decimal) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry, lines, balanceChanges)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByReference(ctx context.Context, companyID string, reference string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, companyID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, companyID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, companyID, limit, nextToken, includeReversals)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalEntryLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntryLine), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalEntryLine), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Mock RecordsRepository ---
type MockRecordsRepository struct {
	mock.Mock
}

var _ portsrepo.RecordsRepositoryFacade = (*MockRecordsRepository)(nil)

func (m *MockRecordsRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockRecordsRepository) ListApprovedExpenses(ctx context.Context, companyID string, unmatchedOnly bool) ([]domain.Expense, error) {
	args := m.Called(ctx, companyID, unmatchedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockRecordsRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockRecordsRepository) ListPaidInvoices(ctx context.Context, companyID string, unmatchedOnly bool) ([]domain.Invoice, error) {
	args := m.Called(ctx, companyID, unmatchedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockRecordsRepository) ListLegacyTransactions(ctx context.Context, companyID string, from time.Time, to time.Time) ([]domain.LegacyTransaction, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LegacyTransaction), args.Error(1)
}

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockRecordsRepo *MockRecordsRepository
	service         portssvc.LedgerSvcFacade
	cashAccount     domain.Account
	bankAccount     domain.Account
	revenueAccount  domain.Account
	expenseAccount  domain.Account
	companyID       string
	userID          string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockRecordsRepo = new(MockRecordsRepository)
	suite.service = services.NewLedgerService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockRecordsRepo)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        domain.CodeCash,
		AccountType: domain.AccountTypeAsset,
		IsActive:    true,
	}
	suite.bankAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        domain.CodeBank,
		AccountType: domain.AccountTypeAsset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        domain.CodeSalesRevenue,
		AccountType: domain.AccountTypeRevenue,
		IsActive:    true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:   uuid.NewString(),
		Code:        domain.CodeRentExpense,
		AccountType: domain.AccountTypeExpense,
		IsActive:    true,
	}
}

func (suite *LedgerServiceTestSuite) balancedRequest(amount decimal.Decimal) dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		CompanyID:   suite.companyID,
		EntryDate:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Cash sale",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: amount},
			{AccountID: suite.revenueAccount.AccountID, Credit: amount},
		},
	}
}

func (suite *LedgerServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	out := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		out[acc.AccountID] = acc
	}
	return out
}

// --- PostEntry ---

func (suite *LedgerServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(250))

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()

	saved := domain.JournalEntry{
		EntryNumber:    domain.FormatEntryNumber(2026, 1),
		SequenceNumber: 1,
		EntryYear:      2026,
		CompanyID:      suite.companyID,
		Status:         domain.Posted,
	}
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalEntryLine"), mock.AnythingOfType("map[string]decimal.Decimal")).
		Run(func(args mock.Arguments) {
			entry := args.Get(1).(domain.JournalEntry)
			saved.EntryID = entry.EntryID
		}).
		Return(&saved, nil).Once()

	entry, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal("JE-2026-00001", entry.EntryNumber)
	suite.Equal(domain.Posted, entry.Status)
	suite.Len(entry.Lines, 2)
	suite.True(entry.Lines[0].Debit.Equal(decimal.NewFromInt(250)))
	suite.True(entry.Lines[1].Credit.Equal(decimal.NewFromInt(250)))

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostEntry_LessThanTwoLines() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Description: "Half an entry",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryMinLines)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_MissingDescription() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(100))
	req.Description = ""

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrDescriptionMissing)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_UnbalancedPersistsNothing() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		CompanyID:   suite.companyID,
		EntryDate:   time.Now(),
		Description: "Unbalanced",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.RequireFromString("99.50")},
		},
	}

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	var unbalanced *services.UnbalancedEntryError
	suite.Require().ErrorAs(err, &unbalanced)
	suite.True(unbalanced.Debits.Equal(decimal.NewFromInt(100)))
	suite.True(unbalanced.Credits.Equal(decimal.RequireFromString("99.50")))
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_WithinToleranceIsBalanced() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		CompanyID:   suite.companyID,
		EntryDate:   time.Now(),
		Description: "Rounding residue",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.RequireFromString("100.00")},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.RequireFromString("99.99")},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	saved := domain.JournalEntry{Status: domain.Posted}
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(&saved, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostEntry_LineWithBothSides() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		CompanyID:   suite.companyID,
		EntryDate:   time.Now(),
		Description: "Both sides",
		Lines: []dto.CreateEntryLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_InactiveAccount() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(50))

	inactive := suite.revenueAccount
	inactive.IsActive = false
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, inactive), nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_AccountFromOtherCompany() {
	ctx := context.Background()
	req := suite.balancedRequest(decimal.NewFromInt(50))

	otherCompany := uuid.NewString()
	foreign := suite.revenueAccount
	foreign.CompanyID = &otherCompany
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, foreign), nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- PostCanonicalEvent ---

func (suite *LedgerServiceTestSuite) TestPostCanonicalEvent_IncomeResolvesServiceRevenue() {
	ctx := context.Background()
	serviceRevenue := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        domain.CodeServiceRevenue,
		AccountType: domain.AccountTypeRevenue,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, domain.CodeCash).
		Return(&suite.cashAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, domain.CodeServiceRevenue).
		Return(&serviceRevenue, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, serviceRevenue), nil).Once()

	saved := domain.JournalEntry{Status: domain.Posted}
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(&saved, nil).Once()

	req := dto.CanonicalEventRequest{
		Kind:     dto.EventIncome,
		Amount:   decimal.NewFromInt(500),
		Category: "Consulting servicio",
		Date:     time.Now(),
	}
	entry, err := suite.service.PostCanonicalEvent(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Require().Len(entry.Lines, 2)
	suite.Equal(suite.cashAccount.AccountID, entry.Lines[0].AccountID)
	suite.True(entry.Lines[0].Debit.Equal(decimal.NewFromInt(500)))
	suite.Equal(serviceRevenue.AccountID, entry.Lines[1].AccountID)
	suite.True(entry.Lines[1].Credit.Equal(decimal.NewFromInt(500)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostCanonicalEvent_ExpenseFallsBackToOther() {
	ctx := context.Background()
	otherExpense := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        domain.CodeOtherExpense,
		AccountType: domain.AccountTypeExpense,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, domain.CodeOtherExpense).
		Return(&otherExpense, nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, domain.CodeCash).
		Return(&suite.cashAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(otherExpense, suite.cashAccount), nil).Once()
	saved := domain.JournalEntry{Status: domain.Posted}
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(&saved, nil).Once()

	req := dto.CanonicalEventRequest{
		Kind:     dto.EventExpense,
		Amount:   decimal.NewFromInt(75),
		Category: "Miscellaneous supplies",
		Date:     time.Now(),
	}
	entry, err := suite.service.PostCanonicalEvent(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostCanonicalEvent_DraftInvoiceIsGated() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	draft := domain.Invoice{
		InvoiceID: invoiceID,
		CompanyID: suite.companyID,
		Status:    domain.InvoiceDraft,
	}
	suite.mockRecordsRepo.On("FindInvoiceByID", ctx, invoiceID).Return(&draft, nil).Once()

	req := dto.CanonicalEventRequest{Kind: dto.EventInvoiceIssued, InvoiceID: invoiceID}
	entry, err := suite.service.PostCanonicalEvent(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Nil(entry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockRecordsRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostCanonicalEvent_PaymentRequiresPaidInvoice() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	sent := domain.Invoice{
		InvoiceID: invoiceID,
		CompanyID: suite.companyID,
		Status:    domain.InvoiceSent,
	}
	suite.mockRecordsRepo.On("FindInvoiceByID", ctx, invoiceID).Return(&sent, nil).Once()

	req := dto.CanonicalEventRequest{Kind: dto.EventInvoicePayment, InvoiceID: invoiceID}
	_, err := suite.service.PostCanonicalEvent(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *LedgerServiceTestSuite) TestPostCanonicalEvent_UnknownKind() {
	ctx := context.Background()
	req := dto.CanonicalEventRequest{Kind: "dividend"}

	_, err := suite.service.PostCanonicalEvent(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestPostCanonicalEvent_MissingChartCode() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, domain.CodeCash).
		Return(nil, apperrors.ErrNotFound).Once()

	req := dto.CanonicalEventRequest{
		Kind:     dto.EventIncome,
		Amount:   decimal.NewFromInt(10),
		Category: "sale",
		Date:     time.Now(),
	}
	_, err := suite.service.PostCanonicalEvent(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	var notFound *services.AccountNotFoundError
	suite.Require().ErrorAs(err, &notFound)
	suite.Equal(domain.CodeCash, notFound.Code)
}

// --- ReverseEntry ---

func (suite *LedgerServiceTestSuite) postedEntryWithLines() (domain.JournalEntry, []domain.JournalEntryLine) {
	entryID := uuid.NewString()
	entry := domain.JournalEntry{
		EntryID:      entryID,
		EntryNumber:  "JE-2026-00007",
		CompanyID:    suite.companyID,
		EntryDate:    time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Description:  "Rent payment",
		CurrencyCode: "USD",
		Status:       domain.Posted,
	}
	lines := []domain.JournalEntryLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.expenseAccount.AccountID, Debit: decimal.NewFromInt(900), LineNumber: 1},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.cashAccount.AccountID, Credit: decimal.NewFromInt(900), LineNumber: 2},
	}
	return entry, lines
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	original, lines := suite.postedEntryWithLines()

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(&original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, original.EntryID).Return(lines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.expenseAccount, suite.cashAccount), nil).Once()

	var capturedLines []domain.JournalEntryLine
	saved := domain.JournalEntry{Status: domain.Posted, OriginalEntryID: &original.EntryID}
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			reversal := args.Get(1).(domain.JournalEntry)
			saved.EntryID = reversal.EntryID
			capturedLines = args.Get(2).([]domain.JournalEntryLine)
		}).
		Return(&saved, nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, suite.companyID, original.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal(&original.EntryID, reversal.OriginalEntryID)

	// Each reversal line carries the original amount on the opposite side.
	suite.Require().Len(capturedLines, 2)
	suite.True(capturedLines[0].Credit.Equal(lines[0].Debit))
	suite.True(capturedLines[0].Debit.IsZero())
	suite.True(capturedLines[1].Debit.Equal(lines[1].Credit))
	suite.True(capturedLines[1].Credit.IsZero())

	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	original, _ := suite.postedEntryWithLines()
	original.Status = domain.Reversed

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(&original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, original.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_PendingReversalLink() {
	ctx := context.Background()
	original, _ := suite.postedEntryWithLines()
	reversingID := uuid.NewString()
	original.ReversingEntryID = &reversingID

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(&original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, original.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_ConcurrentClaimLost() {
	ctx := context.Background()
	original, lines := suite.postedEntryWithLines()

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(&original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, original.EntryID).Return(lines, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).
		Return(suite.accountsMap(suite.expenseAccount, suite.cashAccount), nil).Once()

	// Another reversal of the same entry committed between the status check
	// and the save, so the repository refuses the claim on the original.
	claimErr := fmt.Errorf("%w: entry %s is no longer open for reversal", apperrors.ErrConflict, original.EntryID)
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, claimErr).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, original.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAlreadyReversed)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestReverseEntry_OtherCompanyLooksMissing() {
	ctx := context.Background()
	original, _ := suite.postedEntryWithLines()
	original.CompanyID = uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(&original, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.companyID, original.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- DeleteWithReversal ---

func (suite *LedgerServiceTestSuite) TestDeleteWithReversal_NoEntryIsNoOp() {
	ctx := context.Background()
	recordID := uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByReference", ctx, suite.companyID, recordID).
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteWithReversal(ctx, suite.companyID, recordID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestDeleteWithReversal_AlreadyReversedIsNoOp() {
	ctx := context.Background()
	recordID := uuid.NewString()
	original, _ := suite.postedEntryWithLines()
	original.Status = domain.Reversed

	suite.mockJournalRepo.On("FindEntryByReference", ctx, suite.companyID, recordID).
		Return(&original, nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, original.EntryID).Return(&original, nil).Once()

	err := suite.service.DeleteWithReversal(ctx, suite.companyID, recordID, suite.userID)

	suite.Require().NoError(err)
}

func (suite *LedgerServiceTestSuite) TestDeleteWithReversal_RepoErrorPropagates() {
	ctx := context.Background()
	recordID := uuid.NewString()

	suite.mockJournalRepo.On("FindEntryByReference", ctx, suite.companyID, recordID).
		Return(nil, errors.New("connection refused")).Once()

	err := suite.service.DeleteWithReversal(ctx, suite.companyID, recordID, suite.userID)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "connection refused")
}

// --- Reads ---

func (suite *LedgerServiceTestSuite) TestGetEntryByID_AttachesLines() {
	ctx := context.Background()
	entry, lines := suite.postedEntryWithLines()

	suite.mockJournalRepo.On("FindEntryByID", ctx, entry.EntryID).Return(&entry, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entry.EntryID).Return(lines, nil).Once()

	got, err := suite.service.GetEntryByID(ctx, suite.companyID, entry.EntryID)

	suite.Require().NoError(err)
	suite.Len(got.Lines, 2)
}

func (suite *LedgerServiceTestSuite) TestListEntries_DefaultLimit() {
	ctx := context.Background()
	entry, _ := suite.postedEntryWithLines()
	entries := []domain.JournalEntry{entry}

	suite.mockJournalRepo.On("ListEntries", ctx, suite.companyID, 20, (*string)(nil), false).
		Return(entries, nil, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryIDs", ctx, []string{entry.EntryID}).
		Return(map[string][]domain.JournalEntryLine{}, nil).Once()

	resp, err := suite.service.ListEntries(ctx, suite.companyID, dto.ListEntriesParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Nil(resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
