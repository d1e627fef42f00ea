package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/core/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	companyID       string
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) createRequest() dto.CreateAccountRequest {
	return dto.CreateAccountRequest{
		CompanyID:   &suite.companyID,
		Code:        "6300",
		Name:        "Insurance Expense",
		AccountType: domain.AccountTypeExpense,
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := suite.createRequest()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, req.Code).
		Return(nil, apperrors.ErrNotFound).Once()

	var saved domain.Account
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Account)
		}).
		Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(req.Code, saved.Code)
	suite.True(saved.IsActive)
	suite.True(saved.Balance.IsZero())
	suite.Equal(suite.userID, saved.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownTypeRejected() {
	ctx := context.Background()
	req := suite.createRequest()
	req.AccountType = domain.AccountType("CONTRA")

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCodeSameScope() {
	ctx := context.Background()
	req := suite.createRequest()
	existing := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   &suite.companyID,
		Code:        req.Code,
		Name:        "Existing",
		AccountType: domain.AccountTypeExpense,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, req.Code).
		Return(&existing, nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CompanyOverrideOfGlobalCodeAllowed() {
	ctx := context.Background()
	req := suite.createRequest()
	req.Code = "6100"
	// Code lookup falls back to the global chart; an override in the company's
	// own scope is still allowed.
	global := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   nil,
		Code:        "6100",
		Name:        "Rent Expense",
		AccountType: domain.AccountTypeExpense,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.companyID, req.Code).
		Return(&global, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_ForeignCompanyObscured() {
	ctx := context.Background()
	otherCompany := uuid.NewString()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   &otherCompany,
		Code:        "1000",
		AccountType: domain.AccountTypeAsset,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).
		Return(&account, nil).Once()

	found, err := suite.service.GetAccountByID(ctx, suite.companyID, account.AccountID)

	suite.Require().Error(err)
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_GlobalAccountVisible() {
	ctx := context.Background()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   nil,
		Code:        "1000",
		AccountType: domain.AccountTypeAsset,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).
		Return(&account, nil).Once()

	found, err := suite.service.GetAccountByID(ctx, suite.companyID, account.AccountID)

	suite.Require().NoError(err)
	suite.Equal(account.AccountID, found.AccountID)
}

func (suite *AccountServiceTestSuite) TestListAccounts_DefaultLimitAndActiveFilter() {
	ctx := context.Background()
	active := domain.Account{AccountID: uuid.NewString(), Code: "1000", AccountType: domain.AccountTypeAsset, IsActive: true, Balance: decimal.Zero}
	inactive := domain.Account{AccountID: uuid.NewString(), Code: "1010", AccountType: domain.AccountTypeAsset, IsActive: false, Balance: decimal.Zero}

	suite.mockAccountRepo.On("ListAccounts", ctx, suite.companyID, 20, 0).
		Return([]domain.Account{active, inactive}, nil).Once()

	resp, err := suite.service.ListAccounts(ctx, suite.companyID, dto.ListAccountsParams{ActiveOnly: true})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Accounts, 1)
	suite.Equal(active.AccountID, resp.Accounts[0].AccountID)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoFieldsIsNoOp() {
	ctx := context.Background()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   &suite.companyID,
		Code:        "6100",
		Name:        "Rent Expense",
		AccountType: domain.AccountTypeExpense,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).
		Return(&account, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.companyID, account.AccountID, dto.UpdateAccountRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(account.Name, updated.Name)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RenameSuccess() {
	ctx := context.Background()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   &suite.companyID,
		Code:        "6100",
		Name:        "Rent Expense",
		AccountType: domain.AccountTypeExpense,
		IsActive:    true,
	}
	newName := "Office Rent"

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).
		Return(&account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).
		Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.companyID, account.AccountID, dto.UpdateAccountRequest{Name: &newName}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   &suite.companyID,
		Code:        "6200",
		AccountType: domain.AccountTypeExpense,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).
		Return(&account, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, account.AccountID, suite.userID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.companyID, account.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
