package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	"github.com/ledgerkeep/ledgerkeep/internal/core/domain"
	portsrepo "github.com/ledgerkeep/ledgerkeep/internal/core/ports/repositories"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/core/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CompanyRepository ---
type MockCompanyRepository struct {
	mock.Mock
}

var _ portsrepo.CompanyRepositoryFacade = (*MockCompanyRepository)(nil)

func (m *MockCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListCompanies(ctx context.Context, limit int, offset int) ([]domain.Company, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}

func (m *MockCompanyRepository) SaveCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

type CompanyServiceTestSuite struct {
	suite.Suite
	mockCompanyRepo *MockCompanyRepository
	service         portssvc.CompanySvc
	userID          string
}

func (suite *CompanyServiceTestSuite) SetupTest() {
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.service = services.NewCompanyService(suite.mockCompanyRepo)
	suite.userID = uuid.NewString()
}

func (suite *CompanyServiceTestSuite) TestCreateCompany_Success() {
	ctx := context.Background()
	currency := "USD"
	req := dto.CreateCompanyRequest{Name: "Acme Plumbing", DefaultCurrencyCode: &currency}

	var saved domain.Company
	suite.mockCompanyRepo.On("SaveCompany", ctx, mock.AnythingOfType("domain.Company")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.Company)
		}).
		Return(nil).Once()

	company, err := suite.service.CreateCompany(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(company)
	suite.NotEmpty(company.CompanyID)
	suite.Equal("Acme Plumbing", saved.Name)
	suite.True(saved.IsActive)
	suite.Require().NotNil(saved.DefaultCurrencyCode)
	suite.Equal("USD", *saved.DefaultCurrencyCode)
	suite.Equal(suite.userID, saved.CreatedBy)
	suite.mockCompanyRepo.AssertExpectations(suite.T())
}

func (suite *CompanyServiceTestSuite) TestGetCompanyByID_Success() {
	ctx := context.Background()
	company := domain.Company{CompanyID: uuid.NewString(), Name: "Acme Plumbing", IsActive: true}

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, company.CompanyID).
		Return(&company, nil).Once()

	found, err := suite.service.GetCompanyByID(ctx, company.CompanyID)

	suite.Require().NoError(err)
	suite.Equal(company.CompanyID, found.CompanyID)
}

func (suite *CompanyServiceTestSuite) TestGetCompanyByID_NotFound() {
	ctx := context.Background()
	companyID := uuid.NewString()

	suite.mockCompanyRepo.On("FindCompanyByID", ctx, companyID).
		Return(nil, apperrors.NewNotFoundError("company "+companyID+" not found")).Once()

	found, err := suite.service.GetCompanyByID(ctx, companyID)

	suite.Require().Error(err)
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestCompanyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CompanyServiceTestSuite))
}
