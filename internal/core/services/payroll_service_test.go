package services_test

import (
	"context"
	"testing"

	"github.com/ledgerkeep/ledgerkeep/internal/apperrors"
	portssvc "github.com/ledgerkeep/ledgerkeep/internal/core/ports/services"
	"github.com/ledgerkeep/ledgerkeep/internal/core/services"
	"github.com/ledgerkeep/ledgerkeep/internal/dto"
	"github.com/ledgerkeep/ledgerkeep/internal/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PayrollServiceTestSuite struct {
	suite.Suite
	service portssvc.PayrollSvc
}

func (suite *PayrollServiceTestSuite) SetupTest() {
	suite.service = services.NewPayrollService(decimal.Zero)
}

func (suite *PayrollServiceTestSuite) request() dto.WithholdingRequest {
	return dto.WithholdingRequest{
		GrossPay:     decimal.NewFromInt(2000),
		YTDGross:     decimal.Zero,
		PayPeriod:    payroll.BiWeekly,
		FilingStatus: payroll.Single,
	}
}

func (suite *PayrollServiceTestSuite) TestCalculateWithholding_NetPayIdentity() {
	ctx := context.Background()
	req := suite.request()

	resp, err := suite.service.CalculateWithholding(ctx, req)

	suite.Require().NoError(err)
	componentSum := resp.FederalIncomeTax.
		Add(resp.SocialSecurity).
		Add(resp.Medicare).
		Add(resp.AdditionalMedicare).
		Add(resp.StateSUI)
	suite.True(resp.TotalWithholding.Equal(componentSum))
	suite.True(resp.NetPay.Equal(req.GrossPay.Sub(resp.TotalWithholding)))
	suite.True(resp.NetPay.LessThan(req.GrossPay))
}

func (suite *PayrollServiceTestSuite) TestCalculateWithholding_FICAComponents() {
	ctx := context.Background()
	req := suite.request()

	resp, err := suite.service.CalculateWithholding(ctx, req)

	suite.Require().NoError(err)
	// 6.2% and 1.45% of 2000, well under both wage bases.
	suite.True(resp.SocialSecurity.Equal(decimal.RequireFromString("124.00")))
	suite.True(resp.Medicare.Equal(decimal.RequireFromString("29.00")))
	suite.True(resp.AdditionalMedicare.IsZero())
}

func (suite *PayrollServiceTestSuite) TestCalculateWithholding_DefaultSUIRate() {
	ctx := context.Background()
	req := suite.request()

	resp, err := suite.service.CalculateWithholding(ctx, req)

	suite.Require().NoError(err)
	// 2.7% of 2000 against a fresh SUI wage base.
	suite.True(resp.StateSUI.Equal(decimal.RequireFromString("54.00")))
}

func (suite *PayrollServiceTestSuite) TestCalculateWithholding_SUIRateOverride() {
	ctx := context.Background()
	req := suite.request()
	rate := decimal.RequireFromString("0.05")
	req.SUIRate = &rate

	resp, err := suite.service.CalculateWithholding(ctx, req)

	suite.Require().NoError(err)
	suite.True(resp.StateSUI.Equal(decimal.RequireFromString("100.00")))
}

func (suite *PayrollServiceTestSuite) TestCalculateWithholding_SUIWageBaseExhausted() {
	ctx := context.Background()
	req := suite.request()
	req.YTDGross = decimal.NewFromInt(8000)

	resp, err := suite.service.CalculateWithholding(ctx, req)

	suite.Require().NoError(err)
	suite.True(resp.StateSUI.IsZero())
}

func (suite *PayrollServiceTestSuite) TestCalculateWithholding_AdditionalWithholdingAdded() {
	ctx := context.Background()
	base := suite.request()

	baseResp, err := suite.service.CalculateWithholding(ctx, base)
	suite.Require().NoError(err)

	extra := base
	extra.AdditionalWithholding = decimal.NewFromInt(50)
	extraResp, err := suite.service.CalculateWithholding(ctx, extra)
	suite.Require().NoError(err)

	diff := extraResp.FederalIncomeTax.Sub(baseResp.FederalIncomeTax)
	suite.True(diff.Equal(decimal.NewFromInt(50)))
}

func (suite *PayrollServiceTestSuite) TestCalculateWithholding_NegativeGrossRejected() {
	ctx := context.Background()
	req := suite.request()
	req.GrossPay = decimal.NewFromInt(-100)

	resp, err := suite.service.CalculateWithholding(ctx, req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayrollServiceTestSuite) TestCalculateWithholding_NegativeAllowancesRejected() {
	ctx := context.Background()
	req := suite.request()
	req.Allowances = -1

	resp, err := suite.service.CalculateWithholding(ctx, req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PayrollServiceTestSuite) TestCalculateWithholding_NegativeYTDRejected() {
	ctx := context.Background()
	req := suite.request()
	req.YTDGross = decimal.NewFromInt(-1)

	resp, err := suite.service.CalculateWithholding(ctx, req)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestPayrollServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}
