package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/budiutama/branchbooks/internal/core/domain"
	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/budiutama/branchbooks/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CashFlowServiceTestSuite struct {
	suite.Suite
	mockCashFlowRepo *MockCashFlowRepository
	service          portssvc.CashFlowSvcFacade
	branchID         string
	cashID           string
	bankID           string
}

func (suite *CashFlowServiceTestSuite) SetupTest() {
	suite.mockCashFlowRepo = new(MockCashFlowRepository)
	suite.service = services.NewCashFlowService(suite.mockCashFlowRepo)
	suite.branchID = uuid.NewString()
	suite.cashID = uuid.NewString()
	suite.bankID = uuid.NewString()
}

func (suite *CashFlowServiceTestSuite) movement(accountID, accountName string, date time.Time, dir domain.CashDirection, amount int64) domain.CashMovement {
	return domain.CashMovement{
		JournalID:   uuid.NewString(),
		EntryDate:   date,
		AccountID:   accountID,
		AccountName: accountName,
		Direction:   dir,
		Amount:      decimal.NewFromInt(amount),
	}
}

func (suite *CashFlowServiceTestSuite) TestGetDailyCashFlow_AggregatesPerAccount() {
	ctx := context.Background()
	date := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)
	dayStart := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	movements := []domain.CashMovement{
		suite.movement(suite.cashID, "Kas", date, domain.CashIn, 5000),
		suite.movement(suite.cashID, "Kas", date, domain.CashOut, 1200),
		suite.movement(suite.bankID, "Bank", date, domain.CashIn, 3000),
	}

	suite.mockCashFlowRepo.On("PaymentAccountMovements", ctx, suite.branchID,
		dayStart, mock.MatchedBy(func(t time.Time) bool { return t.Day() == 15 && t.Hour() == 23 })).
		Return(movements, nil).Once()

	report, err := suite.service.GetDailyCashFlow(ctx, suite.branchID, date)

	suite.Require().NoError(err)
	suite.True(report.CashIn.Equal(decimal.NewFromInt(8000)))
	suite.True(report.CashOut.Equal(decimal.NewFromInt(1200)))
	suite.True(report.NetChange.Equal(decimal.NewFromInt(6800)))
	suite.Len(report.Movements, 3)

	// Per-account breakdown is sorted by account name.
	suite.Require().Len(report.ByAccount, 2)
	suite.Equal("Bank", report.ByAccount[0].AccountName)
	suite.Equal("Kas", report.ByAccount[1].AccountName)
	suite.True(report.ByAccount[1].CashIn.Equal(decimal.NewFromInt(5000)))
	suite.True(report.ByAccount[1].CashOut.Equal(decimal.NewFromInt(1200)))
}

func (suite *CashFlowServiceTestSuite) TestGetDailyCashFlow_EmptyDay() {
	ctx := context.Background()
	date := time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)

	suite.mockCashFlowRepo.On("PaymentAccountMovements", ctx, suite.branchID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return([]domain.CashMovement{}, nil).Once()

	report, err := suite.service.GetDailyCashFlow(ctx, suite.branchID, date)

	suite.Require().NoError(err)
	suite.True(report.CashIn.IsZero())
	suite.True(report.CashOut.IsZero())
	suite.True(report.NetChange.IsZero())
	suite.Empty(report.ByAccount)
}

func (suite *CashFlowServiceTestSuite) TestGetCashFlowRange_GaplessSeries() {
	ctx := context.Background()
	from := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)
	// Activity on the first and last day only; March 11 is quiet.
	movements := []domain.CashMovement{
		suite.movement(suite.cashID, "Kas", time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC), domain.CashIn, 1000),
		suite.movement(suite.cashID, "Kas", time.Date(2024, time.March, 12, 17, 0, 0, 0, time.UTC), domain.CashOut, 400),
	}

	suite.mockCashFlowRepo.On("PaymentAccountMovements", ctx, suite.branchID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(movements, nil).Once()

	reports, err := suite.service.GetCashFlowRange(ctx, suite.branchID, from, to)

	suite.Require().NoError(err)
	suite.Require().Len(reports, 3)
	suite.True(reports[0].CashIn.Equal(decimal.NewFromInt(1000)))
	suite.True(reports[1].CashIn.IsZero())
	suite.True(reports[1].CashOut.IsZero())
	suite.True(reports[2].CashOut.Equal(decimal.NewFromInt(400)))
	suite.Equal(10, reports[0].Date.Day())
	suite.Equal(11, reports[1].Date.Day())
	suite.Equal(12, reports[2].Date.Day())
}

func (suite *CashFlowServiceTestSuite) TestGetCashFlowRange_InvalidRange() {
	ctx := context.Background()
	from := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	_, err := suite.service.GetCashFlowRange(ctx, suite.branchID, from, to)

	suite.Require().Error(err)
	suite.mockCashFlowRepo.AssertNotCalled(suite.T(), "PaymentAccountMovements", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCashFlowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashFlowServiceTestSuite))
}
