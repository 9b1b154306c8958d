package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/budiutama/branchbooks/internal/apperrors"
	"github.com/budiutama/branchbooks/internal/core/domain"
	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/budiutama/branchbooks/internal/core/services"
	"github.com/budiutama/branchbooks/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	branchID        string
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.branchID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func notFoundErr() error {
	return fmt.Errorf("%w: account", apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1-1150",
		Name:        "Kas Kecil",
		AccountType: domain.Asset,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.branchID, "1-1150").Return(nil, notFoundErr()).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.branchID, req, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.branchID, account.BranchID)
	suite.Equal("1-1150", account.Code)
	suite.True(account.IsActive)
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1-1100", Name: "Kas", AccountType: domain.Asset}
	existing := &domain.Account{AccountID: uuid.NewString(), BranchID: suite.branchID, Code: "1-1100"}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.branchID, "1-1100").Return(existing, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NegativeInitialBalance() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:           "1-1150",
		Name:           "Kas Kecil",
		AccountType:    domain.Asset,
		InitialBalance: decimal.NewFromInt(-500),
	}

	_, err := suite.service.CreateAccount(ctx, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:            "6-1100",
		Name:            "Beban Sewa",
		AccountType:     domain.Expense,
		ParentAccountID: &parentID,
	}
	parent := &domain.Account{AccountID: parentID, BranchID: suite.branchID, AccountType: domain.Asset, IsHeader: true}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.branchID, "6-1100").Return(nil, notFoundErr()).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.branchID, parentID).Return(parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.branchID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ParentCycleRejected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	childID := uuid.NewString()

	account := &domain.Account{AccountID: accountID, BranchID: suite.branchID, Code: "1-1100", AccountType: domain.Asset}
	// The proposed parent is a child of the account being updated.
	child := &domain.Account{AccountID: childID, BranchID: suite.branchID, ParentAccountID: &accountID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.branchID, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.branchID, childID).Return(child, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.branchID, accountID, dto.UpdateAccountRequest{ParentAccountID: &childID}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "cycle")
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{AccountID: accountID, BranchID: suite.branchID, IsActive: true}

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.branchID, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID == accountID && !a.IsActive
	})).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.branchID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestResolveRole_ByCanonicalCode() {
	ctx := context.Background()
	cash := &domain.Account{
		AccountID:   uuid.NewString(),
		BranchID:    suite.branchID,
		Code:        "1-1100",
		Name:        "Kas",
		AccountType: domain.Asset,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.branchID, "1-1100").Return(cash, nil).Once()

	account, err := suite.service.ResolveRole(ctx, suite.branchID, domain.RoleCash)

	suite.Require().NoError(err)
	suite.Equal(cash.AccountID, account.AccountID)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindFirstAccountByTypePattern", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestResolveRole_FallsBackToNamePattern() {
	ctx := context.Background()
	cash := &domain.Account{
		AccountID:   uuid.NewString(),
		BranchID:    suite.branchID,
		Code:        "1100",
		Name:        "Kas Toko",
		AccountType: domain.Asset,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.branchID, "1-1100").Return(nil, notFoundErr()).Once()
	suite.mockAccountRepo.On("FindFirstAccountByTypePattern", ctx, suite.branchID, domain.Asset, "kas").Return(cash, nil).Once()

	account, err := suite.service.ResolveRole(ctx, suite.branchID, domain.RoleCash)

	suite.Require().NoError(err)
	suite.Equal(cash.AccountID, account.AccountID)
}

func (suite *AccountServiceTestSuite) TestResolveRole_CodeMatchOfWrongTypeSkipped() {
	ctx := context.Background()
	// An account occupies the canonical cash code but is not an asset.
	squatter := &domain.Account{
		AccountID:   uuid.NewString(),
		BranchID:    suite.branchID,
		Code:        "1-1100",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	cash := &domain.Account{
		AccountID:   uuid.NewString(),
		BranchID:    suite.branchID,
		Name:        "Kas",
		AccountType: domain.Asset,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.branchID, "1-1100").Return(squatter, nil).Once()
	suite.mockAccountRepo.On("FindFirstAccountByTypePattern", ctx, suite.branchID, domain.Asset, "kas").Return(cash, nil).Once()

	account, err := suite.service.ResolveRole(ctx, suite.branchID, domain.RoleCash)

	suite.Require().NoError(err)
	suite.Equal(cash.AccountID, account.AccountID)
}

func (suite *AccountServiceTestSuite) TestResolveRole_NotFound() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.branchID, mock.AnythingOfType("string")).Return(nil, notFoundErr())
	suite.mockAccountRepo.On("FindFirstAccountByTypePattern", ctx, suite.branchID, domain.Asset, "kas").Return(nil, notFoundErr()).Once()

	_, err := suite.service.ResolveRole(ctx, suite.branchID, domain.RoleCash)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestResolveExpenseCategory_FallsBackToGeneralExpense() {
	ctx := context.Background()
	general := &domain.Account{
		AccountID:   uuid.NewString(),
		BranchID:    suite.branchID,
		Code:        "6-1000",
		Name:        "Beban Umum",
		AccountType: domain.Expense,
		IsActive:    true,
	}

	suite.mockAccountRepo.On("FindFirstAccountByTypePattern", ctx, suite.branchID, domain.Expense, "listrik").Return(nil, notFoundErr()).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.branchID, "6-1000").Return(general, nil).Once()

	account, err := suite.service.ResolveExpenseCategory(ctx, suite.branchID, "listrik")

	suite.Require().NoError(err)
	suite.Equal(general.AccountID, account.AccountID)
}

func (suite *AccountServiceTestSuite) TestSeedDefaultAccounts_CreatesFullChart() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.branchID, mock.AnythingOfType("string")).Return(nil, notFoundErr())
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil)

	err := suite.service.SeedDefaultAccounts(ctx, suite.branchID, suite.userID)

	suite.Require().NoError(err)
	// The standard chart carries a cash account and the closing targets.
	saved := make(map[string]domain.Account)
	for _, call := range suite.mockAccountRepo.Calls {
		if call.Method == "SaveAccount" {
			acc := call.Arguments.Get(1).(domain.Account)
			saved[acc.Code] = acc
		}
	}
	suite.Contains(saved, "1-1100")
	suite.Contains(saved, "3200")
	suite.Contains(saved, "3300")
	suite.True(saved["1-1100"].IsPaymentAccount)
	suite.True(saved["1-0000"].IsHeader)
	suite.NotNil(saved["1-1100"].ParentAccountID)
}

func (suite *AccountServiceTestSuite) TestSeedDefaultAccounts_SkipsExistingCodes() {
	ctx := context.Background()

	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.branchID, mock.AnythingOfType("string")).
		Return(&domain.Account{AccountID: uuid.NewString(), BranchID: suite.branchID}, nil)

	err := suite.service.SeedDefaultAccounts(ctx, suite.branchID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
