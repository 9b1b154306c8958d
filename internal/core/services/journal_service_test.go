package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

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

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockClosingRepo *MockClosingRepository
	service         portssvc.JournalSvcFacade
	branchID        string
	userID          string
	cashAccount     domain.Account
	revenueAccount  domain.Account
	headerAccount   domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockClosingRepo = new(MockClosingRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockClosingRepo, nil, nil)

	suite.branchID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		BranchID:    suite.branchID,
		Code:        "1-1100",
		Name:        "Kas",
		AccountType: domain.Asset,
		IsActive:    true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:   uuid.NewString(),
		BranchID:    suite.branchID,
		Code:        "4-1000",
		Name:        "Pendapatan Penjualan",
		AccountType: domain.Revenue,
		IsActive:    true,
	}
	suite.headerAccount = domain.Account{
		AccountID:   uuid.NewString(),
		BranchID:    suite.branchID,
		Code:        "1-0000",
		Name:        "Aset",
		AccountType: domain.Asset,
		IsHeader:    true,
		IsActive:    true,
	}
}

// expectYearOpen stubs the closing lookup to report no active closing.
func (suite *JournalServiceTestSuite) expectYearOpen(year int) {
	suite.mockClosingRepo.On("FindActivePeriod", mock.Anything, year, suite.branchID).
		Return(nil, fmt.Errorf("%w: no active closing", apperrors.ErrNotFound)).Once()
}

func (suite *JournalServiceTestSuite) balancedRequest(amount int64) dto.PostJournalRequest {
	return dto.PostJournalRequest{
		BranchID:    suite.branchID,
		EntryDate:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "Penjualan tunai",
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(amount)},
			{AccountID: suite.revenueAccount.AccountID, Credit: decimal.NewFromInt(amount)},
		},
	}
}

func (suite *JournalServiceTestSuite) accountsMap(accounts ...domain.Account) map[string]domain.Account {
	out := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		out[acc.AccountID] = acc
	}
	return out
}

// --- Test Cases ---

func (suite *JournalServiceTestSuite) TestPostJournal_Success() {
	ctx := context.Background()
	req := suite.balancedRequest(150000)

	suite.expectYearOpen(2025)
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.branchID, []string{suite.cashAccount.AccountID, suite.revenueAccount.AccountID}).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("*domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), "JE").
		Return(nil).Once()

	entry, err := suite.service.PostJournal(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.JournalID)
	suite.Equal(suite.branchID, entry.BranchID)
	suite.Equal(domain.Posted, entry.Status)
	suite.Equal(domain.RefAdjustment, entry.ReferenceType)
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(150000)))
	suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(150000)))
	suite.Equal(suite.userID, entry.CreatedBy)
	suite.Len(entry.Lines, 2)
	suite.Equal(1, entry.Lines[0].LineNumber)
	suite.Equal(2, entry.Lines[1].LineNumber)

	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockClosingRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournal_Unbalanced() {
	ctx := context.Background()
	req := suite.balancedRequest(100000)
	req.Lines[1].Credit = decimal.NewFromInt(90000)

	suite.expectYearOpen(2025)

	entry, err := suite.service.PostJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(entry)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournal_BothSidesOnOneLine() {
	ctx := context.Background()
	req := suite.balancedRequest(100000)
	req.Lines[0].Credit = decimal.NewFromInt(100000)

	suite.expectYearOpen(2025)

	_, err := suite.service.PostJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// A debit and credit against the same account is a legal wash entry; the
// minimum is two lines, not two accounts.
func (suite *JournalServiceTestSuite) TestPostJournal_SameAccountWashEntry() {
	ctx := context.Background()
	req := suite.balancedRequest(50000)
	req.Lines[1].AccountID = suite.cashAccount.AccountID

	suite.expectYearOpen(2025)
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.branchID, []string{suite.cashAccount.AccountID}).
		Return(suite.accountsMap(suite.cashAccount), nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("*domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine"), "JE").
		Return(nil).Once()

	entry, err := suite.service.PostJournal(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Len(entry.Lines, 2)
	suite.Equal(suite.cashAccount.AccountID, entry.Lines[0].AccountID)
	suite.Equal(suite.cashAccount.AccountID, entry.Lines[1].AccountID)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournal_HeaderAccountRejected() {
	ctx := context.Background()
	req := suite.balancedRequest(75000)
	req.Lines[0].AccountID = suite.headerAccount.AccountID

	suite.expectYearOpen(2025)
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.branchID, []string{suite.headerAccount.AccountID, suite.revenueAccount.AccountID}).
		Return(suite.accountsMap(suite.headerAccount, suite.revenueAccount), nil).Once()

	_, err := suite.service.PostJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "header")
}

func (suite *JournalServiceTestSuite) TestPostJournal_InactiveAccountRejected() {
	ctx := context.Background()
	inactive := suite.cashAccount
	inactive.IsActive = false
	req := suite.balancedRequest(75000)

	suite.expectYearOpen(2025)
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.branchID, mock.Anything).
		Return(suite.accountsMap(inactive, suite.revenueAccount), nil).Once()

	_, err := suite.service.PostJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "inactive")
}

func (suite *JournalServiceTestSuite) TestPostJournal_UnknownAccountRejected() {
	ctx := context.Background()
	req := suite.balancedRequest(75000)

	suite.expectYearOpen(2025)
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.branchID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount), nil).Once()

	_, err := suite.service.PostJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestPostJournal_ClosedYearRejected() {
	ctx := context.Background()
	req := suite.balancedRequest(100000)

	suite.mockClosingRepo.On("FindActivePeriod", mock.Anything, 2025, suite.branchID).
		Return(&domain.ClosingPeriod{Year: 2025, BranchID: suite.branchID, Status: domain.ClosingActive}, nil).Once()

	_, err := suite.service.PostJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyClosed)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournal_MissingDescription() {
	ctx := context.Background()
	req := suite.balancedRequest(100000)
	req.Description = ""

	_, err := suite.service.PostJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestPostJournal_ClosingReferenceRejected() {
	ctx := context.Background()
	req := suite.balancedRequest(100000)
	req.ReferenceType = domain.RefClosing

	_, err := suite.service.PostJournal(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestPostJournal_NumberCollisionRetriesOnce() {
	ctx := context.Background()
	req := suite.balancedRequest(200000)

	suite.expectYearOpen(2025)
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.branchID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.Anything, mock.Anything, "JE").
		Return(fmt.Errorf("%w: entry number taken", apperrors.ErrConflict)).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.Anything, mock.Anything, "JE").
		Return(nil).Once()

	entry, err := suite.service.PostJournal(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.mockJournalRepo.AssertNumberOfCalls(suite.T(), "SaveJournal", 2)
}

func (suite *JournalServiceTestSuite) TestPostOpening_UsesOpeningReference() {
	ctx := context.Background()
	req := suite.balancedRequest(500000)
	req.Description = "Saldo awal"

	suite.expectYearOpen(2025)
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.branchID, mock.Anything).
		Return(suite.accountsMap(suite.cashAccount, suite.revenueAccount), nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.Anything, mock.Anything, "JE").Return(nil).Once()

	entry, err := suite.service.PostOpening(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.RefOpening, entry.ReferenceType)
}

func (suite *JournalServiceTestSuite) TestVoidJournal_Success() {
	ctx := context.Background()
	journalID := uuid.NewString()
	existing := &domain.JournalEntry{
		JournalID:     journalID,
		BranchID:      suite.branchID,
		EntryNumber:   "JE-2025-000007",
		EntryDate:     time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		ReferenceType: domain.RefSale,
		Status:        domain.Posted,
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(existing, nil).Once()
	suite.expectYearOpen(2025)
	suite.mockJournalRepo.On("MarkJournalVoided", ctx, journalID, suite.userID, "input error", mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	voided, err := suite.service.VoidJournal(ctx, suite.branchID, journalID, dto.VoidJournalRequest{Reason: "input error"}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Voided, voided.Status)
	suite.Require().NotNil(voided.VoidedBy)
	suite.Equal(suite.userID, *voided.VoidedBy)
	suite.Equal("input error", voided.VoidReason)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestVoidJournal_AlreadyVoided() {
	ctx := context.Background()
	journalID := uuid.NewString()
	existing := &domain.JournalEntry{
		JournalID: journalID,
		BranchID:  suite.branchID,
		Status:    domain.Voided,
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(existing, nil).Once()

	_, err := suite.service.VoidJournal(ctx, suite.branchID, journalID, dto.VoidJournalRequest{Reason: "again"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkJournalVoided", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestVoidJournal_WrongBranch() {
	ctx := context.Background()
	journalID := uuid.NewString()
	existing := &domain.JournalEntry{
		JournalID: journalID,
		BranchID:  uuid.NewString(),
		Status:    domain.Posted,
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(existing, nil).Once()

	_, err := suite.service.VoidJournal(ctx, suite.branchID, journalID, dto.VoidJournalRequest{Reason: "x"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestVoidJournal_ClosingEntryRejected() {
	ctx := context.Background()
	journalID := uuid.NewString()
	existing := &domain.JournalEntry{
		JournalID:     journalID,
		BranchID:      suite.branchID,
		ReferenceType: domain.RefClosing,
		Status:        domain.Posted,
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(existing, nil).Once()

	_, err := suite.service.VoidJournal(ctx, suite.branchID, journalID, dto.VoidJournalRequest{Reason: "x"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestVoidJournal_ClosedYearRejected() {
	ctx := context.Background()
	journalID := uuid.NewString()
	existing := &domain.JournalEntry{
		JournalID:     journalID,
		BranchID:      suite.branchID,
		EntryDate:     time.Date(2024, 11, 2, 0, 0, 0, 0, time.UTC),
		ReferenceType: domain.RefExpense,
		Status:        domain.Posted,
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(existing, nil).Once()
	suite.mockClosingRepo.On("FindActivePeriod", mock.Anything, 2024, suite.branchID).
		Return(&domain.ClosingPeriod{Year: 2024, BranchID: suite.branchID, Status: domain.ClosingActive}, nil).Once()

	_, err := suite.service.VoidJournal(ctx, suite.branchID, journalID, dto.VoidJournalRequest{Reason: "x"}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAlreadyClosed)
}

func (suite *JournalServiceTestSuite) TestGetJournalByID_LoadsLines() {
	ctx := context.Background()
	journalID := uuid.NewString()
	existing := &domain.JournalEntry{JournalID: journalID, BranchID: suite.branchID, Status: domain.Posted}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: journalID, LineNumber: 1, AccountID: suite.cashAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), JournalID: journalID, LineNumber: 2, AccountID: suite.revenueAccount.AccountID, CreditAmount: decimal.NewFromInt(100)},
	}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(existing, nil).Once()
	suite.mockJournalRepo.On("FindLinesByJournalID", ctx, journalID).Return(lines, nil).Once()

	entry, err := suite.service.GetJournalByID(ctx, suite.branchID, journalID)

	suite.Require().NoError(err)
	suite.Len(entry.Lines, 2)
}

func (suite *JournalServiceTestSuite) TestListJournals_DefaultsLimit() {
	ctx := context.Background()

	suite.mockJournalRepo.On("ListJournalsByBranch", ctx, suite.branchID, 20, (*string)(nil)).
		Return([]domain.JournalEntry{{JournalID: uuid.NewString(), BranchID: suite.branchID}}, nil, nil).Once()

	resp, err := suite.service.ListJournals(ctx, suite.branchID, dto.ListJournalsParams{})

	suite.Require().NoError(err)
	suite.Len(resp.Journals, 1)
	suite.Nil(resp.NextToken)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
