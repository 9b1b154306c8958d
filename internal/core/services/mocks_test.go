package services_test

import (
	"context"
	"time"

	"github.com/budiutama/branchbooks/internal/core/domain"
	portsrepo "github.com/budiutama/branchbooks/internal/core/ports/repositories"
	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/budiutama/branchbooks/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock BranchRepository ---
type MockBranchRepository struct {
	mock.Mock
}

var _ portsrepo.BranchRepositoryFacade = (*MockBranchRepository)(nil)

func (m *MockBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, branchID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, branchID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, branchID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, branchID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, branchID, code string) (*domain.Account, error) {
	args := m.Called(ctx, branchID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindFirstAccountByTypePattern(ctx context.Context, branchID string, accountType domain.AccountType, pattern string) (*domain.Account, error) {
	args := m.Called(ctx, branchID, accountType, pattern)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, branchID string, filter portsrepo.ListAccountsFilter) ([]domain.Account, error) {
	args := m.Called(ctx, branchID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveJournal(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine, numberPrefix string) error {
	args := m.Called(ctx, entry, lines, numberPrefix)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindJournalsByReference(ctx context.Context, branchID string, refType domain.ReferenceType, referenceID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, branchID, refType, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListJournalsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, branchID, limit, nextToken)
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

func (m *MockJournalRepository) MarkJournalVoided(ctx context.Context, journalID, voidedBy, reason string, voidedAt time.Time) error {
	args := m.Called(ctx, journalID, voidedBy, reason, voidedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) HasPostedEntriesSince(ctx context.Context, branchID string, date time.Time) (bool, error) {
	args := m.Called(ctx, branchID, date)
	return args.Bool(0), args.Error(1)
}

// --- Mock ClosingRepository ---
type MockClosingRepository struct {
	mock.Mock
}

var _ portsrepo.ClosingRepositoryFacade = (*MockClosingRepository)(nil)

func (m *MockClosingRepository) SaveClosingWithJournal(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine, numberPrefix string, period domain.ClosingPeriod) error {
	args := m.Called(ctx, entry, lines, numberPrefix, period)
	return args.Error(0)
}

func (m *MockClosingRepository) FindActivePeriod(ctx context.Context, year int, branchID string) (*domain.ClosingPeriod, error) {
	args := m.Called(ctx, year, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClosingPeriod), args.Error(1)
}

func (m *MockClosingRepository) VoidClosingWithJournal(ctx context.Context, closingID, journalID, voidedBy, reason string, voidedAt time.Time) error {
	args := m.Called(ctx, closingID, journalID, voidedBy, reason, voidedAt)
	return args.Error(0)
}

func (m *MockClosingRepository) ListPeriodsByBranch(ctx context.Context, branchID string) ([]domain.ClosingPeriod, error) {
	args := m.Called(ctx, branchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClosingPeriod), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) AccountActivity(ctx context.Context, branchID, accountID string, asOf time.Time) (*domain.AccountActivityRow, error) {
	args := m.Called(ctx, branchID, accountID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountActivityRow), args.Error(1)
}

func (m *MockReportingRepository) BranchActivity(ctx context.Context, branchID string, asOf time.Time) ([]domain.AccountActivityRow, error) {
	args := m.Called(ctx, branchID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivityRow), args.Error(1)
}

func (m *MockReportingRepository) RangeActivity(ctx context.Context, branchID string, from, to time.Time) ([]domain.AccountActivityRow, error) {
	args := m.Called(ctx, branchID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivityRow), args.Error(1)
}

func (m *MockReportingRepository) TrialBalance(ctx context.Context, branchID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, branchID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

// --- Mock CashFlowRepository ---
type MockCashFlowRepository struct {
	mock.Mock
}

var _ portsrepo.CashFlowRepositoryFacade = (*MockCashFlowRepository)(nil)

func (m *MockCashFlowRepository) PaymentAccountMovements(ctx context.Context, branchID string, from, to time.Time) ([]domain.CashMovement, error) {
	args := m.Called(ctx, branchID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashMovement), args.Error(1)
}

// --- Mock AccountService (as used by the event adapters and closing engine) ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, branchID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, branchID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByCode(ctx context.Context, branchID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, branchID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, branchID string, filter portsrepo.ListAccountsFilter) ([]domain.Account, error) {
	args := m.Called(ctx, branchID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, branchID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, branchID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, branchID string, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	args := m.Called(ctx, branchID, accountID, req, updaterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, branchID string, accountID string, updaterUserID string) error {
	args := m.Called(ctx, branchID, accountID, updaterUserID)
	return args.Error(0)
}

func (m *MockAccountService) SeedDefaultAccounts(ctx context.Context, branchID string, creatorUserID string) error {
	args := m.Called(ctx, branchID, creatorUserID)
	return args.Error(0)
}

func (m *MockAccountService) ResolveRole(ctx context.Context, branchID string, role domain.AccountRole) (*domain.Account, error) {
	args := m.Called(ctx, branchID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ResolveExpenseCategory(ctx context.Context, branchID string, category string) (*domain.Account, error) {
	args := m.Called(ctx, branchID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Mock JournalService (as used by the event adapters) ---
type MockJournalService struct {
	mock.Mock
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

func (m *MockJournalService) GetJournalByID(ctx context.Context, branchID string, journalID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, branchID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListJournals(ctx context.Context, branchID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, branchID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}

func (m *MockJournalService) FindByReference(ctx context.Context, branchID string, refType domain.ReferenceType, referenceID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, branchID, refType, referenceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) PostJournal(ctx context.Context, req dto.PostJournalRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) PostOpening(ctx context.Context, req dto.PostJournalRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) VoidJournal(ctx context.Context, branchID string, journalID string, req dto.VoidJournalRequest, voiderUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, branchID, journalID, req, voiderUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// decEq builds an argument matcher comparing decimals by value, since two
// equal decimals can differ in internal representation.
func decEq(want decimal.Decimal) interface{} {
	return mock.MatchedBy(func(got decimal.Decimal) bool {
		return got.Equal(want)
	})
}
