package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budiutama/branchbooks/internal/apperrors"
	"github.com/budiutama/branchbooks/internal/core/domain"
	portsrepo "github.com/budiutama/branchbooks/internal/core/ports/repositories"
	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/budiutama/branchbooks/internal/dto"
	"github.com/budiutama/branchbooks/internal/middleware"
	"github.com/shopspring/decimal"
)

// accountService manages the per-branch chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetAccountByID retrieves a specific account by its unique identifier.
func (s *accountService) GetAccountByID(ctx context.Context, branchID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, branchID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its ledger code within a branch.
func (s *accountService) GetAccountByCode(ctx context.Context, branchID string, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, branchID, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find account with code %s: %w", code, err)
	}
	return account, nil
}

// ListAccounts retrieves accounts for a branch, optionally filtered.
func (s *accountService) ListAccounts(ctx context.Context, branchID string, filter portsrepo.ListAccountsFilter) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, branchID, filter)
}

// CreateAccount persists a new account after validating code uniqueness and
// the parent link.
func (s *accountService) CreateAccount(ctx context.Context, branchID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.InitialBalance.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance must not be negative", apperrors.ErrValidation)
	}

	// Code must be unique within the branch.
	existing, err := s.accountRepo.FindAccountByCode(ctx, branchID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check code uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code %s already exists in branch", apperrors.ErrDuplicate, req.Code)
	}

	if req.ParentAccountID != nil {
		parent, err := s.accountRepo.FindAccountByID(ctx, branchID, *req.ParentAccountID)
		if err != nil {
			return nil, fmt.Errorf("%w: parent account %s", apperrors.ErrValidation, *req.ParentAccountID)
		}
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: parent account type %s does not match %s", apperrors.ErrValidation, parent.AccountType, req.AccountType)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:        uuid.NewString(),
		BranchID:         branchID,
		Code:             req.Code,
		Name:             req.Name,
		AccountType:      req.AccountType,
		ParentAccountID:  req.ParentAccountID,
		IsHeader:         req.IsHeader,
		IsActive:         true,
		IsPaymentAccount: req.IsPaymentAccount,
		InitialBalance:   req.InitialBalance,
		Description:      req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("branch_id", branchID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code), slog.String("branch_id", branchID))
	return &account, nil
}

// UpdateAccount updates an existing account's mutable details. A parent
// change is checked for cycles before being accepted.
func (s *accountService) UpdateAccount(ctx context.Context, branchID string, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, branchID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.IsPaymentAccount != nil {
		account.IsPaymentAccount = *req.IsPaymentAccount
	}
	if req.ParentAccountID != nil {
		if err := s.checkParentCycle(ctx, branchID, accountID, *req.ParentAccountID); err != nil {
			return nil, err
		}
		account.ParentAccountID = req.ParentAccountID
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = updaterUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}
	return account, nil
}

// checkParentCycle walks the parent chain from the proposed parent and fails
// if it reaches the account being updated.
func (s *accountService) checkParentCycle(ctx context.Context, branchID, accountID, parentID string) error {
	const maxDepth = 32
	current := parentID
	for depth := 0; depth < maxDepth; depth++ {
		if current == accountID {
			return fmt.Errorf("%w: parent chain would form a cycle", apperrors.ErrValidation)
		}
		parent, err := s.accountRepo.FindAccountByID(ctx, branchID, current)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: parent account %s", apperrors.ErrValidation, current)
			}
			return fmt.Errorf("failed to walk parent chain: %w", err)
		}
		if parent.ParentAccountID == nil {
			return nil
		}
		current = *parent.ParentAccountID
	}
	return fmt.Errorf("%w: parent chain too deep", apperrors.ErrValidation)
}

// DeactivateAccount marks an account as inactive without deleting history.
func (s *accountService) DeactivateAccount(ctx context.Context, branchID string, accountID string, updaterUserID string) error {
	inactive := false
	_, err := s.UpdateAccount(ctx, branchID, accountID, dto.UpdateAccountRequest{IsActive: &inactive}, updaterUserID)
	return err
}

// ResolveRole finds the account bound to a bookkeeping role: canonical codes
// first, then an active postable account of the role's type whose name
// matches the binding pattern.
func (s *accountService) ResolveRole(ctx context.Context, branchID string, role domain.AccountRole) (*domain.Account, error) {
	binding, ok := domain.RoleBindings[role]
	if !ok {
		return nil, fmt.Errorf("%w: unknown account role %s", apperrors.ErrValidation, role)
	}

	for _, code := range binding.Codes {
		account, err := s.accountRepo.FindAccountByCode(ctx, branchID, code)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to resolve role %s by code: %w", role, err)
		}
		if account.AccountType == binding.AccountType && account.IsPostable() {
			return account, nil
		}
	}

	account, err := s.accountRepo.FindFirstAccountByTypePattern(ctx, branchID, binding.AccountType, binding.NamePattern)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no account bound to role %s in branch %s", apperrors.ErrNotFound, role, branchID)
		}
		return nil, fmt.Errorf("failed to resolve role %s by pattern: %w", role, err)
	}
	return account, nil
}

// ResolveExpenseCategory finds the expense account whose name matches a
// free-text category, falling back to the general-expense account.
func (s *accountService) ResolveExpenseCategory(ctx context.Context, branchID string, category string) (*domain.Account, error) {
	if category != "" {
		account, err := s.accountRepo.FindFirstAccountByTypePattern(ctx, branchID, domain.Expense, category)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to resolve expense category %q: %w", category, err)
		}
	}
	return s.ResolveRole(ctx, branchID, domain.RoleGeneralExpense)
}

// defaultChartEntry seeds one account of the standard chart.
type defaultChartEntry struct {
	Code        string
	Name        string
	Type        domain.AccountType
	IsHeader    bool
	IsPayment   bool
	ParentCode  string
	Description string
}

// defaultChart is the standard small-business chart seeded into every new
// branch. Detail codes match the canonical role bindings.
var defaultChart = []defaultChartEntry{
	{Code: "1-0000", Name: "Aset", Type: domain.Asset, IsHeader: true},
	{Code: "1-1100", Name: "Kas", Type: domain.Asset, IsPayment: true, ParentCode: "1-0000"},
	{Code: "1-1110", Name: "Bank", Type: domain.Asset, IsPayment: true, ParentCode: "1-0000"},
	{Code: "1-1200", Name: "Piutang Usaha", Type: domain.Asset, ParentCode: "1-0000"},
	{Code: "1-1300", Name: "Persediaan Barang", Type: domain.Asset, ParentCode: "1-0000"},
	{Code: "1-1400", Name: "Panjar Karyawan", Type: domain.Asset, ParentCode: "1-0000"},
	{Code: "1450", Name: "Akumulasi Penyusutan", Type: domain.Asset, ParentCode: "1-0000"},
	{Code: "2-0000", Name: "Kewajiban", Type: domain.Liability, IsHeader: true},
	{Code: "2-1100", Name: "Hutang Usaha", Type: domain.Liability, ParentCode: "2-0000"},
	{Code: "2-1300", Name: "Hutang Pajak", Type: domain.Liability, ParentCode: "2-0000"},
	{Code: "3-0000", Name: "Modal", Type: domain.Equity, IsHeader: true},
	{Code: "3100", Name: "Modal Pemilik", Type: domain.Equity, ParentCode: "3-0000"},
	{Code: "3200", Name: "Laba Ditahan", Type: domain.Equity, ParentCode: "3-0000"},
	{Code: "3300", Name: "Ikhtisar Laba Rugi", Type: domain.Equity, ParentCode: "3-0000"},
	{Code: "4-0000", Name: "Pendapatan", Type: domain.Revenue, IsHeader: true},
	{Code: "4-1000", Name: "Pendapatan Penjualan", Type: domain.Revenue, ParentCode: "4-0000"},
	{Code: "4-2000", Name: "Pendapatan Lain-lain", Type: domain.Revenue, ParentCode: "4-0000"},
	{Code: "5-0000", Name: "Harga Pokok Penjualan", Type: domain.Expense, IsHeader: true},
	{Code: "5-1000", Name: "HPP Penjualan", Type: domain.Expense, ParentCode: "5-0000"},
	{Code: "6-0000", Name: "Beban Operasional", Type: domain.Expense, IsHeader: true},
	{Code: "6-1000", Name: "Beban Umum", Type: domain.Expense, ParentCode: "6-0000"},
	{Code: "6210", Name: "Beban Gaji", Type: domain.Expense, ParentCode: "6-0000"},
	{Code: "6240", Name: "Beban Penyusutan", Type: domain.Expense, ParentCode: "6-0000"},
	{Code: "6800", Name: "Beban Pajak", Type: domain.Expense, ParentCode: "6-0000"},
	{Code: "6900", Name: "Beban Lain-lain", Type: domain.Expense, ParentCode: "6-0000"},
}

// SeedDefaultAccounts creates the standard chart for a new branch. Codes that
// already exist are left untouched, so seeding is safe to repeat.
func (s *accountService) SeedDefaultAccounts(ctx context.Context, branchID string, creatorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()
	created := make(map[string]string, len(defaultChart))

	for _, entry := range defaultChart {
		existing, err := s.accountRepo.FindAccountByCode(ctx, branchID, entry.Code)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check existing account %s: %w", entry.Code, err)
		}
		if existing != nil {
			created[entry.Code] = existing.AccountID
			continue
		}

		var parentID *string
		if entry.ParentCode != "" {
			if id, ok := created[entry.ParentCode]; ok {
				parentID = &id
			}
		}

		account := domain.Account{
			AccountID:        uuid.NewString(),
			BranchID:         branchID,
			Code:             entry.Code,
			Name:             entry.Name,
			AccountType:      entry.Type,
			ParentAccountID:  parentID,
			IsHeader:         entry.IsHeader,
			IsActive:         true,
			IsPaymentAccount: entry.IsPayment,
			InitialBalance:   decimal.Zero,
			Description:      entry.Description,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", entry.Code, err)
		}
		created[entry.Code] = account.AccountID
	}

	logger.Info("Default chart of accounts seeded", slog.String("branch_id", branchID), slog.Int("accounts", len(created)))
	return nil
}
