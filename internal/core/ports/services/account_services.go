package services

import (
	"context"

	"github.com/budiutama/branchbooks/internal/core/domain"
	"github.com/budiutama/branchbooks/internal/core/ports/repositories"
	"github.com/budiutama/branchbooks/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, branchID string, accountID string) (*domain.Account, error)

	// GetAccountByCode retrieves an account by its ledger code within a branch.
	GetAccountByCode(ctx context.Context, branchID string, code string) (*domain.Account, error)

	// ListAccounts retrieves accounts for a branch, optionally filtered.
	ListAccounts(ctx context.Context, branchID string, filter repositories.ListAccountsFilter) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts.
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, branchID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's mutable details.
	UpdateAccount(ctx context.Context, branchID string, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive without deleting history.
	DeactivateAccount(ctx context.Context, branchID string, accountID string, updaterUserID string) error

	// SeedDefaultAccounts creates the standard chart of accounts for a new
	// branch. Existing codes are left untouched.
	SeedDefaultAccounts(ctx context.Context, branchID string, creatorUserID string) error
}

// AccountResolverSvc resolves well-known bookkeeping roles to concrete
// accounts so that automated posting never hardcodes account IDs.
type AccountResolverSvc interface {
	// ResolveRole finds the account bound to the given role in a branch:
	// canonical code first, then name-pattern fallback within the role's
	// account type. Returns apperrors.ErrNotFound when neither matches.
	ResolveRole(ctx context.Context, branchID string, role domain.AccountRole) (*domain.Account, error)

	// ResolveExpenseCategory finds the expense account for a free-text
	// category name, falling back to the general-expense role account.
	ResolveExpenseCategory(ctx context.Context, branchID string, category string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountResolverSvc
}
