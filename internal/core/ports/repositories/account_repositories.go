package repositories

import (
	"context"

	"github.com/budiutama/branchbooks/internal/core/domain"
)

// ListAccountsFilter narrows ListAccounts results. Zero value lists every
// account in the branch.
type ListAccountsFilter struct {
	AccountType *domain.AccountType
	ActiveOnly  bool
	DetailOnly  bool // exclude header accounts
	PaymentOnly bool
}

// AccountRepositoryFacade provides access to the chart of accounts.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, branchID, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, branchID string, accountIDs []string) (map[string]domain.Account, error)
	FindAccountByCode(ctx context.Context, branchID, code string) (*domain.Account, error)
	// FindFirstAccountByTypePattern locates an active, postable account of
	// the given type whose code or name matches the pattern. Used as the
	// fallback for role resolution when the canonical code is absent.
	FindFirstAccountByTypePattern(ctx context.Context, branchID string, accountType domain.AccountType, pattern string) (*domain.Account, error)
	ListAccounts(ctx context.Context, branchID string, filter ListAccountsFilter) ([]domain.Account, error)
}
