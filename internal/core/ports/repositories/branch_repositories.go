package repositories

import (
	"context"

	"github.com/budiutama/branchbooks/internal/core/domain"
)

// BranchRepositoryFacade provides access to the branch registry.
type BranchRepositoryFacade interface {
	SaveBranch(ctx context.Context, branch domain.Branch) error
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}
