package services

import (
	"context"

	"github.com/budiutama/branchbooks/internal/core/domain"
	"github.com/budiutama/branchbooks/internal/dto"
)

// BranchSvcFacade manages the branch registry. Every ledger operation is
// scoped to exactly one branch; branches never share accounts or journals.
type BranchSvcFacade interface {
	// CreateBranch registers a branch and seeds its default chart of accounts.
	CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error)

	GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)

	ListBranches(ctx context.Context) ([]domain.Branch, error)
}
