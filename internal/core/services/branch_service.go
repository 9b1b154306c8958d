package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budiutama/branchbooks/internal/core/domain"
	portsrepo "github.com/budiutama/branchbooks/internal/core/ports/repositories"
	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/budiutama/branchbooks/internal/dto"
	"github.com/budiutama/branchbooks/internal/middleware"
)

// branchService manages the branch registry.
type branchService struct {
	branchRepo portsrepo.BranchRepositoryFacade
	accountSvc portssvc.AccountWriterSvc
}

// NewBranchService creates a new branch service.
func NewBranchService(branchRepo portsrepo.BranchRepositoryFacade, accountSvc portssvc.AccountWriterSvc) portssvc.BranchSvcFacade {
	return &branchService{branchRepo: branchRepo, accountSvc: accountSvc}
}

var _ portssvc.BranchSvcFacade = (*branchService)(nil)

// CreateBranch registers a branch and seeds its default chart of accounts.
func (s *branchService) CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creatorUserID string) (*domain.Branch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	branch := domain.Branch{
		BranchID: uuid.NewString(),
		Name:     req.Name,
		City:     req.City,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.branchRepo.SaveBranch(ctx, branch); err != nil {
		return nil, fmt.Errorf("failed to save branch: %w", err)
	}

	if err := s.accountSvc.SeedDefaultAccounts(ctx, branch.BranchID, creatorUserID); err != nil {
		logger.Error("Failed to seed default accounts for new branch", slog.String("branch_id", branch.BranchID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to seed default accounts: %w", err)
	}

	logger.Info("Branch created", slog.String("branch_id", branch.BranchID), slog.String("name", branch.Name))
	return &branch, nil
}

// GetBranchByID retrieves a branch by its identifier.
func (s *branchService) GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	branch, err := s.branchRepo.FindBranchByID(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to find branch %s: %w", branchID, err)
	}
	return branch, nil
}

// ListBranches returns every registered branch.
func (s *branchService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return s.branchRepo.ListBranches(ctx)
}
