package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/budiutama/branchbooks/internal/apperrors"
	"github.com/budiutama/branchbooks/internal/core/domain"
	portsrepo "github.com/budiutama/branchbooks/internal/core/ports/repositories"
	"github.com/budiutama/branchbooks/internal/models"
	"github.com/budiutama/branchbooks/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBranchRepository struct {
	BaseRepository
}

// newPgxBranchRepository creates a new repository for branch data.
func newPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepositoryFacade {
	return &PgxBranchRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BranchRepositoryFacade = (*PgxBranchRepository)(nil)

const branchColumns = `branch_id, name, city, is_active, created_at, created_by, last_updated_at, last_updated_by`

// SaveBranch inserts a new branch.
func (r *PgxBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	m := mapping.ToModelBranch(branch)
	query := `
		INSERT INTO branches (` + branchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BranchID, m.Name, m.City, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: branch %s", apperrors.ErrDuplicate, m.BranchID)
		}
		return fmt.Errorf("failed to save branch %s: %w", m.BranchID, err)
	}
	return nil
}

// FindBranchByID retrieves a branch by its ID.
func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE branch_id = $1;`
	rows, err := r.Pool.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query branch %s: %w", branchID, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Branch])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: branch %s", apperrors.ErrNotFound, branchID)
		}
		return nil, fmt.Errorf("failed to scan branch %s: %w", branchID, err)
	}
	branch := mapping.ToDomainBranch(m)
	return &branch, nil
}

// ListBranches returns every branch ordered by name.
func (r *PgxBranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query branches: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Branch])
	if err != nil {
		return nil, fmt.Errorf("failed to scan branches: %w", err)
	}
	return mapping.ToDomainBranchSlice(ms), nil
}
