package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/budiutama/branchbooks/internal/apperrors"
	"github.com/budiutama/branchbooks/internal/core/domain"
	portsrepo "github.com/budiutama/branchbooks/internal/core/ports/repositories"
	"github.com/budiutama/branchbooks/internal/models"
	"github.com/budiutama/branchbooks/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, branch_id, code, name, account_type, parent_account_id, is_header, is_active, is_payment_account, initial_balance, description, created_at, created_by, last_updated_at, last_updated_by`

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.BranchID, m.Code, m.Name, m.AccountType,
		m.ParentAccountID, m.IsHeader, m.IsActive, m.IsPaymentAccount,
		m.InitialBalance, m.Description,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: account code %s in branch %s", apperrors.ErrDuplicate, m.Code, m.BranchID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// UpdateAccount updates an account's mutable columns.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $3, parent_account_id = $4, is_active = $5, is_payment_account = $6,
		    description = $7, last_updated_at = $8, last_updated_by = $9
		WHERE branch_id = $1 AND account_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.BranchID, m.AccountID,
		m.Name, m.ParentAccountID, m.IsActive, m.IsPaymentAccount,
		m.Description, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID within a branch.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, branchID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE branch_id = $1 AND account_id = $2;`
	return r.findOne(ctx, query, branchID, accountID)
}

// FindAccountByCode retrieves an account by its ledger code within a branch.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, branchID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE branch_id = $1 AND code = $2;`
	return r.findOne(ctx, query, branchID, code)
}

// FindFirstAccountByTypePattern locates an active, postable account of the
// given type whose code or name matches the pattern, lowest code first.
func (r *PgxAccountRepository) FindFirstAccountByTypePattern(ctx context.Context, branchID string, accountType domain.AccountType, pattern string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE branch_id = $1 AND account_type = $2
		  AND is_active = TRUE AND is_header = FALSE
		  AND (code ILIKE $3 OR name ILIKE $3)
		ORDER BY code
		LIMIT 1;
	`
	return r.findOne(ctx, query, branchID, string(accountType), "%"+pattern+"%")
}

func (r *PgxAccountRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account", apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID. Missing IDs are
// simply absent from the map; callers decide whether that is an error.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, branchID string, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE branch_id = $1 AND account_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, branchID, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}

	out := make(map[string]domain.Account, len(ms))
	for _, m := range ms {
		out[m.AccountID] = mapping.ToDomainAccount(m)
	}
	return out, nil
}

// ListAccounts retrieves a branch's accounts ordered by code, with optional
// filters.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, branchID string, filter portsrepo.ListAccountsFilter) ([]domain.Account, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + accountColumns + ` FROM accounts WHERE branch_id = $1`)
	args := []any{branchID}

	if filter.AccountType != nil {
		args = append(args, string(*filter.AccountType))
		fmt.Fprintf(&sb, " AND account_type = $%d", len(args))
	}
	if filter.ActiveOnly {
		sb.WriteString(" AND is_active = TRUE")
	}
	if filter.DetailOnly {
		sb.WriteString(" AND is_header = FALSE")
	}
	if filter.PaymentOnly {
		sb.WriteString(" AND is_payment_account = TRUE")
	}
	sb.WriteString(" ORDER BY code;")

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}
