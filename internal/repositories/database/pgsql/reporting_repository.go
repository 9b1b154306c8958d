package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/budiutama/branchbooks/internal/apperrors"
	"github.com/budiutama/branchbooks/internal/core/domain"
	portsrepo "github.com/budiutama/branchbooks/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportingRepository aggregates ledger activity in SQL. Balances are never
// stored: every figure is a SUM over posted, non-voided lines at query time.
type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for aggregated ledger reads.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &ReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*ReportingRepository)(nil)

// AccountActivity returns one account's raw activity up to asOf.
func (r *ReportingRepository) AccountActivity(ctx context.Context, branchID, accountID string, asOf time.Time) (*domain.AccountActivityRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			a.is_header,
			a.initial_balance,
			COALESCE(SUM(l.debit_amount) FILTER (WHERE j.status = 'posted'), 0)  AS total_debit,
			COALESCE(SUM(l.credit_amount) FILTER (WHERE j.status = 'posted'), 0) AS total_credit,
			BOOL_OR(COALESCE(j.status = 'posted' AND j.reference_type = 'opening', FALSE)) AS has_opening
		FROM accounts a
		LEFT JOIN journal_entry_lines l ON l.account_id = a.account_id
		LEFT JOIN journal_entries j ON j.journal_id = l.journal_entry_id AND j.entry_date <= $3
		WHERE a.branch_id = $1 AND a.account_id = $2
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.is_header, a.initial_balance;
	`
	row := r.Pool.QueryRow(ctx, query, branchID, accountID, asOf)
	var out domain.AccountActivityRow
	err := row.Scan(&out.AccountID, &out.Code, &out.Name, &out.AccountType, &out.IsHeader, &out.InitialBalance, &out.TotalDebit, &out.TotalCredit, &out.HasOpening)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to load activity for account %s: %w", accountID, err)
	}
	return &out, nil
}

// BranchActivity returns activity rows for every detail account in the
// branch up to asOf, including accounts with no lines.
func (r *ReportingRepository) BranchActivity(ctx context.Context, branchID string, asOf time.Time) ([]domain.AccountActivityRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			a.is_header,
			a.initial_balance,
			COALESCE(SUM(l.debit_amount) FILTER (WHERE j.status = 'posted'), 0)  AS total_debit,
			COALESCE(SUM(l.credit_amount) FILTER (WHERE j.status = 'posted'), 0) AS total_credit,
			BOOL_OR(COALESCE(j.status = 'posted' AND j.reference_type = 'opening', FALSE)) AS has_opening
		FROM accounts a
		LEFT JOIN journal_entry_lines l ON l.account_id = a.account_id
		LEFT JOIN journal_entries j ON j.journal_id = l.journal_entry_id AND j.entry_date <= $2
		WHERE a.branch_id = $1 AND a.is_header = FALSE
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.is_header, a.initial_balance
		ORDER BY a.code;
	`
	return r.collectActivity(ctx, query, branchID, asOf)
}

// RangeActivity returns activity rows for lines dated within [from, to].
// Initial balances and opening flags are irrelevant to a dated window and
// come back zeroed.
func (r *ReportingRepository) RangeActivity(ctx context.Context, branchID string, from, to time.Time) ([]domain.AccountActivityRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			a.is_header,
			0 AS initial_balance,
			COALESCE(SUM(l.debit_amount), 0)  AS total_debit,
			COALESCE(SUM(l.credit_amount), 0) AS total_credit,
			FALSE AS has_opening
		FROM accounts a
		JOIN journal_entry_lines l ON l.account_id = a.account_id
		JOIN journal_entries j ON j.journal_id = l.journal_entry_id
		WHERE a.branch_id = $1
		  AND j.status = 'posted'
		  AND j.entry_date BETWEEN $2 AND $3
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.is_header
		ORDER BY a.code;
	`
	return r.collectActivity(ctx, query, branchID, from, to)
}

func (r *ReportingRepository) collectActivity(ctx context.Context, query string, args ...any) ([]domain.AccountActivityRow, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger activity: %w", err)
	}
	defer rows.Close()

	var out []domain.AccountActivityRow
	for rows.Next() {
		var row domain.AccountActivityRow
		if err := rows.Scan(&row.AccountID, &row.Code, &row.Name, &row.AccountType, &row.IsHeader, &row.InitialBalance, &row.TotalDebit, &row.TotalCredit, &row.HasOpening); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity rows: %w", err)
	}
	return out, nil
}

// TrialBalance returns gross debit and credit totals per detail account.
func (r *ReportingRepository) TrialBalance(ctx context.Context, branchID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			COALESCE(SUM(l.debit_amount) FILTER (WHERE j.status = 'posted'), 0)  AS debit,
			COALESCE(SUM(l.credit_amount) FILTER (WHERE j.status = 'posted'), 0) AS credit
		FROM accounts a
		LEFT JOIN journal_entry_lines l ON l.account_id = a.account_id
		LEFT JOIN journal_entries j ON j.journal_id = l.journal_entry_id AND j.entry_date <= $2
		WHERE a.branch_id = $1 AND a.is_header = FALSE
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, branchID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial balance: %w", err)
	}
	defer rows.Close()

	var out []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountID, &row.Code, &row.AccountName, &row.AccountType, &row.Debit, &row.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan trial balance row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trial balance rows: %w", err)
	}
	return out, nil
}
