package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/budiutama/branchbooks/internal/apperrors"
	"github.com/budiutama/branchbooks/internal/core/domain"
	portsrepo "github.com/budiutama/branchbooks/internal/core/ports/repositories"
	"github.com/budiutama/branchbooks/internal/models"
	"github.com/budiutama/branchbooks/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClosingRepository struct {
	BaseRepository
}

// newPgxClosingRepository creates a new repository for closing periods.
func newPgxClosingRepository(pool *pgxpool.Pool) portsrepo.ClosingRepositoryFacade {
	return &PgxClosingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClosingRepositoryFacade = (*PgxClosingRepository)(nil)

const closingColumns = `closing_id, year, branch_id, closing_journal_id, net_income, status, closed_at, closed_by`

// SaveClosingWithJournal posts the closing journal and inserts the active
// period in one transaction, so the ledger never carries a closing sweep
// without its period or a period without its sweep. The partial unique index
// on (year, branch_id) WHERE status = 'active' rejects a second active close
// with apperrors.ErrAlreadyClosed and rolls the journal back with it; an
// entry-number collision rolls everything back as apperrors.ErrConflict so
// the service can regenerate and retry.
func (r *PgxClosingRepository) SaveClosingWithJournal(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine, numberPrefix string, period domain.ClosingPeriod) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertJournalTx(ctx, tx, entry, lines, numberPrefix); err != nil {
		return err
	}

	m := mapping.ToModelClosingPeriod(period)
	query := `
		INSERT INTO closing_periods (` + closingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, query,
		m.ClosingID, m.Year, m.BranchID, m.ClosingJournalID,
		m.NetIncome, m.Status, m.ClosedAt, m.ClosedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "closing_periods_year_branch_active_key") {
			return fmt.Errorf("%w: year %d, branch %s", apperrors.ErrAlreadyClosed, m.Year, m.BranchID)
		}
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: closing period %s", apperrors.ErrDuplicate, m.ClosingID)
		}
		return fmt.Errorf("failed to save closing period %s: %w", m.ClosingID, err)
	}

	return r.Commit(ctx, tx)
}

// FindActivePeriod retrieves the active closing period for a year and branch.
func (r *PgxClosingRepository) FindActivePeriod(ctx context.Context, year int, branchID string) (*domain.ClosingPeriod, error) {
	query := `
		SELECT ` + closingColumns + `
		FROM closing_periods
		WHERE year = $1 AND branch_id = $2 AND status = 'active';
	`
	rows, err := r.Pool.Query(ctx, query, year, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query closing period: %w", err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.ClosingPeriod])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no active closing for year %d, branch %s", apperrors.ErrNotFound, year, branchID)
		}
		return nil, fmt.Errorf("failed to scan closing period: %w", err)
	}
	period := mapping.ToDomainClosingPeriod(m)
	return &period, nil
}

// VoidClosingWithJournal voids the closing journal and flips its period to
// voided in one transaction. A closing journal already voided by an earlier
// interrupted attempt is tolerated, so the void can be retried until the
// period itself flips.
func (r *PgxClosingRepository) VoidClosingWithJournal(ctx context.Context, closingID, journalID, voidedBy, reason string, voidedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, voidJournalQuery, journalID, voidedBy, voidedAt, reason)
	if err != nil {
		return fmt.Errorf("failed to void closing journal %s: %w", journalID, err)
	}
	if tag.RowsAffected() == 0 {
		var status string
		if err := tx.QueryRow(ctx, `SELECT status FROM journal_entries WHERE journal_id = $1;`, journalID).Scan(&status); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: closing journal %s", apperrors.ErrNotFound, journalID)
			}
			return fmt.Errorf("failed to check closing journal %s: %w", journalID, err)
		}
		if status != string(domain.Voided) {
			return fmt.Errorf("%w: posted closing journal %s", apperrors.ErrNotFound, journalID)
		}
	}

	periodQuery := `
		UPDATE closing_periods
		SET status = 'voided', voided_by = $2, voided_at = $3
		WHERE closing_id = $1 AND status = 'active';
	`
	tag, err = tx.Exec(ctx, periodQuery, closingID, voidedBy, voidedAt)
	if err != nil {
		return fmt.Errorf("failed to void closing period %s: %w", closingID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: active closing period %s", apperrors.ErrNotFound, closingID)
	}

	return r.Commit(ctx, tx)
}

// ListPeriodsByBranch returns the branch's closing history, newest year
// first, active before voided within a year.
func (r *PgxClosingRepository) ListPeriodsByBranch(ctx context.Context, branchID string) ([]domain.ClosingPeriod, error) {
	query := `
		SELECT ` + closingColumns + `
		FROM closing_periods
		WHERE branch_id = $1
		ORDER BY year DESC, status, closed_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query closing periods: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ClosingPeriod])
	if err != nil {
		return nil, fmt.Errorf("failed to scan closing periods: %w", err)
	}

	periods := make([]domain.ClosingPeriod, len(ms))
	for i, m := range ms {
		periods[i] = mapping.ToDomainClosingPeriod(m)
	}
	return periods, nil
}
