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
	"github.com/budiutama/branchbooks/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `journal_id, branch_id, entry_number, entry_date, description, reference_type, reference_id, status, total_debit, total_credit, voided_by, voided_at, void_reason, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, journal_entry_id, line_number, account_id, debit_amount, credit_amount, description`

// closing entries carry a shorter sequence than regular ones.
func sequenceWidth(prefix string) int {
	if prefix == "JC" {
		return 4
	}
	return 6
}

// nextEntryNumber computes the next per-branch sequence value for the given
// prefix and year inside the caller's transaction. The unique index on
// (branch_id, entry_number) catches the race between concurrent posters.
func nextEntryNumber(ctx context.Context, tx pgx.Tx, branchID, prefix string, year int) (string, error) {
	pattern := fmt.Sprintf("%s-%d-%%", prefix, year)
	query := `
		SELECT COALESCE(MAX(CAST(SUBSTRING(entry_number FROM '[0-9]+$') AS INTEGER)), 0)
		FROM journal_entries
		WHERE branch_id = $1 AND entry_number LIKE $2;
	`
	var maxSeq int
	if err := tx.QueryRow(ctx, query, branchID, pattern).Scan(&maxSeq); err != nil {
		return "", fmt.Errorf("failed to read entry sequence: %w", err)
	}
	return fmt.Sprintf("%s-%d-%0*d", prefix, year, sequenceWidth(prefix), maxSeq+1), nil
}

// SaveJournal inserts the entry header and all lines atomically. When
// entry.EntryNumber is empty the next per-branch number is assigned inside
// the same transaction; a sequence collision surfaces as apperrors.ErrConflict
// so the service layer can regenerate and retry.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine, numberPrefix string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertJournalTx(ctx, tx, entry, lines, numberPrefix); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// insertJournalTx writes the entry header and all lines inside the caller's
// transaction. The closing repository uses it to commit the closing journal
// and the closing period together.
func insertJournalTx(ctx context.Context, tx pgx.Tx, entry *domain.JournalEntry, lines []domain.JournalLine, numberPrefix string) error {
	if entry.EntryNumber == "" {
		number, err := nextEntryNumber(ctx, tx, entry.BranchID, numberPrefix, entry.EntryDate.Year())
		if err != nil {
			return err
		}
		entry.EntryNumber = number
	}

	m := mapping.ToModelJournalEntry(*entry)
	entryQuery := `
		INSERT INTO journal_entries (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := tx.Exec(ctx, entryQuery,
		m.JournalID, m.BranchID, m.EntryNumber, m.EntryDate, m.Description,
		m.ReferenceType, m.ReferenceID, m.Status, m.TotalDebit, m.TotalCredit,
		m.VoidedBy, m.VoidedAt, m.VoidReason,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "journal_entries_branch_entry_number_key") {
			return fmt.Errorf("%w: entry number %s", apperrors.ErrConflict, m.EntryNumber)
		}
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: journal %s", apperrors.ErrDuplicate, m.JournalID)
		}
		return fmt.Errorf("failed to insert journal %s: %w", m.JournalID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range lines {
		lm := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			lm.LineID, lm.JournalID, lm.LineNumber, lm.AccountID,
			lm.DebitAmount, lm.CreditAmount, lm.Description,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert journal lines for %s: %w", m.JournalID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close line batch for %s: %w", m.JournalID, err)
	}
	return nil
}

// FindJournalByID retrieves a journal header by ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE journal_id = $1;`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal %s: %w", journalID, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
		}
		return nil, fmt.Errorf("failed to scan journal %s: %w", journalID, err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindLinesByJournalID retrieves a journal's lines in line order.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE journal_entry_id = $1 ORDER BY line_number;`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal %s: %w", journalID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, fmt.Errorf("failed to scan lines for journal %s: %w", journalID, err)
	}
	return mapping.ToDomainJournalLineSlice(ms), nil
}

// FindJournalsByReference retrieves every entry (including voided ones)
// created for a source document, oldest first.
func (r *PgxJournalRepository) FindJournalsByReference(ctx context.Context, branchID string, refType domain.ReferenceType, referenceID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE branch_id = $1 AND reference_type = $2 AND reference_id = $3
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, branchID, string(refType), referenceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals by reference: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan journals by reference: %w", err)
	}

	entries := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nil
}

// ListJournalsByBranch retrieves a keyset-paginated page of a branch's
// journals, newest first.
func (r *PgxJournalRepository) ListJournalsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := []any{branchID}
	query := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE branch_id = $1
	`
	if nextToken != nil && *nextToken != "" {
		lastEntryDate, lastCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		args = append(args, lastEntryDate, lastCreatedAt)
		query += ` AND (entry_date, created_at) < ($2, $3)`
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journals: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan journals: %w", err)
	}

	var newNextToken *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		newNextToken = &token
	}

	entries := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, newNextToken, nil
}

// voidJournalQuery flips a posted entry to voided. It matches zero rows when
// the entry is missing or already voided; callers decide what that means.
const voidJournalQuery = `
	UPDATE journal_entries
	SET status = 'voided', voided_by = $2, voided_at = $3, void_reason = $4,
	    last_updated_at = $3, last_updated_by = $2
	WHERE journal_id = $1 AND status = 'posted';
`

// MarkJournalVoided stamps the void fields on a posted entry. Lines are
// never touched; exclusion happens in the read predicates.
func (r *PgxJournalRepository) MarkJournalVoided(ctx context.Context, journalID, voidedBy, reason string, voidedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, voidJournalQuery, journalID, voidedBy, voidedAt, reason)
	if err != nil {
		return fmt.Errorf("failed to void journal %s: %w", journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: posted journal %s", apperrors.ErrNotFound, journalID)
	}
	return nil
}

// HasPostedEntriesSince reports whether any posted entry exists in the branch
// dated on or after the given date.
func (r *PgxJournalRepository) HasPostedEntriesSince(ctx context.Context, branchID string, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM journal_entries
			WHERE branch_id = $1 AND status = 'posted' AND entry_date >= $2
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, branchID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check entries since %s: %w", date.Format("2006-01-02"), err)
	}
	return exists, nil
}
