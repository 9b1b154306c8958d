package repositories

import (
	"context"
	"time"

	"github.com/budiutama/branchbooks/internal/core/domain"
)

// JournalRepositoryFacade persists and reads journal entries.
//
// SaveJournal is atomic: the header and all lines are committed in one
// database transaction or not at all. When entry.EntryNumber is empty the
// repository assigns the next per-branch number for numberPrefix inside the
// same transaction; a unique-constraint collision under concurrent posting
// surfaces as apperrors.ErrConflict so the service can regenerate and retry.
type JournalRepositoryFacade interface {
	SaveJournal(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine, numberPrefix string) error
	FindJournalByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)
	FindJournalsByReference(ctx context.Context, branchID string, refType domain.ReferenceType, referenceID string) ([]domain.JournalEntry, error)
	ListJournalsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
	// MarkJournalVoided stamps the void fields; it never touches lines.
	MarkJournalVoided(ctx context.Context, journalID, voidedBy, reason string, voidedAt time.Time) error
	// HasPostedEntriesSince reports whether any posted, non-voided entry
	// exists in the branch dated on or after the given date.
	HasPostedEntriesSince(ctx context.Context, branchID string, date time.Time) (bool, error)
}
