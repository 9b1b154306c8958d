package repositories

import (
	"context"
	"time"

	"github.com/budiutama/branchbooks/internal/core/domain"
)

// ClosingRepositoryFacade persists fiscal-year closing periods. The closing
// journal and its period always move together, so the write methods take
// both and commit them in one database transaction.
type ClosingRepositoryFacade interface {
	// SaveClosingWithJournal posts the closing journal and inserts the active
	// period atomically. A second active period for the same (year, branch)
	// violates the partial unique index and returns apperrors.ErrAlreadyClosed,
	// rolling the journal back with it; an entry-number collision returns
	// apperrors.ErrConflict so the service can regenerate and retry.
	SaveClosingWithJournal(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine, numberPrefix string, period domain.ClosingPeriod) error
	FindActivePeriod(ctx context.Context, year int, branchID string) (*domain.ClosingPeriod, error)
	// VoidClosingWithJournal voids the closing journal and its period
	// atomically. A journal already voided by an earlier interrupted attempt
	// is tolerated so the void can be retried.
	VoidClosingWithJournal(ctx context.Context, closingID, journalID, voidedBy, reason string, voidedAt time.Time) error
	ListPeriodsByBranch(ctx context.Context, branchID string) ([]domain.ClosingPeriod, error)
}
