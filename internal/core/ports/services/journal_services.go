package services

import (
	"context"

	"github.com/budiutama/branchbooks/internal/core/domain"
	"github.com/budiutama/branchbooks/internal/dto"
)

// JournalReaderSvc defines read operations for journal data.
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal entry with its lines.
	GetJournalByID(ctx context.Context, branchID string, journalID string) (*domain.JournalEntry, error)

	// ListJournals retrieves a paginated list of a branch's journal entries,
	// newest first.
	ListJournals(ctx context.Context, branchID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)

	// FindByReference retrieves entries created for a source document.
	FindByReference(ctx context.Context, branchID string, refType domain.ReferenceType, referenceID string) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal data. The ledger is
// append-only: entries are posted or voided, never edited or deleted.
type JournalWriterSvc interface {
	// PostJournal validates and persists a balanced journal entry.
	PostJournal(ctx context.Context, req dto.PostJournalRequest, creatorUserID string) (*domain.JournalEntry, error)

	// PostOpening books an opening-balance journal for the branch. From then
	// on, replayed balances for the touched accounts start from the opening
	// lines instead of the accounts' initial balances.
	PostOpening(ctx context.Context, req dto.PostJournalRequest, creatorUserID string) (*domain.JournalEntry, error)

	// VoidJournal marks a posted entry void. The entry and its lines remain
	// stored but stop contributing to every balance and report.
	VoidJournal(ctx context.Context, branchID string, journalID string, req dto.VoidJournalRequest, voiderUserID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
