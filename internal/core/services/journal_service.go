package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/budiutama/branchbooks/internal/apperrors"
	"github.com/budiutama/branchbooks/internal/cache"
	"github.com/budiutama/branchbooks/internal/core/domain"
	portsrepo "github.com/budiutama/branchbooks/internal/core/ports/repositories"
	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/budiutama/branchbooks/internal/dto"
	"github.com/budiutama/branchbooks/internal/events"
	"github.com/budiutama/branchbooks/internal/middleware"
	"github.com/budiutama/branchbooks/internal/utils/accounting"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrDescriptionMissing = errors.New("journal description is required")
	ErrAlreadyVoided      = errors.New("journal is already voided")
)

// entryNumberPrefix for regular entries; closing entries use closingNumberPrefix.
const (
	entryNumberPrefix   = "JE"
	closingNumberPrefix = "JC"
)

// journalService provides the append-only posting and voiding operations.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	closingRepo portsrepo.ClosingRepositoryFacade
	publisher   *events.Publisher
	cache       *cache.BalanceCache
}

// NewJournalService creates a new journal service. publisher and cache may be
// nil; posting then simply skips eventing and caching.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	closingRepo portsrepo.ClosingRepositoryFacade,
	publisher *events.Publisher,
	balanceCache *cache.BalanceCache,
) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		closingRepo: closingRepo,
		publisher:   publisher,
		cache:       balanceCache,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// PostJournal validates and persists a balanced journal entry. Nothing is
// written when any validation fails.
func (s *journalService) PostJournal(ctx context.Context, req dto.PostJournalRequest, creatorUserID string) (*domain.JournalEntry, error) {
	refType := req.ReferenceType
	if refType == "" {
		refType = domain.RefAdjustment
	}
	if refType == domain.RefClosing {
		return nil, fmt.Errorf("%w: closing entries are posted by the closing engine", apperrors.ErrValidation)
	}
	return s.post(ctx, req, refType, creatorUserID)
}

// PostOpening books an opening-balance journal for the branch. Balances for
// the accounts it touches start from these lines from then on; the stored
// initial balance stops counting.
func (s *journalService) PostOpening(ctx context.Context, req dto.PostJournalRequest, creatorUserID string) (*domain.JournalEntry, error) {
	return s.post(ctx, req, domain.RefOpening, creatorUserID)
}

func (s *journalService) post(ctx context.Context, req dto.PostJournalRequest, refType domain.ReferenceType, creatorUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Description == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDescriptionMissing)
	}

	if err := s.ensureYearOpen(ctx, req.BranchID, req.EntryDate.Year()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	journalID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	accountIDs := make([]string, 0, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			JournalID:    journalID,
			LineNumber:   i + 1,
			AccountID:    lineReq.AccountID,
			DebitAmount:  lineReq.Debit,
			CreditAmount: lineReq.Credit,
			Description:  lineReq.Description,
		}
		accountIDs = append(accountIDs, lineReq.AccountID)
	}

	if err := accounting.ValidateLines(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	// A single account on both sides is a legal wash entry; only the line
	// count and balance matter.
	uniqueAccountIDs := uniqueStrings(accountIDs)
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, req.BranchID, uniqueAccountIDs)
	if err != nil {
		logger.Error("Failed to fetch accounts for posting", slog.String("error", err.Error()), slog.String("branch_id", req.BranchID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: %s: ID %s", apperrors.ErrValidation, ErrAccountNotFound, id)
		}
		if acc.IsHeader {
			return nil, fmt.Errorf("%w: account %s is a header account and cannot be posted to", apperrors.ErrValidation, acc.Code)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, acc.Code)
		}
	}

	totalDebit, totalCredit := accounting.EntryTotals(lines)
	entry := domain.JournalEntry{
		JournalID:     journalID,
		BranchID:      req.BranchID,
		EntryDate:     req.EntryDate,
		Description:   req.Description,
		ReferenceType: refType,
		ReferenceID:   req.ReferenceID,
		Status:        domain.Posted,
		TotalDebit:    totalDebit,
		TotalCredit:   totalCredit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.saveWithRetry(ctx, &entry, lines, entryNumberPrefix); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("branch_id", req.BranchID))
		return nil, err
	}
	entry.Lines = lines

	logger.Info("Journal posted",
		slog.String("journal_id", entry.JournalID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("branch_id", entry.BranchID),
		slog.String("reference_type", string(entry.ReferenceType)),
	)

	s.publisher.JournalPosted(ctx, &entry)
	s.cache.Invalidate(ctx, entry.BranchID)
	return &entry, nil
}

// saveWithRetry persists the entry, regenerating the entry number once if a
// concurrent poster grabbed the same sequence value.
func (s *journalService) saveWithRetry(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine, prefix string) error {
	err := s.journalRepo.SaveJournal(ctx, entry, lines, prefix)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrConflict) {
		return fmt.Errorf("failed to save journal: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Warn("Entry number collision, retrying",
		slog.String("branch_id", entry.BranchID), slog.String("entry_number", entry.EntryNumber))
	entry.EntryNumber = ""
	if err := s.journalRepo.SaveJournal(ctx, entry, lines, prefix); err != nil {
		return fmt.Errorf("failed to save journal after retry: %w", err)
	}
	return nil
}

// ensureYearOpen refuses writes into a fiscal year that has an active closing.
func (s *journalService) ensureYearOpen(ctx context.Context, branchID string, year int) error {
	period, err := s.closingRepo.FindActivePeriod(ctx, year, branchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check closing period: %w", err)
	}
	if period != nil {
		return fmt.Errorf("%w: fiscal year %d is closed for branch %s", apperrors.ErrAlreadyClosed, year, branchID)
	}
	return nil
}

// VoidJournal marks a posted entry void. The entry and its lines stay stored
// but stop contributing to balances and reports.
func (s *journalService) VoidJournal(ctx context.Context, branchID string, journalID string, req dto.VoidJournalRequest, voiderUserID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	if entry.BranchID != branchID {
		return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
	}
	if entry.IsVoided() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAlreadyVoided)
	}
	if entry.ReferenceType == domain.RefClosing {
		return nil, fmt.Errorf("%w: closing entries are voided through the closing engine", apperrors.ErrValidation)
	}
	if err := s.ensureYearOpen(ctx, branchID, entry.EntryDate.Year()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkJournalVoided(ctx, journalID, voiderUserID, req.Reason, now); err != nil {
		logger.Error("Failed to void journal", slog.String("error", err.Error()), slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to void journal %s: %w", journalID, err)
	}

	entry.Status = domain.Voided
	entry.VoidedBy = &voiderUserID
	entry.VoidedAt = &now
	entry.VoidReason = req.Reason
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = voiderUserID

	logger.Info("Journal voided",
		slog.String("journal_id", journalID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("branch_id", branchID),
	)

	s.publisher.JournalVoided(ctx, entry)
	s.cache.Invalidate(ctx, branchID)
	return entry, nil
}

// GetJournalByID retrieves a journal entry with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, branchID string, journalID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %s: %w", journalID, err)
	}
	if entry.BranchID != branchID {
		return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, journalID)
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for journal %s: %w", journalID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListJournals retrieves a page of a branch's journal entries, newest first.
func (s *journalService) ListJournals(ctx context.Context, branchID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	entries, nextToken, err := s.journalRepo.ListJournalsByBranch(ctx, branchID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list journals: %w", err)
	}

	resp := &dto.ListJournalsResponse{NextToken: nextToken}
	for i := range entries {
		resp.Journals = append(resp.Journals, dto.ToJournalResponse(&entries[i]))
	}
	return resp, nil
}

// FindByReference retrieves entries created for a source document.
func (s *journalService) FindByReference(ctx context.Context, branchID string, refType domain.ReferenceType, referenceID string) ([]domain.JournalEntry, error) {
	return s.journalRepo.FindJournalsByReference(ctx, branchID, refType, referenceID)
}

// uniqueStrings returns the distinct values of a slice, order preserved.
func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
