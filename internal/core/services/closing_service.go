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
	"github.com/budiutama/branchbooks/internal/events"
	"github.com/budiutama/branchbooks/internal/middleware"
	"github.com/budiutama/branchbooks/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// closingService runs fiscal-year closings: one balanced closing journal
// sweeps every revenue and expense balance of the year into retained
// earnings, and a ClosingPeriod records that the year is shut.
type closingService struct {
	closingRepo   portsrepo.ClosingRepositoryFacade
	journalRepo   portsrepo.JournalRepositoryFacade
	reportingRepo portsrepo.ReportingRepositoryFacade
	accountSvc    portssvc.AccountResolverSvc
	publisher     *events.Publisher
	cache         *cache.BalanceCache
}

// NewClosingService creates a new closing service. publisher and cache may be
// nil.
func NewClosingService(
	closingRepo portsrepo.ClosingRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	reportingRepo portsrepo.ReportingRepositoryFacade,
	accountSvc portssvc.AccountResolverSvc,
	publisher *events.Publisher,
	balanceCache *cache.BalanceCache,
) portssvc.ClosingSvcFacade {
	return &closingService{
		closingRepo:   closingRepo,
		journalRepo:   journalRepo,
		reportingRepo: reportingRepo,
		accountSvc:    accountSvc,
		publisher:     publisher,
		cache:         balanceCache,
	}
}

var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

// yearBounds returns the UTC instants spanning a fiscal year.
func yearBounds(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
	return start, end
}

// Preview computes what Execute would post, without writing anything.
// Safe to call repeatedly, including for already-closed years.
func (s *closingService) Preview(ctx context.Context, branchID string, year int) (*domain.ClosingPreview, error) {
	preview, err := s.buildPreview(ctx, branchID, year)
	if err != nil {
		return nil, err
	}

	period, err := s.closingRepo.FindActivePeriod(ctx, year, branchID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check closing period: %w", err)
	}
	preview.AlreadyClosed = period != nil
	return preview, nil
}

func (s *closingService) buildPreview(ctx context.Context, branchID string, year int) (*domain.ClosingPreview, error) {
	from, to := yearBounds(year)
	rows, err := s.reportingRepo.RangeActivity(ctx, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load year activity: %w", err)
	}

	preview := &domain.ClosingPreview{
		Year:         year,
		BranchID:     branchID,
		RevenueTotal: decimal.Zero,
		COGSTotal:    decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}

	for _, row := range rows {
		if row.IsHeader {
			continue
		}
		switch row.AccountType {
		case domain.Revenue:
			balance := accounting.SignedAmount(row.TotalDebit, row.TotalCredit, row.AccountType)
			if balance.IsZero() {
				continue
			}
			preview.RevenueTotal = preview.RevenueTotal.Add(balance)
			preview.RevenueAccounts = append(preview.RevenueAccounts, domain.AccountYearBalance{
				AccountID: row.AccountID, Code: row.Code, Name: row.Name, Balance: balance,
			})
		case domain.Expense:
			balance := accounting.SignedAmount(row.TotalDebit, row.TotalCredit, row.AccountType)
			if balance.IsZero() {
				continue
			}
			account := domain.Account{AccountType: row.AccountType, Code: row.Code}
			if account.IsCOGS() {
				preview.COGSTotal = preview.COGSTotal.Add(balance)
			} else {
				preview.ExpenseTotal = preview.ExpenseTotal.Add(balance)
			}
			preview.ExpenseAccounts = append(preview.ExpenseAccounts, domain.AccountYearBalance{
				AccountID: row.AccountID, Code: row.Code, Name: row.Name, Balance: balance,
			})
		}
	}

	preview.NetIncome = preview.RevenueTotal.Sub(preview.COGSTotal).Sub(preview.ExpenseTotal)
	return preview, nil
}

// Execute performs the close: posts the closing journal dated December 31 and
// records the active period. Executing twice without voiding fails with
// apperrors.ErrAlreadyClosed.
func (s *closingService) Execute(ctx context.Context, branchID string, year int, closerUserID string) (*domain.ClosingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.closingRepo.FindActivePeriod(ctx, year, branchID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check closing period: %w", err)
	}
	if period != nil {
		return nil, fmt.Errorf("%w: year %d, branch %s", apperrors.ErrAlreadyClosed, year, branchID)
	}

	preview, err := s.buildPreview(ctx, branchID, year)
	if err != nil {
		return nil, err
	}
	if len(preview.RevenueAccounts) == 0 && len(preview.ExpenseAccounts) == 0 {
		return nil, fmt.Errorf("%w: no revenue or expense activity in %d for branch %s", apperrors.ErrValidation, year, branchID)
	}

	// Net income lands in retained earnings; the income-summary account is
	// the fallback when the chart has no retained-earnings account.
	target, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleRetainedEarnings)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		target, err = s.accountSvc.ResolveRole(ctx, branchID, domain.RoleIncomeSummary)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve closing target account: %w", err)
		}
	}

	entry, lines := s.buildClosingEntry(branchID, year, preview, target.AccountID, closerUserID)
	if err := accounting.ValidateLines(lines); err != nil {
		return nil, fmt.Errorf("closing journal does not balance: %w", err)
	}

	now := time.Now().UTC()
	newPeriod := domain.ClosingPeriod{
		ClosingID:        uuid.NewString(),
		Year:             year,
		BranchID:         branchID,
		ClosingJournalID: entry.JournalID,
		NetIncome:        preview.NetIncome,
		Status:           domain.ClosingActive,
		ClosedAt:         now,
		ClosedBy:         closerUserID,
	}
	// Journal and period commit together; a concurrent Execute losing the
	// race rolls both back and surfaces apperrors.ErrAlreadyClosed.
	if err := s.closingRepo.SaveClosingWithJournal(ctx, entry, lines, closingNumberPrefix, newPeriod); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			entry.EntryNumber = ""
			err = s.closingRepo.SaveClosingWithJournal(ctx, entry, lines, closingNumberPrefix, newPeriod)
		}
		if err != nil {
			logger.Error("Failed to record closing", slog.String("error", err.Error()), slog.String("branch_id", branchID), slog.Int("year", year))
			return nil, fmt.Errorf("failed to close year %d: %w", year, err)
		}
	}

	logger.Info("Fiscal year closed",
		slog.String("branch_id", branchID),
		slog.Int("year", year),
		slog.String("closing_journal_id", entry.JournalID),
		slog.String("net_income", preview.NetIncome.String()),
	)

	s.publisher.PeriodClosed(ctx, &newPeriod)
	s.cache.Invalidate(ctx, branchID)
	return &newPeriod, nil
}

// buildClosingEntry assembles the single balanced closing journal: debit each
// revenue balance, credit each expense balance, and book net income against
// the target equity account.
func (s *closingService) buildClosingEntry(branchID string, year int, preview *domain.ClosingPreview, targetAccountID, closerUserID string) (*domain.JournalEntry, []domain.JournalLine) {
	now := time.Now().UTC()
	journalID := uuid.NewString()
	_, entryDate := yearBounds(year)

	var lines []domain.JournalLine
	addLine := func(accountID string, debit, credit decimal.Decimal, desc string) {
		lines = append(lines, domain.JournalLine{
			LineID:       uuid.NewString(),
			JournalID:    journalID,
			LineNumber:   len(lines) + 1,
			AccountID:    accountID,
			DebitAmount:  debit,
			CreditAmount: credit,
			Description:  desc,
		})
	}

	for _, acc := range preview.RevenueAccounts {
		// A contra balance (negative revenue) closes on the credit side.
		if acc.Balance.IsPositive() {
			addLine(acc.AccountID, acc.Balance, decimal.Zero, fmt.Sprintf("Penutupan %s", acc.Name))
		} else {
			addLine(acc.AccountID, decimal.Zero, acc.Balance.Neg(), fmt.Sprintf("Penutupan %s", acc.Name))
		}
	}
	for _, acc := range preview.ExpenseAccounts {
		if acc.Balance.IsPositive() {
			addLine(acc.AccountID, decimal.Zero, acc.Balance, fmt.Sprintf("Penutupan %s", acc.Name))
		} else {
			addLine(acc.AccountID, acc.Balance.Neg(), decimal.Zero, fmt.Sprintf("Penutupan %s", acc.Name))
		}
	}
	if preview.NetIncome.IsPositive() {
		addLine(targetAccountID, decimal.Zero, preview.NetIncome, fmt.Sprintf("Laba bersih %d", year))
	} else if preview.NetIncome.IsNegative() {
		addLine(targetAccountID, preview.NetIncome.Neg(), decimal.Zero, fmt.Sprintf("Rugi bersih %d", year))
	}

	totalDebit, totalCredit := accounting.EntryTotals(lines)
	entry := &domain.JournalEntry{
		JournalID:     journalID,
		BranchID:      branchID,
		EntryDate:     entryDate,
		Description:   fmt.Sprintf("Jurnal Penutup Tahun %d", year),
		ReferenceType: domain.RefClosing,
		ReferenceID:   fmt.Sprintf("closing-%d", year),
		Status:        domain.Posted,
		TotalDebit:    totalDebit,
		TotalCredit:   totalCredit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     closerUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: closerUserID,
		},
	}
	return entry, lines
}

// VoidClosing voids the closing journal and the period, reopening the year.
// Refused while posted entries exist in any later year.
func (s *closingService) VoidClosing(ctx context.Context, branchID string, year int, reason string, voiderUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.closingRepo.FindActivePeriod(ctx, year, branchID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: year %d, branch %s", apperrors.ErrNotClosed, year, branchID)
		}
		return fmt.Errorf("failed to find closing period: %w", err)
	}
	if period == nil {
		return fmt.Errorf("%w: year %d, branch %s", apperrors.ErrNotClosed, year, branchID)
	}

	nextYearStart, _ := yearBounds(year + 1)
	hasLater, err := s.journalRepo.HasPostedEntriesSince(ctx, branchID, nextYearStart)
	if err != nil {
		return fmt.Errorf("failed to check later entries: %w", err)
	}
	if hasLater {
		return fmt.Errorf("%w: posted entries exist after %d; void them first", apperrors.ErrConflict, year)
	}

	now := time.Now().UTC()
	if reason == "" {
		reason = fmt.Sprintf("closing of %d voided", year)
	}
	if err := s.closingRepo.VoidClosingWithJournal(ctx, period.ClosingID, period.ClosingJournalID, voiderUserID, reason, now); err != nil {
		return fmt.Errorf("failed to void closing: %w", err)
	}

	logger.Info("Fiscal year reopened",
		slog.String("branch_id", branchID),
		slog.Int("year", year),
		slog.String("closing_journal_id", period.ClosingJournalID),
	)

	s.publisher.PeriodReopened(ctx, period)
	s.cache.Invalidate(ctx, branchID)
	return nil
}

// ListClosedYears returns the branch's closing history, newest first.
func (s *closingService) ListClosedYears(ctx context.Context, branchID string) ([]domain.ClosingPeriod, error) {
	return s.closingRepo.ListPeriodsByBranch(ctx, branchID)
}
