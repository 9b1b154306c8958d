package services

import (
	"context"

	"github.com/budiutama/branchbooks/internal/core/domain"
)

// ClosingSvcFacade runs fiscal-year closings. A close sweeps every revenue
// and expense balance of the year into retained earnings through a single
// balanced closing journal; voiding the closing journal reopens the year.
type ClosingSvcFacade interface {
	// Preview computes what Execute would post, without writing anything.
	Preview(ctx context.Context, branchID string, year int) (*domain.ClosingPreview, error)

	// Execute performs the close and returns the recorded period.
	// Returns apperrors.ErrAlreadyClosed when an active period exists.
	Execute(ctx context.Context, branchID string, year int, closerUserID string) (*domain.ClosingPeriod, error)

	// VoidClosing voids the closing journal and the period, reopening the
	// year. Refused with apperrors.ErrConflict while posted entries exist in
	// any later year, since their figures build on the closed balances.
	VoidClosing(ctx context.Context, branchID string, year int, reason string, voiderUserID string) error

	// ListClosedYears returns the branch's closing history, newest first.
	ListClosedYears(ctx context.Context, branchID string) ([]domain.ClosingPeriod, error)
}
