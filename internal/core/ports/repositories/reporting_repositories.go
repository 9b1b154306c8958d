package repositories

import (
	"context"
	"time"

	"github.com/budiutama/branchbooks/internal/core/domain"
)

// ReportingRepositoryFacade aggregates ledger activity for balance and
// closing computations. Every query is confined to posted, non-voided
// entries of a single branch; voided entries are filtered here, centrally,
// not re-implemented per caller.
type ReportingRepositoryFacade interface {
	// AccountActivity returns one account's activity row up to asOf.
	AccountActivity(ctx context.Context, branchID, accountID string, asOf time.Time) (*domain.AccountActivityRow, error)
	// BranchActivity returns activity rows for every detail account in the
	// branch up to asOf, including accounts with no lines.
	BranchActivity(ctx context.Context, branchID string, asOf time.Time) ([]domain.AccountActivityRow, error)
	// RangeActivity returns activity rows for lines dated within [from, to],
	// without initial balances. Used by the closing engine for year-to-date
	// revenue and expense figures.
	RangeActivity(ctx context.Context, branchID string, from, to time.Time) ([]domain.AccountActivityRow, error)
	TrialBalance(ctx context.Context, branchID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}

// CashFlowRepositoryFacade reads the payment-account subset of journal
// lines. Cash movements are never stored separately; they are always this
// projection of the ledger itself.
type CashFlowRepositoryFacade interface {
	PaymentAccountMovements(ctx context.Context, branchID string, from, to time.Time) ([]domain.CashMovement, error)
}
