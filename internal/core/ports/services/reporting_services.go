package services

import (
	"context"
	"time"

	"github.com/budiutama/branchbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSvcFacade computes replayed balances. Balances are never stored;
// every figure is derived from posted, non-voided journal lines at call time.
type BalanceSvcFacade interface {
	// GetAccountBalance returns one account's signed balance as of the given
	// time. Positive means the account sits on its normal-balance side.
	GetAccountBalance(ctx context.Context, branchID string, accountID string, asOf time.Time) (decimal.Decimal, error)

	// GetBalanceSummary returns per-type totals, net income, and the
	// accounting-equation health check for a branch.
	GetBalanceSummary(ctx context.Context, branchID string, asOf time.Time, includeAccounts bool) (*domain.BalanceSummary, error)

	// GetTrialBalance returns gross debit and credit totals per account.
	GetTrialBalance(ctx context.Context, branchID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}

// CashFlowSvcFacade projects payment-account ledger lines into cash reports.
type CashFlowSvcFacade interface {
	// GetDailyCashFlow returns the cash report for one calendar day.
	GetDailyCashFlow(ctx context.Context, branchID string, date time.Time) (*domain.DailyCashFlow, error)

	// GetCashFlowRange returns per-day cash reports for [from, to] inclusive.
	GetCashFlowRange(ctx context.Context, branchID string, from, to time.Time) ([]domain.DailyCashFlow, error)
}
