package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/budiutama/branchbooks/internal/cache"
	"github.com/budiutama/branchbooks/internal/core/domain"
	portsrepo "github.com/budiutama/branchbooks/internal/core/ports/repositories"
	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/budiutama/branchbooks/internal/middleware"
	"github.com/budiutama/branchbooks/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// balanceService replays posted, non-voided lines into balances. No balance
// is ever stored; voiding an entry retroactively changes every figure here.
type balanceService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
	cache         *cache.BalanceCache
}

// NewBalanceService creates a new balance service. cache may be nil.
func NewBalanceService(reportingRepo portsrepo.ReportingRepositoryFacade, balanceCache *cache.BalanceCache) portssvc.BalanceSvcFacade {
	return &balanceService{reportingRepo: reportingRepo, cache: balanceCache}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// rowBalance turns a raw activity row into the account's signed balance.
// An opening journal supersedes the owner-entered initial balance.
func rowBalance(row domain.AccountActivityRow) decimal.Decimal {
	base := row.InitialBalance
	if row.HasOpening {
		base = decimal.Zero
	}
	return base.Add(accounting.SignedAmount(row.TotalDebit, row.TotalCredit, row.AccountType))
}

// GetAccountBalance returns one account's signed balance as of the given time.
func (s *balanceService) GetAccountBalance(ctx context.Context, branchID string, accountID string, asOf time.Time) (decimal.Decimal, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	row, err := s.reportingRepo.AccountActivity(ctx, branchID, accountID, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load activity for account %s: %w", accountID, err)
	}
	return rowBalance(*row), nil
}

// GetBalanceSummary returns per-type totals, net income, and the accounting
// equation check for a branch. Current-time summaries are served from the
// cache when one is configured; historical asOf queries always hit the ledger.
func (s *balanceService) GetBalanceSummary(ctx context.Context, branchID string, asOf time.Time, includeAccounts bool) (*domain.BalanceSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cacheable := asOf.IsZero()
	if cacheable {
		asOf = time.Now().UTC()
		if cached := s.cache.GetSummary(ctx, branchID, includeAccounts); cached != nil {
			logger.Debug("Balance summary served from cache", slog.String("branch_id", branchID))
			return cached, nil
		}
	}

	rows, err := s.reportingRepo.BranchActivity(ctx, branchID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load branch activity: %w", err)
	}

	summary := &domain.BalanceSummary{BranchID: branchID}
	summary.TotalAsset = decimal.Zero
	summary.TotalLiability = decimal.Zero
	summary.TotalEquity = decimal.Zero
	summary.TotalRevenue = decimal.Zero
	summary.TotalCOGS = decimal.Zero
	summary.TotalExpense = decimal.Zero

	for _, row := range rows {
		if row.IsHeader {
			continue
		}
		balance := rowBalance(row)
		account := domain.Account{AccountType: row.AccountType, Code: row.Code}

		switch row.AccountType {
		case domain.Asset:
			summary.TotalAsset = summary.TotalAsset.Add(balance)
		case domain.Liability:
			summary.TotalLiability = summary.TotalLiability.Add(balance)
		case domain.Equity:
			summary.TotalEquity = summary.TotalEquity.Add(balance)
		case domain.Revenue:
			summary.TotalRevenue = summary.TotalRevenue.Add(balance)
		case domain.Expense:
			if account.IsCOGS() {
				summary.TotalCOGS = summary.TotalCOGS.Add(balance)
			} else {
				summary.TotalExpense = summary.TotalExpense.Add(balance)
			}
		}

		if includeAccounts {
			summary.Accounts = append(summary.Accounts, domain.AccountBalance{
				AccountID:   row.AccountID,
				Code:        row.Code,
				Name:        row.Name,
				AccountType: row.AccountType,
				Balance:     balance,
			})
		}
	}

	summary.NetIncome = summary.TotalRevenue.Sub(summary.TotalCOGS).Sub(summary.TotalExpense)

	// Equation check within one currency unit; an off-by-rounding ledger is
	// reported as data, never an error.
	diff := summary.TotalAsset.Sub(summary.TotalLiability.Add(summary.TotalEquity).Add(summary.NetIncome))
	summary.IsBalanced = diff.Abs().LessThan(decimal.NewFromInt(1))

	if includeAccounts {
		sort.Slice(summary.Accounts, func(i, j int) bool {
			return summary.Accounts[i].Code < summary.Accounts[j].Code
		})
	}

	if cacheable {
		s.cache.SetSummary(ctx, branchID, includeAccounts, summary)
	}
	return summary, nil
}

// GetTrialBalance returns gross debit and credit totals per account.
func (s *balanceService) GetTrialBalance(ctx context.Context, branchID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	rows, err := s.reportingRepo.TrialBalance(ctx, branchID, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load trial balance: %w", err)
	}
	return rows, nil
}
