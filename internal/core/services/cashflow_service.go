package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/budiutama/branchbooks/internal/core/domain"
	portsrepo "github.com/budiutama/branchbooks/internal/core/ports/repositories"
	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// cashflowService projects payment-account ledger lines into daily cash
// reports. There is no cash table: the ledger is the single source and voided
// entries disappear from the report automatically.
type cashflowService struct {
	cashflowRepo portsrepo.CashFlowRepositoryFacade
}

// NewCashFlowService creates a new cash-flow service.
func NewCashFlowService(cashflowRepo portsrepo.CashFlowRepositoryFacade) portssvc.CashFlowSvcFacade {
	return &cashflowService{cashflowRepo: cashflowRepo}
}

var _ portssvc.CashFlowSvcFacade = (*cashflowService)(nil)

// dayBounds returns the UTC day [start, end] containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

// GetDailyCashFlow returns the cash report for one calendar day.
func (s *cashflowService) GetDailyCashFlow(ctx context.Context, branchID string, date time.Time) (*domain.DailyCashFlow, error) {
	start, end := dayBounds(date)
	movements, err := s.cashflowRepo.PaymentAccountMovements(ctx, branchID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load cash movements: %w", err)
	}
	report := buildDailyReport(branchID, start, movements)
	return &report, nil
}

// GetCashFlowRange returns per-day cash reports for [from, to] inclusive.
// Days without movement are included with zero totals so chart consumers get
// a gapless series.
func (s *cashflowService) GetCashFlowRange(ctx context.Context, branchID string, from, to time.Time) ([]domain.DailyCashFlow, error) {
	fromStart, _ := dayBounds(from)
	_, toEnd := dayBounds(to)
	if toEnd.Before(fromStart) {
		return nil, fmt.Errorf("invalid range: from %s is after to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	movements, err := s.cashflowRepo.PaymentAccountMovements(ctx, branchID, fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load cash movements: %w", err)
	}

	byDay := make(map[string][]domain.CashMovement)
	for _, m := range movements {
		day := m.EntryDate.UTC().Format("2006-01-02")
		byDay[day] = append(byDay[day], m)
	}

	var reports []domain.DailyCashFlow
	for day := fromStart; !day.After(toEnd); day = day.Add(24 * time.Hour) {
		reports = append(reports, buildDailyReport(branchID, day, byDay[day.Format("2006-01-02")]))
	}
	return reports, nil
}

// buildDailyReport aggregates one day's movements into totals and per-account
// breakdowns.
func buildDailyReport(branchID string, day time.Time, movements []domain.CashMovement) domain.DailyCashFlow {
	report := domain.DailyCashFlow{
		BranchID:  branchID,
		Date:      day,
		CashIn:    decimal.Zero,
		CashOut:   decimal.Zero,
		Movements: movements,
	}

	perAccount := make(map[string]*domain.AccountCashFlow)
	for _, m := range movements {
		acc, ok := perAccount[m.AccountID]
		if !ok {
			acc = &domain.AccountCashFlow{
				AccountID:   m.AccountID,
				AccountName: m.AccountName,
				CashIn:      decimal.Zero,
				CashOut:     decimal.Zero,
			}
			perAccount[m.AccountID] = acc
		}
		if m.Direction == domain.CashIn {
			report.CashIn = report.CashIn.Add(m.Amount)
			acc.CashIn = acc.CashIn.Add(m.Amount)
		} else {
			report.CashOut = report.CashOut.Add(m.Amount)
			acc.CashOut = acc.CashOut.Add(m.Amount)
		}
	}
	report.NetChange = report.CashIn.Sub(report.CashOut)

	for _, acc := range perAccount {
		report.ByAccount = append(report.ByAccount, *acc)
	}
	sort.Slice(report.ByAccount, func(i, j int) bool {
		return report.ByAccount[i].AccountName < report.ByAccount[j].AccountName
	})
	return report
}
