package dto

import (
	"time"

	"github.com/budiutama/branchbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CloseYearRequest is the payload for executing a fiscal-year close.
type CloseYearRequest struct {
	Year int `json:"year" binding:"required"`
}

// VoidClosingRequest carries the reason for reopening a closed year.
type VoidClosingRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AccountYearBalanceResponse is one income-statement account's year total
// inside a closing preview.
type AccountYearBalanceResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// ClosingPreviewResponse shows what a close of the given year would book.
type ClosingPreviewResponse struct {
	Year            int                          `json:"year"`
	BranchID        string                       `json:"branchID"`
	RevenueTotal    decimal.Decimal              `json:"revenueTotal"`
	COGSTotal       decimal.Decimal              `json:"cogsTotal"`
	ExpenseTotal    decimal.Decimal              `json:"expenseTotal"`
	NetIncome       decimal.Decimal              `json:"netIncome"`
	RevenueAccounts []AccountYearBalanceResponse `json:"revenueAccounts"`
	ExpenseAccounts []AccountYearBalanceResponse `json:"expenseAccounts"`
	AlreadyClosed   bool                         `json:"alreadyClosed"`
}

// ClosingPeriodResponse mirrors a persisted closing period.
type ClosingPeriodResponse struct {
	ClosingID        string               `json:"closingID"`
	BranchID         string               `json:"branchID"`
	Year             int                  `json:"year"`
	ClosingJournalID string               `json:"closingJournalID"`
	NetIncome        decimal.Decimal      `json:"netIncome"`
	Status           domain.ClosingStatus `json:"status"`
	ClosedAt         time.Time            `json:"closedAt"`
	ClosedBy         string               `json:"closedBy"`
}

// ToClosingPreviewResponse converts a domain preview to its response form.
func ToClosingPreviewResponse(p *domain.ClosingPreview) ClosingPreviewResponse {
	resp := ClosingPreviewResponse{
		Year:          p.Year,
		BranchID:      p.BranchID,
		RevenueTotal:  p.RevenueTotal,
		COGSTotal:     p.COGSTotal,
		ExpenseTotal:  p.ExpenseTotal,
		NetIncome:     p.NetIncome,
		AlreadyClosed: p.AlreadyClosed,
	}
	for _, a := range p.RevenueAccounts {
		resp.RevenueAccounts = append(resp.RevenueAccounts, toAccountYearBalanceResponse(a))
	}
	for _, a := range p.ExpenseAccounts {
		resp.ExpenseAccounts = append(resp.ExpenseAccounts, toAccountYearBalanceResponse(a))
	}
	return resp
}

func toAccountYearBalanceResponse(a domain.AccountYearBalance) AccountYearBalanceResponse {
	return AccountYearBalanceResponse{
		AccountID: a.AccountID,
		Code:      a.Code,
		Name:      a.Name,
		Balance:   a.Balance,
	}
}

// ToClosingPeriodResponse converts a domain closing period to its response form.
func ToClosingPeriodResponse(p *domain.ClosingPeriod) ClosingPeriodResponse {
	return ClosingPeriodResponse{
		ClosingID:        p.ClosingID,
		BranchID:         p.BranchID,
		Year:             p.Year,
		ClosingJournalID: p.ClosingJournalID,
		NetIncome:        p.NetIncome,
		Status:           p.Status,
		ClosedAt:         p.ClosedAt,
		ClosedBy:         p.ClosedBy,
	}
}
