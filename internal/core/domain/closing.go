package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosingStatus tracks whether a fiscal-year closing is in force.
type ClosingStatus string

const (
	ClosingActive ClosingStatus = "active"
	ClosingVoided ClosingStatus = "voided"
)

// ClosingPeriod records one fiscal-year closing for a branch. At most one
// active period may exist per (year, branch); a voided period stays behind
// as history and permits a fresh Execute for the same year.
type ClosingPeriod struct {
	ClosingID        string          `json:"closingID"`
	Year             int             `json:"year"`
	BranchID         string          `json:"branchID"`
	ClosingJournalID string          `json:"closingJournalID"`
	NetIncome        decimal.Decimal `json:"netIncome"`
	Status           ClosingStatus   `json:"status"`
	ClosedAt         time.Time       `json:"closedAt"`
	ClosedBy         string          `json:"closedBy"`
}

// AccountYearBalance is one revenue or expense account with its
// year-to-date balance, as used by the closing preview.
type AccountYearBalance struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// ClosingPreview is the read-only projection of what Execute would post.
type ClosingPreview struct {
	Year            int                  `json:"year"`
	BranchID        string               `json:"branchID"`
	RevenueTotal    decimal.Decimal      `json:"revenueTotal"`
	COGSTotal       decimal.Decimal      `json:"cogsTotal"`
	ExpenseTotal    decimal.Decimal      `json:"expenseTotal"`
	NetIncome       decimal.Decimal      `json:"netIncome"`
	RevenueAccounts []AccountYearBalance `json:"revenueAccounts"`
	ExpenseAccounts []AccountYearBalance `json:"expenseAccounts"`
	AlreadyClosed   bool                 `json:"alreadyClosed"`
}
