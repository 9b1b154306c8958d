package domain

import (
	"github.com/shopspring/decimal"
)

// AccountBalance is one account with its replayed balance.
type AccountBalance struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
}

// BalanceSummary groups replayed balances by account type for one branch.
// NetIncome = Revenue - COGS - Expense. IsBalanced is a health check
// (Asset == Liability + Equity + NetIncome within one currency unit),
// surfaced as data rather than an error so a transient imbalance during
// multi-step posting never blocks reporting.
type BalanceSummary struct {
	BranchID       string           `json:"branchID"`
	TotalAsset     decimal.Decimal  `json:"totalAsset"`
	TotalLiability decimal.Decimal  `json:"totalLiability"`
	TotalEquity    decimal.Decimal  `json:"totalEquity"`
	TotalRevenue   decimal.Decimal  `json:"totalRevenue"`
	TotalCOGS      decimal.Decimal  `json:"totalCOGS"`
	TotalExpense   decimal.Decimal  `json:"totalExpense"`
	NetIncome      decimal.Decimal  `json:"netIncome"`
	IsBalanced     bool             `json:"isBalanced"`
	Accounts       []AccountBalance `json:"accounts,omitempty"`
}

// AccountActivityRow is one account's raw ledger activity as read back from
// the line table: gross debit and credit sums over posted, non-voided lines,
// plus whether an opening journal has touched the account. The aggregator
// turns this into a signed balance; the row itself stays convention-free.
type AccountActivityRow struct {
	AccountID      string
	Code           string
	Name           string
	AccountType    AccountType
	IsHeader       bool
	InitialBalance decimal.Decimal
	TotalDebit     decimal.Decimal
	TotalCredit    decimal.Decimal
	HasOpening     bool
}

// TrialBalanceRow is one account's gross debit and credit totals.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
