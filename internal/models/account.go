package models

import (
	"github.com/shopspring/decimal"
)

// AccountType mirrors domain.AccountType at the storage layer.
type AccountType string

// Account is the accounts table row. The ledger never stores a mutable
// current balance; only the owner-entered initial_balance is persisted and
// balances are replayed from journal_entry_lines.
type Account struct {
	AccountID        string          `db:"account_id"`
	BranchID         string          `db:"branch_id"`
	Code             string          `db:"code"`
	Name             string          `db:"name"`
	AccountType      AccountType     `db:"account_type"`
	ParentAccountID  *string         `db:"parent_account_id"`
	IsHeader         bool            `db:"is_header"`
	IsActive         bool            `db:"is_active"`
	IsPaymentAccount bool            `db:"is_payment_account"`
	InitialBalance   decimal.Decimal `db:"initial_balance"`
	Description      string          `db:"description"`
	AuditFields
}
