package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosingPeriod is the closing_periods table row. A partial unique index on
// (year, branch_id) WHERE status = 'active' enforces the single-active-close
// invariant at the schema level.
type ClosingPeriod struct {
	ClosingID        string          `db:"closing_id"`
	Year             int             `db:"year"`
	BranchID         string          `db:"branch_id"`
	ClosingJournalID string          `db:"closing_journal_id"`
	NetIncome        decimal.Decimal `db:"net_income"`
	Status           string          `db:"status"`
	ClosedAt         time.Time       `db:"closed_at"`
	ClosedBy         string          `db:"closed_by"`
}
