package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus at the storage layer.
type EntryStatus string

// JournalEntry is the journal_entries table row. Entries are append-only:
// a correction is a new reversing entry or a void, never an update to
// posted lines.
type JournalEntry struct {
	JournalID     string          `db:"journal_id"`
	BranchID      string          `db:"branch_id"`
	EntryNumber   string          `db:"entry_number"`
	EntryDate     time.Time       `db:"entry_date"`
	Description   string          `db:"description"`
	ReferenceType string          `db:"reference_type"`
	ReferenceID   *string         `db:"reference_id"`
	Status        EntryStatus     `db:"status"`
	TotalDebit    decimal.Decimal `db:"total_debit"`
	TotalCredit   decimal.Decimal `db:"total_credit"`
	VoidedBy      *string         `db:"voided_by"`
	VoidedAt      *time.Time      `db:"voided_at"`
	VoidReason    *string         `db:"void_reason"`
	AuditFields
}

// JournalLine is the journal_entry_lines table row.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	JournalID    string          `db:"journal_entry_id"`
	LineNumber   int             `db:"line_number"`
	AccountID    string          `db:"account_id"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	Description  string          `db:"description"`
}
