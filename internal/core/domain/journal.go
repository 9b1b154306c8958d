package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry. Voided entries are
// retained for audit but excluded from every aggregation.
type EntryStatus string

const (
	Draft  EntryStatus = "draft"
	Posted EntryStatus = "posted"
	Voided EntryStatus = "voided"
)

// ReferenceType names the business workflow a journal entry originates from.
// It is descriptive only: no balance computation may branch on it.
type ReferenceType string

const (
	RefSale         ReferenceType = "sale"
	RefExpense      ReferenceType = "expense"
	RefPayroll      ReferenceType = "payroll"
	RefAdvance      ReferenceType = "advance"
	RefTransfer     ReferenceType = "transfer"
	RefReceivable   ReferenceType = "receivable"
	RefPayable      ReferenceType = "payable"
	RefTax          ReferenceType = "tax"
	RefDepreciation ReferenceType = "depreciation"
	RefAdjustment   ReferenceType = "adjustment"
	RefManual       ReferenceType = "manual"
	RefClosing      ReferenceType = "closing"
	RefOpening      ReferenceType = "opening"
)

// JournalEntry is the header of a balanced double-entry record.
type JournalEntry struct {
	JournalID     string          `json:"journalID"`
	BranchID      string          `json:"branchID"`
	EntryNumber   string          `json:"entryNumber"` // per-branch sequential, e.g. JE-2025-000042
	EntryDate     time.Time       `json:"entryDate"`
	Description   string          `json:"description"`
	ReferenceType ReferenceType   `json:"referenceType"`
	ReferenceID   string          `json:"referenceID,omitempty"`
	Status        EntryStatus     `json:"status"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	VoidedBy      *string         `json:"voidedBy,omitempty"`
	VoidedAt      *time.Time      `json:"voidedAt,omitempty"`
	VoidReason    string          `json:"voidReason,omitempty"`
	Lines         []JournalLine   `json:"lines,omitempty"` // often loaded separately
	AuditFields
}

// IsVoided reports whether the entry has been marked inert.
func (j JournalEntry) IsVoided() bool {
	return j.Status == Voided
}

// JournalLine is a single line of a journal entry affecting one account.
// Exactly one of DebitAmount/CreditAmount is positive, the other zero.
type JournalLine struct {
	LineID       string          `json:"lineID"`
	JournalID    string          `json:"journalID"`
	LineNumber   int             `json:"lineNumber"`
	AccountID    string          `json:"accountID"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Description  string          `json:"description,omitempty"`
}

// IsDebit reports whether the line carries a debit amount.
func (l JournalLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}

// Amount returns the non-zero side of the line.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.DebitAmount
	}
	return l.CreditAmount
}
