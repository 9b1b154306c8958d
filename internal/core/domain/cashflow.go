package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashDirection distinguishes money entering a payment account from money
// leaving it. A debit on a cash/bank account is an inflow.
type CashDirection string

const (
	CashIn  CashDirection = "in"
	CashOut CashDirection = "out"
)

// CashMovement is one ledger line on a payment account, projected into the
// cash-flow report. Category is display vocabulary only; amounts always come
// from the underlying journal line.
type CashMovement struct {
	JournalID     string          `json:"journalID"`
	EntryNumber   string          `json:"entryNumber"`
	EntryDate     time.Time       `json:"entryDate"`
	AccountID     string          `json:"accountID"`
	AccountName   string          `json:"accountName"`
	Direction     CashDirection   `json:"direction"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	ReferenceType ReferenceType   `json:"referenceType"`
}

// CashFlowCategory maps a journal reference type and line direction to the
// display category used by the daily report screens. The mapping carries no
// computational weight.
func CashFlowCategory(ref ReferenceType, dir CashDirection) string {
	switch ref {
	case RefSale:
		return "orderan"
	case RefExpense:
		return "pengeluaran"
	case RefPayroll:
		return "gaji_karyawan"
	case RefTransfer:
		if dir == CashIn {
			return "transfer_masuk"
		}
		return "transfer_keluar"
	case RefReceivable:
		return "pembayaran_piutang"
	case RefPayable:
		return "pembayaran_hutang"
	case RefAdvance:
		if dir == CashIn {
			return "panjar_pelunasan"
		}
		return "panjar_pengambilan"
	case RefManual:
		if dir == CashIn {
			return "kas_masuk_manual"
		}
		return "kas_keluar_manual"
	case RefTax:
		return "pembayaran_pajak"
	default:
		return "lainnya"
	}
}

// AccountCashFlow aggregates one payment account's movements for a day.
type AccountCashFlow struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	CashIn      decimal.Decimal `json:"cashIn"`
	CashOut     decimal.Decimal `json:"cashOut"`
}

// DailyCashFlow is the per-day cash report for a branch.
type DailyCashFlow struct {
	BranchID  string            `json:"branchID"`
	Date      time.Time         `json:"date"`
	CashIn    decimal.Decimal   `json:"cashIn"`
	CashOut   decimal.Decimal   `json:"cashOut"`
	NetChange decimal.Decimal   `json:"netChange"`
	ByAccount []AccountCashFlow `json:"byAccount"`
	Movements []CashMovement    `json:"movements"`
}
