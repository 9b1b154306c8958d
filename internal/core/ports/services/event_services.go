package services

import (
	"context"

	"github.com/budiutama/branchbooks/internal/core/domain"
	"github.com/budiutama/branchbooks/internal/dto"
)

// EventAdapterSvcFacade translates business events into balanced journal
// entries. Each method resolves the accounts involved via role lookup, builds
// the double-entry line set, and posts through the journal writer, so callers
// never touch account IDs or debits and credits directly.
type EventAdapterSvcFacade interface {
	RecordSale(ctx context.Context, branchID string, ev dto.SaleEvent, userID string) (*domain.JournalEntry, error)
	RecordExpense(ctx context.Context, branchID string, ev dto.ExpenseEvent, userID string) (*domain.JournalEntry, error)
	RecordPayroll(ctx context.Context, branchID string, ev dto.PayrollEvent, userID string) (*domain.JournalEntry, error)
	RecordAdvance(ctx context.Context, branchID string, ev dto.AdvanceEvent, userID string) (*domain.JournalEntry, error)
	RecordTransfer(ctx context.Context, branchID string, ev dto.TransferEvent, userID string) (*domain.JournalEntry, error)
	RecordReceivablePayment(ctx context.Context, branchID string, ev dto.ReceivablePaymentEvent, userID string) (*domain.JournalEntry, error)
	RecordPayablePayment(ctx context.Context, branchID string, ev dto.PayablePaymentEvent, userID string) (*domain.JournalEntry, error)
	RecordAssetPurchase(ctx context.Context, branchID string, ev dto.AssetPurchaseEvent, userID string) (*domain.JournalEntry, error)
	RecordDepreciation(ctx context.Context, branchID string, ev dto.DepreciationEvent, userID string) (*domain.JournalEntry, error)
	RecordTax(ctx context.Context, branchID string, ev dto.TaxEvent, userID string) (*domain.JournalEntry, error)
	RecordManualCash(ctx context.Context, branchID string, ev dto.ManualCashEvent, userID string) (*domain.JournalEntry, error)
}
