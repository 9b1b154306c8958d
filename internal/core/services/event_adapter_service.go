package services

import (
	"context"
	"fmt"
	"time"

	"github.com/budiutama/branchbooks/internal/apperrors"
	"github.com/budiutama/branchbooks/internal/core/domain"
	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/budiutama/branchbooks/internal/dto"
	"github.com/shopspring/decimal"
)

// eventAdapterService translates business events into balanced journal
// entries. Adapters only decide which accounts a workflow touches and on
// which side; every balance figure downstream comes from the posted lines.
type eventAdapterService struct {
	accountSvc portssvc.AccountSvcFacade
	journalSvc portssvc.JournalSvcFacade
}

// NewEventAdapterService creates the event-to-journal adapter layer.
func NewEventAdapterService(accountSvc portssvc.AccountSvcFacade, journalSvc portssvc.JournalSvcFacade) portssvc.EventAdapterSvcFacade {
	return &eventAdapterService{accountSvc: accountSvc, journalSvc: journalSvc}
}

var _ portssvc.EventAdapterSvcFacade = (*eventAdapterService)(nil)

// lineSpec is one side-assigned posting instruction.
type lineSpec struct {
	accountID string
	debit     decimal.Decimal
	credit    decimal.Decimal
	desc      string
}

func debitLine(accountID string, amount decimal.Decimal, desc string) lineSpec {
	return lineSpec{accountID: accountID, debit: amount, credit: decimal.Zero, desc: desc}
}

func creditLine(accountID string, amount decimal.Decimal, desc string) lineSpec {
	return lineSpec{accountID: accountID, debit: decimal.Zero, credit: amount, desc: desc}
}

// ensureNewReference guards one-journal-per-source-document: a live entry for
// the same reference refuses the event as a duplicate. A voided predecessor
// permits re-recording.
func (s *eventAdapterService) ensureNewReference(ctx context.Context, branchID string, refType domain.ReferenceType, referenceID string) error {
	entries, err := s.journalSvc.FindByReference(ctx, branchID, refType, referenceID)
	if err != nil {
		return fmt.Errorf("failed to check reference %s/%s: %w", refType, referenceID, err)
	}
	for _, entry := range entries {
		if !entry.IsVoided() {
			return fmt.Errorf("%w: %s %s is already journaled as %s", apperrors.ErrDuplicate, refType, referenceID, entry.EntryNumber)
		}
	}
	return nil
}

func (s *eventAdapterService) post(ctx context.Context, branchID string, date time.Time, description string, refType domain.ReferenceType, referenceID string, specs []lineSpec, userID string) (*domain.JournalEntry, error) {
	if err := s.ensureNewReference(ctx, branchID, refType, referenceID); err != nil {
		return nil, err
	}

	req := dto.PostJournalRequest{
		BranchID:      branchID,
		EntryDate:     date,
		Description:   description,
		ReferenceType: refType,
		ReferenceID:   referenceID,
	}
	for _, spec := range specs {
		req.Lines = append(req.Lines, dto.JournalLineRequest{
			AccountID:   spec.accountID,
			Debit:       spec.debit,
			Credit:      spec.credit,
			Description: spec.desc,
		})
	}
	return s.journalSvc.PostJournal(ctx, req, userID)
}

func requirePositive(name string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be positive, got %s", apperrors.ErrValidation, name, amount.String())
	}
	return nil
}

// RecordSale journals a completed sale: money side per payment method against
// sales revenue, plus the cost pair when a COGS amount is supplied.
func (s *eventAdapterService) RecordSale(ctx context.Context, branchID string, ev dto.SaleEvent, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive("sale amount", ev.TotalAmount); err != nil {
		return nil, err
	}
	if ev.COGSAmount.IsNegative() {
		return nil, fmt.Errorf("%w: COGS amount must not be negative", apperrors.ErrValidation)
	}

	revenue, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleSalesRevenue)
	if err != nil {
		return nil, err
	}

	var moneyRole domain.AccountRole
	switch ev.PaymentMethod {
	case dto.PaymentCredit:
		moneyRole = domain.RoleReceivable
	default:
		moneyRole = domain.RoleCash
	}
	money, err := s.accountSvc.ResolveRole(ctx, branchID, moneyRole)
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Penjualan %s", ev.SaleNumber)
	if ev.CustomerName != "" {
		desc = fmt.Sprintf("%s - %s", desc, ev.CustomerName)
	}

	specs := []lineSpec{
		debitLine(money.AccountID, ev.TotalAmount, desc),
		creditLine(revenue.AccountID, ev.TotalAmount, desc),
	}

	if ev.COGSAmount.IsPositive() {
		cogs, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleCOGS)
		if err != nil {
			return nil, err
		}
		inventory, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleInventory)
		if err != nil {
			return nil, err
		}
		cogsDesc := fmt.Sprintf("HPP %s", ev.SaleNumber)
		specs = append(specs,
			debitLine(cogs.AccountID, ev.COGSAmount, cogsDesc),
			creditLine(inventory.AccountID, ev.COGSAmount, cogsDesc),
		)
	}

	return s.post(ctx, branchID, ev.SaleDate, desc, domain.RefSale, ev.SaleID, specs, userID)
}

// RecordExpense journals an operating expense paid from cash.
func (s *eventAdapterService) RecordExpense(ctx context.Context, branchID string, ev dto.ExpenseEvent, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive("expense amount", ev.Amount); err != nil {
		return nil, err
	}

	var expense *domain.Account
	var err error
	if ev.AccountID != "" {
		expense, err = s.accountSvc.GetAccountByID(ctx, branchID, ev.AccountID)
		if err != nil {
			return nil, err
		}
		if expense.AccountType != domain.Expense || !expense.IsPostable() {
			return nil, fmt.Errorf("%w: account %s is not a postable expense account", apperrors.ErrValidation, expense.Code)
		}
	} else {
		expense, err = s.accountSvc.ResolveExpenseCategory(ctx, branchID, ev.CategoryName)
		if err != nil {
			return nil, err
		}
	}

	cashAcc, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleCash)
	if err != nil {
		return nil, err
	}

	desc := ev.Description
	if desc == "" {
		desc = fmt.Sprintf("Pengeluaran %s", ev.CategoryName)
	}
	specs := []lineSpec{
		debitLine(expense.AccountID, ev.Amount, desc),
		creditLine(cashAcc.AccountID, ev.Amount, desc),
	}
	return s.post(ctx, branchID, ev.ExpenseDate, desc, domain.RefExpense, ev.ExpenseID, specs, userID)
}

// RecordPayroll journals a salary payment: gross salary to expense, any
// advance deduction cleared from the employee-advance account, net paid from
// cash.
func (s *eventAdapterService) RecordPayroll(ctx context.Context, branchID string, ev dto.PayrollEvent, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive("gross salary", ev.GrossSalary); err != nil {
		return nil, err
	}
	if ev.AdvanceDeduction.IsNegative() {
		return nil, fmt.Errorf("%w: advance deduction must not be negative", apperrors.ErrValidation)
	}
	if ev.AdvanceDeduction.GreaterThanOrEqual(ev.GrossSalary) {
		return nil, fmt.Errorf("%w: advance deduction %s must be less than gross salary %s", apperrors.ErrValidation, ev.AdvanceDeduction.String(), ev.GrossSalary.String())
	}

	salary, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleSalaryExpense)
	if err != nil {
		return nil, err
	}
	cashAcc, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleCash)
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Gaji %s", ev.EmployeeName)
	specs := []lineSpec{debitLine(salary.AccountID, ev.GrossSalary, desc)}

	netPay := ev.GrossSalary
	if ev.AdvanceDeduction.IsPositive() {
		advance, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleEmployeeAdvance)
		if err != nil {
			return nil, err
		}
		specs = append(specs, creditLine(advance.AccountID, ev.AdvanceDeduction, fmt.Sprintf("Potongan panjar %s", ev.EmployeeName)))
		netPay = netPay.Sub(ev.AdvanceDeduction)
	}
	specs = append(specs, creditLine(cashAcc.AccountID, netPay, desc))

	return s.post(ctx, branchID, ev.PayrollDate, desc, domain.RefPayroll, ev.PayrollID, specs, userID)
}

// RecordAdvance journals an employee advance handed out or repaid.
func (s *eventAdapterService) RecordAdvance(ctx context.Context, branchID string, ev dto.AdvanceEvent, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive("advance amount", ev.Amount); err != nil {
		return nil, err
	}

	advance, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleEmployeeAdvance)
	if err != nil {
		return nil, err
	}
	cashAcc, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleCash)
	if err != nil {
		return nil, err
	}

	var specs []lineSpec
	var desc string
	switch ev.Direction {
	case dto.AdvanceGiven:
		desc = fmt.Sprintf("Panjar %s", ev.EmployeeName)
		specs = []lineSpec{
			debitLine(advance.AccountID, ev.Amount, desc),
			creditLine(cashAcc.AccountID, ev.Amount, desc),
		}
	case dto.AdvanceReturned:
		desc = fmt.Sprintf("Pelunasan panjar %s", ev.EmployeeName)
		specs = []lineSpec{
			debitLine(cashAcc.AccountID, ev.Amount, desc),
			creditLine(advance.AccountID, ev.Amount, desc),
		}
	default:
		return nil, fmt.Errorf("%w: unknown advance direction %q", apperrors.ErrValidation, ev.Direction)
	}

	return s.post(ctx, branchID, ev.AdvanceDate, desc, domain.RefAdvance, ev.AdvanceID, specs, userID)
}

// RecordTransfer journals a movement between two payment accounts.
func (s *eventAdapterService) RecordTransfer(ctx context.Context, branchID string, ev dto.TransferEvent, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive("transfer amount", ev.Amount); err != nil {
		return nil, err
	}
	if ev.FromAccountID == ev.ToAccountID {
		return nil, fmt.Errorf("%w: transfer source and destination must differ", apperrors.ErrValidation)
	}

	from, err := s.paymentAccount(ctx, branchID, ev.FromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := s.paymentAccount(ctx, branchID, ev.ToAccountID)
	if err != nil {
		return nil, err
	}

	desc := ev.Description
	if desc == "" {
		desc = fmt.Sprintf("Transfer %s ke %s", from.Name, to.Name)
	}
	specs := []lineSpec{
		debitLine(to.AccountID, ev.Amount, desc),
		creditLine(from.AccountID, ev.Amount, desc),
	}
	return s.post(ctx, branchID, ev.TransferDate, desc, domain.RefTransfer, ev.TransferID, specs, userID)
}

func (s *eventAdapterService) paymentAccount(ctx context.Context, branchID, accountID string) (*domain.Account, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, branchID, accountID)
	if err != nil {
		return nil, err
	}
	if !account.IsPaymentAccount || !account.IsPostable() {
		return nil, fmt.Errorf("%w: account %s is not a postable payment account", apperrors.ErrValidation, account.Code)
	}
	return account, nil
}

// RecordReceivablePayment journals a customer settling a receivable.
func (s *eventAdapterService) RecordReceivablePayment(ctx context.Context, branchID string, ev dto.ReceivablePaymentEvent, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive("payment amount", ev.Amount); err != nil {
		return nil, err
	}

	cashAcc, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleCash)
	if err != nil {
		return nil, err
	}
	receivable, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleReceivable)
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Pembayaran piutang %s", ev.CustomerName)
	if ev.InvoiceNumber != "" {
		desc = fmt.Sprintf("%s (%s)", desc, ev.InvoiceNumber)
	}
	specs := []lineSpec{
		debitLine(cashAcc.AccountID, ev.Amount, desc),
		creditLine(receivable.AccountID, ev.Amount, desc),
	}
	return s.post(ctx, branchID, ev.PaymentDate, desc, domain.RefReceivable, ev.ReceivableID, specs, userID)
}

// RecordPayablePayment journals the business settling a supplier payable.
func (s *eventAdapterService) RecordPayablePayment(ctx context.Context, branchID string, ev dto.PayablePaymentEvent, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive("payment amount", ev.Amount); err != nil {
		return nil, err
	}

	payable, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RolePayable)
	if err != nil {
		return nil, err
	}
	cashAcc, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleCash)
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Pembayaran hutang %s", ev.SupplierName)
	if ev.InvoiceNumber != "" {
		desc = fmt.Sprintf("%s (%s)", desc, ev.InvoiceNumber)
	}
	specs := []lineSpec{
		debitLine(payable.AccountID, ev.Amount, desc),
		creditLine(cashAcc.AccountID, ev.Amount, desc),
	}
	return s.post(ctx, branchID, ev.PaymentDate, desc, domain.RefPayable, ev.PayableID, specs, userID)
}

// RecordAssetPurchase capitalizes a fixed-asset purchase paid in cash or on
// credit.
func (s *eventAdapterService) RecordAssetPurchase(ctx context.Context, branchID string, ev dto.AssetPurchaseEvent, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive("purchase amount", ev.Amount); err != nil {
		return nil, err
	}

	asset, err := s.accountSvc.GetAccountByID(ctx, branchID, ev.AssetAccountID)
	if err != nil {
		return nil, err
	}
	if asset.AccountType != domain.Asset || !asset.IsPostable() {
		return nil, fmt.Errorf("%w: account %s is not a postable asset account", apperrors.ErrValidation, asset.Code)
	}

	var counterRole domain.AccountRole
	if ev.PaymentMethod == dto.PaymentCredit {
		counterRole = domain.RolePayable
	} else {
		counterRole = domain.RoleCash
	}
	counter, err := s.accountSvc.ResolveRole(ctx, branchID, counterRole)
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Pembelian aset %s", ev.AssetName)
	specs := []lineSpec{
		debitLine(asset.AccountID, ev.Amount, desc),
		creditLine(counter.AccountID, ev.Amount, desc),
	}
	return s.post(ctx, branchID, ev.PurchaseDate, desc, domain.RefAdjustment, ev.AssetID, specs, userID)
}

// RecordDepreciation books one period's depreciation for an asset.
func (s *eventAdapterService) RecordDepreciation(ctx context.Context, branchID string, ev dto.DepreciationEvent, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive("depreciation amount", ev.Amount); err != nil {
		return nil, err
	}

	expense, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleDepreciationExpense)
	if err != nil {
		return nil, err
	}
	accumulated, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleAccumulatedDepreciation)
	if err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Penyusutan %s %s", ev.AssetName, ev.Period)
	specs := []lineSpec{
		debitLine(expense.AccountID, ev.Amount, desc),
		creditLine(accumulated.AccountID, ev.Amount, desc),
	}
	referenceID := fmt.Sprintf("%s-%s", ev.AssetID, ev.Period)
	return s.post(ctx, branchID, ev.DepreciationDate, desc, domain.RefDepreciation, referenceID, specs, userID)
}

// RecordTax accrues a tax liability or settles it from cash.
func (s *eventAdapterService) RecordTax(ctx context.Context, branchID string, ev dto.TaxEvent, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive("tax amount", ev.Amount); err != nil {
		return nil, err
	}

	payable, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleTaxPayable)
	if err != nil {
		return nil, err
	}

	var specs []lineSpec
	desc := ev.Description
	switch ev.Kind {
	case dto.TaxAccrual:
		expense, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleTaxExpense)
		if err != nil {
			return nil, err
		}
		if desc == "" {
			desc = "Pencadangan pajak"
		}
		specs = []lineSpec{
			debitLine(expense.AccountID, ev.Amount, desc),
			creditLine(payable.AccountID, ev.Amount, desc),
		}
	case dto.TaxSettlement:
		cashAcc, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleCash)
		if err != nil {
			return nil, err
		}
		if desc == "" {
			desc = "Pembayaran pajak"
		}
		specs = []lineSpec{
			debitLine(payable.AccountID, ev.Amount, desc),
			creditLine(cashAcc.AccountID, ev.Amount, desc),
		}
	default:
		return nil, fmt.Errorf("%w: unknown tax event kind %q", apperrors.ErrValidation, ev.Kind)
	}

	referenceID := fmt.Sprintf("%s-%s", ev.TaxID, ev.Kind)
	return s.post(ctx, branchID, ev.TaxDate, desc, domain.RefTax, referenceID, specs, userID)
}

// RecordManualCash journals an ad-hoc cash movement against the other-income
// or other-expense counter account.
func (s *eventAdapterService) RecordManualCash(ctx context.Context, branchID string, ev dto.ManualCashEvent, userID string) (*domain.JournalEntry, error) {
	if err := requirePositive("cash amount", ev.Amount); err != nil {
		return nil, err
	}

	cashAcc, err := s.paymentAccount(ctx, branchID, ev.CashAccountID)
	if err != nil {
		return nil, err
	}

	var specs []lineSpec
	switch ev.Direction {
	case dto.ManualCashIn:
		income, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleOtherIncome)
		if err != nil {
			return nil, err
		}
		specs = []lineSpec{
			debitLine(cashAcc.AccountID, ev.Amount, ev.Description),
			creditLine(income.AccountID, ev.Amount, ev.Description),
		}
	case dto.ManualCashOut:
		expense, err := s.accountSvc.ResolveRole(ctx, branchID, domain.RoleOtherExpense)
		if err != nil {
			return nil, err
		}
		specs = []lineSpec{
			debitLine(expense.AccountID, ev.Amount, ev.Description),
			creditLine(cashAcc.AccountID, ev.Amount, ev.Description),
		}
	default:
		return nil, fmt.Errorf("%w: unknown cash direction %q", apperrors.ErrValidation, ev.Direction)
	}

	return s.post(ctx, branchID, ev.Date, ev.Description, domain.RefManual, ev.ReferenceID, specs, userID)
}
