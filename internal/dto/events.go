package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod distinguishes how a sale or purchase was settled.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCredit   PaymentMethod = "credit"
	PaymentTransfer PaymentMethod = "transfer"
)

// SaleEvent is a completed sale to journal. COGSAmount is optional; when
// positive the adapter books the Dr COGS / Cr Inventory pair alongside the
// revenue recognition.
type SaleEvent struct {
	SaleID        string          `json:"saleID" binding:"required"`
	SaleNumber    string          `json:"saleNumber" binding:"required"`
	SaleDate      time.Time       `json:"saleDate" binding:"required"`
	TotalAmount   decimal.Decimal `json:"totalAmount" binding:"required,dgt0"`
	PaymentMethod PaymentMethod   `json:"paymentMethod" binding:"required,oneof=cash credit transfer"`
	CustomerName  string          `json:"customerName"`
	COGSAmount    decimal.Decimal `json:"cogsAmount"`
}

// ExpenseEvent is an operating expense to journal. AccountID optionally
// pins the expense to a specific account; otherwise the category name is
// pattern-matched with a general-expense fallback.
type ExpenseEvent struct {
	ExpenseID    string          `json:"expenseID" binding:"required"`
	ExpenseDate  time.Time       `json:"expenseDate" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required,dgt0"`
	CategoryName string          `json:"categoryName" binding:"required"`
	Description  string          `json:"description"`
	AccountID    string          `json:"accountID"`
}

// PayrollEvent is one employee's salary payment. AdvanceDeduction reduces
// the cash outflow by crediting the employee-advance account.
type PayrollEvent struct {
	PayrollID        string          `json:"payrollID" binding:"required"`
	PayrollDate      time.Time       `json:"payrollDate" binding:"required"`
	EmployeeName     string          `json:"employeeName" binding:"required"`
	GrossSalary      decimal.Decimal `json:"grossSalary" binding:"required,dgt0"`
	AdvanceDeduction decimal.Decimal `json:"advanceDeduction"`
}

// AdvanceDirection distinguishes handing an advance out from taking it back.
type AdvanceDirection string

const (
	AdvanceGiven    AdvanceDirection = "given"
	AdvanceReturned AdvanceDirection = "returned"
)

// AdvanceEvent is an employee cash advance or its repayment.
type AdvanceEvent struct {
	AdvanceID    string           `json:"advanceID" binding:"required"`
	AdvanceDate  time.Time        `json:"advanceDate" binding:"required"`
	Amount       decimal.Decimal  `json:"amount" binding:"required,dgt0"`
	EmployeeName string           `json:"employeeName" binding:"required"`
	Direction    AdvanceDirection `json:"direction" binding:"required,oneof=given returned"`
	Description  string           `json:"description"`
}

// TransferEvent moves money between two payment accounts in one branch.
type TransferEvent struct {
	TransferID    string          `json:"transferID" binding:"required"`
	TransferDate  time.Time       `json:"transferDate" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,dgt0"`
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Description   string          `json:"description"`
}

// ReceivablePaymentEvent is a customer settling an outstanding receivable.
type ReceivablePaymentEvent struct {
	ReceivableID  string          `json:"receivableID" binding:"required"`
	PaymentDate   time.Time       `json:"paymentDate" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,dgt0"`
	CustomerName  string          `json:"customerName" binding:"required"`
	InvoiceNumber string          `json:"invoiceNumber"`
}

// PayablePaymentEvent is the business settling a supplier payable.
type PayablePaymentEvent struct {
	PayableID     string          `json:"payableID" binding:"required"`
	PaymentDate   time.Time       `json:"paymentDate" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required,dgt0"`
	SupplierName  string          `json:"supplierName" binding:"required"`
	InvoiceNumber string          `json:"invoiceNumber"`
}

// AssetPurchaseEvent capitalizes a fixed-asset purchase.
type AssetPurchaseEvent struct {
	AssetID        string          `json:"assetID" binding:"required"`
	PurchaseDate   time.Time       `json:"purchaseDate" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required,dgt0"`
	AssetAccountID string          `json:"assetAccountID" binding:"required"`
	AssetName      string          `json:"assetName" binding:"required"`
	PaymentMethod  PaymentMethod   `json:"paymentMethod" binding:"required,oneof=cash credit"`
}

// DepreciationEvent books one period's depreciation for an asset.
type DepreciationEvent struct {
	AssetID          string          `json:"assetID" binding:"required"`
	DepreciationDate time.Time       `json:"depreciationDate" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required,dgt0"`
	AssetName        string          `json:"assetName" binding:"required"`
	Period           string          `json:"period" binding:"required"`
}

// TaxEventKind distinguishes accruing a tax liability from settling it.
type TaxEventKind string

const (
	TaxAccrual    TaxEventKind = "accrual"
	TaxSettlement TaxEventKind = "settlement"
)

// TaxEvent accrues or settles a tax obligation.
type TaxEvent struct {
	TaxID       string          `json:"taxID" binding:"required"`
	TaxDate     time.Time       `json:"taxDate" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Kind        TaxEventKind    `json:"kind" binding:"required,oneof=accrual settlement"`
	Description string          `json:"description"`
}

// ManualCashDirection distinguishes ad-hoc cash in from cash out.
type ManualCashDirection string

const (
	ManualCashIn  ManualCashDirection = "in"
	ManualCashOut ManualCashDirection = "out"
)

// ManualCashEvent is an ad-hoc cash movement journaled against the
// other-income or other-expense counter account.
type ManualCashEvent struct {
	ReferenceID   string              `json:"referenceID" binding:"required"`
	Date          time.Time           `json:"date" binding:"required"`
	Amount        decimal.Decimal     `json:"amount" binding:"required,dgt0"`
	Direction     ManualCashDirection `json:"direction" binding:"required,oneof=in out"`
	CashAccountID string              `json:"cashAccountID" binding:"required"`
	Description   string              `json:"description" binding:"required"`
}
