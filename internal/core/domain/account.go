package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance indicates which side naturally increases an account.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// NormalBalanceFor returns the normal balance side for an account type.
// Asset and Expense accounts increase with debits, the rest with credits.
func NormalBalanceFor(t AccountType) NormalBalance {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// Account represents a ledger account within one branch's chart of accounts.
type Account struct {
	AccountID        string          `json:"accountID"`
	BranchID         string          `json:"branchID"`
	Code             string          `json:"code"` // unique per branch
	Name             string          `json:"name"`
	AccountType      AccountType     `json:"accountType"`
	ParentAccountID  *string         `json:"parentAccountID,omitempty"`
	IsHeader         bool            `json:"isHeader"` // aggregation node, never postable
	IsActive         bool            `json:"isActive"`
	IsPaymentAccount bool            `json:"isPaymentAccount"` // cash/bank flag for cash-flow reporting
	InitialBalance   decimal.Decimal `json:"initialBalance"`   // owner-entered opening figure
	Description      string          `json:"description"`
	AuditFields
}

// IsPostable reports whether journal lines may reference this account.
func (a Account) IsPostable() bool {
	return a.IsActive && !a.IsHeader
}

// IsCOGS reports whether an expense account records cost of goods sold.
// The chart of accounts reserves the 5xxx code range for COGS; 6xxx and
// above are operating expenses.
func (a Account) IsCOGS() bool {
	return a.AccountType == Expense && strings.HasPrefix(a.Code, "5")
}

// AccountRole enumerates the well-known roles that event adapters resolve
// to concrete accounts. Keeping the set typed avoids free-text category
// lookups silently misrouting funds.
type AccountRole string

const (
	RoleCash                    AccountRole = "CASH"
	RoleReceivable              AccountRole = "RECEIVABLE"
	RolePayable                 AccountRole = "PAYABLE"
	RoleSalesRevenue            AccountRole = "SALES_REVENUE"
	RoleOtherIncome             AccountRole = "OTHER_INCOME"
	RoleInventory               AccountRole = "INVENTORY"
	RoleCOGS                    AccountRole = "COGS"
	RoleGeneralExpense          AccountRole = "GENERAL_EXPENSE"
	RoleOtherExpense            AccountRole = "OTHER_EXPENSE"
	RoleSalaryExpense           AccountRole = "SALARY_EXPENSE"
	RoleEmployeeAdvance         AccountRole = "EMPLOYEE_ADVANCE"
	RoleDepreciationExpense     AccountRole = "DEPRECIATION_EXPENSE"
	RoleAccumulatedDepreciation AccountRole = "ACCUMULATED_DEPRECIATION"
	RoleTaxExpense              AccountRole = "TAX_EXPENSE"
	RoleTaxPayable              AccountRole = "TAX_PAYABLE"
	RoleRetainedEarnings        AccountRole = "RETAINED_EARNINGS"
	RoleIncomeSummary           AccountRole = "INCOME_SUMMARY"
)

// RoleBinding describes how a role is located in a branch's chart:
// first by canonical code, then by name pattern within an account type.
type RoleBinding struct {
	Codes       []string
	NamePattern string
	AccountType AccountType
}

// RoleBindings is the canonical role table. Codes follow the standard
// small-business chart shipped with the application.
var RoleBindings = map[AccountRole]RoleBinding{
	RoleCash:                    {Codes: []string{"1-1100"}, NamePattern: "kas", AccountType: Asset},
	RoleReceivable:              {Codes: []string{"1-1200"}, NamePattern: "piutang", AccountType: Asset},
	RolePayable:                 {Codes: []string{"2-1100"}, NamePattern: "hutang", AccountType: Liability},
	RoleSalesRevenue:            {Codes: []string{"4-1000"}, NamePattern: "penjualan", AccountType: Revenue},
	RoleOtherIncome:             {Codes: []string{"4-2000"}, NamePattern: "lain", AccountType: Revenue},
	RoleInventory:               {Codes: []string{"1-1300", "1310", "1300"}, NamePattern: "persediaan", AccountType: Asset},
	RoleCOGS:                    {Codes: []string{"5-1000", "5100"}, NamePattern: "hpp", AccountType: Expense},
	RoleGeneralExpense:          {Codes: []string{"6-1000", "5-1000"}, NamePattern: "beban", AccountType: Expense},
	RoleOtherExpense:            {Codes: []string{"5-9000", "6900"}, NamePattern: "lain", AccountType: Expense},
	RoleSalaryExpense:           {Codes: []string{"5-2000", "6210"}, NamePattern: "gaji", AccountType: Expense},
	RoleEmployeeAdvance:         {Codes: []string{"1-1400"}, NamePattern: "panjar", AccountType: Asset},
	RoleDepreciationExpense:     {Codes: []string{"6240"}, NamePattern: "penyusutan", AccountType: Expense},
	RoleAccumulatedDepreciation: {Codes: []string{"1450", "1420"}, NamePattern: "akumulasi", AccountType: Asset},
	RoleTaxExpense:              {Codes: []string{"6800"}, NamePattern: "pajak", AccountType: Expense},
	RoleTaxPayable:              {Codes: []string{"2-1300"}, NamePattern: "pajak", AccountType: Liability},
	RoleRetainedEarnings:        {Codes: []string{"3200", "3-200"}, NamePattern: "laba ditahan", AccountType: Equity},
	RoleIncomeSummary:           {Codes: []string{"3300", "3-300"}, NamePattern: "ikhtisar", AccountType: Equity},
}
