package dto

import (
	"time"

	"github.com/budiutama/branchbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for creating a ledger account.
type CreateAccountRequest struct {
	Code             string             `json:"code" binding:"required"`
	Name             string             `json:"name" binding:"required"`
	AccountType      domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentAccountID  *string            `json:"parentAccountID"`
	IsHeader         bool               `json:"isHeader"`
	IsPaymentAccount bool               `json:"isPaymentAccount"`
	InitialBalance   decimal.Decimal    `json:"initialBalance"`
	Description      string             `json:"description"`
}

// UpdateAccountRequest updates the mutable subset of an account. Fields left
// nil are untouched.
type UpdateAccountRequest struct {
	Name             *string `json:"name"`
	ParentAccountID  *string `json:"parentAccountID"`
	IsActive         *bool   `json:"isActive"`
	IsPaymentAccount *bool   `json:"isPaymentAccount"`
	Description      *string `json:"description"`
}

// AccountResponse mirrors a persisted account.
type AccountResponse struct {
	AccountID        string             `json:"accountID"`
	BranchID         string             `json:"branchID"`
	Code             string             `json:"code"`
	Name             string             `json:"name"`
	AccountType      domain.AccountType `json:"accountType"`
	ParentAccountID  *string            `json:"parentAccountID,omitempty"`
	IsHeader         bool               `json:"isHeader"`
	IsActive         bool               `json:"isActive"`
	IsPaymentAccount bool               `json:"isPaymentAccount"`
	InitialBalance   decimal.Decimal    `json:"initialBalance"`
	Description      string             `json:"description,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// ToAccountResponse converts a domain account to its response form.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        a.AccountID,
		BranchID:         a.BranchID,
		Code:             a.Code,
		Name:             a.Name,
		AccountType:      a.AccountType,
		ParentAccountID:  a.ParentAccountID,
		IsHeader:         a.IsHeader,
		IsActive:         a.IsActive,
		IsPaymentAccount: a.IsPaymentAccount,
		InitialBalance:   a.InitialBalance,
		Description:      a.Description,
		CreatedAt:        a.CreatedAt,
	}
}
