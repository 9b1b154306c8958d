package mapping

import (
	"github.com/budiutama/branchbooks/internal/core/domain"
	"github.com/budiutama/branchbooks/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:        d.AccountID,
		BranchID:         d.BranchID,
		Code:             d.Code,
		Name:             d.Name,
		AccountType:      models.AccountType(d.AccountType),
		ParentAccountID:  d.ParentAccountID,
		IsHeader:         d.IsHeader,
		IsActive:         d.IsActive,
		IsPaymentAccount: d.IsPaymentAccount,
		InitialBalance:   d.InitialBalance,
		Description:      d.Description,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:        m.AccountID,
		BranchID:         m.BranchID,
		Code:             m.Code,
		Name:             m.Name,
		AccountType:      domain.AccountType(m.AccountType),
		ParentAccountID:  m.ParentAccountID,
		IsHeader:         m.IsHeader,
		IsActive:         m.IsActive,
		IsPaymentAccount: m.IsPaymentAccount,
		InitialBalance:   m.InitialBalance,
		Description:      m.Description,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	out := make([]domain.Account, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAccount(m)
	}
	return out
}
