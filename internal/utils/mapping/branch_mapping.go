package mapping

import (
	"github.com/budiutama/branchbooks/internal/core/domain"
	"github.com/budiutama/branchbooks/internal/models"
)

// ToModelBranch converts a domain Branch to a model row.
func ToModelBranch(d domain.Branch) models.Branch {
	return models.Branch{
		BranchID:    d.BranchID,
		Name:        d.Name,
		City:        d.City,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBranch converts a model row to a domain Branch.
func ToDomainBranch(m models.Branch) domain.Branch {
	return domain.Branch{
		BranchID:    m.BranchID,
		Name:        m.Name,
		City:        m.City,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBranchSlice converts a slice of model Branches.
func ToDomainBranchSlice(ms []models.Branch) []domain.Branch {
	out := make([]domain.Branch, len(ms))
	for i, m := range ms {
		out[i] = ToDomainBranch(m)
	}
	return out
}
