package mapping

import (
	"github.com/budiutama/branchbooks/internal/core/domain"
	"github.com/budiutama/branchbooks/internal/models"
)

// ToModelClosingPeriod converts a domain ClosingPeriod to a model row.
func ToModelClosingPeriod(d domain.ClosingPeriod) models.ClosingPeriod {
	return models.ClosingPeriod{
		ClosingID:        d.ClosingID,
		Year:             d.Year,
		BranchID:         d.BranchID,
		ClosingJournalID: d.ClosingJournalID,
		NetIncome:        d.NetIncome,
		Status:           string(d.Status),
		ClosedAt:         d.ClosedAt,
		ClosedBy:         d.ClosedBy,
	}
}

// ToDomainClosingPeriod converts a model row to a domain ClosingPeriod.
func ToDomainClosingPeriod(m models.ClosingPeriod) domain.ClosingPeriod {
	return domain.ClosingPeriod{
		ClosingID:        m.ClosingID,
		Year:             m.Year,
		BranchID:         m.BranchID,
		ClosingJournalID: m.ClosingJournalID,
		NetIncome:        m.NetIncome,
		Status:           domain.ClosingStatus(m.Status),
		ClosedAt:         m.ClosedAt,
		ClosedBy:         m.ClosedBy,
	}
}
