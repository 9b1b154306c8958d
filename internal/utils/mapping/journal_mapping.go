package mapping

import (
	"github.com/budiutama/branchbooks/internal/core/domain"
	"github.com/budiutama/branchbooks/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model row.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		JournalID:     d.JournalID,
		BranchID:      d.BranchID,
		EntryNumber:   d.EntryNumber,
		EntryDate:     d.EntryDate,
		Description:   d.Description,
		ReferenceType: string(d.ReferenceType),
		Status:        models.EntryStatus(d.Status),
		TotalDebit:    d.TotalDebit,
		TotalCredit:   d.TotalCredit,
		VoidedBy:      d.VoidedBy,
		VoidedAt:      d.VoidedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.ReferenceID != "" {
		refID := d.ReferenceID
		m.ReferenceID = &refID
	}
	if d.VoidReason != "" {
		reason := d.VoidReason
		m.VoidReason = &reason
	}
	return m
}

// ToDomainJournalEntry converts a model row to a domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		JournalID:     m.JournalID,
		BranchID:      m.BranchID,
		EntryNumber:   m.EntryNumber,
		EntryDate:     m.EntryDate,
		Description:   m.Description,
		ReferenceType: domain.ReferenceType(m.ReferenceType),
		Status:        domain.EntryStatus(m.Status),
		TotalDebit:    m.TotalDebit,
		TotalCredit:   m.TotalCredit,
		VoidedBy:      m.VoidedBy,
		VoidedAt:      m.VoidedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.ReferenceID != nil {
		d.ReferenceID = *m.ReferenceID
	}
	if m.VoidReason != nil {
		d.VoidReason = *m.VoidReason
	}
	return d
}

// ToModelJournalLine converts a domain JournalLine to a model row.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		JournalID:    d.JournalID,
		LineNumber:   d.LineNumber,
		AccountID:    d.AccountID,
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		Description:  d.Description,
	}
}

// ToDomainJournalLine converts a model row to a domain JournalLine.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		JournalID:    m.JournalID,
		LineNumber:   m.LineNumber,
		AccountID:    m.AccountID,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		Description:  m.Description,
	}
}

// ToDomainJournalLineSlice converts a slice of model lines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	out := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		out[i] = ToDomainJournalLine(m)
	}
	return out
}
