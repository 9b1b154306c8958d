package dto

import (
	"time"

	"github.com/budiutama/branchbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a journal entry to post. Exactly one of
// Debit/Credit must be positive; the service rejects anything else before
// any write happens.
type JournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// PostJournalRequest is the payload for posting a journal entry.
type PostJournalRequest struct {
	BranchID      string               `json:"branchID" binding:"required"`
	EntryDate     time.Time            `json:"entryDate" binding:"required"`
	Description   string               `json:"description" binding:"required"`
	ReferenceType domain.ReferenceType `json:"referenceType"`
	ReferenceID   string               `json:"referenceID"`
	Lines         []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// VoidJournalRequest carries the operator's reason for voiding an entry.
type VoidJournalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// JournalLineResponse mirrors a persisted journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	LineNumber  int             `json:"lineNumber"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description,omitempty"`
}

// JournalResponse mirrors a persisted journal entry.
type JournalResponse struct {
	JournalID     string                `json:"journalID"`
	BranchID      string                `json:"branchID"`
	EntryNumber   string                `json:"entryNumber"`
	EntryDate     time.Time             `json:"entryDate"`
	Description   string                `json:"description"`
	ReferenceType domain.ReferenceType  `json:"referenceType"`
	ReferenceID   string                `json:"referenceID,omitempty"`
	Status        domain.EntryStatus    `json:"status"`
	TotalDebit    decimal.Decimal       `json:"totalDebit"`
	TotalCredit   decimal.Decimal       `json:"totalCredit"`
	VoidedBy      *string               `json:"voidedBy,omitempty"`
	VoidedAt      *time.Time            `json:"voidedAt,omitempty"`
	VoidReason    string                `json:"voidReason,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
	Lines         []JournalLineResponse `json:"lines,omitempty"`
}

// ToJournalResponse converts a domain entry to its response form.
func ToJournalResponse(j *domain.JournalEntry) JournalResponse {
	resp := JournalResponse{
		JournalID:     j.JournalID,
		BranchID:      j.BranchID,
		EntryNumber:   j.EntryNumber,
		EntryDate:     j.EntryDate,
		Description:   j.Description,
		ReferenceType: j.ReferenceType,
		ReferenceID:   j.ReferenceID,
		Status:        j.Status,
		TotalDebit:    j.TotalDebit,
		TotalCredit:   j.TotalCredit,
		VoidedBy:      j.VoidedBy,
		VoidedAt:      j.VoidedAt,
		VoidReason:    j.VoidReason,
		CreatedAt:     j.CreatedAt,
		CreatedBy:     j.CreatedBy,
	}
	for _, line := range j.Lines {
		resp.Lines = append(resp.Lines, JournalLineResponse{
			LineID:      line.LineID,
			LineNumber:  line.LineNumber,
			AccountID:   line.AccountID,
			Debit:       line.DebitAmount,
			Credit:      line.CreditAmount,
			Description: line.Description,
		})
	}
	return resp
}

// ListJournalsParams holds pagination parameters for listing journals.
type ListJournalsParams struct {
	Limit     int
	NextToken *string
}

// ListJournalsResponse is a page of journals plus the next-page token.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}
