package accounting

import (
	"testing"

	"github.com/budiutama/branchbooks/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func line(debit, credit int64) domain.JournalLine {
	return domain.JournalLine{
		DebitAmount:  decimal.NewFromInt(debit),
		CreditAmount: decimal.NewFromInt(credit),
	}
}

func TestSignedAmount(t *testing.T) {
	debit := decimal.NewFromInt(100)
	credit := decimal.NewFromInt(100)
	zero := decimal.Zero

	// Debit-normal types grow with debits.
	assert.True(t, SignedAmount(debit, zero, domain.Asset).Equal(decimal.NewFromInt(100)))
	assert.True(t, SignedAmount(zero, credit, domain.Asset).Equal(decimal.NewFromInt(-100)))
	assert.True(t, SignedAmount(debit, zero, domain.Expense).Equal(decimal.NewFromInt(100)))

	// Credit-normal types grow with credits.
	assert.True(t, SignedAmount(zero, credit, domain.Liability).Equal(decimal.NewFromInt(100)))
	assert.True(t, SignedAmount(debit, zero, domain.Liability).Equal(decimal.NewFromInt(-100)))
	assert.True(t, SignedAmount(zero, credit, domain.Equity).Equal(decimal.NewFromInt(100)))
	assert.True(t, SignedAmount(zero, credit, domain.Revenue).Equal(decimal.NewFromInt(100)))

	// Aggregated totals net out the same way.
	assert.True(t, SignedAmount(decimal.NewFromInt(700), decimal.NewFromInt(200), domain.Asset).Equal(decimal.NewFromInt(500)))
}

func TestEntryTotals(t *testing.T) {
	lines := []domain.JournalLine{line(100, 0), line(50, 0), line(0, 150)}

	totalDebit, totalCredit := EntryTotals(lines)
	assert.True(t, totalDebit.Equal(decimal.NewFromInt(150)))
	assert.True(t, totalCredit.Equal(decimal.NewFromInt(150)))

	totalDebit, totalCredit = EntryTotals(nil)
	assert.True(t, totalDebit.IsZero())
	assert.True(t, totalCredit.IsZero())
}

func TestValidateLines(t *testing.T) {
	// Balanced two-line entry passes.
	assert.NoError(t, ValidateLines([]domain.JournalLine{line(100, 0), line(0, 100)}))

	// Balanced multi-line entry passes.
	assert.NoError(t, ValidateLines([]domain.JournalLine{line(70, 0), line(30, 0), line(0, 100)}))

	// Fewer than two lines.
	err := ValidateLines([]domain.JournalLine{line(100, 0)})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least two lines")

	// Unbalanced.
	err = ValidateLines([]domain.JournalLine{line(100, 0), line(0, 90)})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not balance")

	// Both sides set on one line.
	err = ValidateLines([]domain.JournalLine{line(100, 100), line(100, 100)})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of debit or credit")

	// Neither side set.
	err = ValidateLines([]domain.JournalLine{line(0, 0), line(100, 0)})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of debit or credit")

	// Negative amount.
	negative := domain.JournalLine{DebitAmount: decimal.NewFromInt(-50), CreditAmount: decimal.Zero}
	err = ValidateLines([]domain.JournalLine{negative, line(0, 50)})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}
