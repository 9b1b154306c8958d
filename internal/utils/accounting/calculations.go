package accounting

import (
	"fmt"

	"github.com/budiutama/branchbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount returns a posting's contribution to its account's balance.
// For debit-normal accounts (Asset, Expense) the contribution is
// debit - credit; for credit-normal accounts it is credit - debit. It works
// the same on a single line's amounts and on aggregated activity totals.
func SignedAmount(debit, credit decimal.Decimal, accountType domain.AccountType) decimal.Decimal {
	if domain.NormalBalanceFor(accountType) == domain.DebitNormal {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// EntryTotals sums the debit and credit sides of a line set.
func EntryTotals(lines []domain.JournalLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}
	return totalDebit, totalCredit
}

// ValidateLines enforces the double-entry invariants on a line set before
// anything is written: at least two lines, exactly one positive side per
// line, no negative amounts, and debits equal to credits.
func ValidateLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("journal must have at least two lines")
	}

	for i, line := range lines {
		if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
			return fmt.Errorf("line %d: amounts must be non-negative", i+1)
		}
		debitSet := line.DebitAmount.IsPositive()
		creditSet := line.CreditAmount.IsPositive()
		if debitSet == creditSet {
			return fmt.Errorf("line %d: exactly one of debit or credit must be positive", i+1)
		}
	}

	totalDebit, totalCredit := EntryTotals(lines)
	if !totalDebit.Equal(totalCredit) {
		return fmt.Errorf("journal does not balance: debit %s, credit %s", totalDebit.String(), totalCredit.String())
	}

	return nil
}
