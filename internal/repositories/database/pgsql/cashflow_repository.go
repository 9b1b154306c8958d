package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/budiutama/branchbooks/internal/core/domain"
	portsrepo "github.com/budiutama/branchbooks/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CashFlowRepository reads the payment-account projection of the ledger.
type CashFlowRepository struct {
	BaseRepository
}

// newCashFlowRepository creates a new repository for cash-flow reads.
func newCashFlowRepository(pool *pgxpool.Pool) portsrepo.CashFlowRepositoryFacade {
	return &CashFlowRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CashFlowRepositoryFacade = (*CashFlowRepository)(nil)

// PaymentAccountMovements returns every posted, non-voided line on a payment
// account within [from, to], oldest first. Direction follows the line side:
// a debit on a cash account is an inflow.
func (r *CashFlowRepository) PaymentAccountMovements(ctx context.Context, branchID string, from, to time.Time) ([]domain.CashMovement, error) {
	query := `
		SELECT
			j.journal_id,
			j.entry_number,
			j.entry_date,
			a.account_id,
			a.name,
			CASE WHEN l.debit_amount > 0 THEN 'in' ELSE 'out' END AS direction,
			CASE WHEN l.debit_amount > 0 THEN l.debit_amount ELSE l.credit_amount END AS amount,
			COALESCE(NULLIF(l.description, ''), j.description) AS description,
			j.reference_type
		FROM journal_entry_lines l
		JOIN journal_entries j ON j.journal_id = l.journal_entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE j.branch_id = $1
		  AND j.status = 'posted'
		  AND a.is_payment_account = TRUE
		  AND j.entry_date BETWEEN $2 AND $3
		ORDER BY j.entry_date, j.created_at, l.line_number;
	`
	rows, err := r.Pool.Query(ctx, query, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash movements: %w", err)
	}
	defer rows.Close()

	var out []domain.CashMovement
	for rows.Next() {
		var m domain.CashMovement
		var direction string
		var refType string
		if err := rows.Scan(&m.JournalID, &m.EntryNumber, &m.EntryDate, &m.AccountID, &m.AccountName, &direction, &m.Amount, &m.Description, &refType); err != nil {
			return nil, fmt.Errorf("failed to scan cash movement: %w", err)
		}
		m.Direction = domain.CashDirection(direction)
		m.ReferenceType = domain.ReferenceType(refType)
		m.Category = domain.CashFlowCategory(m.ReferenceType, m.Direction)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cash movements: %w", err)
	}
	return out, nil
}
