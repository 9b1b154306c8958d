package pgsql

import (
	portsrepo "github.com/budiutama/branchbooks/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgsql repository onto a shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		BranchRepo:    newPgxBranchRepository(dbPool),
		AccountRepo:   newPgxAccountRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
		CashFlowRepo:  newCashFlowRepository(dbPool),
		ClosingRepo:   newPgxClosingRepository(dbPool),
	}
}
