package services

import (
	"github.com/budiutama/branchbooks/internal/cache"
	portsrepo "github.com/budiutama/branchbooks/internal/core/ports/repositories"
	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/budiutama/branchbooks/internal/events"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. publisher and balanceCache may be nil; the
// services then skip eventing and caching.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, publisher *events.Publisher, balanceCache *cache.BalanceCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first since most services resolve accounts through it.
	container.Account = NewAccountService(repos.AccountRepo)

	container.Branch = NewBranchService(repos.BranchRepo, container.Account)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.ClosingRepo, publisher, balanceCache)
	container.Balance = NewBalanceService(repos.ReportingRepo, balanceCache)
	container.CashFlow = NewCashFlowService(repos.CashFlowRepo)
	container.Closing = NewClosingService(repos.ClosingRepo, repos.JournalRepo, repos.ReportingRepo, container.Account, publisher, balanceCache)
	container.Events = NewEventAdapterService(container.Account, container.Journal)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.AccountSvcFacade      = (*accountService)(nil)
	_ portssvc.BranchSvcFacade       = (*branchService)(nil)
	_ portssvc.JournalSvcFacade      = (*journalService)(nil)
	_ portssvc.BalanceSvcFacade      = (*balanceService)(nil)
	_ portssvc.CashFlowSvcFacade     = (*cashflowService)(nil)
	_ portssvc.ClosingSvcFacade      = (*closingService)(nil)
	_ portssvc.EventAdapterSvcFacade = (*eventAdapterService)(nil)
)
