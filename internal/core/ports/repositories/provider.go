package repositories

// RepositoryProvider bundles every repository facade for service wiring.
type RepositoryProvider struct {
	BranchRepo    BranchRepositoryFacade
	AccountRepo   AccountRepositoryFacade
	JournalRepo   JournalRepositoryFacade
	ReportingRepo ReportingRepositoryFacade
	CashFlowRepo  CashFlowRepositoryFacade
	ClosingRepo   ClosingRepositoryFacade
}
