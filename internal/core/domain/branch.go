package domain

// Branch is an isolated operational unit with its own chart of accounts and
// ledger scope. Every ledger call is explicitly branch-scoped; no cross-branch
// transaction exists anywhere in the engine.
type Branch struct {
	BranchID string `json:"branchID"`
	Name     string `json:"name"`
	City     string `json:"city,omitempty"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
