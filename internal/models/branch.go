package models

// Branch is the branches table row.
type Branch struct {
	BranchID string `db:"branch_id"`
	Name     string `db:"name"`
	City     string `db:"city"`
	IsActive bool   `db:"is_active"`
	AuditFields
}
