package dto

// CreateBranchRequest is the payload for registering a branch.
type CreateBranchRequest struct {
	Name string `json:"name" binding:"required"`
	City string `json:"city"`
}
