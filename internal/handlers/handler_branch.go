package handlers

import (
	"net/http"

	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/budiutama/branchbooks/internal/dto"
	"github.com/budiutama/branchbooks/internal/middleware"
	"github.com/gin-gonic/gin"
)

// branchHandler handles HTTP requests for the branch registry.
type branchHandler struct {
	branchService portssvc.BranchSvcFacade
}

func registerBranchRoutes(rg *gin.RouterGroup, branchService portssvc.BranchSvcFacade) {
	h := &branchHandler{branchService: branchService}

	branches := rg.Group("/branches")
	{
		branches.POST("", h.createBranch)
		branches.GET("", h.listBranches)
		branches.GET("/:branchID", h.getBranch)
	}
}

func (h *branchHandler) createBranch(c *gin.Context) {
	var req dto.CreateBranchRequest
	if !bindJSON(c, &req) {
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, branch)
}

func (h *branchHandler) listBranches(c *gin.Context) {
	branches, err := h.branchService.ListBranches(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": branches})
}

func (h *branchHandler) getBranch(c *gin.Context) {
	branch, err := h.branchService.GetBranchByID(c.Request.Context(), c.Param("branchID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, branch)
}
