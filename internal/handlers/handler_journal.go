package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/budiutama/branchbooks/internal/dto"
	"github.com/budiutama/branchbooks/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests for posting, voiding and reading
// journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := &journalHandler{journalService: journalService}

	journals := rg.Group("/branches/:branchID/journals")
	{
		journals.POST("", h.postJournal)
		journals.POST("/opening", h.postOpening)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.POST("/:journalID/void", h.voidJournal)
	}
}

func (h *journalHandler) postJournal(c *gin.Context) {
	var req dto.PostJournalRequest
	if !bindJSON(c, &req) {
		return
	}
	req.BranchID = c.Param("branchID")

	entry, err := h.journalService.PostJournal(c.Request.Context(), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entry))
}

func (h *journalHandler) postOpening(c *gin.Context) {
	var req dto.PostJournalRequest
	if !bindJSON(c, &req) {
		return
	}
	req.BranchID = c.Param("branchID")

	entry, err := h.journalService.PostOpening(c.Request.Context(), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entry))
}

func (h *journalHandler) listJournals(c *gin.Context) {
	params := dto.ListJournalsParams{}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		params.Limit = limit
	}
	if token := c.Query("nextToken"); token != "" {
		params.NextToken = &token
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), c.Param("branchID"), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *journalHandler) getJournal(c *gin.Context) {
	entry, err := h.journalService.GetJournalByID(c.Request.Context(), c.Param("branchID"), c.Param("journalID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

func (h *journalHandler) voidJournal(c *gin.Context) {
	var req dto.VoidJournalRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.journalService.VoidJournal(c.Request.Context(), c.Param("branchID"), c.Param("journalID"), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}
