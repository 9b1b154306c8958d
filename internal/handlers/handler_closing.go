package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/budiutama/branchbooks/internal/dto"
	"github.com/budiutama/branchbooks/internal/middleware"
	"github.com/gin-gonic/gin"
)

// closingHandler handles HTTP requests for fiscal-year closing.
type closingHandler struct {
	closingService portssvc.ClosingSvcFacade
}

func registerClosingRoutes(rg *gin.RouterGroup, closingService portssvc.ClosingSvcFacade) {
	h := &closingHandler{closingService: closingService}

	closing := rg.Group("/branches/:branchID/closing")
	{
		closing.GET("", h.listClosedYears)
		closing.GET("/preview", h.previewClosing)
		closing.POST("/execute", h.executeClosing)
		closing.POST("/void", h.voidClosing)
	}
}

func (h *closingHandler) previewClosing(c *gin.Context) {
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}

	preview, err := h.closingService.Preview(c.Request.Context(), c.Param("branchID"), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToClosingPreviewResponse(preview))
}

func (h *closingHandler) executeClosing(c *gin.Context) {
	var req dto.CloseYearRequest
	if !bindJSON(c, &req) {
		return
	}

	period, err := h.closingService.Execute(c.Request.Context(), c.Param("branchID"), req.Year, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToClosingPeriodResponse(period))
}

func (h *closingHandler) voidClosing(c *gin.Context) {
	var req struct {
		Year   int    `json:"year" binding:"required"`
		Reason string `json:"reason"`
	}
	if !bindJSON(c, &req) {
		return
	}

	err := h.closingService.VoidClosing(c.Request.Context(), c.Param("branchID"), req.Year, req.Reason, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *closingHandler) listClosedYears(c *gin.Context) {
	periods, err := h.closingService.ListClosedYears(c.Request.Context(), c.Param("branchID"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.ClosingPeriodResponse, len(periods))
	for i := range periods {
		resp[i] = dto.ToClosingPeriodResponse(&periods[i])
	}
	c.JSON(http.StatusOK, gin.H{"closings": resp})
}

func parseYearQuery(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1900 || year > 9999 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, false
	}
	return year, true
}
