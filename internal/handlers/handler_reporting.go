package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for balance and cash-flow reports.
type reportingHandler struct {
	balanceService  portssvc.BalanceSvcFacade
	cashflowService portssvc.CashFlowSvcFacade
}

func registerReportingRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade, cashflowService portssvc.CashFlowSvcFacade) {
	h := &reportingHandler{balanceService: balanceService, cashflowService: cashflowService}

	reports := rg.Group("/branches/:branchID/reports")
	{
		reports.GET("/balance-summary", h.getBalanceSummary)
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/cashflow/daily", h.getDailyCashFlow)
		reports.GET("/cashflow/history", h.getCashFlowHistory)
	}
}

func (h *reportingHandler) getBalanceSummary(c *gin.Context) {
	asOf, ok := parseTimeQuery(c, "asOf")
	if !ok {
		return
	}
	includeAccounts := c.Query("includeAccounts") == "true"

	summary, err := h.balanceService.GetBalanceSummary(c.Request.Context(), c.Param("branchID"), asOf, includeAccounts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	asOf, ok := parseTimeQuery(c, "asOf")
	if !ok {
		return
	}

	rows, err := h.balanceService.GetTrialBalance(c.Request.Context(), c.Param("branchID"), asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

func (h *reportingHandler) getDailyCashFlow(c *gin.Context) {
	date, ok := parseTimeQuery(c, "date")
	if !ok {
		return
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	report, err := h.cashflowService.GetDailyCashFlow(c.Request.Context(), c.Param("branchID"), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) getCashFlowHistory(c *gin.Context) {
	from, ok := parseTimeQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		return
	}
	if from.IsZero() || to.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to are required"})
		return
	}

	reports, err := h.cashflowService.GetCashFlowRange(c.Request.Context(), c.Param("branchID"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": reports})
}
