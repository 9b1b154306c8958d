package handlers

import (
	"net/http"
	"time"

	"github.com/budiutama/branchbooks/internal/core/domain"
	portsrepo "github.com/budiutama/branchbooks/internal/core/ports/repositories"
	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/budiutama/branchbooks/internal/dto"
	"github.com/budiutama/branchbooks/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	balanceService portssvc.BalanceSvcFacade
}

// RegisterAccountRoutes mounts the chart-of-accounts endpoints on rg.
// Exported so handler tests can mount them on a bare router.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, balanceService portssvc.BalanceSvcFacade) {
	h := &accountHandler{accountService: accountService, balanceService: balanceService}

	accounts := rg.Group("/branches/:branchID/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deactivateAccount)
		accounts.GET("/:accountID/balance", h.getAccountBalance)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), c.Param("branchID"), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	filter := portsrepo.ListAccountsFilter{
		ActiveOnly:  c.Query("activeOnly") == "true",
		DetailOnly:  c.Query("detailOnly") == "true",
		PaymentOnly: c.Query("paymentOnly") == "true",
	}
	if t := c.Query("type"); t != "" {
		accountType := domain.AccountType(t)
		filter.AccountType = &accountType
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), c.Param("branchID"), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.AccountResponse, len(accounts))
	for i := range accounts {
		resp[i] = dto.ToAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, gin.H{"accounts": resp})
}

func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByID(c.Request.Context(), c.Param("branchID"), c.Param("accountID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	var req dto.UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), c.Param("branchID"), c.Param("accountID"), req, middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) deactivateAccount(c *gin.Context) {
	err := h.accountService.DeactivateAccount(c.Request.Context(), c.Param("branchID"), c.Param("accountID"), middleware.GetActorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *accountHandler) getAccountBalance(c *gin.Context) {
	asOf, ok := parseTimeQuery(c, "asOf")
	if !ok {
		return
	}

	balance, err := h.balanceService.GetAccountBalance(c.Request.Context(), c.Param("branchID"), c.Param("accountID"), asOf)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accountID": c.Param("accountID"), "balance": balance})
}

// parseTimeQuery reads an optional RFC3339 or date-only query parameter.
// A missing parameter comes back as the zero time.
func parseTimeQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + ": expected RFC3339 or YYYY-MM-DD"})
	return time.Time{}, false
}
