package handlers

import (
	"net/http"

	"github.com/budiutama/branchbooks/internal/core/domain"
	portssvc "github.com/budiutama/branchbooks/internal/core/ports/services"
	"github.com/budiutama/branchbooks/internal/dto"
	"github.com/budiutama/branchbooks/internal/middleware"
	"github.com/gin-gonic/gin"
)

// eventHandler exposes the business-event endpoints. Each endpoint accepts a
// domain event and returns the journal entry it produced.
type eventHandler struct {
	eventService portssvc.EventAdapterSvcFacade
}

func registerEventRoutes(rg *gin.RouterGroup, eventService portssvc.EventAdapterSvcFacade) {
	h := &eventHandler{eventService: eventService}

	events := rg.Group("/branches/:branchID/events")
	{
		events.POST("/sales", h.recordSale)
		events.POST("/expenses", h.recordExpense)
		events.POST("/payroll", h.recordPayroll)
		events.POST("/advances", h.recordAdvance)
		events.POST("/transfers", h.recordTransfer)
		events.POST("/receivable-payments", h.recordReceivablePayment)
		events.POST("/payable-payments", h.recordPayablePayment)
		events.POST("/asset-purchases", h.recordAssetPurchase)
		events.POST("/depreciations", h.recordDepreciation)
		events.POST("/taxes", h.recordTax)
		events.POST("/manual-cash", h.recordManualCash)
	}
}

func (h *eventHandler) recordSale(c *gin.Context) {
	var ev dto.SaleEvent
	if !bindJSON(c, &ev) {
		return
	}
	h.respondEntry(c)(h.eventService.RecordSale(c.Request.Context(), c.Param("branchID"), ev, middleware.GetActorFromContext(c)))
}

func (h *eventHandler) recordExpense(c *gin.Context) {
	var ev dto.ExpenseEvent
	if !bindJSON(c, &ev) {
		return
	}
	h.respondEntry(c)(h.eventService.RecordExpense(c.Request.Context(), c.Param("branchID"), ev, middleware.GetActorFromContext(c)))
}

func (h *eventHandler) recordPayroll(c *gin.Context) {
	var ev dto.PayrollEvent
	if !bindJSON(c, &ev) {
		return
	}
	h.respondEntry(c)(h.eventService.RecordPayroll(c.Request.Context(), c.Param("branchID"), ev, middleware.GetActorFromContext(c)))
}

func (h *eventHandler) recordAdvance(c *gin.Context) {
	var ev dto.AdvanceEvent
	if !bindJSON(c, &ev) {
		return
	}
	h.respondEntry(c)(h.eventService.RecordAdvance(c.Request.Context(), c.Param("branchID"), ev, middleware.GetActorFromContext(c)))
}

func (h *eventHandler) recordTransfer(c *gin.Context) {
	var ev dto.TransferEvent
	if !bindJSON(c, &ev) {
		return
	}
	h.respondEntry(c)(h.eventService.RecordTransfer(c.Request.Context(), c.Param("branchID"), ev, middleware.GetActorFromContext(c)))
}

func (h *eventHandler) recordReceivablePayment(c *gin.Context) {
	var ev dto.ReceivablePaymentEvent
	if !bindJSON(c, &ev) {
		return
	}
	h.respondEntry(c)(h.eventService.RecordReceivablePayment(c.Request.Context(), c.Param("branchID"), ev, middleware.GetActorFromContext(c)))
}

func (h *eventHandler) recordPayablePayment(c *gin.Context) {
	var ev dto.PayablePaymentEvent
	if !bindJSON(c, &ev) {
		return
	}
	h.respondEntry(c)(h.eventService.RecordPayablePayment(c.Request.Context(), c.Param("branchID"), ev, middleware.GetActorFromContext(c)))
}

func (h *eventHandler) recordAssetPurchase(c *gin.Context) {
	var ev dto.AssetPurchaseEvent
	if !bindJSON(c, &ev) {
		return
	}
	h.respondEntry(c)(h.eventService.RecordAssetPurchase(c.Request.Context(), c.Param("branchID"), ev, middleware.GetActorFromContext(c)))
}

func (h *eventHandler) recordDepreciation(c *gin.Context) {
	var ev dto.DepreciationEvent
	if !bindJSON(c, &ev) {
		return
	}
	h.respondEntry(c)(h.eventService.RecordDepreciation(c.Request.Context(), c.Param("branchID"), ev, middleware.GetActorFromContext(c)))
}

func (h *eventHandler) recordTax(c *gin.Context) {
	var ev dto.TaxEvent
	if !bindJSON(c, &ev) {
		return
	}
	h.respondEntry(c)(h.eventService.RecordTax(c.Request.Context(), c.Param("branchID"), ev, middleware.GetActorFromContext(c)))
}

func (h *eventHandler) recordManualCash(c *gin.Context) {
	var ev dto.ManualCashEvent
	if !bindJSON(c, &ev) {
		return
	}
	h.respondEntry(c)(h.eventService.RecordManualCash(c.Request.Context(), c.Param("branchID"), ev, middleware.GetActorFromContext(c)))
}

// respondEntry folds the common "journal entry or error" tail of every event
// endpoint into one response writer.
func (h *eventHandler) respondEntry(c *gin.Context) func(entry *domain.JournalEntry, err error) {
	return func(entry *domain.JournalEntry, err error) {
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, dto.ToJournalResponse(entry))
	}
}
