package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/services"
	"github.com/maslamhussaini/posaccoutingapp/internal/dto"
	"github.com/maslamhussaini/posaccoutingapp/internal/middleware"
)

// postingHandler exposes the posting rules that turn completed business
// events into journal entries.
type postingHandler struct {
	postingService portssvc.PostingSvc
}

// newPostingHandler creates a new postingHandler.
func newPostingHandler(ps portssvc.PostingSvc) *postingHandler {
	return &postingHandler{postingService: ps}
}

// registerPostingRoutes registers the posting endpoints.
func registerPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvc) {
	h := newPostingHandler(postingService)

	postings := rg.Group("/postings")
	{
		postings.POST("/sales", h.postSale)
		postings.POST("/purchases", h.postPurchase)
		postings.POST("/returns", h.postReturn)
	}
}

func (h *postingHandler) bindPostingRequest(c *gin.Context) (*dto.PostingRequest, string, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for posting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return nil, "", false
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return nil, "", false
	}

	return &req, userID, true
}

// postSale godoc
// @Summary Post a sale
// @Description Records a completed sale as a journal entry: debit the settlement account, credit sales revenue
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   sale body dto.PostingRequest true "Sale event"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 500 {object} ErrorResponse "Required account code missing"
// @Security BearerAuth
// @Router /postings/sales [post]
func (h *postingHandler) postSale(c *gin.Context) {
	req, userID, ok := h.bindPostingRequest(c)
	if !ok {
		return
	}

	entry, err := h.postingService.PostSaleEntry(c.Request.Context(), req.EventID, req.Total, req.PaymentMethod, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to post sale")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// postPurchase godoc
// @Summary Post a purchase
// @Description Records a received purchase as a journal entry: debit inventory, credit accounts payable
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   purchase body dto.PostingRequest true "Purchase event"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 500 {object} ErrorResponse "Required account code missing"
// @Security BearerAuth
// @Router /postings/purchases [post]
func (h *postingHandler) postPurchase(c *gin.Context) {
	req, userID, ok := h.bindPostingRequest(c)
	if !ok {
		return
	}

	entry, err := h.postingService.PostPurchaseEntry(c.Request.Context(), req.EventID, req.Total, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to post purchase")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// postReturn godoc
// @Summary Post a return
// @Description Records an approved return as a journal entry: debit sales revenue, credit the settlement account
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   return body dto.PostingRequest true "Return event"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 500 {object} ErrorResponse "Required account code missing"
// @Security BearerAuth
// @Router /postings/returns [post]
func (h *postingHandler) postReturn(c *gin.Context) {
	req, userID, ok := h.bindPostingRequest(c)
	if !ok {
		return
	}

	entry, err := h.postingService.PostReturnEntry(c.Request.Context(), req.EventID, req.Total, req.PaymentMethod, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to post return")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}
