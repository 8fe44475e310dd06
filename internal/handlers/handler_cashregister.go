package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maslamhussaini/posaccoutingapp/internal/core/domain"
	portssvc "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/services"
	"github.com/maslamhussaini/posaccoutingapp/internal/dto"
	"github.com/maslamhussaini/posaccoutingapp/internal/middleware"
	"github.com/shopspring/decimal"
)

// cashRegisterHandler handles HTTP requests for the register lifecycle and
// movement log.
type cashRegisterHandler struct {
	registerService portssvc.CashRegisterSvcFacade
}

// newCashRegisterHandler creates a new cashRegisterHandler.
func newCashRegisterHandler(rs portssvc.CashRegisterSvcFacade) *cashRegisterHandler {
	return &cashRegisterHandler{registerService: rs}
}

// registerCashRegisterRoutes registers routes related to cash registers.
func registerCashRegisterRoutes(rg *gin.RouterGroup, registerService portssvc.CashRegisterSvcFacade) {
	h := newCashRegisterHandler(registerService)

	registers := rg.Group("/registers")
	{
		registers.POST("", h.createRegister)
		registers.GET("", h.listRegisters)
		registers.GET("/:id", h.getRegister)
		registers.POST("/:id/open", h.openRegister)
		registers.POST("/:id/close", h.closeRegister)
		registers.POST("/:id/sales", h.recordSale)
		registers.POST("/:id/returns", h.recordReturn)
		registers.POST("/:id/deposits", h.recordDeposit)
		registers.POST("/:id/withdrawals", h.recordWithdrawal)
		registers.GET("/:id/movements", h.listMovements)
		registers.GET("/:id/expected-balance", h.getExpectedBalance)
	}
}

// createRegister godoc
// @Summary Create a cash register
// @Description Creates a register in the closed state
// @Tags registers
// @Accept  json
// @Produce  json
// @Param   register body dto.CreateRegisterRequest true "Register details"
// @Success 201 {object} dto.CashRegisterResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Security BearerAuth
// @Router /registers [post]
func (h *cashRegisterHandler) createRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createRegister", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	register, err := h.registerService.CreateRegister(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to create register")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCashRegisterResponse(register))
}

// getRegister godoc
// @Summary Get a register
// @Description Retrieves a register by its ID
// @Tags registers
// @Produce  json
// @Param   id path string true "Register ID"
// @Success 200 {object} dto.CashRegisterResponse
// @Failure 404 {object} ErrorResponse "Register not found"
// @Security BearerAuth
// @Router /registers/{id} [get]
func (h *cashRegisterHandler) getRegister(c *gin.Context) {
	register, err := h.registerService.GetRegisterByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve register")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashRegisterResponse(register))
}

// listRegisters godoc
// @Summary List registers
// @Description Retrieves a paginated list of registers
// @Tags registers
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.CashRegisterResponse
// @Security BearerAuth
// @Router /registers [get]
func (h *cashRegisterHandler) listRegisters(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listRegisters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	registers, err := h.registerService.ListRegisters(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err, "Failed to list registers")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCashRegisterResponse(registers))
}

// openRegister godoc
// @Summary Open a register
// @Description Opens a closed register with a counted opening float
// @Tags registers
// @Accept  json
// @Produce  json
// @Param   id path string true "Register ID"
// @Param   opening body dto.OpenRegisterRequest true "Opening balance"
// @Success 200 {object} dto.CashRegisterResponse
// @Failure 404 {object} ErrorResponse "Register not found"
// @Failure 409 {object} ErrorResponse "Register already open or user already has an open register"
// @Security BearerAuth
// @Router /registers/{id}/open [post]
func (h *cashRegisterHandler) openRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OpenRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for openRegister", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	register, err := h.registerService.OpenRegister(c.Request.Context(), c.Param("id"), req.OpeningBalance, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to open register")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashRegisterResponse(register))
}

// closeRegister godoc
// @Summary Close a register
// @Description Closes an open register with the counted drawer balance and returns the reconciliation
// @Tags registers
// @Accept  json
// @Produce  json
// @Param   id path string true "Register ID"
// @Param   closing body dto.CloseRegisterRequest true "Counted balance"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 404 {object} ErrorResponse "Register not found"
// @Failure 409 {object} ErrorResponse "Register is not open or was opened by another user"
// @Security BearerAuth
// @Router /registers/{id}/close [post]
func (h *cashRegisterHandler) closeRegister(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CloseRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for closeRegister", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reconciliation, err := h.registerService.CloseRegister(c.Request.Context(), c.Param("id"), req.ActualBalance, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to close register")
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponse(reconciliation))
}

// recordMovement binds the shared movement request and dispatches to the
// service method for the given movement type.
func (h *cashRegisterHandler) recordMovement(c *gin.Context, movementType domain.MovementType) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	registerID := c.Param("id")
	var record func(ctx context.Context, registerID string, amount decimal.Decimal, reference string, userID string) (*domain.CashMovement, error)
	switch movementType {
	case domain.MovementSale:
		record = h.registerService.RecordSale
	case domain.MovementReturn:
		record = h.registerService.RecordReturn
	case domain.MovementDeposit:
		record = h.registerService.RecordDeposit
	case domain.MovementWithdrawal:
		record = h.registerService.RecordWithdrawal
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unsupported movement type"})
		return
	}

	movement, err := record(c.Request.Context(), registerID, req.Amount, req.Reference, userID)
	if err != nil {
		respondServiceError(c, err, "Failed to record movement")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCashMovementResponse(movement))
}

func (h *cashRegisterHandler) recordSale(c *gin.Context)       { h.recordMovement(c, domain.MovementSale) }
func (h *cashRegisterHandler) recordReturn(c *gin.Context)     { h.recordMovement(c, domain.MovementReturn) }
func (h *cashRegisterHandler) recordDeposit(c *gin.Context)    { h.recordMovement(c, domain.MovementDeposit) }
func (h *cashRegisterHandler) recordWithdrawal(c *gin.Context) { h.recordMovement(c, domain.MovementWithdrawal) }

// listMovements godoc
// @Summary List a register's movements
// @Description Retrieves a page of the register's movement log, newest first
// @Tags registers
// @Produce  json
// @Param   id path string true "Register ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 404 {object} ErrorResponse "Register not found"
// @Security BearerAuth
// @Router /registers/{id}/movements [get]
func (h *cashRegisterHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listMovements", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.registerService.ListMovements(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		respondServiceError(c, err, "Failed to list movements")
		return
	}

	c.JSON(http.StatusOK, page)
}

// getExpectedBalance godoc
// @Summary Get a register's expected balance
// @Description Recomputes the open register's balance from its movement log
// @Tags registers
// @Produce  json
// @Param   id path string true "Register ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse "Register not found"
// @Failure 409 {object} ErrorResponse "Register is not open"
// @Security BearerAuth
// @Router /registers/{id}/expected-balance [get]
func (h *cashRegisterHandler) getExpectedBalance(c *gin.Context) {
	expected, err := h.registerService.ExpectedBalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to compute expected balance")
		return
	}

	c.JSON(http.StatusOK, gin.H{"registerID": c.Param("id"), "expectedBalance": expected})
}
