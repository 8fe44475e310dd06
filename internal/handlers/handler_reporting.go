package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/maslamhussaini/posaccoutingapp/internal/core/ports/services"
	"github.com/maslamhussaini/posaccoutingapp/internal/dto"
	"github.com/maslamhussaini/posaccoutingapp/internal/middleware"
)

// reportingHandler handles HTTP requests for reconciliation reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the reporting endpoints.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/daily-summary", h.getDailySummary)
		reports.GET("/register-status", h.getRegisterStatus)
	}
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Lists every active account with raw and sign-adjusted balances as of a date
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.TrialBalanceResponse
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf := time.Now()
	if asOfStr := c.Query("asOf"); asOfStr != "" {
		parsed, err := time.Parse("2006-01-02", asOfStr)
		if err != nil {
			logger.Warn("Invalid asOf date for trial balance", slog.String("as_of", asOfStr))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid asOf date, expected YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	tb, err := h.reportingService.TrialBalanceReport(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to build trial balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getDailySummary godoc
// @Summary Get a daily cash summary
// @Description Buckets one day of cash movements by type and derives the net cash flow
// @Tags reports
// @Produce  json
// @Param   date query string true "Day to summarize (YYYY-MM-DD)"
// @Param   registerID query string false "Restrict to one register"
// @Success 200 {object} dto.DailySummaryResponse
// @Security BearerAuth
// @Router /reports/daily-summary [get]
func (h *reportingHandler) getDailySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.DailySummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for getDailySummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.reportingService.DailySummary(c.Request.Context(), params.Date, params.RegisterID)
	if err != nil {
		respondServiceError(c, err, "Failed to build daily summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToDailySummaryResponse(summary))
}

// getRegisterStatus godoc
// @Summary Get the caller's open register status
// @Description Returns the caller's open register with its replayed expected balance and drift
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.RegisterStatusResponse
// @Failure 404 {object} ErrorResponse "No open register for the caller"
// @Security BearerAuth
// @Router /reports/register-status [get]
func (h *reportingHandler) getRegisterStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	status, err := h.reportingService.UserRegisterStatus(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to compute register status")
		return
	}

	c.JSON(http.StatusOK, dto.ToRegisterStatusResponse(status))
}
