package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fxledger/fxledger/internal/apperrors"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/dto"
	"github.com/fxledger/fxledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade) {
	h := newReportingHandler(rs)

	reports := rg.Group("/reports")
	{
		reports.GET("/forex-exposure", h.getForexExposure)
		reports.GET("/multi-currency-pl", h.getMultiCurrencyPL)
	}
}

// getForexExposure godoc
// @Summary Get the forex exposure report
// @Description Values every open foreign-currency position at current rates and reports the unrealized gain or loss per currency
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.ForexExposureResponse
// @Failure 500 {object} map[string]interface{} "Failed to build report"
// @Router /reports/forex-exposure [get]
func (h *reportingHandler) getForexExposure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.GetForexExposureReport(c.Request.Context())
	if err != nil {
		logger.Error("Failed to build forex exposure report", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to build report")
		return
	}

	c.JSON(http.StatusOK, dto.ToForexExposureResponse(report))
}

// getMultiCurrencyPL godoc
// @Summary Get the multi-currency P&L report
// @Description Totals realized posting movement per currency over a date range and adds the revaluation adjustments recognized in it
// @Tags reports
// @Produce  json
// @Param   from query string true "Start of range (YYYY-MM-DD)"
// @Param   to query string true "End of range (YYYY-MM-DD)"
// @Success 200 {object} dto.MultiCurrencyPLResponse
// @Failure 400 {object} map[string]interface{} "Missing or inverted date range"
// @Failure 500 {object} map[string]interface{} "Failed to build report"
// @Router /reports/multi-currency-pl [get]
func (h *reportingHandler) getMultiCurrencyPL(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.MultiCurrencyPLParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	report, err := h.reportingService.GetMultiCurrencyPL(c.Request.Context(), params.From, params.To)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error building P&L report", slog.String("error", err.Error()))
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("Failed to build multi-currency P&L report", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to build report")
		return
	}

	c.JSON(http.StatusOK, dto.ToMultiCurrencyPLResponse(report))
}
