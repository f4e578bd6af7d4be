package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fxledger/fxledger/internal/apperrors"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/dto"
	"github.com/fxledger/fxledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// revaluationHandler handles HTTP requests related to FX revaluation runs.
type revaluationHandler struct {
	revaluationService portssvc.RevaluationSvcFacade
}

// newRevaluationHandler creates a new revaluationHandler.
func newRevaluationHandler(rs portssvc.RevaluationSvcFacade) *revaluationHandler {
	return &revaluationHandler{revaluationService: rs}
}

// registerRevaluationRoutes registers routes related to revaluation runs.
func registerRevaluationRoutes(rg *gin.RouterGroup, rs portssvc.RevaluationSvcFacade) {
	h := newRevaluationHandler(rs)

	revaluations := rg.Group("/revaluations")
	{
		revaluations.POST("", h.triggerRevaluation)
		revaluations.GET("", h.listRevaluations)
		revaluations.GET("/:revaluationID", h.getRevaluation)
	}
}

// triggerRevaluation godoc
// @Summary Run an FX revaluation now
// @Description Prices every open foreign-currency position as of the given date and books one adjusting voucher for the aggregate unrealized gain or loss. An empty body revalues as of now.
// @Tags revaluations
// @Accept  json
// @Produce  json
// @Param   body body dto.TriggerRevaluationRequest false "Optional as-of date"
// @Success 201 {object} dto.RevaluationResultResponse
// @Failure 400 {object} map[string]interface{} "Invalid request format"
// @Failure 500 {object} map[string]interface{} "Revaluation run failed"
// @Router /revaluations [post]
func (h *revaluationHandler) triggerRevaluation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TriggerRevaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	var asOf time.Time
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	actor := middleware.GetActorFromContext(c)
	result, err := h.revaluationService.Revalue(c.Request.Context(), asOf, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error triggering revaluation", slog.String("error", err.Error()))
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, apperrors.ErrIntegrityViolation):
			logger.Error("Revaluation voucher rejected by ledger integrity checks", slog.String("error", err.Error()))
			respondError(c, http.StatusInternalServerError, err.Error())
		default:
			logger.Error("Revaluation run failed", slog.String("error", err.Error()))
			respondError(c, http.StatusInternalServerError, "Revaluation run failed")
		}
		return
	}

	logger.Info("Revaluation run completed",
		slog.String("revaluation_id", result.Run.RevaluationID),
		slog.String("total_gain_loss", result.Run.TotalGainLoss.String()),
		slog.Int("positions_revalued", result.Run.PositionsRevalued),
		slog.Int("positions_skipped", result.Run.PositionsSkipped),
		slog.String("actor", actor))
	c.JSON(http.StatusCreated, dto.ToRevaluationResultResponse(result))
}

// listRevaluations godoc
// @Summary List revaluation runs
// @Tags revaluations
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListRevaluationsResponse
// @Failure 400 {object} map[string]interface{} "Invalid query parameters"
// @Failure 500 {object} map[string]interface{} "Failed to list revaluation runs"
// @Router /revaluations [get]
func (h *revaluationHandler) listRevaluations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRevaluationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	runs, nextToken, err := h.revaluationService.ListRevaluations(c.Request.Context(), params.Limit, params.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("Failed to list revaluation runs", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to list revaluation runs")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRevaluationsResponse(runs, nextToken))
}

// getRevaluation godoc
// @Summary Get a revaluation run
// @Tags revaluations
// @Produce  json
// @Param   revaluationID path string true "Revaluation run ID"
// @Success 200 {object} dto.RevaluationRunResponse
// @Failure 404 {object} map[string]interface{} "Revaluation run not found"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve revaluation run"
// @Router /revaluations/{revaluationID} [get]
func (h *revaluationHandler) getRevaluation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	revaluationID := c.Param("revaluationID")

	run, err := h.revaluationService.GetRevaluationByID(c.Request.Context(), revaluationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Revaluation run not found")
			return
		}
		logger.Error("Failed to get revaluation run", slog.String("error", err.Error()), slog.String("revaluation_id", revaluationID))
		respondError(c, http.StatusInternalServerError, "Failed to retrieve revaluation run")
		return
	}

	c.JSON(http.StatusOK, dto.ToRevaluationRunResponse(run))
}
