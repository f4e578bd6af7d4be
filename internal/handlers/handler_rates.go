package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fxledger/fxledger/internal/apperrors"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/dto"
	"github.com/fxledger/fxledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rs portssvc.RateSvcFacade) {
	h := newRateHandler(rs)

	rates := rg.Group("/rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/convert", h.convert)
		rates.POST("/refresh", h.refresh)
	}
}

// listRates godoc
// @Summary List persisted exchange rates
// @Description Returns the latest stored rate rows as of a date, optionally restricted to one currency
// @Tags rates
// @Produce  json
// @Param   currencyCode query string false "ISO 4217 currency code"
// @Param   asOf query string false "Effective date (YYYY-MM-DD), defaults to now"
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]interface{} "Invalid query parameters"
// @Failure 500 {object} map[string]interface{} "Failed to list rates"
// @Router /rates [get]
func (h *rateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	asOf := time.Now()
	if params.AsOf != nil {
		asOf = *params.AsOf
	}

	rows, err := h.rateService.ListRates(c.Request.Context(), params.CurrencyCode, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to list rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rows))
}

// convert godoc
// @Summary Convert an amount between currencies
// @Description Resolves the rate as of the given date (cache first, then persisted fallback, then one on-demand refresh) and applies it
// @Tags rates
// @Produce  json
// @Param   amount query number true "Amount to convert"
// @Param   from query string true "Source currency (ISO 4217)"
// @Param   to query string true "Target currency (ISO 4217)"
// @Param   asOf query string false "Effective date (YYYY-MM-DD), defaults to now"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]interface{} "Invalid query parameters"
// @Failure 422 {object} map[string]interface{} "No rate available for the pair"
// @Failure 500 {object} map[string]interface{} "Conversion failed"
// @Router /rates/convert [get]
func (h *rateHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ConvertParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	var asOf time.Time
	if params.AsOf != nil {
		asOf = *params.AsOf
	}

	result, err := h.rateService.Convert(c.Request.Context(), params.Amount, params.From, params.To, asOf)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error converting amount", slog.String("error", err.Error()))
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, apperrors.ErrRateUnavailable):
			logger.Warn("No rate available for conversion",
				slog.String("from", params.From),
				slog.String("to", params.To),
				slog.String("error", err.Error()))
			respondError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			logger.Error("Failed to convert amount", slog.String("error", err.Error()))
			respondError(c, http.StatusInternalServerError, "Conversion failed")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionResponse(result))
}

// refresh godoc
// @Summary Refresh the exchange rate cache from the provider
// @Description Pulls the current table, persists today's rows and swaps the in-memory cache. On provider failure the previous table keeps serving.
// @Tags rates
// @Produce  json
// @Success 200 {object} dto.RateRefreshResponse
// @Failure 502 {object} map[string]interface{} "Rate provider unreachable"
// @Router /rates/refresh [post]
func (h *rateHandler) refresh(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	event, err := h.rateService.Refresh(c.Request.Context())
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			logger.Error("Rate refresh failed", slog.String("error", err.Error()))
			respondError(c, appErr.Code, appErr.Message)
			return
		}
		logger.Error("Rate refresh failed", slog.String("error", err.Error()))
		respondError(c, http.StatusBadGateway, "Rate provider unreachable")
		return
	}

	logger.Info("Rate cache refreshed",
		slog.String("base", event.Base),
		slog.Int("currencies", event.Currencies))
	c.JSON(http.StatusOK, dto.ToRateRefreshResponse(event))
}
