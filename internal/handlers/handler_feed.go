package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/fxledger/fxledger/internal/apperrors"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/dto"
	"github.com/fxledger/fxledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// feedHandler handles HTTP requests over staged feed transactions.
type feedHandler struct {
	ingestionService   portssvc.IngestionSvcFacade
	categorizerService portssvc.CategorizerSvcFacade
}

// newFeedHandler creates a new feedHandler.
func newFeedHandler(is portssvc.IngestionSvcFacade, cs portssvc.CategorizerSvcFacade) *feedHandler {
	return &feedHandler{
		ingestionService:   is,
		categorizerService: cs,
	}
}

// registerFeedRoutes registers routes over staged feed transactions.
func registerFeedRoutes(rg *gin.RouterGroup, is portssvc.IngestionSvcFacade, cs portssvc.CategorizerSvcFacade) {
	h := newFeedHandler(is, cs)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("/unreconciled", h.listUnreconciled)
		transactions.GET("/:rawTxnID", h.getRawTransaction)
		transactions.PATCH("/:rawTxnID/reconcile", h.setReconciled)
		transactions.POST("/:rawTxnID/categorize", h.categorizeTransaction)
	}

	rg.POST("/categorize/batch", h.categorizeBatch)
}

// listUnreconciled godoc
// @Summary List staged transactions awaiting reconciliation
// @Tags transactions
// @Produce  json
// @Param   connectionID query string false "Restrict to one connection"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListRawTransactionsResponse
// @Failure 400 {object} map[string]interface{} "Invalid query parameters"
// @Failure 500 {object} map[string]interface{} "Failed to list transactions"
// @Router /transactions/unreconciled [get]
func (h *feedHandler) listUnreconciled(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListUnreconciledParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	page, err := h.ingestionService.ListUnreconciledTransactions(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("Failed to list unreconciled transactions", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, page)
}

// getRawTransaction godoc
// @Summary Get a staged feed transaction
// @Tags transactions
// @Produce  json
// @Param   rawTxnID path string true "Staged transaction ID"
// @Success 200 {object} dto.RawTransactionResponse
// @Failure 404 {object} map[string]interface{} "Transaction not found"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve transaction"
// @Router /transactions/{rawTxnID} [get]
func (h *feedHandler) getRawTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rawTxnID := c.Param("rawTxnID")

	txn, err := h.ingestionService.GetRawTransactionByID(c.Request.Context(), rawTxnID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Transaction not found")
			return
		}
		logger.Error("Failed to get staged transaction", slog.String("error", err.Error()), slog.String("raw_txn_id", rawTxnID))
		respondError(c, http.StatusInternalServerError, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToRawTransactionResponse(txn))
}

// setReconciled godoc
// @Summary Set or clear the reconciliation flag on a staged transaction
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   rawTxnID path string true "Staged transaction ID"
// @Param   body body dto.SetReconciledRequest true "Desired flag"
// @Success 200 {object} dto.RawTransactionResponse
// @Failure 400 {object} map[string]interface{} "Invalid request format"
// @Failure 404 {object} map[string]interface{} "Transaction not found"
// @Failure 500 {object} map[string]interface{} "Failed to update transaction"
// @Router /transactions/{rawTxnID}/reconcile [patch]
func (h *feedHandler) setReconciled(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rawTxnID := c.Param("rawTxnID")

	var req dto.SetReconciledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	actor := middleware.GetActorFromContext(c)
	txn, err := h.ingestionService.SetReconciled(c.Request.Context(), rawTxnID, *req.Reconciled, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Transaction not found")
			return
		}
		logger.Error("Failed to set reconciliation flag", slog.String("error", err.Error()), slog.String("raw_txn_id", rawTxnID))
		respondError(c, http.StatusInternalServerError, "Failed to update transaction")
		return
	}

	logger.Info("Reconciliation flag updated",
		slog.String("raw_txn_id", rawTxnID),
		slog.Bool("reconciled", *req.Reconciled),
		slog.String("actor", actor))
	c.JSON(http.StatusOK, dto.ToRawTransactionResponse(txn))
}

// categorizeTransaction godoc
// @Summary Categorize one staged transaction
// @Description Runs the description-based classifier on one staged transaction and persists the category and confidence
// @Tags transactions
// @Produce  json
// @Param   rawTxnID path string true "Staged transaction ID"
// @Success 200 {object} dto.RawTransactionResponse
// @Failure 404 {object} map[string]interface{} "Transaction not found"
// @Failure 500 {object} map[string]interface{} "Failed to categorize transaction"
// @Router /transactions/{rawTxnID}/categorize [post]
func (h *feedHandler) categorizeTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rawTxnID := c.Param("rawTxnID")
	actor := middleware.GetActorFromContext(c)

	txn, err := h.categorizerService.CategorizeTransaction(c.Request.Context(), rawTxnID, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Transaction not found")
			return
		}
		logger.Error("Failed to categorize transaction", slog.String("error", err.Error()), slog.String("raw_txn_id", rawTxnID))
		respondError(c, http.StatusInternalServerError, "Failed to categorize transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToRawTransactionResponse(txn))
}

// categorizeBatch godoc
// @Summary Categorize a batch of uncategorized staged transactions
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   body body dto.CategorizeBatchRequest false "Batch scope; defaults to all connections"
// @Success 200 {object} dto.CategorizeBatchResponse
// @Failure 400 {object} map[string]interface{} "Invalid request format"
// @Failure 500 {object} map[string]interface{} "Failed to categorize batch"
// @Router /categorize/batch [post]
func (h *feedHandler) categorizeBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CategorizeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	actor := middleware.GetActorFromContext(c)
	updated, err := h.categorizerService.CategorizeBatch(c.Request.Context(), req.ConnectionID, req.Limit, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("Failed to categorize batch", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to categorize batch")
		return
	}

	logger.Info("Batch categorization completed", slog.Int("updated", updated), slog.String("actor", actor))
	c.JSON(http.StatusOK, dto.CategorizeBatchResponse{Updated: updated})
}
