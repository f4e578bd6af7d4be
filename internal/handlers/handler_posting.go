package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/dto"
	"github.com/fxledger/fxledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler handles HTTP requests related to posted transactions.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

// newPostingHandler creates a new postingHandler.
func newPostingHandler(ps portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{postingService: ps}
}

// registerPostingRoutes registers routes related to posted transactions.
func registerPostingRoutes(rg *gin.RouterGroup, ps portssvc.PostingSvcFacade) {
	h := newPostingHandler(ps)

	postings := rg.Group("/postings")
	{
		postings.POST("", h.postTransaction)
		postings.GET("", h.listPostings)
		postings.GET("/:transactionID", h.getPosting)
	}
}

// postTransaction godoc
// @Summary Post a multi-currency transaction to the ledger
// @Description Converts the draft amount to the base currency, freezes the rate used and writes the transaction row plus two balanced journal legs atomically
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   transaction body dto.PostTransactionRequest true "Transaction draft"
// @Success 201 {object} dto.PostingResultResponse
// @Failure 400 {object} map[string]interface{} "Invalid request format or validation error"
// @Failure 422 {object} map[string]interface{} "No rate available for the transaction currency"
// @Failure 500 {object} map[string]interface{} "Posting failed"
// @Router /postings [post]
func (h *postingHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.PostTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostTransaction", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	actor := middleware.GetActorFromContext(c)
	draft := domain.TransactionDraft{
		TxnDate:         req.Date,
		Description:     req.Description,
		Amount:          req.Amount,
		CurrencyCode:    req.CurrencyCode,
		TxnType:         req.Type,
		Account:         req.Account,
		ReferenceNumber: req.ReferenceNumber,
		SourceRawTxnID:  req.SourceRawTxnID,
	}

	result, err := h.postingService.PostTransaction(c.Request.Context(), draft, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error posting transaction", slog.String("error", err.Error()))
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, apperrors.ErrConversionFailed), errors.Is(err, apperrors.ErrRateUnavailable):
			logger.Warn("Conversion failed for posting",
				slog.String("currency", req.CurrencyCode),
				slog.String("error", err.Error()))
			respondError(c, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, apperrors.ErrVoucherUnbalanced), errors.Is(err, apperrors.ErrIntegrityViolation):
			logger.Error("Posting rejected by ledger integrity checks", slog.String("error", err.Error()))
			respondError(c, http.StatusInternalServerError, err.Error())
		default:
			logger.Error("Failed to post transaction", slog.String("error", err.Error()))
			respondError(c, http.StatusInternalServerError, "Posting failed")
		}
		return
	}

	logger.Info("Transaction posted",
		slog.String("transaction_id", result.TransactionID),
		slog.String("voucher_no", result.VoucherNo),
		slog.String("actor", actor))
	c.JSON(http.StatusCreated, dto.ToPostingResultResponse(result))
}

// listPostings godoc
// @Summary List posted transactions
// @Tags postings
// @Produce  json
// @Param   from query string false "Start of date range (YYYY-MM-DD)"
// @Param   to query string false "End of date range (YYYY-MM-DD)"
// @Param   currencyCode query string false "Restrict to one original currency"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListPostingsResponse
// @Failure 400 {object} map[string]interface{} "Invalid query parameters"
// @Failure 500 {object} map[string]interface{} "Failed to list postings"
// @Router /postings [get]
func (h *postingHandler) listPostings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPostingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	page, err := h.postingService.ListPostings(c.Request.Context(), params)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("Failed to list postings", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to list postings")
		return
	}

	c.JSON(http.StatusOK, page)
}

// getPosting godoc
// @Summary Get a posted transaction with its journal legs
// @Tags postings
// @Produce  json
// @Param   transactionID path string true "Transaction ID"
// @Success 200 {object} dto.GetPostingResponse
// @Failure 404 {object} map[string]interface{} "Transaction not found"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve transaction"
// @Router /postings/{transactionID} [get]
func (h *postingHandler) getPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("transactionID")

	txn, entries, err := h.postingService.GetPostingByID(c.Request.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Transaction not found")
			return
		}
		logger.Error("Failed to get posting", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		respondError(c, http.StatusInternalServerError, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.GetPostingResponse{
		Transaction: dto.ToTransactionResponse(txn),
		Entries:     dto.ToJournalEntryResponses(entries),
	})
}
