package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/fxledger/fxledger/internal/core/ports/providers"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/dto"
	"github.com/fxledger/fxledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SyncScheduler is the slice of the scheduler the connection endpoints
// drive: task registration and on-demand sync cycles.
type SyncScheduler interface {
	Register(connectionID string, interval domain.SyncInterval)
	Deregister(connectionID string)
	SyncNow(ctx context.Context, connectionID string) (*domain.SyncResult, error)
}

// connectionHandler handles HTTP requests related to bank connections.
type connectionHandler struct {
	connectionService portssvc.ConnectionSvcFacade
	scheduler         SyncScheduler
}

// newConnectionHandler creates a new connectionHandler.
func newConnectionHandler(cs portssvc.ConnectionSvcFacade, sched SyncScheduler) *connectionHandler {
	return &connectionHandler{
		connectionService: cs,
		scheduler:         sched,
	}
}

// registerConnectionRoutes registers routes related to bank connections.
func registerConnectionRoutes(rg *gin.RouterGroup, cs portssvc.ConnectionSvcFacade, sched SyncScheduler) {
	h := newConnectionHandler(cs, sched)

	connections := rg.Group("/connections")
	{
		connections.POST("", h.createConnection)
		connections.GET("", h.listConnections)
		connections.GET("/:connectionID", h.getConnection)
		connections.DELETE("/:connectionID", h.deactivateConnection)
		connections.POST("/:connectionID/sync", h.syncConnection)
	}
}

// createConnection godoc
// @Summary Register a bank feed connection
// @Description Validates the request, seals the supplied credentials and schedules the connection for syncing
// @Tags connections
// @Accept  json
// @Produce  json
// @Param   connection body dto.CreateConnectionRequest true "Connection details"
// @Success 201 {object} dto.ConnectionResponse
// @Failure 400 {object} map[string]interface{} "Invalid request format or validation error"
// @Failure 409 {object} map[string]interface{} "Connection already exists"
// @Failure 500 {object} map[string]interface{} "Failed to register connection"
// @Router /connections [post]
func (h *connectionHandler) createConnection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateConnection", slog.String("error", err.Error()))
		respondError(c, http.StatusBadRequest, "Invalid request format: "+err.Error())
		return
	}

	actor := middleware.GetActorFromContext(c)
	logger = logger.With(slog.String("bank_id", req.BankID), slog.String("actor", actor))

	conn, err := h.connectionService.CreateConnection(c.Request.Context(), req, actor)
	if err != nil {
		var appErr *apperrors.AppError
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating connection", slog.String("error", err.Error()))
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, apperrors.ErrDuplicate):
			logger.Warn("Duplicate connection", slog.String("error", err.Error()))
			respondError(c, http.StatusConflict, err.Error())
		case errors.As(err, &appErr):
			logger.Error("Failed to create connection", slog.String("error", err.Error()))
			respondError(c, appErr.Code, appErr.Message)
		default:
			logger.Error("Failed to create connection", slog.String("error", err.Error()))
			respondError(c, http.StatusInternalServerError, "Failed to register connection")
		}
		return
	}

	h.scheduler.Register(conn.ConnectionID, conn.SyncInterval)

	logger.Info("Connection registered", slog.String("connection_id", conn.ConnectionID))
	c.JSON(http.StatusCreated, dto.ToConnectionResponse(conn))
}

// listConnections godoc
// @Summary List bank feed connections
// @Tags connections
// @Produce  json
// @Param   onlyActive query bool false "Restrict to active connections"
// @Success 200 {array} dto.ConnectionResponse
// @Failure 500 {object} map[string]interface{} "Failed to list connections"
// @Router /connections [get]
func (h *connectionHandler) listConnections(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListConnectionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	conns, err := h.connectionService.ListConnections(c.Request.Context(), params.OnlyActive)
	if err != nil {
		logger.Error("Failed to list connections", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to list connections")
		return
	}

	c.JSON(http.StatusOK, dto.ToListConnectionResponse(conns))
}

// getConnection godoc
// @Summary Get a bank feed connection
// @Tags connections
// @Produce  json
// @Param   connectionID path string true "Connection ID"
// @Success 200 {object} dto.ConnectionResponse
// @Failure 404 {object} map[string]interface{} "Connection not found"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve connection"
// @Router /connections/{connectionID} [get]
func (h *connectionHandler) getConnection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	connectionID := c.Param("connectionID")

	conn, err := h.connectionService.GetConnectionByID(c.Request.Context(), connectionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Connection not found")
			return
		}
		logger.Error("Failed to get connection", slog.String("error", err.Error()), slog.String("connection_id", connectionID))
		respondError(c, http.StatusInternalServerError, "Failed to retrieve connection")
		return
	}

	c.JSON(http.StatusOK, dto.ToConnectionResponse(conn))
}

// deactivateConnection godoc
// @Summary Deactivate a bank feed connection
// @Description Marks the connection inactive and stops its sync task. History is preserved; connections are never hard-deleted.
// @Tags connections
// @Param   connectionID path string true "Connection ID"
// @Success 204 "Connection deactivated"
// @Failure 404 {object} map[string]interface{} "Connection not found"
// @Failure 500 {object} map[string]interface{} "Failed to deactivate connection"
// @Router /connections/{connectionID} [delete]
func (h *connectionHandler) deactivateConnection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	connectionID := c.Param("connectionID")
	actor := middleware.GetActorFromContext(c)

	err := h.connectionService.DeactivateConnection(c.Request.Context(), connectionID, actor)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Connection not found")
			return
		}
		logger.Error("Failed to deactivate connection", slog.String("error", err.Error()), slog.String("connection_id", connectionID))
		respondError(c, http.StatusInternalServerError, "Failed to deactivate connection")
		return
	}

	h.scheduler.Deregister(connectionID)

	logger.Info("Connection deactivated", slog.String("connection_id", connectionID), slog.String("actor", actor))
	c.Status(http.StatusNoContent)
}

// syncConnection godoc
// @Summary Run one sync cycle for a connection now
// @Description Fetches, normalizes, deduplicates and stages feed transactions through the same path the scheduler uses, then reports the cycle counts
// @Tags connections
// @Produce  json
// @Param   connectionID path string true "Connection ID"
// @Success 200 {object} dto.SyncResultResponse
// @Failure 404 {object} map[string]interface{} "Connection not found"
// @Failure 409 {object} map[string]interface{} "Connection is inactive"
// @Failure 502 {object} map[string]interface{} "Feed rejected the stored credentials or sent an undecodable payload"
// @Failure 503 {object} map[string]interface{} "Feed temporarily unavailable"
// @Router /connections/{connectionID}/sync [post]
func (h *connectionHandler) syncConnection(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	connectionID := c.Param("connectionID")

	result, err := h.scheduler.SyncNow(c.Request.Context(), connectionID)
	if err != nil {
		if kind, ok := providers.FetchKindOf(err); ok {
			logger.Warn("On-demand sync failed at the feed", slog.String("connection_id", connectionID), slog.String("kind", kind.String()))
			if kind == providers.FetchTransient {
				respondError(c, http.StatusServiceUnavailable, err.Error())
			} else {
				respondError(c, http.StatusBadGateway, err.Error())
			}
			return
		}
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			respondError(c, http.StatusNotFound, "Connection not found")
		case errors.Is(err, apperrors.ErrConflict):
			respondError(c, http.StatusConflict, err.Error())
		default:
			logger.Error("On-demand sync failed", slog.String("error", err.Error()), slog.String("connection_id", connectionID))
			respondError(c, http.StatusInternalServerError, "Sync cycle failed")
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSyncResultResponse(result))
}
