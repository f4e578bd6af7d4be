package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/fxledger/fxledger/internal/core/ports/providers"
	portsrepo "github.com/fxledger/fxledger/internal/core/ports/repositories"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/dto"
	"github.com/google/uuid"
)

// connectionService provides business logic for bank connections.
type connectionService struct {
	baseService
	connRepo portsrepo.ConnectionRepositoryFacade
	secrets  providers.SecretStore
}

// NewConnectionService creates a new connection service.
func NewConnectionService(connRepo portsrepo.ConnectionRepositoryFacade, secrets providers.SecretStore) portssvc.ConnectionSvcFacade {
	return &connectionService{
		connRepo: connRepo,
		secrets:  secrets,
	}
}

var _ portssvc.ConnectionSvcFacade = (*connectionService)(nil)

// CreateConnection validates the request, seals the raw credentials into an
// opaque handle and registers the connection. The credential plaintext is
// never persisted or logged.
func (s *connectionService) CreateConnection(ctx context.Context, req dto.CreateConnectionRequest, creatorUserID string) (*domain.BankConnection, error) {
	logger := s.logger(ctx)

	if !json.Valid(req.Credentials) {
		return nil, fmt.Errorf("%w: credentials must be a JSON document", apperrors.ErrValidation)
	}

	handle, err := s.secrets.Seal(ctx, req.Credentials)
	if err != nil {
		s.LogError(ctx, err, "Failed to seal connection credentials")
		return nil, apperrors.NewInternalError("failed to seal credentials", err)
	}

	now := time.Now().UTC()
	conn := domain.BankConnection{
		ConnectionID:     uuid.NewString(),
		BankID:           req.BankID,
		AccountNumber:    req.AccountNumber,
		AccountName:      req.AccountName,
		AccountType:      req.AccountType,
		CredentialHandle: handle,
		SyncInterval:     req.SyncInterval,
		IsActive:         true,
		LastSyncedAt:     nil,
		AuditFields:      domain.NewAudit(creatorUserID, now),
	}

	if err := conn.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.connRepo.SaveConnection(ctx, conn); err != nil {
		s.LogError(ctx, err, "Failed to save connection", slog.String("bank_id", req.BankID))
		return nil, fmt.Errorf("failed to save connection: %w", err)
	}

	logger.Info("Connection registered",
		slog.String("connection_id", conn.ConnectionID),
		slog.String("bank_id", conn.BankID),
		slog.String("sync_interval", string(conn.SyncInterval)),
	)
	return &conn, nil
}

// GetConnectionByID retrieves a specific connection by its ID.
func (s *connectionService) GetConnectionByID(ctx context.Context, connectionID string) (*domain.BankConnection, error) {
	conn, err := s.connRepo.FindConnectionByID(ctx, connectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get connection: %w", err)
	}
	return conn, nil
}

// ListConnections retrieves all connections, optionally only active ones.
func (s *connectionService) ListConnections(ctx context.Context, onlyActive bool) ([]domain.BankConnection, error) {
	conns, err := s.connRepo.ListConnections(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	return conns, nil
}

// DeactivateConnection marks a connection inactive. Staged transactions and
// posting history are kept; the scheduler drops the connection on its next tick.
func (s *connectionService) DeactivateConnection(ctx context.Context, connectionID string, requestingUserID string) error {
	if err := s.connRepo.DeactivateConnection(ctx, connectionID, requestingUserID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to deactivate connection: %w", err)
	}

	s.LogInfo(ctx, "Connection deactivated",
		slog.String("connection_id", connectionID),
		slog.String("requested_by", requestingUserID),
	)
	return nil
}
