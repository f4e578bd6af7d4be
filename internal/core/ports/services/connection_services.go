package services

import (
	"context"

	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/fxledger/fxledger/internal/dto"
)

// ConnectionReaderSvc defines read operations for bank connections
type ConnectionReaderSvc interface {
	// GetConnectionByID retrieves a specific connection by its ID.
	GetConnectionByID(ctx context.Context, connectionID string) (*domain.BankConnection, error)

	// ListConnections retrieves all connections, optionally only active ones.
	ListConnections(ctx context.Context, onlyActive bool) ([]domain.BankConnection, error)
}

// ConnectionWriterSvc defines write operations for bank connections
type ConnectionWriterSvc interface {
	// CreateConnection validates the request, seals the supplied credentials
	// and registers the connection for syncing.
	CreateConnection(ctx context.Context, req dto.CreateConnectionRequest, creatorUserID string) (*domain.BankConnection, error)

	// DeactivateConnection marks a connection inactive; its history is kept.
	DeactivateConnection(ctx context.Context, connectionID string, requestingUserID string) error
}

// ConnectionSvcFacade combines all connection-related service interfaces
type ConnectionSvcFacade interface {
	ConnectionReaderSvc
	ConnectionWriterSvc
}
