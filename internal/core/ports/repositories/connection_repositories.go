package repositories

import (
	"context"
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
)

// ConnectionReader defines read operations for bank connection data
type ConnectionReader interface {
	// FindConnectionByID retrieves a specific connection by its unique identifier.
	FindConnectionByID(ctx context.Context, connectionID string) (*domain.BankConnection, error)

	// ListConnections retrieves all connections, optionally restricted to active ones.
	ListConnections(ctx context.Context, onlyActive bool) ([]domain.BankConnection, error)
}

// ConnectionWriter defines write operations for bank connection data
type ConnectionWriter interface {
	// SaveConnection persists a new connection.
	SaveConnection(ctx context.Context, conn domain.BankConnection) error

	// DeactivateConnection flips a connection inactive. Connections are never hard-deleted.
	DeactivateConnection(ctx context.Context, connectionID string, updatedBy string, updatedAt time.Time) error

	// UpdateLastSyncedAt advances the sync checkpoint after a fully processed batch.
	UpdateLastSyncedAt(ctx context.Context, connectionID string, syncedAt time.Time, updatedBy string) error
}

// ConnectionRepositoryFacade combines all connection-related repository interfaces
type ConnectionRepositoryFacade interface {
	ConnectionReader
	ConnectionWriter
}
