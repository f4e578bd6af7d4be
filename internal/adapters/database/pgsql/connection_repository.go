package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	portsrepo "github.com/fxledger/fxledger/internal/core/ports/repositories"
	"github.com/fxledger/fxledger/internal/models"
	"github.com/fxledger/fxledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const connectionColumns = `
	connection_id, bank_id, account_number, account_name, account_type,
	credential_handle, sync_interval, is_active, last_synced_at,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxConnectionRepository persists bank connections.
type PgxConnectionRepository struct {
	BaseRepository
}

func newPgxConnectionRepository(pool *pgxpool.Pool) portsrepo.ConnectionRepositoryFacade {
	return &PgxConnectionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ConnectionRepositoryFacade = (*PgxConnectionRepository)(nil)

// SaveConnection inserts a new connection row.
func (r *PgxConnectionRepository) SaveConnection(ctx context.Context, conn domain.BankConnection) error {
	m := mapping.ToModelConnection(conn)
	query := `
		INSERT INTO bank_connections (
			connection_id, bank_id, account_number, account_name, account_type,
			credential_handle, sync_interval, is_active, last_synced_at,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ConnectionID, m.BankID, m.AccountNumber, m.AccountName, m.AccountType,
		m.CredentialHandle, m.SyncInterval, m.IsActive, m.LastSyncedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert connection "+m.ConnectionID, err)
	}
	return nil
}

// FindConnectionByID retrieves one connection.
func (r *PgxConnectionRepository) FindConnectionByID(ctx context.Context, connectionID string) (*domain.BankConnection, error) {
	query := `SELECT ` + connectionColumns + ` FROM bank_connections WHERE connection_id = $1;`
	m, err := scanConnectionRow(r.Pool.QueryRow(ctx, query, connectionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find connection "+connectionID, err)
	}
	conn := mapping.ToDomainConnection(*m)
	return &conn, nil
}

// ListConnections retrieves all connections, optionally only active ones.
func (r *PgxConnectionRepository) ListConnections(ctx context.Context, onlyActive bool) ([]domain.BankConnection, error) {
	query := `SELECT ` + connectionColumns + ` FROM bank_connections`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list connections", err)
	}
	defer rows.Close()

	conns := []domain.BankConnection{}
	for rows.Next() {
		m, err := scanConnectionRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan connection row", err)
		}
		conns = append(conns, mapping.ToDomainConnection(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating connection rows", err)
	}
	return conns, nil
}

// DeactivateConnection flips is_active off; the row and its history stay.
func (r *PgxConnectionRepository) DeactivateConnection(ctx context.Context, connectionID string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE bank_connections
		SET is_active = false, last_updated_at = $2, last_updated_by = $3
		WHERE connection_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, connectionID, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate connection "+connectionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateLastSyncedAt advances the checkpoint. Called only after a cycle has
// stored its whole batch.
func (r *PgxConnectionRepository) UpdateLastSyncedAt(ctx context.Context, connectionID string, syncedAt time.Time, updatedBy string) error {
	query := `
		UPDATE bank_connections
		SET last_synced_at = $2, last_updated_at = $3, last_updated_by = $4
		WHERE connection_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, connectionID, syncedAt, time.Now().UTC(), updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update checkpoint for connection "+connectionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// scanConnectionRow scans one bank_connections row in column order.
func scanConnectionRow(row pgx.Row) (*models.BankConnection, error) {
	var m models.BankConnection
	err := row.Scan(
		&m.ConnectionID, &m.BankID, &m.AccountNumber, &m.AccountName, &m.AccountType,
		&m.CredentialHandle, &m.SyncInterval, &m.IsActive, &m.LastSyncedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
