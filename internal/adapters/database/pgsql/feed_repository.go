package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	portsrepo "github.com/fxledger/fxledger/internal/core/ports/repositories"
	"github.com/fxledger/fxledger/internal/models"
	"github.com/fxledger/fxledger/internal/utils/mapping"
	"github.com/fxledger/fxledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const rawTxnColumns = `
	raw_txn_id, connection_id, external_id, txn_date, description, amount,
	txn_type, balance, reference_number, category, confidence, reconciled,
	raw_data, created_at, created_by, last_updated_at, last_updated_by`

// PgxFeedRepository persists staged feed transactions.
type PgxFeedRepository struct {
	BaseRepository
}

func newPgxFeedRepository(pool *pgxpool.Pool) portsrepo.FeedRepositoryFacade {
	return &PgxFeedRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FeedRepositoryFacade = (*PgxFeedRepository)(nil)

// StoreRawTransaction inserts a staged transaction. The unique index on
// (connection_id, external_id) makes re-ingestion a no-op: ON CONFLICT
// DO NOTHING leaves the existing row untouched and we report the outcome
// from the affected-row count.
func (r *PgxFeedRepository) StoreRawTransaction(ctx context.Context, txn domain.RawBankTransaction) (portsrepo.StoreOutcome, error) {
	m := mapping.ToModelRawTransaction(txn)
	query := `
		INSERT INTO raw_bank_transactions (
			raw_txn_id, connection_id, external_id, txn_date, description, amount,
			txn_type, balance, reference_number, category, confidence, reconciled,
			raw_data, created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (connection_id, external_id) DO NOTHING;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.RawTxnID, m.ConnectionID, m.ExternalID, m.TxnDate, m.Description, m.Amount,
		m.TxnType, m.Balance, m.ReferenceNumber, m.Category, m.Confidence, m.Reconciled,
		m.RawData, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return portsrepo.StoreAlreadyExists, apperrors.NewAppError(500, "failed to store raw transaction "+m.ExternalID, err)
	}
	if tag.RowsAffected() == 0 {
		return portsrepo.StoreAlreadyExists, nil
	}
	return portsrepo.StoreInserted, nil
}

// FindRawTransactionByID retrieves a staged transaction by ID.
func (r *PgxFeedRepository) FindRawTransactionByID(ctx context.Context, rawTxnID string) (*domain.RawBankTransaction, error) {
	query := `SELECT ` + rawTxnColumns + ` FROM raw_bank_transactions WHERE raw_txn_id = $1;`
	m, err := scanRawTxnRow(r.Pool.QueryRow(ctx, query, rawTxnID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find raw transaction "+rawTxnID, err)
	}
	txn := mapping.ToDomainRawTransaction(*m)
	return &txn, nil
}

// ListUnreconciled retrieves unreconciled staged transactions ordered newest
// first, using token-based pagination. It returns the page, a token for the
// next page (if any), and an error.
func (r *PgxFeedRepository) ListUnreconciled(ctx context.Context, connectionID string, limit int, nextToken *string) ([]domain.RawBankTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + rawTxnColumns + ` FROM raw_bank_transactions`

	filterClause := `WHERE NOT reconciled`
	args := []interface{}{}
	if connectionID != "" {
		args = append(args, connectionID)
		filterClause += ` AND connection_id = $` + strconv.Itoa(len(args))
	}

	// Ordering must be stable: txn_date DESC with created_at DESC tie-break.
	orderByClause := `ORDER BY txn_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error

	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.Decode(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (txn_date, created_at) < ($` + strconv.Itoa(len(args)+1) + `, $` + strconv.Itoa(len(args)+2) + `)`
		args = append(args, cursor.Key, cursor.CreatedAt)

		query := baseQuery + " " + filterClause + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query unreconciled transactions", err)
	}
	defer rows.Close()

	modelTxns := make([]models.RawBankTransaction, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanRawTxnRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan raw transaction row", scanErr)
		}
		modelTxns = append(modelTxns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating raw transaction rows", err)
	}

	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) > limit {
		// The token points at the last item included in this page; the next
		// query starts strictly after it.
		lastTxn := modelTxns[limit-1]
		newToken := pagination.Cursor{Key: lastTxn.TxnDate, CreatedAt: lastTxn.CreatedAt}.Encode()
		nextTokenVal = &newToken
		results = modelTxns[:limit]
	}

	domainTxns := make([]domain.RawBankTransaction, len(results))
	for i, m := range results {
		domainTxns[i] = mapping.ToDomainRawTransaction(m)
	}

	return domainTxns, nextTokenVal, nil
}

// ListUncategorized retrieves staged transactions still carrying the default
// category, oldest first so repeated batch runs drain the backlog in order.
func (r *PgxFeedRepository) ListUncategorized(ctx context.Context, connectionID string, limit int) ([]domain.RawBankTransaction, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT ` + rawTxnColumns + ` FROM raw_bank_transactions WHERE category = $1`
	args := []interface{}{domain.CategoryUncategorized}
	if connectionID != "" {
		args = append(args, connectionID)
		query += ` AND connection_id = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at ASC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query uncategorized transactions", err)
	}
	defer rows.Close()

	txns := []domain.RawBankTransaction{}
	for rows.Next() {
		m, scanErr := scanRawTxnRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan raw transaction row", scanErr)
		}
		txns = append(txns, mapping.ToDomainRawTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating raw transaction rows", err)
	}
	return txns, nil
}

// UpdateCategory sets the category and confidence of a staged transaction.
func (r *PgxFeedRepository) UpdateCategory(ctx context.Context, rawTxnID string, category string, confidence float64, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE raw_bank_transactions
		SET category = $2, confidence = $3, last_updated_at = $4, last_updated_by = $5
		WHERE raw_txn_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, rawTxnID, category, confidence, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update category for raw transaction "+rawTxnID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetReconciled sets or clears the reconciliation flag.
func (r *PgxFeedRepository) SetReconciled(ctx context.Context, rawTxnID string, reconciled bool, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE raw_bank_transactions
		SET reconciled = $2, last_updated_at = $3, last_updated_by = $4
		WHERE raw_txn_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, rawTxnID, reconciled, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set reconciled for raw transaction "+rawTxnID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// scanRawTxnRow scans one raw_bank_transactions row in column order.
func scanRawTxnRow(row pgx.Row) (*models.RawBankTransaction, error) {
	var m models.RawBankTransaction
	err := row.Scan(
		&m.RawTxnID, &m.ConnectionID, &m.ExternalID, &m.TxnDate, &m.Description, &m.Amount,
		&m.TxnType, &m.Balance, &m.ReferenceNumber, &m.Category, &m.Confidence, &m.Reconciled,
		&m.RawData, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
