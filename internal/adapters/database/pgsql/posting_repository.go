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

const mctColumns = `
	mct_id, txn_date, description, amount, currency_code, base_amount,
	rate_used, txn_type, account, reference_number,
	created_at, created_by, last_updated_at, last_updated_by`

const journalEntryColumns = `
	entry_id, voucher_no, entry_date, description, account,
	debit_amount, credit_amount, source_mct_id, revaluation_id,
	created_at, created_by, last_updated_at, last_updated_by`

const insertJournalEntryQuery = `
	INSERT INTO journal_entries (
		entry_id, voucher_no, entry_date, description, account,
		debit_amount, credit_amount, source_mct_id, revaluation_id,
		created_at, created_by, last_updated_at, last_updated_by
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`

// PgxPostingRepository persists posted transactions and their journal legs.
type PgxPostingRepository struct {
	BaseRepository
}

func newPgxPostingRepository(pool *pgxpool.Pool) portsrepo.PostingRepositoryFacade {
	return &PgxPostingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PostingRepositoryFacade = (*PgxPostingRepository)(nil)

// SavePosting saves a transaction and its journal legs within one DB
// transaction, batching the leg inserts.
func (r *PgxPostingRepository) SavePosting(ctx context.Context, txn domain.MultiCurrencyTransaction, entries []domain.JournalEntry) error {
	m := mapping.ToModelMct(txn)
	mctQuery := `
		INSERT INTO multi_currency_transactions (
			mct_id, txn_date, description, amount, currency_code, base_amount,
			rate_used, txn_type, account, reference_number,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`

	return r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, mctQuery,
			m.MctID, m.TxnDate, m.Description, m.Amount, m.CurrencyCode, m.BaseAmount,
			m.RateUsed, m.TxnType, m.Account, m.ReferenceNumber,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert transaction "+m.MctID, err)
		}

		batch := &pgx.Batch{}
		for _, entry := range entries {
			e := mapping.ToModelJournalEntry(entry)
			batch.Queue(insertJournalEntryQuery,
				e.EntryID, e.VoucherNo, e.EntryDate, e.Description, e.Account,
				e.DebitAmount, e.CreditAmount, e.SourceMctID, e.RevaluationID,
				e.CreatedAt, e.CreatedBy, e.LastUpdatedAt, e.LastUpdatedBy,
			)
		}

		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(500, "failed to execute journal leg batch for transaction "+m.MctID, err)
		}
		return nil
	})
}

// FindTransactionByID retrieves a posted transaction by its ID.
func (r *PgxPostingRepository) FindTransactionByID(ctx context.Context, mctID string) (*domain.MultiCurrencyTransaction, error) {
	query := `SELECT ` + mctColumns + ` FROM multi_currency_transactions WHERE mct_id = $1;`
	m, err := scanMctRow(r.Pool.QueryRow(ctx, query, mctID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+mctID, err)
	}
	txn := mapping.ToDomainMct(*m)
	return &txn, nil
}

// FindEntriesByVoucherNo retrieves all journal legs carrying one voucher number.
func (r *PgxPostingRepository) FindEntriesByVoucherNo(ctx context.Context, voucherNo string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE voucher_no = $1
		ORDER BY created_at;
	`
	return r.queryEntries(ctx, query, voucherNo)
}

// FindEntriesBySourceTransaction retrieves the legs written for one posting.
func (r *PgxPostingRepository) FindEntriesBySourceTransaction(ctx context.Context, mctID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE source_mct_id = $1
		ORDER BY created_at;
	`
	return r.queryEntries(ctx, query, mctID)
}

func (r *PgxPostingRepository) queryEntries(ctx context.Context, query string, arg string) ([]domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, scanErr := scanJournalEntryRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", scanErr)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return entries, nil
}

// ListTransactions retrieves a paginated list of postings within a date range,
// newest first, using token-based pagination.
func (r *PgxPostingRepository) ListTransactions(ctx context.Context, from, to time.Time, currencyCode string, limit int, nextToken *string) ([]domain.MultiCurrencyTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + mctColumns + ` FROM multi_currency_transactions`

	filterClause := `WHERE txn_date >= $1 AND txn_date <= $2`
	args := []interface{}{from, to}
	if currencyCode != "" {
		args = append(args, currencyCode)
		filterClause += ` AND currency_code = $` + strconv.Itoa(len(args))
	}

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
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	modelTxns := make([]models.MultiCurrencyTransaction, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanMctRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", scanErr)
		}
		modelTxns = append(modelTxns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) > limit {
		lastTxn := modelTxns[limit-1]
		newToken := pagination.Cursor{Key: lastTxn.TxnDate, CreatedAt: lastTxn.CreatedAt}.Encode()
		nextTokenVal = &newToken
		results = modelTxns[:limit]
	}

	domainTxns := make([]domain.MultiCurrencyTransaction, len(results))
	for i, m := range results {
		domainTxns[i] = mapping.ToDomainMct(m)
	}

	return domainTxns, nextTokenVal, nil
}

// scanMctRow scans one multi_currency_transactions row in column order.
func scanMctRow(row pgx.Row) (*models.MultiCurrencyTransaction, error) {
	var m models.MultiCurrencyTransaction
	err := row.Scan(
		&m.MctID, &m.TxnDate, &m.Description, &m.Amount, &m.CurrencyCode, &m.BaseAmount,
		&m.RateUsed, &m.TxnType, &m.Account, &m.ReferenceNumber,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// scanJournalEntryRow scans one journal_entries row in column order.
func scanJournalEntryRow(row pgx.Row) (*models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.VoucherNo, &m.EntryDate, &m.Description, &m.Account,
		&m.DebitAmount, &m.CreditAmount, &m.SourceMctID, &m.RevaluationID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
