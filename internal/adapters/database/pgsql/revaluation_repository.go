package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	portsrepo "github.com/fxledger/fxledger/internal/core/ports/repositories"
	"github.com/fxledger/fxledger/internal/models"
	"github.com/fxledger/fxledger/internal/utils/mapping"
	"github.com/fxledger/fxledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const revaluationRunColumns = `
	revaluation_id, as_of, base_currency, total_gain_loss, voucher_no,
	positions_revalued, positions_skipped,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxRevaluationRepository persists revaluation runs and their vouchers.
type PgxRevaluationRepository struct {
	BaseRepository
}

func newPgxRevaluationRepository(pool *pgxpool.Pool) portsrepo.RevaluationRepositoryFacade {
	return &PgxRevaluationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RevaluationRepositoryFacade = (*PgxRevaluationRepository)(nil)

// SaveRun saves a revaluation run and its adjusting voucher legs within one
// DB transaction. No-op runs carry zero legs and only the run row is written.
func (r *PgxRevaluationRepository) SaveRun(ctx context.Context, run domain.RevaluationRun, entries []domain.JournalEntry) error {
	m := mapping.ToModelRevaluationRun(run)
	runQuery := `
		INSERT INTO revaluation_runs (
			revaluation_id, as_of, base_currency, total_gain_loss, voucher_no,
			positions_revalued, positions_skipped,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	return r.withTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, runQuery,
			m.RevaluationID, m.AsOf, m.BaseCurrency, m.TotalGainLoss, m.VoucherNo,
			m.PositionsRevalued, m.PositionsSkipped,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert revaluation run "+m.RevaluationID, err)
		}

		if len(entries) == 0 {
			return nil
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
			return apperrors.NewAppError(500, "failed to execute voucher leg batch for run "+m.RevaluationID, err)
		}
		return nil
	})
}

// FindRunByID retrieves a revaluation run by its ID.
func (r *PgxRevaluationRepository) FindRunByID(ctx context.Context, revaluationID string) (*domain.RevaluationRun, error) {
	query := `SELECT ` + revaluationRunColumns + ` FROM revaluation_runs WHERE revaluation_id = $1;`
	m, err := scanRevaluationRunRow(r.Pool.QueryRow(ctx, query, revaluationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find revaluation run "+revaluationID, err)
	}
	run := mapping.ToDomainRevaluationRun(*m)
	return &run, nil
}

// ListRuns retrieves revaluation runs, most recent first, using token-based
// pagination.
func (r *PgxRevaluationRepository) ListRuns(ctx context.Context, limit int, nextToken *string) ([]domain.RevaluationRun, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + revaluationRunColumns + ` FROM revaluation_runs`
	orderByClause := `ORDER BY as_of DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.Decode(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `WHERE (as_of, created_at) < ($1, $2)`
		args = append(args, cursor.Key, cursor.CreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $1;"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query revaluation runs", err)
	}
	defer rows.Close()

	modelRuns := make([]models.RevaluationRun, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanRevaluationRunRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan revaluation run row", scanErr)
		}
		modelRuns = append(modelRuns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating revaluation run rows", err)
	}

	var nextTokenVal *string
	results := modelRuns
	if len(modelRuns) > limit {
		lastRun := modelRuns[limit-1]
		newToken := pagination.Cursor{Key: lastRun.AsOf, CreatedAt: lastRun.CreatedAt}.Encode()
		nextTokenVal = &newToken
		results = modelRuns[:limit]
	}

	domainRuns := make([]domain.RevaluationRun, len(results))
	for i, m := range results {
		domainRuns[i] = mapping.ToDomainRevaluationRun(m)
	}

	return domainRuns, nextTokenVal, nil
}

// scanRevaluationRunRow scans one revaluation_runs row in column order.
func scanRevaluationRunRow(row pgx.Row) (*models.RevaluationRun, error) {
	var m models.RevaluationRun
	err := row.Scan(
		&m.RevaluationID, &m.AsOf, &m.BaseCurrency, &m.TotalGainLoss, &m.VoucherNo,
		&m.PositionsRevalued, &m.PositionsSkipped,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
