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
	"github.com/jackc/pgx/v5/pgxpool"
)

const exchangeRateColumns = `
	exchange_rate_id, currency_code, base_currency, rate, date_effective,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxExchangeRateRepository persists exchange rate history.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// FindRateAsOf retrieves the rate row for currency→base with the greatest
// date_effective not after asOf. This is the fallback path when the in-memory
// table is cold; history rows serve point-in-time conversions.
func (r *PgxExchangeRateRepository) FindRateAsOf(ctx context.Context, currencyCode, baseCurrency string, asOf time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE currency_code = $1 AND base_currency = $2 AND date_effective <= $3
		ORDER BY date_effective DESC
		LIMIT 1;
	`
	m, err := scanExchangeRateRow(r.Pool.QueryRow(ctx, query, currencyCode, baseCurrency, asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find rate for "+currencyCode+"/"+baseCurrency, err)
	}
	rate := mapping.ToDomainExchangeRate(*m)
	return &rate, nil
}

// ListRates retrieves the latest rate per currency as of the given time.
// DISTINCT ON picks one row per currency, the newest effective date first.
func (r *PgxExchangeRateRepository) ListRates(ctx context.Context, baseCurrency string, currencyCode string, asOf time.Time) ([]domain.ExchangeRate, error) {
	query := `
		SELECT DISTINCT ON (currency_code) ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE base_currency = $1 AND date_effective <= $2
	`
	args := []interface{}{baseCurrency, asOf}
	if currencyCode != "" {
		query += ` AND currency_code = $3`
		args = append(args, currencyCode)
	}
	query += ` ORDER BY currency_code, date_effective DESC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list rates for base "+baseCurrency, err)
	}
	defer rows.Close()

	rates := []domain.ExchangeRate{}
	for rows.Next() {
		m, scanErr := scanExchangeRateRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan exchange rate row", scanErr)
		}
		rates = append(rates, mapping.ToDomainExchangeRate(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating exchange rate rows", err)
	}
	return rates, nil
}

// UpsertCurrentRates writes a refreshed rate table inside one transaction.
// Conflicts on (currency_code, base_currency, date_effective) update the rate
// in place, so repeated refreshes within a day revise today's rows while
// earlier days stay append-only.
func (r *PgxExchangeRateRepository) UpsertCurrentRates(ctx context.Context, rates []domain.ExchangeRate) error {
	if len(rates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO exchange_rates (
			exchange_rate_id, currency_code, base_currency, rate, date_effective,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (currency_code, base_currency, date_effective)
		DO UPDATE SET rate = EXCLUDED.rate,
		              last_updated_at = EXCLUDED.last_updated_at,
		              last_updated_by = EXCLUDED.last_updated_by;
	`
	for _, rate := range rates {
		m := mapping.ToModelExchangeRate(rate)
		batch.Queue(query,
			m.ExchangeRateID, m.CurrencyCode, m.BaseCurrency, m.Rate, m.DateEffective,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}

	return r.withTx(ctx, func(tx pgx.Tx) error {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(500, "failed to execute rate upsert batch", err)
		}
		return nil
	})
}

// scanExchangeRateRow scans one exchange_rates row in column order.
func scanExchangeRateRow(row pgx.Row) (*models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID, &m.CurrencyCode, &m.BaseCurrency, &m.Rate, &m.DateEffective,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
