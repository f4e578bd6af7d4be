package pgsql

import (
	"context"
	"time"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	portsrepo "github.com/fxledger/fxledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxReportingRepository aggregates posted data for revaluation and reports.
type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// AggregateOpenPositions nets posted debits against credits per (account,
// currency) for every currency other than the base. Positions that net to
// zero in the original currency carry no exposure and are dropped here.
func (r *PgxReportingRepository) AggregateOpenPositions(ctx context.Context, baseCurrency string) ([]domain.OpenPosition, error) {
	query := `
		SELECT account, currency_code,
		       SUM(CASE WHEN txn_type = 'DEBIT' THEN amount ELSE -amount END) AS original_total,
		       SUM(CASE WHEN txn_type = 'DEBIT' THEN base_amount ELSE -base_amount END) AS booked_base
		FROM multi_currency_transactions
		WHERE currency_code <> $1
		GROUP BY account, currency_code
		HAVING SUM(CASE WHEN txn_type = 'DEBIT' THEN amount ELSE -amount END) <> 0
		ORDER BY account, currency_code;
	`
	rows, err := r.Pool.Query(ctx, query, baseCurrency)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate open positions", err)
	}
	defer rows.Close()

	positions := []domain.OpenPosition{}
	for rows.Next() {
		var p domain.OpenPosition
		if err := rows.Scan(&p.Account, &p.CurrencyCode, &p.OriginalTotal, &p.BookedBase); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan open position row", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating open position rows", err)
	}
	return positions, nil
}

// CurrencyPLTotals sums posted base-currency debits and credits per currency
// over a date range.
func (r *PgxReportingRepository) CurrencyPLTotals(ctx context.Context, from, to time.Time) ([]domain.CurrencyPLRow, error) {
	query := `
		SELECT currency_code,
		       COALESCE(SUM(CASE WHEN txn_type = 'DEBIT' THEN base_amount ELSE 0 END), 0) AS debit_base,
		       COALESCE(SUM(CASE WHEN txn_type = 'CREDIT' THEN base_amount ELSE 0 END), 0) AS credit_base
		FROM multi_currency_transactions
		WHERE txn_date >= $1 AND txn_date <= $2
		GROUP BY currency_code
		ORDER BY currency_code;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to total currency P&L", err)
	}
	defer rows.Close()

	totals := []domain.CurrencyPLRow{}
	for rows.Next() {
		var row domain.CurrencyPLRow
		if err := rows.Scan(&row.CurrencyCode, &row.DebitBase, &row.CreditBase); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency P&L row", err)
		}
		row.NetBase = row.DebitBase.Sub(row.CreditBase)
		totals = append(totals, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating currency P&L rows", err)
	}
	return totals, nil
}

// SumRevaluationGainLoss totals recognized revaluation adjustments whose
// as-of instant falls inside the range.
func (r *PgxReportingRepository) SumRevaluationGainLoss(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_gain_loss), 0)
		FROM revaluation_runs
		WHERE as_of >= $1 AND as_of <= $2;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum revaluation gain/loss", err)
	}
	return total, nil
}
