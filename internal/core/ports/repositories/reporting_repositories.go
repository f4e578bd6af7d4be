package repositories

import (
	"context"
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository aggregates posted data for revaluation and reports.
// All operations are read-only.
type ReportingRepository interface {
	// AggregateOpenPositions groups posted transactions by (account, currency)
	// for every currency other than the base, netting debits against credits
	// in both the original currency and the frozen base value.
	AggregateOpenPositions(ctx context.Context, baseCurrency string) ([]domain.OpenPosition, error)

	// CurrencyPLTotals sums posted base-currency debits and credits per
	// currency over a date range.
	CurrencyPLTotals(ctx context.Context, from, to time.Time) ([]domain.CurrencyPLRow, error)

	// SumRevaluationGainLoss totals the recognized revaluation adjustments
	// over a date range.
	SumRevaluationGainLoss(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
