package services

import (
	"context"
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateReaderSvc defines rate lookups and conversions
type RateReaderSvc interface {
	// GetRate resolves the from→to rate as of the given instant. Same
	// currency returns 1; cross pairs go through the base currency; a
	// missing leg triggers one on-demand refresh before failing with
	// apperrors.ErrRateUnavailable.
	GetRate(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error)

	// Convert applies GetRate to an amount. Pure: no state is mutated.
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string, asOf time.Time) (*domain.ConversionResult, error)

	// ListRates returns the latest persisted rate rows as of a time,
	// optionally restricted to one currency.
	ListRates(ctx context.Context, currencyCode string, asOf time.Time) ([]domain.ExchangeRate, error)

	// BaseCurrency reports the ledger base currency.
	BaseCurrency() string
}

// RateWriterSvc defines the refresh operation
type RateWriterSvc interface {
	// Refresh pulls the current table from the provider, persists today's
	// rows, swaps the in-memory fast path and notifies subscribers. On
	// provider failure the previous table keeps serving and the error is
	// returned.
	Refresh(ctx context.Context) (*domain.RateRefreshEvent, error)
}

// RateSubscriber exposes the cache-owned refresh notifications. Subscribers
// receive one event per successful refresh; the returned func unsubscribes
// and closes the channel.
type RateSubscriber interface {
	Subscribe() (<-chan domain.RateRefreshEvent, func())
}

// RateSvcFacade combines all exchange rate-related service interfaces
type RateSvcFacade interface {
	RateReaderSvc
	RateWriterSvc
	RateSubscriber
}
