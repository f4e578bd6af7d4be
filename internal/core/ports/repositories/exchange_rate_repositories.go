package repositories

import (
	"context"
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindRateAsOf retrieves the rate row for currency→base with the greatest
	// date_effective that is not after asOf.
	FindRateAsOf(ctx context.Context, currencyCode, baseCurrency string, asOf time.Time) (*domain.ExchangeRate, error)

	// ListRates retrieves the latest rate per currency as of the given time,
	// optionally restricted to one currency code.
	ListRates(ctx context.Context, baseCurrency string, currencyCode string, asOf time.Time) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// UpsertCurrentRates writes the refreshed table. Only rows whose
	// date_effective matches the refresh date are touched; history stays
	// append-only.
	UpsertCurrentRates(ctx context.Context, rates []domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
