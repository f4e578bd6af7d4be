package providers

import (
	"context"

	"github.com/fxledger/fxledger/internal/core/domain"
)

// RateProvider pulls the full current rate table for one base currency from
// an external source.
type RateProvider interface {
	// FetchRates returns base-per-unit rates for every currency the source
	// quotes against base.
	FetchRates(ctx context.Context, base string) (domain.RateTable, error)
}
