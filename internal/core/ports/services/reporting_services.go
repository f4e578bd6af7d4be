package services

import (
	"context"
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
)

// ReportingSvcFacade builds read-only reports over posted data.
type ReportingSvcFacade interface {
	// GetForexExposureReport values every open foreign-currency position at
	// current rates and reports the unrealized gain/loss per currency.
	GetForexExposureReport(ctx context.Context) (*domain.ForexExposureReport, error)

	// GetMultiCurrencyPL totals realized posting movement per currency over a
	// range and adds the revaluation adjustments recognized in it.
	GetMultiCurrencyPL(ctx context.Context, from, to time.Time) (*domain.MultiCurrencyPLReport, error)
}
