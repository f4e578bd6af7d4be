package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	portsrepo "github.com/fxledger/fxledger/internal/core/ports/repositories"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/utils"
	"github.com/fxledger/fxledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService builds read-only reports over posted data.
type reportingService struct {
	baseService
	reportingRepo portsrepo.ReportingRepository
	rates         portssvc.RateReaderSvc
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, rates portssvc.RateReaderSvc) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		rates:         rates,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetForexExposureReport values every open foreign-currency position at
// current rates, aggregated per currency. Currencies with no resolvable
// rate are left out with a warning rather than failing the report.
func (s *reportingService) GetForexExposureReport(ctx context.Context) (*domain.ForexExposureReport, error) {
	logger := s.logger(ctx)
	base := s.rates.BaseCurrency()
	asOf := time.Now().UTC()

	positions, err := s.reportingRepo.AggregateOpenPositions(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate open positions: %w", err)
	}

	// Positions are per (account, currency); exposure reports per currency.
	type bucket struct {
		original decimal.Decimal
		booked   decimal.Decimal
	}
	byCurrency := make(map[string]*bucket)
	for _, pos := range positions {
		b, ok := byCurrency[pos.CurrencyCode]
		if !ok {
			b = &bucket{}
			byCurrency[pos.CurrencyCode] = b
		}
		b.original = b.original.Add(pos.OriginalTotal)
		b.booked = b.booked.Add(pos.BookedBase)
	}

	report := &domain.ForexExposureReport{
		BaseCurrency: base,
		AsOf:         asOf,
		Rows:         make([]domain.ForexExposureRow, 0, len(byCurrency)),
	}

	total := decimal.Zero
	for code, b := range byCurrency {
		rate, err := s.rates.GetRate(ctx, code, base, asOf)
		if err != nil {
			if errors.Is(err, apperrors.ErrRateUnavailable) {
				logger.Warn("Excluding currency with no resolvable rate from exposure report", slog.String("currency", code))
				continue
			}
			return nil, fmt.Errorf("failed to resolve rate for %s: %w", code, err)
		}

		currentValue := accounting.RoundBase(b.original.Mul(rate))
		gainLoss := currentValue.Sub(b.booked)
		report.Rows = append(report.Rows, domain.ForexExposureRow{
			CurrencyCode:       code,
			OriginalTotal:      b.original,
			BookedBase:         b.booked,
			CurrentRate:        rate,
			CurrentValue:       currentValue,
			UnrealizedGainLoss: gainLoss,
			Display:            utils.FormatAmount(currentValue, base),
		})
		total = total.Add(gainLoss)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].CurrencyCode < report.Rows[j].CurrencyCode
	})
	report.TotalUnrealizedGainLoss = total
	report.TotalDisplay = utils.FormatAmount(total, base)

	return report, nil
}

// GetMultiCurrencyPL totals posted base-currency movement per currency over
// a range and adds the revaluation adjustments recognized in it.
func (s *reportingService) GetMultiCurrencyPL(ctx context.Context, from, to time.Time) (*domain.MultiCurrencyPLReport, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: both 'from' and 'to' are required", apperrors.ErrValidation)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", apperrors.ErrValidation)
	}

	rows, err := s.reportingRepo.CurrencyPLTotals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to total posted movement: %w", err)
	}

	adjustments, err := s.reportingRepo.SumRevaluationGainLoss(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to total revaluation adjustments: %w", err)
	}

	net := adjustments
	for _, row := range rows {
		net = net.Add(row.NetBase)
	}

	return &domain.MultiCurrencyPLReport{
		BaseCurrency:           s.rates.BaseCurrency(),
		From:                   from,
		To:                     to,
		Rows:                   rows,
		RevaluationAdjustments: adjustments,
		NetResult:              net,
	}, nil
}
