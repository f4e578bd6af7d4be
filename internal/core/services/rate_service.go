package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/fxledger/fxledger/internal/core/ports/providers"
	portsrepo "github.com/fxledger/fxledger/internal/core/ports/repositories"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// rateService owns the in-memory rate table and its refresh lifecycle. All
// conversions in the engine resolve through it; nothing else touches the
// provider or the rate rows directly.
type rateService struct {
	baseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	provider     providers.RateProvider
	baseCurrency string

	mu    sync.RWMutex
	table *domain.RateTable

	// refreshMu serializes provider pulls so concurrent cache misses don't stampede.
	refreshMu sync.Mutex

	subMu   sync.Mutex
	subs    map[int]chan domain.RateRefreshEvent
	nextSub int
}

// NewRateService creates a new rate service for the given base currency.
// The table starts empty; the first refresh (scheduled or on-demand) fills it.
func NewRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, provider providers.RateProvider, baseCurrency string) portssvc.RateSvcFacade {
	return &rateService{
		rateRepo:     rateRepo,
		provider:     provider,
		baseCurrency: strings.ToUpper(baseCurrency),
		subs:         make(map[int]chan domain.RateRefreshEvent),
	}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// BaseCurrency reports the ledger base currency.
func (s *rateService) BaseCurrency() string {
	return s.baseCurrency
}

// GetRate resolves the from→to rate as of the given instant. Cross pairs go
// through the base currency: rate = (from→base) / (to→base).
func (s *rateService) GetRate(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error) {
	from := strings.ToUpper(strings.TrimSpace(fromCurrency))
	to := strings.ToUpper(strings.TrimSpace(toCurrency))
	if len(from) != 3 || len(to) != 3 {
		return decimal.Zero, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	if from == to {
		return decimal.NewFromInt(1), nil
	}

	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	// Each lookup gets at most one on-demand provider pull, shared across
	// both legs of a cross rate.
	refreshed := false

	fromRate, err := s.rateToBase(ctx, from, asOf, &refreshed)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := s.rateToBase(ctx, to, asOf, &refreshed)
	if err != nil {
		return decimal.Zero, err
	}

	return fromRate.Div(toRate), nil
}

// Convert applies GetRate to an amount. Pure: no state is mutated.
func (s *rateService) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string, asOf time.Time) (*domain.ConversionResult, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	rate, err := s.GetRate(ctx, fromCurrency, toCurrency, asOf)
	if err != nil {
		return nil, err
	}

	return &domain.ConversionResult{
		FromCurrency: strings.ToUpper(strings.TrimSpace(fromCurrency)),
		ToCurrency:   strings.ToUpper(strings.TrimSpace(toCurrency)),
		Amount:       amount,
		Converted:    accounting.RoundBase(amount.Mul(rate)),
		Rate:         rate,
		AsOf:         asOf,
	}, nil
}

// ListRates returns the latest persisted rate row per currency as of a time.
func (s *rateService) ListRates(ctx context.Context, currencyCode string, asOf time.Time) ([]domain.ExchangeRate, error) {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	code := strings.ToUpper(strings.TrimSpace(currencyCode))

	rates, err := s.rateRepo.ListRates(ctx, s.baseCurrency, code, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	return rates, nil
}

// Refresh pulls the current table from the provider, persists today's rows,
// swaps the in-memory table and notifies subscribers. Failures leave the
// previous table serving.
func (s *rateService) Refresh(ctx context.Context) (*domain.RateRefreshEvent, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	logger := s.logger(ctx)

	table, err := s.provider.FetchRates(ctx, s.baseCurrency)
	if err != nil {
		s.LogError(ctx, err, "Rate refresh failed", slog.String("base", s.baseCurrency))
		return nil, apperrors.NewAppError(http.StatusBadGateway, "rate source unavailable", err)
	}

	now := time.Now().UTC()
	rows := make([]domain.ExchangeRate, 0, len(table.Rates))
	for code, rate := range table.Rates {
		row := domain.ExchangeRate{
			ExchangeRateID: uuid.NewString(),
			CurrencyCode:   code,
			BaseCurrency:   s.baseCurrency,
			Rate:           rate,
			DateEffective:  dateOnly(table.Date),
			AuditFields:    domain.NewAudit(domain.SystemActor, now),
		}
		if err := row.Validate(); err != nil {
			logger.Warn("Skipping invalid rate row from provider", slog.String("currency", code), slog.String("error", err.Error()))
			continue
		}
		rows = append(rows, row)
	}

	if err := s.rateRepo.UpsertCurrentRates(ctx, rows); err != nil {
		s.LogError(ctx, err, "Failed to persist refreshed rates")
		return nil, fmt.Errorf("failed to persist refreshed rates: %w", err)
	}

	s.mu.Lock()
	s.table = &table
	s.mu.Unlock()

	event := domain.RateRefreshEvent{
		Base:        table.Base,
		RefreshedAt: table.FetchedAt,
		Currencies:  len(table.Rates),
	}
	s.publish(event)

	logger.Info("Rate table refreshed",
		slog.String("base", table.Base),
		slog.Int("currencies", len(table.Rates)),
		slog.Time("as_of", table.Date),
	)
	return &event, nil
}

// Subscribe registers for refresh notifications. The returned func
// unsubscribes and closes the channel; events are dropped rather than
// blocking a slow subscriber.
func (s *rateService) Subscribe() (<-chan domain.RateRefreshEvent, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan domain.RateRefreshEvent, 1)
	s.subs[id] = ch

	unsubscribe := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

func (s *rateService) publish(event domain.RateRefreshEvent) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// rateToBase resolves code→base as of the given instant. Current-date
// lookups use the cached table, fall back to one provider pull, then to the
// persisted history; historical lookups go straight to the history.
func (s *rateService) rateToBase(ctx context.Context, code string, asOf time.Time, refreshed *bool) (decimal.Decimal, error) {
	if code == s.baseCurrency {
		return decimal.NewFromInt(1), nil
	}

	if dateOnly(asOf).Before(dateOnly(time.Now().UTC())) {
		return s.rateFromHistory(ctx, code, asOf)
	}

	if rate, ok := s.cachedRate(code); ok {
		return rate, nil
	}

	if !*refreshed {
		*refreshed = true
		if _, err := s.Refresh(ctx); err != nil {
			s.LogWarn(ctx, "On-demand rate refresh failed, falling back to persisted history",
				slog.String("currency", code), slog.String("error", err.Error()))
		}
		if rate, ok := s.cachedRate(code); ok {
			return rate, nil
		}
	}

	rate, err := s.rateFromHistory(ctx, code, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	s.LogWarn(ctx, "Serving stale rate from persisted history", slog.String("currency", code))
	return rate, nil
}

func (s *rateService) cachedRate(code string) (decimal.Decimal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Rate(code)
}

func (s *rateService) rateFromHistory(ctx context.Context, code string, asOf time.Time) (decimal.Decimal, error) {
	row, err := s.rateRepo.FindRateAsOf(ctx, code, s.baseCurrency, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: no rate for %s in %s as of %s", apperrors.ErrRateUnavailable, code, s.baseCurrency, asOf.Format("2006-01-02"))
	}
	return row.Rate, nil
}

// dateOnly truncates an instant to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
