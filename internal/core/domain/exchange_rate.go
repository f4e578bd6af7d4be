package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores how many units of the base currency one unit of
// CurrencyCode was worth on DateEffective. History is append-only: refresh
// only upserts rows effective today, older rows are immutable.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (UUID)
	CurrencyCode   string          `json:"currencyCode"`   // Currency being priced
	BaseCurrency   string          `json:"baseCurrency"`   // Quote currency
	Rate           decimal.Decimal `json:"rate"`           // Base units per one unit of CurrencyCode
	DateEffective  time.Time       `json:"dateEffective"`  // Rate valid from this date
	AuditFields
}

// Validate checks a rate row before persistence.
func (r *ExchangeRate) Validate() error {
	if len(r.CurrencyCode) != 3 || len(r.BaseCurrency) != 3 {
		return errors.New("currency codes must be 3-letter ISO codes")
	}
	if !r.Rate.IsPositive() {
		return errors.New("rate must be positive")
	}
	if r.DateEffective.IsZero() {
		return errors.New("date effective is required")
	}
	return nil
}

// RateTable is the in-memory fast path for current-date lookups: one base
// currency and the latest known rate per currency code. Swapped atomically
// on refresh, read concurrently.
type RateTable struct {
	Base      string                     `json:"base"`
	Date      time.Time                  `json:"date"`      // Provider's as-of date
	Rates     map[string]decimal.Decimal `json:"rates"`     // code -> base units per unit
	FetchedAt time.Time                  `json:"fetchedAt"` // When the table was pulled; staleness indicator
}

// Rate returns the table entry for code, short-circuiting the base itself.
func (t *RateTable) Rate(code string) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Zero, false
	}
	if code == t.Base {
		return decimal.NewFromInt(1), true
	}
	r, ok := t.Rates[code]
	return r, ok
}

// RateRefreshEvent is published to subscribers after every successful
// refresh of the rate cache.
type RateRefreshEvent struct {
	Base        string    `json:"base"`
	RefreshedAt time.Time `json:"refreshedAt"`
	Currencies  int       `json:"currencies"`
}

// ConversionResult is the pure output of a currency conversion.
type ConversionResult struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Amount       decimal.Decimal `json:"amount"`
	Converted    decimal.Decimal `json:"converted"`
	Rate         decimal.Decimal `json:"rate"`
	AsOf         time.Time       `json:"asOf"`
}
