package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate mirrors the exchange_rates table. Rows are append-only per
// (currency_code, base_currency, date_effective); refresh upserts today's
// row only.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyCode   string          `json:"currencyCode"`
	BaseCurrency   string          `json:"baseCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	DateEffective  time.Time       `json:"dateEffective"`
	AuditFields
}
