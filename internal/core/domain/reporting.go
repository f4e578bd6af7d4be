package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ForexExposureRow is one currency's open position valued at current rates.
type ForexExposureRow struct {
	CurrencyCode       string          `json:"currencyCode"`
	OriginalTotal      decimal.Decimal `json:"originalTotal"`      // Net open amount in the foreign currency
	BookedBase         decimal.Decimal `json:"bookedBase"`         // Frozen base value at posting time
	CurrentRate        decimal.Decimal `json:"currentRate"`        // Rate as of the report instant
	CurrentValue       decimal.Decimal `json:"currentValue"`       // OriginalTotal × CurrentRate
	UnrealizedGainLoss decimal.Decimal `json:"unrealizedGainLoss"` // CurrentValue − BookedBase
	Display            string          `json:"display"`            // CurrentValue formatted in the base currency
}

// ForexExposureReport lists every open foreign-currency position.
type ForexExposureReport struct {
	BaseCurrency            string             `json:"baseCurrency"`
	AsOf                    time.Time          `json:"asOf"`
	Rows                    []ForexExposureRow `json:"rows"`
	TotalUnrealizedGainLoss decimal.Decimal    `json:"totalUnrealizedGainLoss"`
	TotalDisplay            string             `json:"totalDisplay"`
}

// CurrencyPLRow aggregates posted base-currency movement for one currency.
type CurrencyPLRow struct {
	CurrencyCode string          `json:"currencyCode"`
	DebitBase    decimal.Decimal `json:"debitBase"`  // Σ base amounts of DEBIT postings
	CreditBase   decimal.Decimal `json:"creditBase"` // Σ base amounts of CREDIT postings
	NetBase      decimal.Decimal `json:"netBase"`    // DebitBase − CreditBase
}

// MultiCurrencyPLReport combines realized posting totals per currency with
// the revaluation adjustments recognized in the same range.
type MultiCurrencyPLReport struct {
	BaseCurrency           string          `json:"baseCurrency"`
	From                   time.Time       `json:"from"`
	To                     time.Time       `json:"to"`
	Rows                   []CurrencyPLRow `json:"rows"`
	RevaluationAdjustments decimal.Decimal `json:"revaluationAdjustments"` // Σ RevaluationRun.TotalGainLoss in range
	NetResult              decimal.Decimal `json:"netResult"`              // Σ NetBase + RevaluationAdjustments
}
