package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account labels used by posting and revaluation vouchers. Postings
// reference accounts by free-form strings, so these are conventions, not
// FK targets.
const (
	AccountFXClearing         = "FX_CLEARING"
	AccountForexGain          = "Foreign Exchange Gain"
	AccountForexLoss          = "Foreign Exchange Loss"
	AccountRevaluationReserve = "Currency Revaluation Reserve"
)

// OpenPosition aggregates the posted transactions of one (account, currency)
// pair that is still exposed to rate movement.
type OpenPosition struct {
	Account       string          `json:"account"`
	CurrencyCode  string          `json:"currencyCode"`
	OriginalTotal decimal.Decimal `json:"originalTotal"` // Net amount in the original currency (debits − credits)
	BookedBase    decimal.Decimal `json:"bookedBase"`    // Net frozen base value
}

// RevaluedPosition is an open position priced at the revaluation rate.
type RevaluedPosition struct {
	OpenPosition
	CurrentRate  decimal.Decimal `json:"currentRate"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	GainLoss     decimal.Decimal `json:"gainLoss"` // CurrentValue − BookedBase
}

// SkippedPosition records a position the run could not price.
type SkippedPosition struct {
	Account      string `json:"account"`
	CurrencyCode string `json:"currencyCode"`
	Reason       string `json:"reason"`
}

// RevaluationRun is the persisted record of one revaluation. VoucherNo is
// nil when the aggregate gain/loss rounded to zero and no voucher was
// written (the idempotent no-op case).
type RevaluationRun struct {
	RevaluationID     string          `json:"revaluationID"` // Primary Key (UUID)
	AsOf              time.Time       `json:"asOf"`          // Valuation date
	BaseCurrency      string          `json:"baseCurrency"`
	TotalGainLoss     decimal.Decimal `json:"totalGainLoss"` // Signed aggregate, rounded to 2dp
	VoucherNo         *string         `json:"voucherNo"`     // Nil for no-op runs
	PositionsRevalued int             `json:"positionsRevalued"`
	PositionsSkipped  int             `json:"positionsSkipped"`
	AuditFields
}

// RevaluationResult is the full outcome returned to callers: the persisted
// run plus the per-position detail that is not stored.
type RevaluationResult struct {
	Run       RevaluationRun     `json:"run"`
	Positions []RevaluedPosition `json:"positions"`
	Skipped   []SkippedPosition  `json:"skipped"`
}
