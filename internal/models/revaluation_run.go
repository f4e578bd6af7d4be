package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevaluationRun mirrors the revaluation_runs table. VoucherNo is NULL for
// runs whose aggregate gain/loss rounded to zero.
type RevaluationRun struct {
	RevaluationID     string          `json:"revaluationID"`
	AsOf              time.Time       `json:"asOf"`
	BaseCurrency      string          `json:"baseCurrency"`
	TotalGainLoss     decimal.Decimal `json:"totalGainLoss"`
	VoucherNo         *string         `json:"voucherNo"`
	PositionsRevalued int             `json:"positionsRevalued"`
	PositionsSkipped  int             `json:"positionsSkipped"`
	AuditFields
}
