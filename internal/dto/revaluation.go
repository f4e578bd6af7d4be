package dto

import (
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TriggerRevaluationRequest starts a revaluation run. AsOf defaults to now
// when omitted.
type TriggerRevaluationRequest struct {
	AsOf *time.Time `json:"asOf"`
}

// RevaluationRunResponse defines the data returned for one run.
type RevaluationRunResponse struct {
	RevaluationID     string          `json:"revaluationID"`
	AsOf              time.Time       `json:"asOf"`
	BaseCurrency      string          `json:"baseCurrency"`
	TotalGainLoss     decimal.Decimal `json:"totalGainLoss"`
	VoucherNo         *string         `json:"voucherNo,omitempty"` // Nil when the run netted to zero
	PositionsRevalued int             `json:"positionsRevalued"`
	PositionsSkipped  int             `json:"positionsSkipped"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
}

// RevaluedPositionResponse is one priced open position inside a run result.
type RevaluedPositionResponse struct {
	Account       string          `json:"account"`
	CurrencyCode  string          `json:"currencyCode"`
	OriginalTotal decimal.Decimal `json:"originalTotal"`
	BookedBase    decimal.Decimal `json:"bookedBase"`
	CurrentRate   decimal.Decimal `json:"currentRate"`
	CurrentValue  decimal.Decimal `json:"currentValue"`
	GainLoss      decimal.Decimal `json:"gainLoss"`
}

// SkippedPositionResponse is one position a run could not price.
type SkippedPositionResponse struct {
	Account      string `json:"account"`
	CurrencyCode string `json:"currencyCode"`
	Reason       string `json:"reason"`
}

// RevaluationResultResponse combines a run with its per-position detail.
type RevaluationResultResponse struct {
	Run       RevaluationRunResponse     `json:"run"`
	Positions []RevaluedPositionResponse `json:"positions"`
	Skipped   []SkippedPositionResponse  `json:"skipped"`
}

// ListRevaluationsParams defines query parameters for listing runs.
type ListRevaluationsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListRevaluationsResponse is a page of runs plus the next-page token.
type ListRevaluationsResponse struct {
	Runs      []RevaluationRunResponse `json:"runs"`
	NextToken *string                  `json:"nextToken,omitempty"`
}

// ToRevaluationRunResponse converts a domain.RevaluationRun to its DTO.
func ToRevaluationRunResponse(run *domain.RevaluationRun) RevaluationRunResponse {
	return RevaluationRunResponse{
		RevaluationID:     run.RevaluationID,
		AsOf:              run.AsOf,
		BaseCurrency:      run.BaseCurrency,
		TotalGainLoss:     run.TotalGainLoss,
		VoucherNo:         run.VoucherNo,
		PositionsRevalued: run.PositionsRevalued,
		PositionsSkipped:  run.PositionsSkipped,
		CreatedAt:         run.CreatedAt,
		CreatedBy:         run.CreatedBy,
	}
}

// ToRevaluationResultResponse converts a domain.RevaluationResult to its DTO.
func ToRevaluationResultResponse(res *domain.RevaluationResult) RevaluationResultResponse {
	positions := make([]RevaluedPositionResponse, len(res.Positions))
	for i, p := range res.Positions {
		positions[i] = RevaluedPositionResponse{
			Account:       p.Account,
			CurrencyCode:  p.CurrencyCode,
			OriginalTotal: p.OriginalTotal,
			BookedBase:    p.BookedBase,
			CurrentRate:   p.CurrentRate,
			CurrentValue:  p.CurrentValue,
			GainLoss:      p.GainLoss,
		}
	}
	skipped := make([]SkippedPositionResponse, len(res.Skipped))
	for i, s := range res.Skipped {
		skipped[i] = SkippedPositionResponse{
			Account:      s.Account,
			CurrencyCode: s.CurrencyCode,
			Reason:       s.Reason,
		}
	}
	return RevaluationResultResponse{
		Run:       ToRevaluationRunResponse(&res.Run),
		Positions: positions,
		Skipped:   skipped,
	}
}

// ToListRevaluationsResponse converts a page of runs.
func ToListRevaluationsResponse(runs []domain.RevaluationRun, nextToken *string) *ListRevaluationsResponse {
	responses := make([]RevaluationRunResponse, len(runs))
	for i, run := range runs {
		responses[i] = ToRevaluationRunResponse(&run)
	}
	return &ListRevaluationsResponse{Runs: responses, NextToken: nextToken}
}
