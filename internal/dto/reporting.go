package dto

import (
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ForexExposureRowResponse represents one currency's open position in the
// exposure report response.
type ForexExposureRowResponse struct {
	CurrencyCode       string          `json:"currencyCode"`
	OriginalTotal      decimal.Decimal `json:"originalTotal"`
	BookedBase         decimal.Decimal `json:"bookedBase"`
	CurrentRate        decimal.Decimal `json:"currentRate"`
	CurrentValue       decimal.Decimal `json:"currentValue"`
	UnrealizedGainLoss decimal.Decimal `json:"unrealizedGainLoss"`
	Display            string          `json:"display"`
}

// ForexExposureResponse represents the forex exposure report response.
type ForexExposureResponse struct {
	BaseCurrency string                     `json:"baseCurrency"`
	AsOf         string                     `json:"asOf"`
	Rows         []ForexExposureRowResponse `json:"rows"`
	Totals       struct {
		UnrealizedGainLoss decimal.Decimal `json:"unrealizedGainLoss"`
		Display            string          `json:"display"`
	} `json:"totals"`
}

// CurrencyPLRowResponse represents one currency's realized movement in the
// multi-currency P&L response.
type CurrencyPLRowResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	DebitBase    decimal.Decimal `json:"debitBase"`
	CreditBase   decimal.Decimal `json:"creditBase"`
	NetBase      decimal.Decimal `json:"netBase"`
}

// MultiCurrencyPLResponse represents the multi-currency P&L report response.
type MultiCurrencyPLResponse struct {
	BaseCurrency string                  `json:"baseCurrency"`
	FromDate     string                  `json:"fromDate"`
	ToDate       string                  `json:"toDate"`
	Rows         []CurrencyPLRowResponse `json:"rows"`
	Summary      struct {
		RevaluationAdjustments decimal.Decimal `json:"revaluationAdjustments"`
		NetResult              decimal.Decimal `json:"netResult"`
	} `json:"summary"`
}

// MultiCurrencyPLParams defines query parameters for the P&L report.
type MultiCurrencyPLParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// ToForexExposureResponse converts a domain exposure report to its DTO.
func ToForexExposureResponse(report *domain.ForexExposureReport) ForexExposureResponse {
	response := ForexExposureResponse{
		BaseCurrency: report.BaseCurrency,
		AsOf:         report.AsOf.Format(time.RFC3339),
		Rows:         make([]ForexExposureRowResponse, len(report.Rows)),
	}
	for i, row := range report.Rows {
		response.Rows[i] = ForexExposureRowResponse{
			CurrencyCode:       row.CurrencyCode,
			OriginalTotal:      row.OriginalTotal,
			BookedBase:         row.BookedBase,
			CurrentRate:        row.CurrentRate,
			CurrentValue:       row.CurrentValue,
			UnrealizedGainLoss: row.UnrealizedGainLoss,
			Display:            row.Display,
		}
	}
	response.Totals.UnrealizedGainLoss = report.TotalUnrealizedGainLoss
	response.Totals.Display = report.TotalDisplay
	return response
}

// ToMultiCurrencyPLResponse converts a domain P&L report to its DTO.
func ToMultiCurrencyPLResponse(report *domain.MultiCurrencyPLReport) MultiCurrencyPLResponse {
	response := MultiCurrencyPLResponse{
		BaseCurrency: report.BaseCurrency,
		FromDate:     report.From.Format("2006-01-02"),
		ToDate:       report.To.Format("2006-01-02"),
		Rows:         make([]CurrencyPLRowResponse, len(report.Rows)),
	}
	for i, row := range report.Rows {
		response.Rows[i] = CurrencyPLRowResponse{
			CurrencyCode: row.CurrencyCode,
			DebitBase:    row.DebitBase,
			CreditBase:   row.CreditBase,
			NetBase:      row.NetBase,
		}
	}
	response.Summary.RevaluationAdjustments = report.RevaluationAdjustments
	response.Summary.NetResult = report.NetResult
	return response
}
