package dto

import (
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateResponse defines the data returned for one rate row.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyCode   string          `json:"currencyCode"`
	BaseCurrency   string          `json:"baseCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	DateEffective  time.Time       `json:"dateEffective"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ListRatesParams defines query parameters for listing persisted rates.
type ListRatesParams struct {
	CurrencyCode string     `form:"currencyCode" binding:"omitempty,currency"`
	AsOf         *time.Time `form:"asOf" time_format:"2006-01-02"`
}

// ConvertParams defines query parameters for a currency conversion.
type ConvertParams struct {
	Amount decimal.Decimal `form:"amount" binding:"required"`
	From   string          `form:"from" binding:"required,currency"`
	To     string          `form:"to" binding:"required,currency"`
	AsOf   *time.Time      `form:"asOf" time_format:"2006-01-02"`
}

// ConversionResponse defines the result of a conversion.
type ConversionResponse struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Amount       decimal.Decimal `json:"amount"`
	Converted    decimal.Decimal `json:"converted"`
	Rate         decimal.Decimal `json:"rate"`
	AsOf         time.Time       `json:"asOf"`
}

// RateRefreshResponse reports one successful cache refresh.
type RateRefreshResponse struct {
	Base        string    `json:"base"`
	RefreshedAt time.Time `json:"refreshedAt"`
	Currencies  int       `json:"currencies"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its DTO.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		CurrencyCode:   rate.CurrencyCode,
		BaseCurrency:   rate.BaseCurrency,
		Rate:           rate.Rate,
		DateEffective:  rate.DateEffective,
		CreatedAt:      rate.CreatedAt,
		LastUpdatedAt:  rate.LastUpdatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of rate rows to DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = ToExchangeRateResponse(&rate)
	}
	return responses
}

// ToConversionResponse converts a domain.ConversionResult to its DTO.
func ToConversionResponse(res *domain.ConversionResult) ConversionResponse {
	return ConversionResponse{
		FromCurrency: res.FromCurrency,
		ToCurrency:   res.ToCurrency,
		Amount:       res.Amount,
		Converted:    res.Converted,
		Rate:         res.Rate,
		AsOf:         res.AsOf,
	}
}

// ToRateRefreshResponse converts a domain.RateRefreshEvent to its DTO.
func ToRateRefreshResponse(ev *domain.RateRefreshEvent) RateRefreshResponse {
	return RateRefreshResponse{
		Base:        ev.Base,
		RefreshedAt: ev.RefreshedAt,
		Currencies:  ev.Currencies,
	}
}
