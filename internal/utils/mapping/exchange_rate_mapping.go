package mapping

import (
	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/fxledger/fxledger/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID: d.ExchangeRateID,
		CurrencyCode:   d.CurrencyCode,
		BaseCurrency:   d.BaseCurrency,
		Rate:           d.Rate,
		DateEffective:  d.DateEffective,
		AuditFields:    auditToModel(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		CurrencyCode:   m.CurrencyCode,
		BaseCurrency:   m.BaseCurrency,
		Rate:           m.Rate,
		DateEffective:  m.DateEffective,
		AuditFields:    auditToDomain(m.AuditFields),
	}
}
