package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MultiCurrencyTransaction mirrors the multi_currency_transactions table.
// Rows are immutable after insert; the base amount and rate are frozen at
// posting time.
type MultiCurrencyTransaction struct {
	MctID           string          `json:"mctID"`
	TxnDate         time.Time       `json:"txnDate"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	BaseAmount      decimal.Decimal `json:"baseAmount"`
	RateUsed        decimal.Decimal `json:"rateUsed"`
	TxnType         string          `json:"txnType"`
	Account         string          `json:"account"`
	ReferenceNumber string          `json:"referenceNumber"`
	AuditFields
}
