package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// RawBankTransaction mirrors the raw_bank_transactions table. The unique
// key (connection_id, external_id) carries the ingestion dedup guarantee.
type RawBankTransaction struct {
	RawTxnID        string           `json:"rawTxnID"`
	ConnectionID    string           `json:"connectionID"`
	ExternalID      string           `json:"externalID"`
	TxnDate         time.Time        `json:"txnDate"`
	Description     string           `json:"description"`
	Amount          decimal.Decimal  `json:"amount"`
	TxnType         string           `json:"txnType"`
	Balance         *decimal.Decimal `json:"balance"`
	ReferenceNumber string           `json:"referenceNumber"`
	Category        string           `json:"category"`
	Confidence      float64          `json:"confidence"`
	Reconciled      bool             `json:"reconciled"`
	RawData         json.RawMessage  `json:"rawData"`
	AuditFields
}
