package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryUncategorized is assigned to every ingested transaction until the
// categorizer classifies it, and re-assigned when no rule matches.
const CategoryUncategorized = "UNCATEGORIZED"

// RawBankTransaction is one deduplicated feed record staged for
// reconciliation. After insert only Category, Confidence and Reconciled
// may change; the financial fields are frozen.
type RawBankTransaction struct {
	RawTxnID        string           `json:"rawTxnID"`        // Primary Key (UUID)
	ConnectionID    string           `json:"connectionID"`    // FK -> BankConnection
	ExternalID      string           `json:"externalID"`      // Vendor transaction id; dedup key with ConnectionID
	TxnDate         time.Time        `json:"txnDate"`         // Value date
	Description     string           `json:"description"`     // Narration
	Amount          decimal.Decimal  `json:"amount"`          // Non-negative; sign carried by TxnType
	TxnType         TransactionType  `json:"txnType"`         // DEBIT or CREDIT
	Balance         *decimal.Decimal `json:"balance"`         // Running balance when the vendor reports one
	ReferenceNumber string           `json:"referenceNumber"` // Vendor reference/UTR when present
	Category        string           `json:"category"`        // Default UNCATEGORIZED
	Confidence      float64          `json:"confidence"`      // Categorizer confidence in [0,1]
	Reconciled      bool             `json:"reconciled"`      // Mutable reconciliation flag
	RawData         json.RawMessage  `json:"rawData"`         // Vendor payload as received
	AuditFields
}

// NormalizedTransaction is the canonical record the normalizer produces
// from one vendor record, before staging.
type NormalizedTransaction struct {
	ExternalID      string
	TxnDate         time.Time
	Description     string
	Amount          decimal.Decimal
	TxnType         TransactionType
	Balance         *decimal.Decimal
	ReferenceNumber string
	RawData         json.RawMessage
}

// SyncResult reports one completed sync cycle for a connection.
type SyncResult struct {
	ConnectionID      string     `json:"connectionID"`
	CycleID           string     `json:"cycleID"`
	StartedAt         time.Time  `json:"startedAt"`
	FinishedAt        time.Time  `json:"finishedAt"`
	Fetched           int        `json:"fetched"`
	Inserted          int        `json:"inserted"`
	Duplicates        int        `json:"duplicates"`
	SkippedMalformed  int        `json:"skippedMalformed"`
	Categorized       int        `json:"categorized"`
	CheckpointMovedTo *time.Time `json:"checkpointMovedTo"` // Nil when the cycle failed before completing the batch
}
