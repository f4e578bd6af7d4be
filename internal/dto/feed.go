package dto

import (
	"encoding/json"
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RawTransactionResponse defines the data returned for a staged feed
// transaction.
type RawTransactionResponse struct {
	RawTxnID        string           `json:"rawTxnID"`
	ConnectionID    string           `json:"connectionID"`
	ExternalID      string           `json:"externalID"`
	TxnDate         time.Time        `json:"txnDate"`
	Description     string           `json:"description"`
	Amount          decimal.Decimal  `json:"amount"`
	TxnType         string           `json:"txnType"`
	Balance         *decimal.Decimal `json:"balance,omitempty"`
	ReferenceNumber string           `json:"referenceNumber,omitempty"`
	Category        string           `json:"category"`
	Confidence      float64          `json:"confidence"`
	Reconciled      bool             `json:"reconciled"`
	RawData         json.RawMessage  `json:"rawData,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// ListUnreconciledParams defines query parameters for listing unreconciled
// staged transactions.
type ListUnreconciledParams struct {
	ConnectionID string  `form:"connectionID"`
	Limit        int     `form:"limit,default=20"`
	NextToken    *string `form:"nextToken"`
}

// ListRawTransactionsResponse is a page of staged transactions plus the
// token for the next page, if any.
type ListRawTransactionsResponse struct {
	Transactions []RawTransactionResponse `json:"transactions"`
	NextToken    *string                  `json:"nextToken,omitempty"`
}

// SetReconciledRequest flips the reconciliation flag on a staged transaction.
// A pointer distinguishes an explicit false from a missing field.
type SetReconciledRequest struct {
	Reconciled *bool `json:"reconciled" binding:"required"`
}

// SyncResultResponse reports one completed sync cycle.
type SyncResultResponse struct {
	ConnectionID      string     `json:"connectionID"`
	CycleID           string     `json:"cycleID"`
	StartedAt         time.Time  `json:"startedAt"`
	FinishedAt        time.Time  `json:"finishedAt"`
	Fetched           int        `json:"fetched"`
	Inserted          int        `json:"inserted"`
	Duplicates        int        `json:"duplicates"`
	SkippedMalformed  int        `json:"skippedMalformed"`
	Categorized       int        `json:"categorized"`
	CheckpointMovedTo *time.Time `json:"checkpointMovedTo,omitempty"`
}

// CategorizeBatchRequest asks the categorizer to classify up to Limit staged
// transactions, optionally for one connection only.
type CategorizeBatchRequest struct {
	ConnectionID string `json:"connectionID"`
	Limit        int    `json:"limit"`
}

// CategorizeBatchResponse reports how many transactions were classified.
type CategorizeBatchResponse struct {
	Updated int `json:"updated"`
}

// ToRawTransactionResponse converts a domain.RawBankTransaction to its DTO.
func ToRawTransactionResponse(txn *domain.RawBankTransaction) RawTransactionResponse {
	return RawTransactionResponse{
		RawTxnID:        txn.RawTxnID,
		ConnectionID:    txn.ConnectionID,
		ExternalID:      txn.ExternalID,
		TxnDate:         txn.TxnDate,
		Description:     txn.Description,
		Amount:          txn.Amount,
		TxnType:         string(txn.TxnType),
		Balance:         txn.Balance,
		ReferenceNumber: txn.ReferenceNumber,
		Category:        txn.Category,
		Confidence:      txn.Confidence,
		Reconciled:      txn.Reconciled,
		RawData:         txn.RawData,
		CreatedAt:       txn.CreatedAt,
	}
}

// ToListRawTransactionResponse converts a page of staged transactions.
func ToListRawTransactionResponse(txns []domain.RawBankTransaction, nextToken *string) *ListRawTransactionsResponse {
	responses := make([]RawTransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToRawTransactionResponse(&txn)
	}
	return &ListRawTransactionsResponse{Transactions: responses, NextToken: nextToken}
}

// ToSyncResultResponse converts a domain.SyncResult to its DTO.
func ToSyncResultResponse(res *domain.SyncResult) SyncResultResponse {
	return SyncResultResponse{
		ConnectionID:      res.ConnectionID,
		CycleID:           res.CycleID,
		StartedAt:         res.StartedAt,
		FinishedAt:        res.FinishedAt,
		Fetched:           res.Fetched,
		Inserted:          res.Inserted,
		Duplicates:        res.Duplicates,
		SkippedMalformed:  res.SkippedMalformed,
		Categorized:       res.Categorized,
		CheckpointMovedTo: res.CheckpointMovedTo,
	}
}
