package services

import (
	"context"

	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/fxledger/fxledger/internal/dto"
)

// IngestionReaderSvc defines read operations over staged feed transactions
type IngestionReaderSvc interface {
	// GetRawTransactionByID retrieves one staged transaction.
	GetRawTransactionByID(ctx context.Context, rawTxnID string) (*domain.RawBankTransaction, error)

	// ListUnreconciledTransactions retrieves a paginated list of staged
	// transactions that have not been reconciled yet.
	ListUnreconciledTransactions(ctx context.Context, params dto.ListUnreconciledParams) (*dto.ListRawTransactionsResponse, error)
}

// IngestionWriterSvc defines the sync cycle and reconciliation writes
type IngestionWriterSvc interface {
	// SyncConnection runs one full fetch→normalize→dedup→store cycle for a
	// connection and reports what happened. The same path serves scheduled
	// ticks and on-demand syncs.
	SyncConnection(ctx context.Context, connectionID string) (*domain.SyncResult, error)

	// SetReconciled sets or clears the reconciliation flag on a staged transaction.
	SetReconciled(ctx context.Context, rawTxnID string, reconciled bool, requestingUserID string) (*domain.RawBankTransaction, error)
}

// IngestionSvcFacade combines all ingestion-related service interfaces
type IngestionSvcFacade interface {
	IngestionReaderSvc
	IngestionWriterSvc
}
