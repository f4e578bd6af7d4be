package repositories

import (
	"context"
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
)

// StoreOutcome reports what StoreRawTransaction did. A re-ingested record
// is a success, not an error: the dedup key absorbs overlapping fetches.
type StoreOutcome int

const (
	StoreInserted StoreOutcome = iota
	StoreAlreadyExists
)

// FeedReader defines read operations for staged feed transactions
type FeedReader interface {
	// FindRawTransactionByID retrieves a staged transaction by its unique identifier.
	FindRawTransactionByID(ctx context.Context, rawTxnID string) (*domain.RawBankTransaction, error)

	// ListUnreconciled retrieves a paginated list of unreconciled transactions,
	// optionally filtered by connection, using token-based pagination.
	ListUnreconciled(ctx context.Context, connectionID string, limit int, nextToken *string) ([]domain.RawBankTransaction, *string, error)

	// ListUncategorized retrieves staged transactions still carrying the default category.
	ListUncategorized(ctx context.Context, connectionID string, limit int) ([]domain.RawBankTransaction, error)
}

// FeedWriter defines write operations for staged feed transactions
type FeedWriter interface {
	// StoreRawTransaction inserts a staged transaction, deduplicating on
	// (connection_id, external_id). Duplicates return StoreAlreadyExists.
	StoreRawTransaction(ctx context.Context, txn domain.RawBankTransaction) (StoreOutcome, error)

	// UpdateCategory sets the category and confidence of a staged transaction.
	UpdateCategory(ctx context.Context, rawTxnID string, category string, confidence float64, updatedBy string, updatedAt time.Time) error

	// SetReconciled sets or clears the reconciliation flag.
	SetReconciled(ctx context.Context, rawTxnID string, reconciled bool, updatedBy string, updatedAt time.Time) error
}

// FeedRepositoryFacade combines all feed-related repository interfaces
type FeedRepositoryFacade interface {
	FeedReader
	FeedWriter
}
