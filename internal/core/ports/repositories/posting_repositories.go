package repositories

import (
	"context"
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
)

// PostingReader defines read operations for posted transactions and their legs
type PostingReader interface {
	// FindTransactionByID retrieves a posted multi-currency transaction.
	FindTransactionByID(ctx context.Context, mctID string) (*domain.MultiCurrencyTransaction, error)

	// FindEntriesByVoucherNo retrieves all journal legs of one voucher.
	FindEntriesByVoucherNo(ctx context.Context, voucherNo string) ([]domain.JournalEntry, error)

	// FindEntriesBySourceTransaction retrieves the legs written for one posting.
	FindEntriesBySourceTransaction(ctx context.Context, mctID string) ([]domain.JournalEntry, error)

	// ListTransactions retrieves a paginated list of postings in a date range,
	// optionally filtered by currency, using token-based pagination.
	ListTransactions(ctx context.Context, from, to time.Time, currencyCode string, limit int, nextToken *string) ([]domain.MultiCurrencyTransaction, *string, error)
}

// PostingWriter defines write operations for posted transactions
type PostingWriter interface {
	// SavePosting persists the transaction row and its journal legs as one
	// atomic unit. Any failure leaves zero partial rows behind.
	SavePosting(ctx context.Context, txn domain.MultiCurrencyTransaction, entries []domain.JournalEntry) error
}

// PostingRepositoryFacade combines all posting-related repository interfaces
type PostingRepositoryFacade interface {
	PostingReader
	PostingWriter
}
