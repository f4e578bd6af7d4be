package services

import (
	"context"

	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/fxledger/fxledger/internal/dto"
)

// PostingReaderSvc defines read operations for posted transactions
type PostingReaderSvc interface {
	// GetPostingByID retrieves a posted transaction together with its
	// journal legs.
	GetPostingByID(ctx context.Context, mctID string) (*domain.MultiCurrencyTransaction, []domain.JournalEntry, error)

	// ListPostings retrieves a paginated list of postings.
	ListPostings(ctx context.Context, params dto.ListPostingsParams) (*dto.ListPostingsResponse, error)
}

// PostingWriterSvc defines the posting operation
type PostingWriterSvc interface {
	// PostTransaction converts the draft to the base currency and writes the
	// transaction row plus two balanced journal legs atomically. The stored
	// base amount and rate are frozen: later rate changes never modify them.
	PostTransaction(ctx context.Context, draft domain.TransactionDraft, creatorUserID string) (*domain.PostingResult, error)
}

// PostingSvcFacade combines all posting-related service interfaces
type PostingSvcFacade interface {
	PostingReaderSvc
	PostingWriterSvc
}
