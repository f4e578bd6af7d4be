package services

import (
	"context"

	"github.com/fxledger/fxledger/internal/core/domain"
)

// CategorizerSvcFacade assigns categories to staged transactions. It is
// decoupled from ingestion: the sync cycle calls it best-effort and the API
// exposes it independently.
type CategorizerSvcFacade interface {
	// CategorizeTransaction classifies one staged transaction and persists
	// the category and confidence.
	CategorizeTransaction(ctx context.Context, rawTxnID string, requestingUserID string) (*domain.RawBankTransaction, error)

	// CategorizeBatch classifies up to limit uncategorized transactions for a
	// connection (all connections when connectionID is empty) and returns how
	// many were updated.
	CategorizeBatch(ctx context.Context, connectionID string, limit int, requestingUserID string) (int, error)
}
