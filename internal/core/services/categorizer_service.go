package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
	portsrepo "github.com/fxledger/fxledger/internal/core/ports/repositories"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/utils/classify"
)

// defaultBatchLimit caps how many uncategorized transactions one batch run touches.
const defaultBatchLimit = 100

// categorizerService assigns categories to staged transactions using the
// injected classifier.
type categorizerService struct {
	baseService
	feedRepo   portsrepo.FeedRepositoryFacade
	classifier classify.Classifier
}

// NewCategorizerService creates a new categorizer service.
func NewCategorizerService(feedRepo portsrepo.FeedRepositoryFacade, classifier classify.Classifier) portssvc.CategorizerSvcFacade {
	return &categorizerService{
		feedRepo:   feedRepo,
		classifier: classifier,
	}
}

var _ portssvc.CategorizerSvcFacade = (*categorizerService)(nil)

// CategorizeTransaction classifies one staged transaction and persists the
// category and confidence.
func (s *categorizerService) CategorizeTransaction(ctx context.Context, rawTxnID string, requestingUserID string) (*domain.RawBankTransaction, error) {
	txn, err := s.feedRepo.FindRawTransactionByID(ctx, rawTxnID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction for categorization: %w", err)
	}

	result := s.classifier.Classify(txn.Description)

	now := time.Now().UTC()
	if err := s.feedRepo.UpdateCategory(ctx, rawTxnID, result.Category, result.Confidence, requestingUserID, now); err != nil {
		return nil, fmt.Errorf("failed to persist category: %w", err)
	}

	txn.Category = result.Category
	txn.Confidence = result.Confidence
	txn.Touch(requestingUserID, now)

	s.LogDebug(ctx, "Transaction categorized",
		slog.String("raw_txn_id", rawTxnID),
		slog.String("category", result.Category),
		slog.Float64("confidence", result.Confidence),
	)
	return txn, nil
}

// CategorizeBatch classifies up to limit uncategorized transactions, for one
// connection or all of them, and reports how many rows changed.
func (s *categorizerService) CategorizeBatch(ctx context.Context, connectionID string, limit int, requestingUserID string) (int, error) {
	if limit <= 0 {
		limit = defaultBatchLimit
	}

	txns, err := s.feedRepo.ListUncategorized(ctx, connectionID, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list uncategorized transactions: %w", err)
	}

	updated := 0
	now := time.Now().UTC()
	for i := range txns {
		result := s.classifier.Classify(txns[i].Description)
		if result.Category == domain.CategoryUncategorized {
			continue
		}
		if err := s.feedRepo.UpdateCategory(ctx, txns[i].RawTxnID, result.Category, result.Confidence, requestingUserID, now); err != nil {
			s.LogError(ctx, err, "Failed to persist category in batch", slog.String("raw_txn_id", txns[i].RawTxnID))
			return updated, fmt.Errorf("failed to persist category for %s: %w", txns[i].RawTxnID, err)
		}
		updated++
	}

	s.LogInfo(ctx, "Categorization batch completed",
		slog.String("connection_id", connectionID),
		slog.Int("scanned", len(txns)),
		slog.Int("updated", updated),
	)
	return updated, nil
}
