package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/fxledger/fxledger/internal/core/ports/providers"
	portsrepo "github.com/fxledger/fxledger/internal/core/ports/repositories"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/dto"
	"github.com/fxledger/fxledger/internal/utils/normalize"
	"github.com/google/uuid"
)

// ingestionService runs the fetch→normalize→dedup→store cycle and owns the
// reads over staged transactions.
type ingestionService struct {
	baseService
	connRepo     portsrepo.ConnectionRepositoryFacade
	feedRepo     portsrepo.FeedRepositoryFacade
	provider     providers.FeedProvider
	normalizer   *normalize.Normalizer
	categorizer  portssvc.CategorizerSvcFacade
	lookbackDays int
}

// NewIngestionService creates a new ingestion service. lookbackDays bounds
// the first fetch window of a connection that has never completed a cycle.
func NewIngestionService(
	connRepo portsrepo.ConnectionRepositoryFacade,
	feedRepo portsrepo.FeedRepositoryFacade,
	provider providers.FeedProvider,
	normalizer *normalize.Normalizer,
	categorizer portssvc.CategorizerSvcFacade,
	lookbackDays int,
) portssvc.IngestionSvcFacade {
	return &ingestionService{
		connRepo:     connRepo,
		feedRepo:     feedRepo,
		provider:     provider,
		normalizer:   normalizer,
		categorizer:  categorizer,
		lookbackDays: lookbackDays,
	}
}

var _ portssvc.IngestionSvcFacade = (*ingestionService)(nil)

// SyncConnection runs one full cycle for a connection. The checkpoint only
// advances after the whole batch landed, so a failed cycle re-fetches an
// overlapping window that the dedup key absorbs.
func (s *ingestionService) SyncConnection(ctx context.Context, connectionID string) (*domain.SyncResult, error) {
	logger := s.logger(ctx)

	conn, err := s.connRepo.FindConnectionByID(ctx, connectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load connection for sync: %w", err)
	}
	if !conn.IsActive {
		return nil, fmt.Errorf("%w: connection %s is inactive", apperrors.ErrConflict, connectionID)
	}

	cycleStart := time.Now().UTC()
	cycleID := uuid.NewString()
	since := cycleStart.AddDate(0, 0, -s.lookbackDays)
	if conn.LastSyncedAt != nil {
		since = *conn.LastSyncedAt
	}

	logger = logger.With(
		slog.String("connection_id", connectionID),
		slog.String("cycle_id", cycleID),
	)
	logger.Debug("Sync cycle started", slog.Time("since", since))

	records, err := s.provider.FetchTransactions(ctx, conn.BankID, conn.CredentialHandle, since)
	if err != nil {
		return nil, s.handleFetchFailure(ctx, logger, conn, err)
	}

	result := &domain.SyncResult{
		ConnectionID: connectionID,
		CycleID:      cycleID,
		StartedAt:    cycleStart,
		Fetched:      len(records),
	}

	var insertedIDs []string
	for _, record := range records {
		norm, err := s.normalizer.Normalize(record)
		if err != nil {
			result.SkippedMalformed++
			logger.Warn("Skipping malformed feed record", slog.String("error", err.Error()))
			continue
		}

		now := time.Now().UTC()
		txn := domain.RawBankTransaction{
			RawTxnID:        uuid.NewString(),
			ConnectionID:    connectionID,
			ExternalID:      norm.ExternalID,
			TxnDate:         norm.TxnDate,
			Description:     norm.Description,
			Amount:          norm.Amount,
			TxnType:         norm.TxnType,
			Balance:         norm.Balance,
			ReferenceNumber: norm.ReferenceNumber,
			Category:        domain.CategoryUncategorized,
			Confidence:      0,
			Reconciled:      false,
			RawData:         norm.RawData,
			AuditFields:     domain.NewAudit(domain.SystemActor, now),
		}

		outcome, err := s.feedRepo.StoreRawTransaction(ctx, txn)
		if err != nil {
			logger.Error("Sync cycle aborted mid-batch, checkpoint not advanced",
				slog.String("external_id", norm.ExternalID),
				slog.String("error", err.Error()),
			)
			return nil, fmt.Errorf("failed to store feed transaction: %w", err)
		}
		switch outcome {
		case portsrepo.StoreInserted:
			result.Inserted++
			insertedIDs = append(insertedIDs, txn.RawTxnID)
		case portsrepo.StoreAlreadyExists:
			result.Duplicates++
		}
	}

	// The whole batch landed; move the checkpoint to the cycle start so the
	// next window overlaps records that arrived while this cycle ran.
	if err := s.connRepo.UpdateLastSyncedAt(ctx, connectionID, cycleStart, domain.SystemActor); err != nil {
		logger.Error("Failed to advance sync checkpoint", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to advance sync checkpoint: %w", err)
	}
	result.CheckpointMovedTo = &cycleStart

	// Categorization is best-effort: a classifier failure never fails the cycle.
	for _, rawTxnID := range insertedIDs {
		txn, err := s.categorizer.CategorizeTransaction(ctx, rawTxnID, domain.SystemActor)
		if err != nil {
			logger.Warn("Best-effort categorization failed", slog.String("raw_txn_id", rawTxnID), slog.String("error", err.Error()))
			continue
		}
		if txn.Category != domain.CategoryUncategorized {
			result.Categorized++
		}
	}

	result.FinishedAt = time.Now().UTC()
	logger.Info("Sync cycle completed",
		slog.Int("fetched", result.Fetched),
		slog.Int("inserted", result.Inserted),
		slog.Int("duplicates", result.Duplicates),
		slog.Int("skipped_malformed", result.SkippedMalformed),
		slog.Int("categorized", result.Categorized),
	)
	return result, nil
}

// handleFetchFailure applies the failure policy: credential rejections
// deactivate the connection, everything else defers to the next tick.
func (s *ingestionService) handleFetchFailure(ctx context.Context, logger *slog.Logger, conn *domain.BankConnection, fetchErr error) error {
	kind, ok := providers.FetchKindOf(fetchErr)
	if !ok {
		logger.Error("Feed fetch failed", slog.String("error", fetchErr.Error()))
		return fmt.Errorf("feed fetch failed: %w", fetchErr)
	}

	switch kind {
	case providers.FetchAuth:
		logger.Error("Feed credentials rejected, deactivating connection",
			slog.String("bank_id", conn.BankID),
			slog.String("error", fetchErr.Error()),
		)
		if err := s.connRepo.DeactivateConnection(ctx, conn.ConnectionID, domain.SystemActor, time.Now().UTC()); err != nil {
			logger.Error("Failed to deactivate connection after credential rejection", slog.String("error", err.Error()))
		}
		return fmt.Errorf("feed credentials rejected: %w", fetchErr)
	case providers.FetchTransient:
		logger.Warn("Feed temporarily unavailable, cycle deferred", slog.String("error", fetchErr.Error()))
		return fmt.Errorf("feed temporarily unavailable: %w", fetchErr)
	default:
		logger.Error("Feed payload malformed", slog.String("error", fetchErr.Error()))
		return fmt.Errorf("feed payload malformed: %w", fetchErr)
	}
}

// GetRawTransactionByID retrieves one staged transaction.
func (s *ingestionService) GetRawTransactionByID(ctx context.Context, rawTxnID string) (*domain.RawBankTransaction, error) {
	txn, err := s.feedRepo.FindRawTransactionByID(ctx, rawTxnID)
	if err != nil {
		return nil, fmt.Errorf("failed to get staged transaction: %w", err)
	}
	return txn, nil
}

// ListUnreconciledTransactions retrieves a page of staged transactions that
// have not been reconciled yet.
func (s *ingestionService) ListUnreconciledTransactions(ctx context.Context, params dto.ListUnreconciledParams) (*dto.ListRawTransactionsResponse, error) {
	txns, nextToken, err := s.feedRepo.ListUnreconciled(ctx, params.ConnectionID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list unreconciled transactions: %w", err)
	}
	return dto.ToListRawTransactionResponse(txns, nextToken), nil
}

// SetReconciled sets or clears the reconciliation flag on a staged transaction.
func (s *ingestionService) SetReconciled(ctx context.Context, rawTxnID string, reconciled bool, requestingUserID string) (*domain.RawBankTransaction, error) {
	if err := s.feedRepo.SetReconciled(ctx, rawTxnID, reconciled, requestingUserID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to update reconciliation flag: %w", err)
	}

	txn, err := s.feedRepo.FindRawTransactionByID(ctx, rawTxnID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload staged transaction: %w", err)
	}

	s.LogInfo(ctx, "Reconciliation flag updated",
		slog.String("raw_txn_id", rawTxnID),
		slog.Bool("reconciled", reconciled),
	)
	return txn, nil
}
