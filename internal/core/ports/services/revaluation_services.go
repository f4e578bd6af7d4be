package services

import (
	"context"
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
)

// RevaluationReaderSvc defines read operations for revaluation history
type RevaluationReaderSvc interface {
	// GetRevaluationByID retrieves one run.
	GetRevaluationByID(ctx context.Context, revaluationID string) (*domain.RevaluationRun, error)

	// ListRevaluations retrieves a paginated run history, most recent first.
	ListRevaluations(ctx context.Context, limit int, nextToken *string) ([]domain.RevaluationRun, *string, error)
}

// RevaluationWriterSvc defines the revaluation operation
type RevaluationWriterSvc interface {
	// Revalue prices every open foreign-currency position as of the given
	// instant and books one adjusting voucher for the aggregate unrealized
	// gain/loss. A zero aggregate records the run without a voucher.
	// Positions with no resolvable rate are skipped and reported.
	Revalue(ctx context.Context, asOf time.Time, requestingUserID string) (*domain.RevaluationResult, error)
}

// RevaluationSvcFacade combines all revaluation-related service interfaces
type RevaluationSvcFacade interface {
	RevaluationReaderSvc
	RevaluationWriterSvc
}
