package repositories

import (
	"context"

	"github.com/fxledger/fxledger/internal/core/domain"
)

// RevaluationReader defines read operations for revaluation runs
type RevaluationReader interface {
	// FindRunByID retrieves a specific revaluation run.
	FindRunByID(ctx context.Context, revaluationID string) (*domain.RevaluationRun, error)

	// ListRuns retrieves a paginated history of revaluation runs using
	// token-based pagination, most recent first.
	ListRuns(ctx context.Context, limit int, nextToken *string) ([]domain.RevaluationRun, *string, error)
}

// RevaluationWriter defines write operations for revaluation runs
type RevaluationWriter interface {
	// SaveRun persists the run record and its adjusting voucher legs (empty
	// for no-op runs) as one atomic unit.
	SaveRun(ctx context.Context, run domain.RevaluationRun, entries []domain.JournalEntry) error
}

// RevaluationRepositoryFacade combines all revaluation-related repository interfaces
type RevaluationRepositoryFacade interface {
	RevaluationReader
	RevaluationWriter
}
