package pgsql

import (
	portsrepo "github.com/fxledger/fxledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	connectionRepo := newPgxConnectionRepository(dbPool)
	feedRepo := newPgxFeedRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	postingRepo := newPgxPostingRepository(dbPool)
	revaluationRepo := newPgxRevaluationRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ConnectionRepo:   connectionRepo,
		FeedRepo:         feedRepo,
		ExchangeRateRepo: exchangeRateRepo,
		PostingRepo:      postingRepo,
		RevaluationRepo:  revaluationRepo,
		ReportingRepo:    reportingRepo,
	}
}
