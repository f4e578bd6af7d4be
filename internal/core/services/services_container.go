package services

import (
	"github.com/fxledger/fxledger/internal/core/ports/providers"
	portsrepo "github.com/fxledger/fxledger/internal/core/ports/repositories"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/utils/classify"
	"github.com/fxledger/fxledger/internal/utils/normalize"
	"github.com/fxledger/fxledger/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	secrets providers.SecretStore,
	rateProvider providers.RateProvider,
	feedProvider providers.FeedProvider,
) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	// The rate service comes first since posting, revaluation and reporting
	// all convert through it.
	container.Rate = NewRateService(repos.ExchangeRateRepo, rateProvider, cfg.BaseCurrency)

	container.Connection = NewConnectionService(repos.ConnectionRepo, secrets)
	container.Categorizer = NewCategorizerService(repos.FeedRepo, classify.NewDefault())
	container.Ingestion = NewIngestionService(
		repos.ConnectionRepo,
		repos.FeedRepo,
		feedProvider,
		normalize.NewDefault(),
		container.Categorizer,
		cfg.FeedLookbackDays,
	)
	container.Posting = NewPostingService(repos.PostingRepo, container.Rate)
	container.Revaluation = NewRevaluationService(repos.RevaluationRepo, repos.ReportingRepo, container.Rate)
	container.Reporting = NewReportingService(repos.ReportingRepo, container.Rate)

	return container
}
