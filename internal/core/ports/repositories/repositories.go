package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ConnectionRepo   ConnectionRepositoryFacade
	FeedRepo         FeedRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	PostingRepo      PostingRepositoryFacade
	RevaluationRepo  RevaluationRepositoryFacade
	ReportingRepo    ReportingRepository
}
