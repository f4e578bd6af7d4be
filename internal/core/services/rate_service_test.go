package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindRateAsOf(ctx context.Context, currencyCode, baseCurrency string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, currencyCode, baseCurrency, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListRates(ctx context.Context, baseCurrency string, currencyCode string, asOf time.Time) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCurrency, currencyCode, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) UpsertCurrentRates(ctx context.Context, rates []domain.ExchangeRate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchRates(ctx context.Context, base string) (domain.RateTable, error) {
	args := m.Called(ctx, base)
	return args.Get(0).(domain.RateTable), args.Error(1)
}

// --- Test Suite ---
type RateServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockExchangeRateRepository
	mockProvider *MockRateProvider
	service      portssvc.RateSvcFacade
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockProvider = new(MockRateProvider)
	suite.service = services.NewRateService(suite.mockRateRepo, suite.mockProvider, "INR")
}

func testRateTable() domain.RateTable {
	now := time.Now().UTC()
	return domain.RateTable{
		Base: "INR",
		Date: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		Rates: map[string]decimal.Decimal{
			"USD": decimal.NewFromInt(83),
			"EUR": decimal.NewFromInt(90),
		},
		FetchedAt: now,
	}
}

// warmCache runs one successful refresh so lookups hit the in-memory table.
func (suite *RateServiceTestSuite) warmCache(ctx context.Context) {
	suite.mockProvider.On("FetchRates", ctx, "INR").Return(testRateTable(), nil).Once()
	suite.mockRateRepo.On("UpsertCurrentRates", ctx, mock.MatchedBy(func(rows []domain.ExchangeRate) bool {
		return len(rows) == 2
	})).Return(nil).Once()

	_, err := suite.service.Refresh(ctx)
	suite.Require().NoError(err)
}

func (suite *RateServiceTestSuite) TestGetRate_SameCurrency() {
	ctx := context.Background()

	rate, err := suite.service.GetRate(ctx, "USD", "USD", time.Now().UTC())

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchRates", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestGetRate_InvalidCode() {
	ctx := context.Background()

	_, err := suite.service.GetRate(ctx, "US", "INR", time.Now().UTC())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RateServiceTestSuite) TestRefresh_SwapsTableAndPersists() {
	ctx := context.Background()

	suite.warmCache(ctx)

	rate, err := suite.service.GetRate(ctx, "USD", "INR", time.Now().UTC())
	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(83)), "expected 83, got %s", rate)

	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestRefresh_PersistsSystemAuditedCurrentRows() {
	ctx := context.Background()
	table := testRateTable()

	suite.mockProvider.On("FetchRates", ctx, "INR").Return(table, nil).Once()
	suite.mockRateRepo.On("UpsertCurrentRates", ctx, mock.MatchedBy(func(rows []domain.ExchangeRate) bool {
		if len(rows) != 2 {
			return false
		}
		for _, row := range rows {
			if row.BaseCurrency != "INR" || !row.Rate.IsPositive() {
				return false
			}
			if !row.DateEffective.Equal(table.Date) || row.CreatedBy != domain.SystemActor {
				return false
			}
		}
		return true
	})).Return(nil).Once()

	event, err := suite.service.Refresh(ctx)

	suite.Require().NoError(err)
	suite.Require().NotNil(event)
	suite.Equal("INR", event.Base)
	suite.Equal(2, event.Currencies)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestGetRate_CrossPairThroughBase() {
	ctx := context.Background()
	suite.warmCache(ctx)

	rate, err := suite.service.GetRate(ctx, "EUR", "USD", time.Now().UTC())

	suite.Require().NoError(err)
	expected := decimal.NewFromInt(90).Div(decimal.NewFromInt(83))
	suite.True(rate.Equal(expected), "expected %s, got %s", expected, rate)
}

func (suite *RateServiceTestSuite) TestGetRate_CacheMissTriggersSingleRefresh() {
	ctx := context.Background()

	// Cold cache: one lookup covering two foreign legs must pull exactly once.
	suite.mockProvider.On("FetchRates", ctx, "INR").Return(testRateTable(), nil).Once()
	suite.mockRateRepo.On("UpsertCurrentRates", ctx, mock.Anything).Return(nil).Once()

	rate, err := suite.service.GetRate(ctx, "USD", "EUR", time.Now().UTC())

	suite.Require().NoError(err)
	expected := decimal.NewFromInt(83).Div(decimal.NewFromInt(90))
	suite.True(rate.Equal(expected), "expected %s, got %s", expected, rate)
	suite.mockProvider.AssertNumberOfCalls(suite.T(), "FetchRates", 1)
}

func (suite *RateServiceTestSuite) TestGetRate_ProviderDownFallsBackToHistory() {
	ctx := context.Background()
	now := time.Now().UTC()

	suite.mockProvider.On("FetchRates", ctx, "INR").Return(domain.RateTable{}, errors.New("gateway timeout")).Once()
	suite.mockRateRepo.On("FindRateAsOf", ctx, "USD", "INR", mock.AnythingOfType("time.Time")).
		Return(&domain.ExchangeRate{CurrencyCode: "USD", BaseCurrency: "INR", Rate: decimal.RequireFromString("82.5")}, nil).Once()

	rate, err := suite.service.GetRate(ctx, "USD", "INR", now)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.RequireFromString("82.5")))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestGetRate_NoRateAnywhere() {
	ctx := context.Background()

	suite.mockProvider.On("FetchRates", ctx, "INR").Return(domain.RateTable{}, errors.New("gateway timeout")).Once()
	suite.mockRateRepo.On("FindRateAsOf", ctx, "ZMW", "INR", mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetRate(ctx, "ZMW", "INR", time.Now().UTC())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (suite *RateServiceTestSuite) TestGetRate_HistoricalBypassesCache() {
	ctx := context.Background()
	suite.warmCache(ctx)
	asOf := time.Now().UTC().AddDate(0, 0, -30)

	suite.mockRateRepo.On("FindRateAsOf", ctx, "USD", "INR", asOf).
		Return(&domain.ExchangeRate{CurrencyCode: "USD", BaseCurrency: "INR", Rate: decimal.NewFromInt(81)}, nil).Once()

	rate, err := suite.service.GetRate(ctx, "USD", "INR", asOf)

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(81)))
	// The provider was only hit by warmCache, never by the historical lookup.
	suite.mockProvider.AssertNumberOfCalls(suite.T(), "FetchRates", 1)
}

func (suite *RateServiceTestSuite) TestRefresh_ProviderFailureKeepsServingOldTable() {
	ctx := context.Background()
	suite.warmCache(ctx)

	suite.mockProvider.On("FetchRates", ctx, "INR").Return(domain.RateTable{}, errors.New("upstream 500")).Once()

	_, err := suite.service.Refresh(ctx)
	suite.Require().Error(err)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(502, appErr.Code)

	// Previous table still serves lookups.
	rate, err := suite.service.GetRate(ctx, "USD", "INR", time.Now().UTC())
	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(83)))
}

func (suite *RateServiceTestSuite) TestConvert_WorkedExample() {
	ctx := context.Background()
	suite.warmCache(ctx)

	result, err := suite.service.Convert(ctx, decimal.NewFromInt(100), "USD", "INR", time.Now().UTC())

	suite.Require().NoError(err)
	suite.True(result.Converted.Equal(decimal.NewFromInt(8300)), "expected 8300, got %s", result.Converted)
	suite.True(result.Rate.Equal(decimal.NewFromInt(83)))
	suite.Equal("USD", result.FromCurrency)
	suite.Equal("INR", result.ToCurrency)
}

func (suite *RateServiceTestSuite) TestSubscribe_ReceivesRefreshEvents() {
	ctx := context.Background()

	events, unsubscribe := suite.service.Subscribe()
	defer unsubscribe()

	suite.warmCache(ctx)

	select {
	case event := <-events:
		suite.Equal("INR", event.Base)
		suite.Equal(2, event.Currencies)
	case <-time.After(time.Second):
		suite.Fail("no refresh event received")
	}
}

func (suite *RateServiceTestSuite) TestSubscribe_UnsubscribeClosesChannel() {
	events, unsubscribe := suite.service.Subscribe()

	unsubscribe()

	_, open := <-events
	suite.False(open)
}

func (suite *RateServiceTestSuite) TestListRates_PassesBaseAndFilter() {
	ctx := context.Background()
	asOf := time.Now().UTC()
	expected := []domain.ExchangeRate{{CurrencyCode: "USD", BaseCurrency: "INR", Rate: decimal.NewFromInt(83)}}

	suite.mockRateRepo.On("ListRates", ctx, "INR", "USD", asOf).Return(expected, nil).Once()

	rates, err := suite.service.ListRates(ctx, "usd", asOf)

	suite.Require().NoError(err)
	suite.Equal(expected, rates)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
