package services_test

import (
	"context"
	"fmt"
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

// --- Mock RevaluationRepository ---
type MockRevaluationRepository struct {
	mock.Mock
}

func (m *MockRevaluationRepository) FindRunByID(ctx context.Context, revaluationID string) (*domain.RevaluationRun, error) {
	args := m.Called(ctx, revaluationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevaluationRun), args.Error(1)
}

func (m *MockRevaluationRepository) ListRuns(ctx context.Context, limit int, nextToken *string) ([]domain.RevaluationRun, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var runs []domain.RevaluationRun
	if args.Get(0) != nil {
		runs = args.Get(0).([]domain.RevaluationRun)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return runs, token, args.Error(2)
}

func (m *MockRevaluationRepository) SaveRun(ctx context.Context, run domain.RevaluationRun, entries []domain.JournalEntry) error {
	args := m.Called(ctx, run, entries)
	return args.Error(0)
}

// --- Mock ReportingRepository (shared with the reporting service tests) ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) AggregateOpenPositions(ctx context.Context, baseCurrency string) ([]domain.OpenPosition, error) {
	args := m.Called(ctx, baseCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpenPosition), args.Error(1)
}

func (m *MockReportingRepository) CurrencyPLTotals(ctx context.Context, from, to time.Time) ([]domain.CurrencyPLRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyPLRow), args.Error(1)
}

func (m *MockReportingRepository) SumRevaluationGainLoss(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type RevaluationServiceTestSuite struct {
	suite.Suite
	mockRevalRepo     *MockRevaluationRepository
	mockReportingRepo *MockReportingRepository
	mockRates         *MockRateReader
	service           portssvc.RevaluationSvcFacade
}

func (suite *RevaluationServiceTestSuite) SetupTest() {
	suite.mockRevalRepo = new(MockRevaluationRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockRates = new(MockRateReader)
	suite.mockRates.On("BaseCurrency").Return("INR").Maybe()
	suite.service = services.NewRevaluationService(suite.mockRevalRepo, suite.mockReportingRepo, suite.mockRates)
}

func (suite *RevaluationServiceTestSuite) TestRevalue_BooksAggregateGain() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 31, 18, 0, 0, 0, time.UTC)
	positions := []domain.OpenPosition{
		{Account: "Accounts Receivable", CurrencyCode: "USD", OriginalTotal: decimal.NewFromInt(1000), BookedBase: decimal.NewFromInt(80000)},
		{Account: "Accounts Payable", CurrencyCode: "EUR", OriginalTotal: decimal.NewFromInt(-200), BookedBase: decimal.NewFromInt(-18000)},
	}

	suite.mockReportingRepo.On("AggregateOpenPositions", ctx, "INR").Return(positions, nil).Once()
	suite.mockRates.On("GetRate", ctx, "USD", "INR", asOf).Return(decimal.NewFromInt(85), nil).Once()
	suite.mockRates.On("GetRate", ctx, "EUR", "INR", asOf).
		Return(decimal.Zero, fmt.Errorf("%w: no rate for EUR in INR as of 2026-03-31", apperrors.ErrRateUnavailable)).Once()

	var savedRun domain.RevaluationRun
	var savedEntries []domain.JournalEntry
	suite.mockRevalRepo.On("SaveRun", ctx, mock.AnythingOfType("domain.RevaluationRun"), mock.AnythingOfType("[]domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			savedRun = args.Get(1).(domain.RevaluationRun)
			savedEntries = args.Get(2).([]domain.JournalEntry)
		}).Return(nil).Once()

	result, err := suite.service.Revalue(ctx, asOf, "user-7")

	suite.Require().NoError(err)
	suite.Require().NotNil(result)

	// The USD position moved from 80000 to 85000; the EUR position had no
	// rate and is reported, not priced.
	suite.True(savedRun.TotalGainLoss.Equal(decimal.NewFromInt(5000)), "expected gain 5000, got %s", savedRun.TotalGainLoss)
	suite.Equal(1, savedRun.PositionsRevalued)
	suite.Equal(1, savedRun.PositionsSkipped)
	suite.Require().NotNil(savedRun.VoucherNo)
	suite.Equal("user-7", savedRun.CreatedBy)

	suite.Require().Len(savedEntries, 2)
	suite.Equal(domain.AccountForexGain, savedEntries[0].Account)
	suite.True(savedEntries[0].CreditAmount.Equal(decimal.NewFromInt(5000)))
	suite.True(savedEntries[0].DebitAmount.IsZero())
	suite.Equal(domain.AccountRevaluationReserve, savedEntries[1].Account)
	suite.True(savedEntries[1].DebitAmount.Equal(decimal.NewFromInt(5000)))
	for _, entry := range savedEntries {
		suite.Equal(*savedRun.VoucherNo, entry.VoucherNo)
		suite.Require().NotNil(entry.RevaluationID)
		suite.Equal(savedRun.RevaluationID, *entry.RevaluationID)
		suite.Equal(asOf, entry.EntryDate)
	}

	suite.Require().Len(result.Positions, 1)
	suite.True(result.Positions[0].CurrentValue.Equal(decimal.NewFromInt(85000)))
	suite.True(result.Positions[0].GainLoss.Equal(decimal.NewFromInt(5000)))
	suite.Require().Len(result.Skipped, 1)
	suite.Equal("EUR", result.Skipped[0].CurrencyCode)
	suite.Contains(result.Skipped[0].Reason, "no rate for EUR")
}

func (suite *RevaluationServiceTestSuite) TestRevalue_BooksAggregateLoss() {
	ctx := context.Background()
	asOf := time.Date(2026, 4, 30, 18, 0, 0, 0, time.UTC)
	positions := []domain.OpenPosition{
		{Account: "Accounts Receivable", CurrencyCode: "USD", OriginalTotal: decimal.NewFromInt(1000), BookedBase: decimal.NewFromInt(85000)},
	}

	suite.mockReportingRepo.On("AggregateOpenPositions", ctx, "INR").Return(positions, nil).Once()
	suite.mockRates.On("GetRate", ctx, "USD", "INR", asOf).Return(decimal.NewFromInt(83), nil).Once()

	var savedEntries []domain.JournalEntry
	suite.mockRevalRepo.On("SaveRun", ctx, mock.MatchedBy(func(run domain.RevaluationRun) bool {
		return run.TotalGainLoss.Equal(decimal.NewFromInt(-2000)) && run.VoucherNo != nil
	}), mock.AnythingOfType("[]domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			savedEntries = args.Get(2).([]domain.JournalEntry)
		}).Return(nil).Once()

	result, err := suite.service.Revalue(ctx, asOf, "user-7")

	suite.Require().NoError(err)
	suite.True(result.Run.TotalGainLoss.Equal(decimal.NewFromInt(-2000)))

	// A loss debits the loss account and credits the reserve.
	suite.Require().Len(savedEntries, 2)
	suite.Equal(domain.AccountForexLoss, savedEntries[0].Account)
	suite.True(savedEntries[0].DebitAmount.Equal(decimal.NewFromInt(2000)))
	suite.True(savedEntries[0].CreditAmount.IsZero())
	suite.Equal(domain.AccountRevaluationReserve, savedEntries[1].Account)
	suite.True(savedEntries[1].CreditAmount.Equal(decimal.NewFromInt(2000)))
}

func (suite *RevaluationServiceTestSuite) TestRevalue_ZeroAggregateWritesNoVoucher() {
	ctx := context.Background()
	positions := []domain.OpenPosition{
		{Account: "Accounts Receivable", CurrencyCode: "USD", OriginalTotal: decimal.NewFromInt(1000), BookedBase: decimal.NewFromInt(81000)},
		{Account: "Accounts Payable", CurrencyCode: "EUR", OriginalTotal: decimal.NewFromInt(500), BookedBase: decimal.NewFromInt(47000)},
	}

	suite.mockReportingRepo.On("AggregateOpenPositions", ctx, "INR").Return(positions, nil).Once()
	// USD gains 2000, EUR loses 2000; the aggregate nets to zero.
	suite.mockRates.On("GetRate", ctx, "USD", "INR", mock.AnythingOfType("time.Time")).Return(decimal.NewFromInt(83), nil).Once()
	suite.mockRates.On("GetRate", ctx, "EUR", "INR", mock.AnythingOfType("time.Time")).Return(decimal.NewFromInt(90), nil).Once()

	var savedRun domain.RevaluationRun
	var savedEntries []domain.JournalEntry
	suite.mockRevalRepo.On("SaveRun", ctx, mock.AnythingOfType("domain.RevaluationRun"), mock.AnythingOfType("[]domain.JournalEntry")).
		Run(func(args mock.Arguments) {
			savedRun = args.Get(1).(domain.RevaluationRun)
			savedEntries = args.Get(2).([]domain.JournalEntry)
		}).Return(nil).Once()

	result, err := suite.service.Revalue(ctx, time.Time{}, "user-7")

	suite.Require().NoError(err)
	suite.True(savedRun.TotalGainLoss.IsZero())
	suite.Nil(savedRun.VoucherNo)
	suite.Empty(savedEntries)
	suite.False(savedRun.AsOf.IsZero())
	suite.Equal(2, savedRun.PositionsRevalued)
	suite.Len(result.Positions, 2)
}

func (suite *RevaluationServiceTestSuite) TestRevalue_RateHardFailureAbortsRun() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 31, 18, 0, 0, 0, time.UTC)
	positions := []domain.OpenPosition{
		{Account: "Accounts Receivable", CurrencyCode: "USD", OriginalTotal: decimal.NewFromInt(1000), BookedBase: decimal.NewFromInt(80000)},
	}

	suite.mockReportingRepo.On("AggregateOpenPositions", ctx, "INR").Return(positions, nil).Once()
	suite.mockRates.On("GetRate", ctx, "USD", "INR", asOf).
		Return(decimal.Zero, apperrors.NewInternalError("rate store unreachable", nil)).Once()

	result, err := suite.service.Revalue(ctx, asOf, "user-7")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.mockRevalRepo.AssertNotCalled(suite.T(), "SaveRun", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RevaluationServiceTestSuite) TestRevalue_SaveFailureRollsBack() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 31, 18, 0, 0, 0, time.UTC)
	positions := []domain.OpenPosition{
		{Account: "Accounts Receivable", CurrencyCode: "USD", OriginalTotal: decimal.NewFromInt(1000), BookedBase: decimal.NewFromInt(80000)},
	}

	suite.mockReportingRepo.On("AggregateOpenPositions", ctx, "INR").Return(positions, nil).Once()
	suite.mockRates.On("GetRate", ctx, "USD", "INR", asOf).Return(decimal.NewFromInt(85), nil).Once()
	suite.mockRevalRepo.On("SaveRun", ctx, mock.Anything, mock.Anything).
		Return(apperrors.NewInternalError("insert failed", nil)).Once()

	result, err := suite.service.Revalue(ctx, asOf, "user-7")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrIntegrityViolation)
	suite.Nil(result)
}

func (suite *RevaluationServiceTestSuite) TestGetRevaluationByID_NotFound() {
	ctx := context.Background()
	suite.mockRevalRepo.On("FindRunByID", ctx, "missing-id").Return(nil, apperrors.ErrNotFound).Once()

	run, err := suite.service.GetRevaluationByID(ctx, "missing-id")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(run)
}

func (suite *RevaluationServiceTestSuite) TestListRevaluations_Passthrough() {
	ctx := context.Background()
	token := "page-2"
	runs := []domain.RevaluationRun{{RevaluationID: "r1", BaseCurrency: "INR"}}

	suite.mockRevalRepo.On("ListRuns", ctx, 10, (*string)(nil)).Return(runs, &token, nil).Once()

	got, next, err := suite.service.ListRevaluations(ctx, 10, nil)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.Require().NotNil(next)
	suite.Equal(token, *next)
}

func TestRevaluationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RevaluationServiceTestSuite))
}
