package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/fxledger/fxledger/internal/core/ports/providers"
	portsrepo "github.com/fxledger/fxledger/internal/core/ports/repositories"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/core/services"
	"github.com/fxledger/fxledger/internal/dto"
	"github.com/fxledger/fxledger/internal/utils/normalize"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock FeedProvider ---
type MockFeedProvider struct {
	mock.Mock
}

func (m *MockFeedProvider) FetchTransactions(ctx context.Context, bankID, credentialHandle string, since time.Time) ([]providers.VendorRecord, error) {
	args := m.Called(ctx, bankID, credentialHandle, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]providers.VendorRecord), args.Error(1)
}

// --- Mock CategorizerService ---
type MockCategorizerService struct {
	mock.Mock
}

func (m *MockCategorizerService) CategorizeTransaction(ctx context.Context, rawTxnID string, requestingUserID string) (*domain.RawBankTransaction, error) {
	args := m.Called(ctx, rawTxnID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawBankTransaction), args.Error(1)
}

func (m *MockCategorizerService) CategorizeBatch(ctx context.Context, connectionID string, limit int, requestingUserID string) (int, error) {
	args := m.Called(ctx, connectionID, limit, requestingUserID)
	return args.Int(0), args.Error(1)
}

// --- Test Suite ---
type IngestionServiceTestSuite struct {
	suite.Suite
	mockConnRepo    *MockConnectionRepository
	mockFeedRepo    *MockFeedRepository
	mockProvider    *MockFeedProvider
	mockCategorizer *MockCategorizerService
	service         portssvc.IngestionSvcFacade
}

func (suite *IngestionServiceTestSuite) SetupTest() {
	suite.mockConnRepo = new(MockConnectionRepository)
	suite.mockFeedRepo = new(MockFeedRepository)
	suite.mockProvider = new(MockFeedProvider)
	suite.mockCategorizer = new(MockCategorizerService)
	suite.service = services.NewIngestionService(
		suite.mockConnRepo,
		suite.mockFeedRepo,
		suite.mockProvider,
		normalize.NewDefault(),
		suite.mockCategorizer,
		90,
	)
}

func activeConnection(lastSynced *time.Time) *domain.BankConnection {
	return &domain.BankConnection{
		ConnectionID:     uuid.NewString(),
		BankID:           "hdfc",
		AccountNumber:    "0042810923",
		CredentialHandle: "sealed-handle",
		SyncInterval:     domain.SyncHourly,
		IsActive:         true,
		LastSyncedAt:     lastSynced,
	}
}

func (suite *IngestionServiceTestSuite) TestSyncConnection_FullCycle() {
	ctx := context.Background()
	checkpoint := time.Now().UTC().Add(-2 * time.Hour)
	conn := activeConnection(&checkpoint)

	records := []providers.VendorRecord{
		{"transactionId": "ext-1", "date": "2026-03-01", "description": "office rent march", "amount": "120.50", "type": "DEBIT"},
		{"transactionId": "ext-2", "date": "2026-03-02", "description": "gateway settlement", "amount": 980.25},
		{"narration": "no id or amount here"},
	}

	suite.mockConnRepo.On("FindConnectionByID", ctx, conn.ConnectionID).Return(conn, nil).Once()
	suite.mockProvider.On("FetchTransactions", ctx, "hdfc", "sealed-handle", checkpoint).Return(records, nil).Once()

	suite.mockFeedRepo.On("StoreRawTransaction", ctx, mock.MatchedBy(func(txn domain.RawBankTransaction) bool {
		return txn.ExternalID == "ext-1" &&
			txn.Amount.Equal(decimal.RequireFromString("120.50")) &&
			txn.TxnType == domain.Debit &&
			txn.Category == domain.CategoryUncategorized &&
			txn.CreatedBy == domain.SystemActor
	})).Return(portsrepo.StoreInserted, nil).Once()
	suite.mockFeedRepo.On("StoreRawTransaction", ctx, mock.MatchedBy(func(txn domain.RawBankTransaction) bool {
		return txn.ExternalID == "ext-2" && txn.TxnType == domain.Credit
	})).Return(portsrepo.StoreAlreadyExists, nil).Once()

	suite.mockConnRepo.On("UpdateLastSyncedAt", ctx, conn.ConnectionID, mock.AnythingOfType("time.Time"), domain.SystemActor).Return(nil).Once()
	suite.mockCategorizer.On("CategorizeTransaction", ctx, mock.AnythingOfType("string"), domain.SystemActor).
		Return(&domain.RawBankTransaction{Category: "RENT", Confidence: 0.85}, nil).Once()

	result, err := suite.service.SyncConnection(ctx, conn.ConnectionID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(3, result.Fetched)
	suite.Equal(1, result.Inserted)
	suite.Equal(1, result.Duplicates)
	suite.Equal(1, result.SkippedMalformed)
	suite.Equal(1, result.Categorized)
	suite.Require().NotNil(result.CheckpointMovedTo)
	suite.WithinDuration(result.StartedAt, *result.CheckpointMovedTo, time.Second)
	suite.mockConnRepo.AssertExpectations(suite.T())
	suite.mockFeedRepo.AssertExpectations(suite.T())
	suite.mockCategorizer.AssertExpectations(suite.T())
}

func (suite *IngestionServiceTestSuite) TestSyncConnection_FirstCycleUsesLookback() {
	ctx := context.Background()
	conn := activeConnection(nil)

	suite.mockConnRepo.On("FindConnectionByID", ctx, conn.ConnectionID).Return(conn, nil).Once()
	suite.mockProvider.On("FetchTransactions", ctx, "hdfc", "sealed-handle", mock.MatchedBy(func(since time.Time) bool {
		// With no checkpoint the window reaches back the configured 90 days.
		return since.Before(time.Now().UTC().AddDate(0, 0, -89))
	})).Return([]providers.VendorRecord{}, nil).Once()
	suite.mockConnRepo.On("UpdateLastSyncedAt", ctx, conn.ConnectionID, mock.AnythingOfType("time.Time"), domain.SystemActor).Return(nil).Once()

	result, err := suite.service.SyncConnection(ctx, conn.ConnectionID)

	suite.Require().NoError(err)
	suite.Equal(0, result.Fetched)
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *IngestionServiceTestSuite) TestSyncConnection_InactiveConnection() {
	ctx := context.Background()
	conn := activeConnection(nil)
	conn.IsActive = false

	suite.mockConnRepo.On("FindConnectionByID", ctx, conn.ConnectionID).Return(conn, nil).Once()

	result, err := suite.service.SyncConnection(ctx, conn.ConnectionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(result)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *IngestionServiceTestSuite) TestSyncConnection_AuthFailureDeactivates() {
	ctx := context.Background()
	checkpoint := time.Now().UTC().Add(-time.Hour)
	conn := activeConnection(&checkpoint)

	suite.mockConnRepo.On("FindConnectionByID", ctx, conn.ConnectionID).Return(conn, nil).Once()
	suite.mockProvider.On("FetchTransactions", ctx, "hdfc", "sealed-handle", checkpoint).
		Return(nil, providers.NewAuthError("credentials rejected", nil)).Once()
	suite.mockConnRepo.On("DeactivateConnection", ctx, conn.ConnectionID, domain.SystemActor, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.SyncConnection(ctx, conn.ConnectionID)

	suite.Require().Error(err)
	suite.Nil(result)
	kind, ok := providers.FetchKindOf(err)
	suite.Require().True(ok)
	suite.Equal(providers.FetchAuth, kind)
	suite.mockConnRepo.AssertExpectations(suite.T())
}

func (suite *IngestionServiceTestSuite) TestSyncConnection_TransientFailureDefers() {
	ctx := context.Background()
	checkpoint := time.Now().UTC().Add(-time.Hour)
	conn := activeConnection(&checkpoint)

	suite.mockConnRepo.On("FindConnectionByID", ctx, conn.ConnectionID).Return(conn, nil).Once()
	suite.mockProvider.On("FetchTransactions", ctx, "hdfc", "sealed-handle", checkpoint).
		Return(nil, providers.NewTransientError("bank feed 503", nil)).Once()

	result, err := suite.service.SyncConnection(ctx, conn.ConnectionID)

	suite.Require().Error(err)
	suite.Nil(result)
	kind, ok := providers.FetchKindOf(err)
	suite.Require().True(ok)
	suite.Equal(providers.FetchTransient, kind)
	suite.mockConnRepo.AssertNotCalled(suite.T(), "DeactivateConnection", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockConnRepo.AssertNotCalled(suite.T(), "UpdateLastSyncedAt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *IngestionServiceTestSuite) TestSyncConnection_StoreFailureKeepsCheckpoint() {
	ctx := context.Background()
	checkpoint := time.Now().UTC().Add(-time.Hour)
	conn := activeConnection(&checkpoint)
	records := []providers.VendorRecord{
		{"transactionId": "ext-1", "amount": 10.5},
	}

	suite.mockConnRepo.On("FindConnectionByID", ctx, conn.ConnectionID).Return(conn, nil).Once()
	suite.mockProvider.On("FetchTransactions", ctx, "hdfc", "sealed-handle", checkpoint).Return(records, nil).Once()
	suite.mockFeedRepo.On("StoreRawTransaction", ctx, mock.Anything).
		Return(portsrepo.StoreInserted, apperrors.NewInternalError("insert failed", nil)).Once()

	result, err := suite.service.SyncConnection(ctx, conn.ConnectionID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.mockConnRepo.AssertNotCalled(suite.T(), "UpdateLastSyncedAt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *IngestionServiceTestSuite) TestSyncConnection_CategorizerFailureDoesNotFailCycle() {
	ctx := context.Background()
	checkpoint := time.Now().UTC().Add(-time.Hour)
	conn := activeConnection(&checkpoint)
	records := []providers.VendorRecord{
		{"transactionId": "ext-1", "amount": 10.5},
	}

	suite.mockConnRepo.On("FindConnectionByID", ctx, conn.ConnectionID).Return(conn, nil).Once()
	suite.mockProvider.On("FetchTransactions", ctx, "hdfc", "sealed-handle", checkpoint).Return(records, nil).Once()
	suite.mockFeedRepo.On("StoreRawTransaction", ctx, mock.Anything).Return(portsrepo.StoreInserted, nil).Once()
	suite.mockConnRepo.On("UpdateLastSyncedAt", ctx, conn.ConnectionID, mock.AnythingOfType("time.Time"), domain.SystemActor).Return(nil).Once()
	suite.mockCategorizer.On("CategorizeTransaction", ctx, mock.AnythingOfType("string"), domain.SystemActor).
		Return(nil, apperrors.NewInternalError("classifier offline", nil)).Once()

	result, err := suite.service.SyncConnection(ctx, conn.ConnectionID)

	suite.Require().NoError(err)
	suite.Equal(1, result.Inserted)
	suite.Equal(0, result.Categorized)
	suite.Require().NotNil(result.CheckpointMovedTo)
}

func (suite *IngestionServiceTestSuite) TestListUnreconciledTransactions_Passthrough() {
	ctx := context.Background()
	token := "next-page"
	txns := []domain.RawBankTransaction{{RawTxnID: "t1", Description: "x", Category: domain.CategoryUncategorized}}

	suite.mockFeedRepo.On("ListUnreconciled", ctx, "conn-1", 20, (*string)(nil)).Return(txns, &token, nil).Once()

	resp, err := suite.service.ListUnreconciledTransactions(ctx, dto.ListUnreconciledParams{ConnectionID: "conn-1", Limit: 20})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
}

func (suite *IngestionServiceTestSuite) TestSetReconciled_UpdatesAndReloads() {
	ctx := context.Background()
	rawTxnID := uuid.NewString()
	updated := &domain.RawBankTransaction{RawTxnID: rawTxnID, Reconciled: true}

	suite.mockFeedRepo.On("SetReconciled", ctx, rawTxnID, true, "user-3", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockFeedRepo.On("FindRawTransactionByID", ctx, rawTxnID).Return(updated, nil).Once()

	txn, err := suite.service.SetReconciled(ctx, rawTxnID, true, "user-3")

	suite.Require().NoError(err)
	suite.True(txn.Reconciled)
	suite.mockFeedRepo.AssertExpectations(suite.T())
}

func TestIngestionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IngestionServiceTestSuite))
}
