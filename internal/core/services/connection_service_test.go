package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fxledger/fxledger/internal/apperrors"
	"github.com/fxledger/fxledger/internal/core/domain"
	portssvc "github.com/fxledger/fxledger/internal/core/ports/services"
	"github.com/fxledger/fxledger/internal/core/services"
	"github.com/fxledger/fxledger/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ConnectionRepository ---
type MockConnectionRepository struct {
	mock.Mock
}

func (m *MockConnectionRepository) SaveConnection(ctx context.Context, conn domain.BankConnection) error {
	args := m.Called(ctx, conn)
	return args.Error(0)
}

func (m *MockConnectionRepository) FindConnectionByID(ctx context.Context, connectionID string) (*domain.BankConnection, error) {
	args := m.Called(ctx, connectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankConnection), args.Error(1)
}

func (m *MockConnectionRepository) ListConnections(ctx context.Context, onlyActive bool) ([]domain.BankConnection, error) {
	args := m.Called(ctx, onlyActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankConnection), args.Error(1)
}

func (m *MockConnectionRepository) DeactivateConnection(ctx context.Context, connectionID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, connectionID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockConnectionRepository) UpdateLastSyncedAt(ctx context.Context, connectionID string, syncedAt time.Time, updatedBy string) error {
	args := m.Called(ctx, connectionID, syncedAt, updatedBy)
	return args.Error(0)
}

// --- Mock SecretStore ---
type MockSecretStore struct {
	mock.Mock
}

func (m *MockSecretStore) Seal(ctx context.Context, plaintext []byte) (string, error) {
	args := m.Called(ctx, plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockSecretStore) Open(ctx context.Context, handle string) ([]byte, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// --- Test Suite ---
type ConnectionServiceTestSuite struct {
	suite.Suite
	mockConnRepo *MockConnectionRepository
	mockSecrets  *MockSecretStore
	service      portssvc.ConnectionSvcFacade
}

func (suite *ConnectionServiceTestSuite) SetupTest() {
	suite.mockConnRepo = new(MockConnectionRepository)
	suite.mockSecrets = new(MockSecretStore)
	suite.service = services.NewConnectionService(suite.mockConnRepo, suite.mockSecrets)
}

func validCreateConnectionRequest() dto.CreateConnectionRequest {
	return dto.CreateConnectionRequest{
		BankID:        "hdfc",
		AccountNumber: "0042810923",
		AccountName:   "Operating Account",
		AccountType:   "CURRENT",
		SyncInterval:  domain.SyncHourly,
		Credentials:   json.RawMessage(`{"clientId":"abc","clientSecret":"xyz","tokenUrl":"https://bank/oauth/token","apiUrl":"https://bank/api"}`),
	}
}

func (suite *ConnectionServiceTestSuite) TestCreateConnection_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := validCreateConnectionRequest()

	suite.mockSecrets.On("Seal", ctx, []byte(req.Credentials)).Return("sealed-handle", nil).Once()
	suite.mockConnRepo.On("SaveConnection", ctx, mock.MatchedBy(func(conn domain.BankConnection) bool {
		return conn.BankID == req.BankID &&
			conn.AccountNumber == req.AccountNumber &&
			conn.CredentialHandle == "sealed-handle" &&
			conn.SyncInterval == domain.SyncHourly &&
			conn.IsActive &&
			conn.LastSyncedAt == nil &&
			conn.CreatedBy == creatorUserID
	})).Return(nil).Once()

	conn, err := suite.service.CreateConnection(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(conn)
	suite.NotEmpty(conn.ConnectionID)
	suite.Equal("sealed-handle", conn.CredentialHandle)
	suite.True(conn.IsActive)
	suite.mockSecrets.AssertExpectations(suite.T())
	suite.mockConnRepo.AssertExpectations(suite.T())
}

func (suite *ConnectionServiceTestSuite) TestCreateConnection_InvalidCredentialJSON() {
	ctx := context.Background()
	req := validCreateConnectionRequest()
	req.Credentials = json.RawMessage(`{"clientId":`)

	conn, err := suite.service.CreateConnection(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(conn)
	suite.mockSecrets.AssertNotCalled(suite.T(), "Seal", mock.Anything, mock.Anything)
	suite.mockConnRepo.AssertNotCalled(suite.T(), "SaveConnection", mock.Anything, mock.Anything)
}

func (suite *ConnectionServiceTestSuite) TestCreateConnection_SealFailure() {
	ctx := context.Background()
	req := validCreateConnectionRequest()

	suite.mockSecrets.On("Seal", ctx, []byte(req.Credentials)).Return("", errors.New("keyring offline")).Once()

	conn, err := suite.service.CreateConnection(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(conn)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(500, appErr.Code)
	suite.mockConnRepo.AssertNotCalled(suite.T(), "SaveConnection", mock.Anything, mock.Anything)
}

func (suite *ConnectionServiceTestSuite) TestCreateConnection_SaveDuplicate() {
	ctx := context.Background()
	req := validCreateConnectionRequest()

	suite.mockSecrets.On("Seal", ctx, mock.Anything).Return("sealed-handle", nil).Once()
	suite.mockConnRepo.On("SaveConnection", ctx, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	conn, err := suite.service.CreateConnection(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(conn)
}

func (suite *ConnectionServiceTestSuite) TestGetConnectionByID_NotFound() {
	ctx := context.Background()
	connectionID := uuid.NewString()

	suite.mockConnRepo.On("FindConnectionByID", ctx, connectionID).Return(nil, apperrors.ErrNotFound).Once()

	conn, err := suite.service.GetConnectionByID(ctx, connectionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(conn)
}

func (suite *ConnectionServiceTestSuite) TestListConnections_OnlyActivePassedThrough() {
	ctx := context.Background()
	expected := []domain.BankConnection{
		{ConnectionID: uuid.NewString(), BankID: "hdfc", IsActive: true},
	}

	suite.mockConnRepo.On("ListConnections", ctx, true).Return(expected, nil).Once()

	conns, err := suite.service.ListConnections(ctx, true)

	suite.Require().NoError(err)
	suite.Equal(expected, conns)
	suite.mockConnRepo.AssertExpectations(suite.T())
}

func (suite *ConnectionServiceTestSuite) TestDeactivateConnection_Success() {
	ctx := context.Background()
	connectionID := uuid.NewString()

	suite.mockConnRepo.On("DeactivateConnection", ctx, connectionID, "user-7", mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateConnection(ctx, connectionID, "user-7")

	suite.Require().NoError(err)
	suite.mockConnRepo.AssertExpectations(suite.T())
}

func TestConnectionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConnectionServiceTestSuite))
}
