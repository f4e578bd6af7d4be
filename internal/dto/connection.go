package dto

import (
	"encoding/json"
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
)

// CreateConnectionRequest defines the data needed to register a bank feed.
// Credentials arrive as the raw JSON the gateway expects; the service seals
// them and only an opaque handle is ever stored.
type CreateConnectionRequest struct {
	BankID        string              `json:"bankID" binding:"required"`
	AccountNumber string              `json:"accountNumber" binding:"required"`
	AccountName   string              `json:"accountName"`
	AccountType   string              `json:"accountType"` // e.g. CURRENT, SAVINGS, GATEWAY
	SyncInterval  domain.SyncInterval `json:"syncInterval" binding:"required,oneof=REALTIME HOURLY DAILY"`
	Credentials   json.RawMessage     `json:"credentials" binding:"required"`
}

// ConnectionResponse defines the data returned for a connection. The
// credential handle never leaves the service layer.
type ConnectionResponse struct {
	ConnectionID  string              `json:"connectionID"`
	BankID        string              `json:"bankID"`
	AccountNumber string              `json:"accountNumber"`
	AccountName   string              `json:"accountName"`
	AccountType   string              `json:"accountType"`
	SyncInterval  domain.SyncInterval `json:"syncInterval"`
	IsActive      bool                `json:"isActive"`
	LastSyncedAt  *time.Time          `json:"lastSyncedAt"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy string              `json:"lastUpdatedBy"`
}

// ListConnectionsParams defines query parameters for listing connections.
type ListConnectionsParams struct {
	OnlyActive bool `form:"onlyActive,default=false"`
}

// ToConnectionResponse converts a domain.BankConnection to ConnectionResponse DTO.
func ToConnectionResponse(conn *domain.BankConnection) ConnectionResponse {
	return ConnectionResponse{
		ConnectionID:  conn.ConnectionID,
		BankID:        conn.BankID,
		AccountNumber: conn.AccountNumber,
		AccountName:   conn.AccountName,
		AccountType:   conn.AccountType,
		SyncInterval:  conn.SyncInterval,
		IsActive:      conn.IsActive,
		LastSyncedAt:  conn.LastSyncedAt,
		CreatedAt:     conn.CreatedAt,
		CreatedBy:     conn.CreatedBy,
		LastUpdatedAt: conn.LastUpdatedAt,
		LastUpdatedBy: conn.LastUpdatedBy,
	}
}

// ToListConnectionResponse converts a slice of domain.BankConnection to response DTOs.
func ToListConnectionResponse(conns []domain.BankConnection) []ConnectionResponse {
	res := make([]ConnectionResponse, len(conns))
	for i, conn := range conns {
		res[i] = ToConnectionResponse(&conn)
	}
	return res
}
