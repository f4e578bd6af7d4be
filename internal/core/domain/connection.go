package domain

import (
	"errors"
	"time"
)

// SyncInterval classifies how often a bank connection is synced.
type SyncInterval string

const (
	SyncRealtime SyncInterval = "REALTIME"
	SyncHourly   SyncInterval = "HOURLY"
	SyncDaily    SyncInterval = "DAILY"
)

// IsValid reports whether the interval is one of the known classes.
func (s SyncInterval) IsValid() bool {
	switch s {
	case SyncRealtime, SyncHourly, SyncDaily:
		return true
	}
	return false
}

// BankConnection represents a configured feed from one external bank or
// payment-gateway account. Connections are deactivated, never hard-deleted.
type BankConnection struct {
	ConnectionID     string       `json:"connectionID"`     // Primary Key (UUID)
	BankID           string       `json:"bankID"`           // Provider/institution identifier
	AccountNumber    string       `json:"accountNumber"`    // External account number
	AccountName      string       `json:"accountName"`      // Display name
	AccountType      string       `json:"accountType"`      // e.g. CURRENT, SAVINGS, GATEWAY
	CredentialHandle string       `json:"-"`                // Opaque handle to encrypted credentials
	SyncInterval     SyncInterval `json:"syncInterval"`     // REALTIME, HOURLY or DAILY
	IsActive         bool         `json:"isActive"`         // Deactivation flag
	LastSyncedAt     *time.Time   `json:"lastSyncedAt"`     // Checkpoint; nil before first full cycle
	AuditFields
}

// Validate checks the fields required to register a connection.
func (c *BankConnection) Validate() error {
	if c.BankID == "" {
		return errors.New("bank ID is required")
	}
	if c.AccountNumber == "" {
		return errors.New("account number is required")
	}
	if !c.SyncInterval.IsValid() {
		return errors.New("sync interval must be REALTIME, HOURLY or DAILY")
	}
	return nil
}
