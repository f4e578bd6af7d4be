package models

import "time"

// BankConnection mirrors the bank_connections table.
type BankConnection struct {
	ConnectionID     string     `json:"connectionID"`
	BankID           string     `json:"bankID"`
	AccountNumber    string     `json:"accountNumber"`
	AccountName      string     `json:"accountName"`
	AccountType      string     `json:"accountType"`
	CredentialHandle string     `json:"-"`
	SyncInterval     string     `json:"syncInterval"`
	IsActive         bool       `json:"isActive"`
	LastSyncedAt     *time.Time `json:"lastSyncedAt"`
	AuditFields
}
