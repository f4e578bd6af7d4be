package mapping

import (
	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/fxledger/fxledger/internal/models"
)

// ToModelConnection converts a domain BankConnection to a model BankConnection
func ToModelConnection(d domain.BankConnection) models.BankConnection {
	return models.BankConnection{
		ConnectionID:     d.ConnectionID,
		BankID:           d.BankID,
		AccountNumber:    d.AccountNumber,
		AccountName:      d.AccountName,
		AccountType:      d.AccountType,
		CredentialHandle: d.CredentialHandle,
		SyncInterval:     string(d.SyncInterval),
		IsActive:         d.IsActive,
		LastSyncedAt:     d.LastSyncedAt,
		AuditFields:      auditToModel(d.AuditFields),
	}
}

// ToDomainConnection converts a model BankConnection to a domain BankConnection
func ToDomainConnection(m models.BankConnection) domain.BankConnection {
	return domain.BankConnection{
		ConnectionID:     m.ConnectionID,
		BankID:           m.BankID,
		AccountNumber:    m.AccountNumber,
		AccountName:      m.AccountName,
		AccountType:      m.AccountType,
		CredentialHandle: m.CredentialHandle,
		SyncInterval:     domain.SyncInterval(m.SyncInterval),
		IsActive:         m.IsActive,
		LastSyncedAt:     m.LastSyncedAt,
		AuditFields:      auditToDomain(m.AuditFields),
	}
}
