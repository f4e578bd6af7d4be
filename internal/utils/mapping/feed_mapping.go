package mapping

import (
	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/fxledger/fxledger/internal/models"
)

// ToModelRawTransaction converts a domain RawBankTransaction to its model
func ToModelRawTransaction(d domain.RawBankTransaction) models.RawBankTransaction {
	return models.RawBankTransaction{
		RawTxnID:        d.RawTxnID,
		ConnectionID:    d.ConnectionID,
		ExternalID:      d.ExternalID,
		TxnDate:         d.TxnDate,
		Description:     d.Description,
		Amount:          d.Amount,
		TxnType:         string(d.TxnType),
		Balance:         d.Balance,
		ReferenceNumber: d.ReferenceNumber,
		Category:        d.Category,
		Confidence:      d.Confidence,
		Reconciled:      d.Reconciled,
		RawData:         d.RawData,
		AuditFields:     auditToModel(d.AuditFields),
	}
}

// ToDomainRawTransaction converts a model RawBankTransaction to its domain type
func ToDomainRawTransaction(m models.RawBankTransaction) domain.RawBankTransaction {
	return domain.RawBankTransaction{
		RawTxnID:        m.RawTxnID,
		ConnectionID:    m.ConnectionID,
		ExternalID:      m.ExternalID,
		TxnDate:         m.TxnDate,
		Description:     m.Description,
		Amount:          m.Amount,
		TxnType:         domain.TransactionType(m.TxnType),
		Balance:         m.Balance,
		ReferenceNumber: m.ReferenceNumber,
		Category:        m.Category,
		Confidence:      m.Confidence,
		Reconciled:      m.Reconciled,
		RawData:         m.RawData,
		AuditFields:     auditToDomain(m.AuditFields),
	}
}
