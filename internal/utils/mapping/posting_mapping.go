package mapping

import (
	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/fxledger/fxledger/internal/models"
)

// ToModelMct converts a domain MultiCurrencyTransaction to its model
func ToModelMct(d domain.MultiCurrencyTransaction) models.MultiCurrencyTransaction {
	return models.MultiCurrencyTransaction{
		MctID:           d.MctID,
		TxnDate:         d.TxnDate,
		Description:     d.Description,
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		BaseAmount:      d.BaseAmount,
		RateUsed:        d.RateUsed,
		TxnType:         string(d.TxnType),
		Account:         d.Account,
		ReferenceNumber: d.ReferenceNumber,
		AuditFields:     auditToModel(d.AuditFields),
	}
}

// ToDomainMct converts a model MultiCurrencyTransaction to its domain type
func ToDomainMct(m models.MultiCurrencyTransaction) domain.MultiCurrencyTransaction {
	return domain.MultiCurrencyTransaction{
		MctID:           m.MctID,
		TxnDate:         m.TxnDate,
		Description:     m.Description,
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		BaseAmount:      m.BaseAmount,
		RateUsed:        m.RateUsed,
		TxnType:         domain.TransactionType(m.TxnType),
		Account:         m.Account,
		ReferenceNumber: m.ReferenceNumber,
		AuditFields:     auditToDomain(m.AuditFields),
	}
}

// ToModelJournalEntry converts a domain JournalEntry to its model
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:       d.EntryID,
		VoucherNo:     d.VoucherNo,
		EntryDate:     d.EntryDate,
		Description:   d.Description,
		Account:       d.Account,
		DebitAmount:   d.DebitAmount,
		CreditAmount:  d.CreditAmount,
		SourceMctID:   d.SourceMctID,
		RevaluationID: d.RevaluationID,
		AuditFields:   auditToModel(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to its domain type
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:       m.EntryID,
		VoucherNo:     m.VoucherNo,
		EntryDate:     m.EntryDate,
		Description:   m.Description,
		Account:       m.Account,
		DebitAmount:   m.DebitAmount,
		CreditAmount:  m.CreditAmount,
		SourceMctID:   m.SourceMctID,
		RevaluationID: m.RevaluationID,
		AuditFields:   auditToDomain(m.AuditFields),
	}
}
