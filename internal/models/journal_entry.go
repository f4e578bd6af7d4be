package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry mirrors the journal_entries table: one voucher leg.
type JournalEntry struct {
	EntryID       string          `json:"entryID"`
	VoucherNo     string          `json:"voucherNo"`
	EntryDate     time.Time       `json:"entryDate"`
	Description   string          `json:"description"`
	Account       string          `json:"account"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	SourceMctID   *string         `json:"sourceMctID"`
	RevaluationID *string         `json:"revaluationID"`
	AuditFields
}
