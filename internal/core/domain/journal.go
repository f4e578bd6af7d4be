package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a single leg of a balanced voucher. Exactly one of
// DebitAmount/CreditAmount is non-zero; across a voucher_no the debit and
// credit totals must match.
type JournalEntry struct {
	EntryID       string          `json:"entryID"`       // Primary Key (UUID)
	VoucherNo     string          `json:"voucherNo"`     // Groups the legs of one posting
	EntryDate     time.Time       `json:"entryDate"`     // Date of the underlying event
	Description   string          `json:"description"`   // Nullable
	Account       string          `json:"account"`       // Free-form account reference
	DebitAmount   decimal.Decimal `json:"debitAmount"`   // Zero on credit legs
	CreditAmount  decimal.Decimal `json:"creditAmount"`  // Zero on debit legs
	SourceMctID   *string         `json:"sourceMctID"`   // FK -> MultiCurrencyTransaction for posting legs
	RevaluationID *string         `json:"revaluationID"` // FK -> RevaluationRun for adjustment legs
	AuditFields
}

// Validate checks the one-sided-leg invariant.
func (e *JournalEntry) Validate() error {
	if e.VoucherNo == "" {
		return errors.New("voucher number is required")
	}
	if e.Account == "" {
		return errors.New("account reference is required")
	}
	if e.DebitAmount.IsNegative() || e.CreditAmount.IsNegative() {
		return errors.New("leg amounts must not be negative")
	}
	debitSet := !e.DebitAmount.IsZero()
	creditSet := !e.CreditAmount.IsZero()
	if debitSet == creditSet {
		return errors.New("exactly one of debit amount and credit amount must be non-zero")
	}
	return nil
}

// Side returns the leg's transaction type.
func (e *JournalEntry) Side() TransactionType {
	if !e.DebitAmount.IsZero() {
		return Debit
	}
	return Credit
}
