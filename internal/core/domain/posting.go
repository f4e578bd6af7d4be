package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// IsValid reports whether the type is DEBIT or CREDIT.
func (t TransactionType) IsValid() bool {
	return t == Debit || t == Credit
}

// MultiCurrencyTransaction is a posted foreign-currency transaction with its
// base-currency value frozen at posting time. Rows are immutable: later rate
// changes never touch them; adjustments come from revaluation vouchers.
type MultiCurrencyTransaction struct {
	MctID           string          `json:"mctID"`           // Primary Key (UUID)
	TxnDate         time.Time       `json:"txnDate"`         // Date the transaction occurred
	Description     string          `json:"description"`     // Nullable
	Amount          decimal.Decimal `json:"amount"`          // Original-currency amount, positive
	CurrencyCode    string          `json:"currencyCode"`    // Original currency
	BaseAmount      decimal.Decimal `json:"baseAmount"`      // Frozen base-currency value
	RateUsed        decimal.Decimal `json:"rateUsed"`        // Rate applied at posting
	TxnType         TransactionType `json:"txnType"`         // DEBIT or CREDIT
	Account         string          `json:"account"`         // Free-form account reference
	ReferenceNumber string          `json:"referenceNumber"` // Nullable
	AuditFields
}

// TransactionDraft is the caller-supplied input to the ledger poster.
type TransactionDraft struct {
	TxnDate         time.Time       `json:"txnDate"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	TxnType         TransactionType `json:"txnType"`
	Account         string          `json:"account"`
	ReferenceNumber string          `json:"referenceNumber"`
	SourceRawTxnID  *string         `json:"sourceRawTxnID"` // Set when posting a staged feed transaction
}

// Validate checks the draft before conversion and posting.
func (d *TransactionDraft) Validate() error {
	if d.Amount.IsNegative() || d.Amount.IsZero() {
		return errors.New("amount must be positive")
	}
	if len(d.CurrencyCode) != 3 {
		return errors.New("currency code must be a 3-letter ISO code")
	}
	if !d.TxnType.IsValid() {
		return errors.New("transaction type must be DEBIT or CREDIT")
	}
	if d.Account == "" {
		return errors.New("account reference is required")
	}
	if d.TxnDate.IsZero() {
		return errors.New("transaction date is required")
	}
	return nil
}

// PostingResult reports the outcome of a successful posting.
type PostingResult struct {
	TransactionID string          `json:"transactionID"`
	VoucherNo     string          `json:"voucherNo"`
	BaseAmount    decimal.Decimal `json:"baseAmount"`
	RateUsed      decimal.Decimal `json:"rateUsed"`
}
