package dto

import (
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostTransactionRequest defines the draft a caller submits for posting.
// The amount stays in the original currency; conversion happens server-side
// and the rate used is frozen into the posted row.
type PostTransactionRequest struct {
	Date            time.Time              `json:"date" binding:"required"`
	Description     string                 `json:"description" binding:"required"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	CurrencyCode    string                 `json:"currencyCode" binding:"required,currency"`
	Type            domain.TransactionType `json:"type" binding:"required,oneof=DEBIT CREDIT"`
	Account         string                 `json:"account" binding:"required"`
	ReferenceNumber string                 `json:"referenceNumber"`
	SourceRawTxnID  *string                `json:"sourceRawTxnID"` // Optional back-reference to a staged feed record
}

// PostingResultResponse is returned after a successful posting.
type PostingResultResponse struct {
	TransactionID string          `json:"transactionID"`
	VoucherNo     string          `json:"voucherNo"`
	BaseAmount    decimal.Decimal `json:"baseAmount"`
	RateUsed      decimal.Decimal `json:"rateUsed"`
}

// TransactionResponse defines the data returned for a posted transaction.
type TransactionResponse struct {
	MctID           string          `json:"mctID"`
	TxnDate         time.Time       `json:"txnDate"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	CurrencyCode    string          `json:"currencyCode"`
	BaseAmount      decimal.Decimal `json:"baseAmount"`
	RateUsed        decimal.Decimal `json:"rateUsed"`
	Type            string          `json:"type"`
	Account         string          `json:"account"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// JournalEntryResponse defines the data returned for one journal leg.
type JournalEntryResponse struct {
	EntryID       string          `json:"entryID"`
	VoucherNo     string          `json:"voucherNo"`
	EntryDate     time.Time       `json:"entryDate"`
	Description   string          `json:"description"`
	Account       string          `json:"account"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	SourceMctID   *string         `json:"sourceMctID,omitempty"`
	RevaluationID *string         `json:"revaluationID,omitempty"`
}

// GetPostingResponse combines a posted transaction with its journal legs.
type GetPostingResponse struct {
	Transaction TransactionResponse    `json:"transaction"`
	Entries     []JournalEntryResponse `json:"entries"`
}

// ListPostingsParams defines query parameters for listing postings.
type ListPostingsParams struct {
	From         time.Time `form:"from" time_format:"2006-01-02"`
	To           time.Time `form:"to" time_format:"2006-01-02"`
	CurrencyCode string    `form:"currencyCode" binding:"omitempty,currency"`
	Limit        int       `form:"limit,default=20"`
	NextToken    *string   `form:"nextToken"`
}

// ListPostingsResponse is a page of posted transactions plus the token for
// the next page, if any.
type ListPostingsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToPostingResultResponse converts a domain.PostingResult to its DTO.
func ToPostingResultResponse(res *domain.PostingResult) PostingResultResponse {
	return PostingResultResponse{
		TransactionID: res.TransactionID,
		VoucherNo:     res.VoucherNo,
		BaseAmount:    res.BaseAmount,
		RateUsed:      res.RateUsed,
	}
}

// ToTransactionResponse converts a domain.MultiCurrencyTransaction to its DTO.
func ToTransactionResponse(txn *domain.MultiCurrencyTransaction) TransactionResponse {
	return TransactionResponse{
		MctID:           txn.MctID,
		TxnDate:         txn.TxnDate,
		Description:     txn.Description,
		Amount:          txn.Amount,
		CurrencyCode:    txn.CurrencyCode,
		BaseAmount:      txn.BaseAmount,
		RateUsed:        txn.RateUsed,
		Type:            string(txn.TxnType),
		Account:         txn.Account,
		ReferenceNumber: txn.ReferenceNumber,
		CreatedAt:       txn.CreatedAt,
		CreatedBy:       txn.CreatedBy,
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:       entry.EntryID,
		VoucherNo:     entry.VoucherNo,
		EntryDate:     entry.EntryDate,
		Description:   entry.Description,
		Account:       entry.Account,
		DebitAmount:   entry.DebitAmount,
		CreditAmount:  entry.CreditAmount,
		SourceMctID:   entry.SourceMctID,
		RevaluationID: entry.RevaluationID,
	}
}

// ToJournalEntryResponses converts a slice of journal legs.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = ToJournalEntryResponse(&entry)
	}
	return responses
}

// ToListPostingsResponse converts a page of posted transactions.
func ToListPostingsResponse(txns []domain.MultiCurrencyTransaction, nextToken *string) *ListPostingsResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return &ListPostingsResponse{Transactions: responses, NextToken: nextToken}
}
