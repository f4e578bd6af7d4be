package domain_test

import (
	"testing"
	"time"

	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionDraft_Validate(t *testing.T) {
	valid := domain.TransactionDraft{
		TxnDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Description:  "vendor invoice",
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "USD",
		TxnType:      domain.Debit,
		Account:      "Accounts Payable",
	}

	tests := []struct {
		name    string
		mutate  func(d *domain.TransactionDraft)
		wantErr string
	}{
		{
			name:   "valid draft",
			mutate: func(d *domain.TransactionDraft) {},
		},
		{
			name:    "zero amount",
			mutate:  func(d *domain.TransactionDraft) { d.Amount = decimal.Zero },
			wantErr: "amount must be positive",
		},
		{
			name:    "negative amount",
			mutate:  func(d *domain.TransactionDraft) { d.Amount = decimal.NewFromInt(-5) },
			wantErr: "amount must be positive",
		},
		{
			name:    "bad currency code",
			mutate:  func(d *domain.TransactionDraft) { d.CurrencyCode = "US" },
			wantErr: "currency code",
		},
		{
			name:    "unknown transaction type",
			mutate:  func(d *domain.TransactionDraft) { d.TxnType = "TRANSFER" },
			wantErr: "DEBIT or CREDIT",
		},
		{
			name:    "missing account",
			mutate:  func(d *domain.TransactionDraft) { d.Account = "" },
			wantErr: "account reference is required",
		},
		{
			name:    "missing date",
			mutate:  func(d *domain.TransactionDraft) { d.TxnDate = time.Time{} },
			wantErr: "transaction date is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := valid
			tt.mutate(&draft)
			err := draft.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestJournalEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		entry   domain.JournalEntry
		wantErr bool
	}{
		{
			name: "debit leg",
			entry: domain.JournalEntry{
				VoucherNo:   "v-1",
				Account:     "Cash",
				DebitAmount: decimal.NewFromInt(100),
			},
			wantErr: false,
		},
		{
			name: "credit leg",
			entry: domain.JournalEntry{
				VoucherNo:    "v-1",
				Account:      "Revenue",
				CreditAmount: decimal.NewFromInt(100),
			},
			wantErr: false,
		},
		{
			name: "both sides set",
			entry: domain.JournalEntry{
				VoucherNo:    "v-1",
				Account:      "Cash",
				DebitAmount:  decimal.NewFromInt(100),
				CreditAmount: decimal.NewFromInt(100),
			},
			wantErr: true,
		},
		{
			name: "neither side set",
			entry: domain.JournalEntry{
				VoucherNo: "v-1",
				Account:   "Cash",
			},
			wantErr: true,
		},
		{
			name: "negative amount",
			entry: domain.JournalEntry{
				VoucherNo:   "v-1",
				Account:     "Cash",
				DebitAmount: decimal.NewFromInt(-10),
			},
			wantErr: true,
		},
		{
			name: "missing voucher",
			entry: domain.JournalEntry{
				Account:     "Cash",
				DebitAmount: decimal.NewFromInt(10),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJournalEntry_Side(t *testing.T) {
	debit := domain.JournalEntry{DebitAmount: decimal.NewFromInt(5)}
	credit := domain.JournalEntry{CreditAmount: decimal.NewFromInt(5)}
	assert.Equal(t, domain.Debit, debit.Side())
	assert.Equal(t, domain.Credit, credit.Side())
}
