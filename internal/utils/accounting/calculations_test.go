package accounting_test

import (
	"testing"

	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/fxledger/fxledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func leg(voucher, account string, debit, credit int64) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:      "e-" + account,
		VoucherNo:    voucher,
		Account:      account,
		DebitAmount:  decimal.NewFromInt(debit),
		CreditAmount: decimal.NewFromInt(credit),
	}
}

func TestValidateVoucherBalance(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.JournalEntry
		wantErr string
	}{
		{
			name: "balanced two legs",
			entries: []domain.JournalEntry{
				leg("v1", "Accounts Payable", 8300, 0),
				leg("v1", "FX Clearing", 0, 8300),
			},
		},
		{
			name: "balanced four legs",
			entries: []domain.JournalEntry{
				leg("v2", "A", 100, 0),
				leg("v2", "B", 50, 0),
				leg("v2", "C", 0, 120),
				leg("v2", "D", 0, 30),
			},
		},
		{
			name: "single leg",
			entries: []domain.JournalEntry{
				leg("v3", "A", 100, 0),
			},
			wantErr: "at least two legs",
		},
		{
			name: "unbalanced",
			entries: []domain.JournalEntry{
				leg("v4", "A", 100, 0),
				leg("v4", "B", 0, 99),
			},
			wantErr: "does not balance",
		},
		{
			name: "mixed vouchers",
			entries: []domain.JournalEntry{
				leg("v5", "A", 100, 0),
				leg("v6", "B", 0, 100),
			},
			wantErr: "does not match voucher",
		},
		{
			name: "leg with both sides",
			entries: []domain.JournalEntry{
				{EntryID: "e1", VoucherNo: "v7", Account: "A", DebitAmount: decimal.NewFromInt(10), CreditAmount: decimal.NewFromInt(10)},
				leg("v7", "B", 0, 0),
			},
			wantErr: "invalid journal leg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := accounting.ValidateVoucherBalance(tt.entries)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSignedAmount(t *testing.T) {
	amt := decimal.NewFromInt(75)
	assert.True(t, accounting.SignedAmount(amt, domain.Debit).Equal(decimal.NewFromInt(75)))
	assert.True(t, accounting.SignedAmount(amt, domain.Credit).Equal(decimal.NewFromInt(-75)))
}

func TestRoundBase(t *testing.T) {
	assert.Equal(t, "8300.00", accounting.RoundBase(decimal.RequireFromString("8299.995")).StringFixed(2))
	assert.Equal(t, "12.34", accounting.RoundBase(decimal.RequireFromString("12.344")).StringFixed(2))
}

func TestRevaluePosition(t *testing.T) {
	// 100 USD booked at 83.00 → 8300; revalued at 85.00 → 8500; gain 200.
	pos := domain.OpenPosition{
		Account:       "Accounts Receivable",
		CurrencyCode:  "USD",
		OriginalTotal: decimal.NewFromInt(100),
		BookedBase:    decimal.NewFromInt(8300),
	}

	revalued := accounting.RevaluePosition(pos, decimal.NewFromInt(85))
	assert.True(t, revalued.CurrentValue.Equal(decimal.NewFromInt(8500)), "current value %s", revalued.CurrentValue)
	assert.True(t, revalued.GainLoss.Equal(decimal.NewFromInt(200)), "gain %s", revalued.GainLoss)

	// Rate moving down books a loss.
	down := accounting.RevaluePosition(pos, decimal.NewFromInt(80))
	assert.True(t, down.GainLoss.Equal(decimal.NewFromInt(-300)), "loss %s", down.GainLoss)
}
