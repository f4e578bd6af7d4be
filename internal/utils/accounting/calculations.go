package accounting

import (
	"fmt"

	"github.com/fxledger/fxledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BaseScale is the scale base-currency amounts are rounded to at posting
// and revaluation time.
const BaseScale = 2

// RoundBase rounds a base-currency amount to the ledger scale, half away
// from zero.
func RoundBase(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(BaseScale)
}

// ValidateVoucherBalance checks that the legs of one voucher are
// individually well-formed and that debits equal credits in total.
// This runs before any voucher commit; posting and revaluation both
// construct their legs balanced, so a failure here is an integrity bug.
func ValidateVoucherBalance(entries []domain.JournalEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("voucher must have at least two legs")
	}

	voucherNo := entries[0].VoucherNo
	debits := decimal.Zero
	credits := decimal.Zero

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("invalid journal leg for account %q: %w", e.Account, err)
		}
		if e.VoucherNo != voucherNo {
			return fmt.Errorf("leg voucher %q does not match voucher %q", e.VoucherNo, voucherNo)
		}
		debits = debits.Add(e.DebitAmount)
		credits = credits.Add(e.CreditAmount)
	}

	if !debits.Equal(credits) {
		return fmt.Errorf("voucher %s does not balance: debits %s, credits %s", voucherNo, debits.String(), credits.String())
	}
	return nil
}

// SignedAmount folds a transaction type onto an unsigned amount: debits are
// positive, credits negative. Used when netting postings into positions.
func SignedAmount(amount decimal.Decimal, txnType domain.TransactionType) decimal.Decimal {
	if txnType == domain.Credit {
		return amount.Neg()
	}
	return amount
}

// RevaluePosition prices an open position at the given rate. The gain/loss
// is the difference between the current value and the base value frozen at
// posting time, rounded to the ledger scale.
func RevaluePosition(pos domain.OpenPosition, currentRate decimal.Decimal) domain.RevaluedPosition {
	currentValue := RoundBase(pos.OriginalTotal.Mul(currentRate))
	return domain.RevaluedPosition{
		OpenPosition: pos,
		CurrentRate:  currentRate,
		CurrentValue: currentValue,
		GainLoss:     currentValue.Sub(pos.BookedBase),
	}
}
