package utils

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount for display with the currency's symbol and
// minor-unit grammar (e.g. ₹1,234.50, $12.35, ¥1200). Unknown codes fall
// back to a plain "CODE 12.34" rendering so reports never break on exotic
// currencies.
func FormatAmount(amount decimal.Decimal, currencyCode string) string {
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		return currencyCode + " " + amount.StringFixed(2)
	}
	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	minor := amount.Mul(factor).Round(0)
	return money.New(minor.IntPart(), currencyCode).Display()
}
