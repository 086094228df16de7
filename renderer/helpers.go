package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatAmount formats a quantity in the given currency for display, using
// the currency's conventional symbol and grouping when it is a known ISO
// code. Unknown commodities fall back to the exact decimal followed by the
// code. Display only: the exact value lives in the decimal.
func FormatAmount(quantity decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		if currency == "" {
			return quantity.String()
		}
		return quantity.String() + " " + currency
	}
	minor := quantity.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
