package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatMoney formats a decimal amount in the given ISO-4217 currency,
// using the currency's own fraction and symbol conventions.
func FormatMoney(v decimal.Decimal, code string) string {
	// The money.New constructor is the one way to get a never-nil currency.
	cur := money.New(0, code).Currency()
	minor := v.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
