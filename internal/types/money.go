// README: Common money value object and rounding policy used across modules.
package types

import "github.com/shopspring/decimal"

const (
	CurrencyPHP = "PHP"
	SymbolPHP   = "₱"
)

type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// RoundMoney rounds v to two decimal places, half to even.
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).RoundBank(2).InexactFloat64()
}
