package domain

import (
	"github.com/shopspring/decimal"
)

// Rate is a quote for one unit of a foreign currency in the base currency,
// as returned by the external rate provider.
type Rate struct {
	CurrencyCode string          `json:"currencyCode"`
	CurrencyName string          `json:"currencyName"` // e.g. "dolar amerykański"
	Mid          decimal.Decimal `json:"mid"`          // Mid rate in PLN per unit
}
