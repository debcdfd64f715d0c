// Package money holds the VAT arithmetic shared by tasks and quotes.
// Everything is decimal; monetary results are rounded to 2 places.
package money

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)

	// DefaultVATRate is the rate applied when a task or quote enables VAT
	// without specifying one.
	DefaultVATRate = decimal.NewFromInt(20)
)

// VATAmount returns base * ratePercent / 100 at currency precision.
func VATAmount(base, ratePercent decimal.Decimal) decimal.Decimal {
	return base.Mul(ratePercent).Div(hundred).Round(2)
}

// TotalWithVAT returns base plus the VAT due on it.
func TotalWithVAT(base, ratePercent decimal.Decimal) decimal.Decimal {
	return base.Add(VATAmount(base, ratePercent))
}

// Derive computes the vatAmount/totalWithVAT pair for an amount. When hasVAT
// is false the total equals the amount exactly, with no rounding applied.
func Derive(amount decimal.Decimal, hasVAT bool, ratePercent decimal.Decimal) (vatAmount, totalWithVAT decimal.Decimal) {
	if !hasVAT {
		return decimal.Zero, amount
	}

	vatAmount = VATAmount(amount, ratePercent)

	return vatAmount, amount.Add(vatAmount)
}
