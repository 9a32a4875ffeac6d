package money

import "github.com/shopspring/decimal"

// Line is the minimal shape the calculator needs from a cart or sale line item.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Totals holds the computed monetary totals for a set of line items.
// Values are kept at full precision; rounding happens only at display
// (Format) or storage (ToCents) time so per-line rounding errors never
// compound across a large cart.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

var oneHundred = decimal.NewFromInt(100)

// ComputeTotals computes subtotal, tax and total for the given lines.
// taxRate is a percentage (8.25 means 8.25%). When taxExempt is true the
// tax is forced to zero regardless of the configured rate.
func ComputeTotals(lines []Line, taxRate decimal.Decimal, taxExempt bool) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		qty := decimal.NewFromInt(int64(ClampQuantity(l.Quantity)))
		subtotal = subtotal.Add(l.UnitPrice.Mul(qty))
	}

	tax := decimal.Zero
	if !taxExempt {
		tax = subtotal.Mul(taxRate).Div(oneHundred)
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// ClampQuantity enforces the minimum quantity of 1. Requests to set a
// quantity at or below zero are clamped, not rejected.
func ClampQuantity(qty int) int {
	if qty < 1 {
		return 1
	}
	return qty
}

// FromCents converts a cents-denominated integer (the storage format) to
// a decimal currency amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(oneHundred)
}

// ToCents converts a decimal currency amount to cents, rounding to the
// nearest cent.
func ToCents(d decimal.Decimal) int64 {
	return d.Mul(oneHundred).Round(0).IntPart()
}

// Format renders an amount with two decimal places for display.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
