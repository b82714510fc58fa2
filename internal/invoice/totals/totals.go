// Package totals computes invoice totals from a draft's line items.
//
// Every function here is PURE:
// - No side effects
// - No I/O
// - Fully deterministic for a given input
//
// Totals are recomputed on every read; nothing in this package caches.
package totals

import "math"

// Line is one invoice row as entered in the editor. Zero values stand in
// for fields the user has not typed yet, so a partially filled row simply
// contributes nothing to the sum.
type Line struct {
	Quantity float64
	Price    float64
	Discount float64 // percent, applied to the line's gross amount
	TaxRate  float64 // percent, applied after the line discount
}

// Totals is the derived summary for an invoice. It is never persisted.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxableAmount  float64 `json:"taxable_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	RoundOff       float64 `json:"round_off"`
	Total          float64 `json:"total"`
}

// LineAmount returns the line's total after its own discount and tax are
// folded in. This is the figure shown in the items table's amount column.
func LineAmount(l Line) float64 {
	gross := l.Quantity * l.Price
	taxable := gross - gross*(l.Discount/100)
	return taxable + taxable*(l.TaxRate/100)
}

// Compute aggregates the lines and applies the invoice-level discount and
// tax, in that order. The final total is rounded to a whole unit and the
// signed remainder is reported as RoundOff (negative means the displayed
// total was rounded down).
//
// Percentages outside [0,100] are applied literally, never clamped: the
// engine mirrors its inputs and leaves validation to the write path.
// An empty line slice yields all-zero totals.
func Compute(lines []Line, taxRate, discount float64) Totals {
	var subtotal float64
	for _, l := range lines {
		subtotal += LineAmount(l)
	}

	discountAmount := subtotal * (discount / 100)
	taxableAmount := subtotal - discountAmount
	taxAmount := taxableAmount * (taxRate / 100)
	exact := taxableAmount + taxAmount
	total := math.Round(exact)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxableAmount:  taxableAmount,
		TaxAmount:      taxAmount,
		RoundOff:       total - exact,
		Total:          total,
	}
}
