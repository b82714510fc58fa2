// Package render lays out an invoice into a paginated PDF document.
package render

import (
	"time"

	"github.com/invobook/invobook/internal/invoice/totals"
)

// Input is the deterministic snapshot an invoice is rendered from. The
// renderer only reads it; the draft being edited is never touched.
type Input struct {
	Invoice  InvoiceView
	Business BusinessView
	Settings SettingsView
	Lines    []LineView
	Totals   totals.Totals
}

type InvoiceView struct {
	Number        string
	Date          time.Time
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	// CustomerAddress is the denormalized snapshot taken at invoice time,
	// word-wrapped into the bill-to column.
	CustomerAddress string
	PlaceOfSupply   string
	Notes           string
	TaxRate         float64
	Discount        float64
}

type BusinessView struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Pin          string
	Phone        string
	Email        string
	TaxID        string
	// Logo and Signature are opaque base64-encoded raster images. A blob
	// that fails to decode is logged and skipped, never fatal.
	Logo      string
	Signature string
}

type SettingsView struct {
	CurrencySymbol string
	TaxLabel       string
	ShowLogo       bool
	Split          TaxSplit
}

// TaxSplit divides the single invoice-level tax into two named components
// for display. This is policy, not arithmetic: the underlying tax amount
// stays whatever the totals engine computed.
type TaxSplit struct {
	PrimaryName   string
	SecondaryName string
	Fraction      float64 // share assigned to the primary component
}

// DefaultTaxSplit is the two-component GST convention: equal SGST/CGST halves.
func DefaultTaxSplit() TaxSplit {
	return TaxSplit{PrimaryName: "SGST", SecondaryName: "CGST", Fraction: 0.5}
}

func (s TaxSplit) withDefaults() TaxSplit {
	if s.PrimaryName == "" && s.SecondaryName == "" {
		return DefaultTaxSplit()
	}
	if s.Fraction <= 0 || s.Fraction >= 1 {
		s.Fraction = 0.5
	}
	return s
}

type LineView struct {
	Name     string
	Quantity float64
	Unit     string
	Price    float64
	Discount float64
	TaxRate  float64
	Amount   float64
}
