// Package domain contains presentation defaults for invoice rendering.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Settings is the single row of presentation preferences. NextNumber
// backs the invoice number sequence and is bumped inside the invoice
// creation transaction.
type Settings struct {
	ID snowflake.ID `gorm:"primaryKey" json:"id"`

	CurrencySymbol string  `gorm:"type:text;not null;default:'₹'" json:"currency_symbol"`
	DefaultTaxRate float64 `gorm:"not null;default:0" json:"default_tax_rate"`
	InvoicePrefix  string  `gorm:"type:text;not null;default:'INV'" json:"invoice_prefix"`
	TaxLabel       string  `gorm:"type:text;not null;default:'GST'" json:"tax_label"`
	ShowLogo       bool    `gorm:"not null;default:true" json:"show_logo"`

	// Display split of the invoice-level tax into two named components.
	// Policy, not arithmetic; defaults to equal SGST/CGST halves.
	SubTaxPrimary   string  `gorm:"type:text;not null;default:'SGST'" json:"sub_tax_primary"`
	SubTaxSecondary string  `gorm:"type:text;not null;default:'CGST'" json:"sub_tax_secondary"`
	SubTaxFraction  float64 `gorm:"not null;default:0.5" json:"sub_tax_fraction"`

	NextNumber int64 `gorm:"not null;default:1" json:"next_number"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Settings) TableName() string { return "settings" }
