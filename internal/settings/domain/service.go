package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type UpdateSettingsRequest struct {
	CurrencySymbol  *string  `json:"currency_symbol"`
	DefaultTaxRate  *float64 `json:"default_tax_rate"`
	InvoicePrefix   *string  `json:"invoice_prefix"`
	TaxLabel        *string  `json:"tax_label"`
	ShowLogo        *bool    `json:"show_logo"`
	SubTaxPrimary   *string  `json:"sub_tax_primary"`
	SubTaxSecondary *string  `json:"sub_tax_secondary"`
	SubTaxFraction  *float64 `json:"sub_tax_fraction"`
}

type Service interface {
	Get(context.Context) (Settings, error)
	Update(context.Context, UpdateSettingsRequest) (Settings, error)
	// NextInvoiceNumber returns the current sequence value and advances
	// it, inside the supplied transaction.
	NextInvoiceNumber(ctx context.Context, tx *gorm.DB) (int64, error)
}

type Repository interface {
	FindFirst(ctx context.Context, db *gorm.DB) (*Settings, error)
	Save(ctx context.Context, db *gorm.DB, settings *Settings) error
}

var (
	ErrNotFound        = errors.New("settings_not_found")
	ErrInvalidFraction = errors.New("invalid_sub_tax_fraction")
)
