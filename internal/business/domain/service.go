package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type UpdateBusinessRequest struct {
	Name           *string  `json:"name"`
	AddressLine1   *string  `json:"address_line1"`
	AddressLine2   *string  `json:"address_line2"`
	City           *string  `json:"city"`
	State          *string  `json:"state"`
	Pin            *string  `json:"pin"`
	Phone          *string  `json:"phone"`
	Email          *string  `json:"email"`
	TaxID          *string  `json:"tax_id"`
	CurrencySymbol *string  `json:"currency_symbol"`
	DefaultTaxRate *float64 `json:"default_tax_rate"`
	Logo           *string  `json:"logo"`
	Signature      *string  `json:"signature"`
}

type Service interface {
	Get(context.Context) (Business, error)
	Update(context.Context, UpdateBusinessRequest) (Business, error)
}

type Repository interface {
	FindFirst(ctx context.Context, db *gorm.DB) (*Business, error)
	Save(ctx context.Context, db *gorm.DB, business *Business) error
}

var (
	ErrNotFound    = errors.New("business_not_found")
	ErrInvalidName = errors.New("invalid_name")
)
