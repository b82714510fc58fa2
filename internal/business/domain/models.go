// Package domain contains the seller profile model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Business is the seller identity printed on every invoice. A deployment
// has exactly one row.
type Business struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"type:text;not null" json:"name"`
	AddressLine1 string       `gorm:"type:text" json:"address_line1"`
	AddressLine2 string       `gorm:"type:text" json:"address_line2"`
	City         string       `gorm:"type:text" json:"city"`
	State        string       `gorm:"type:text" json:"state"`
	Pin          string       `gorm:"type:text" json:"pin"`
	Phone        string       `gorm:"type:text" json:"phone"`
	Email        string       `gorm:"type:text" json:"email"`
	TaxID        string       `gorm:"column:tax_id;type:text" json:"tax_id"`

	CurrencySymbol string  `gorm:"type:text;not null;default:'₹'" json:"currency_symbol"`
	DefaultTaxRate float64 `gorm:"not null;default:0" json:"default_tax_rate"`

	// Opaque base64-encoded raster images; nullable.
	Logo      *string `gorm:"type:text" json:"logo,omitempty"`
	Signature *string `gorm:"type:text" json:"signature,omitempty"`

	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Business) TableName() string { return "business_profiles" }
