package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Product is a reusable catalog entry for invoice line items.
type Product struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"not null" json:"name"`
	Code        string            `gorm:"uniqueIndex;not null" json:"code"`
	Description string            `gorm:"type:text" json:"description"`
	Price       float64           `gorm:"not null;default:0" json:"price"`
	Unit        string            `gorm:"type:varchar(16);not null;default:'PCS'" json:"unit"`
	TaxRate     float64           `gorm:"not null;default:0" json:"tax_rate"`
	Active      bool              `gorm:"not null;default:true" json:"active"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
