// Package domain contains persistence models and contracts for invoicing.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice is one issued (or draft) invoice. Customer fields are a
// denormalized snapshot taken at invoice time: later edits to the
// Customer record never change a past invoice.
type Invoice struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceNumber string       `gorm:"type:text;not null;index" json:"invoice_number"`
	Date          time.Time    `gorm:"not null" json:"date"`

	CustomerID      *snowflake.ID `gorm:"index" json:"customer_id,omitempty"`
	CustomerName    string        `gorm:"type:text;not null" json:"customer_name"`
	CustomerEmail   string        `gorm:"type:text" json:"customer_email"`
	CustomerPhone   string        `gorm:"type:text" json:"customer_phone"`
	CustomerAddress string        `gorm:"type:text" json:"customer_address"`
	PlaceOfSupply   string        `gorm:"type:text" json:"place_of_supply"`

	// Invoice-level percentages, applied after per-item aggregation.
	TaxRate  float64 `gorm:"not null;default:0" json:"tax_rate"`
	Discount float64 `gorm:"not null;default:0" json:"discount"`

	Notes    string            `gorm:"type:text" json:"notes"`
	Status   InvoiceStatus     `gorm:"type:text;not null;default:'draft'" json:"status"`
	Metadata datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`

	// Ordered by Position; the sequence is the display order.
	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Invoice) TableName() string { return "invoices" }

// InvoiceItem is one line of an invoice.
type InvoiceItem struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID snowflake.ID `gorm:"not null;index" json:"invoice_id"`
	Position  int          `gorm:"not null" json:"position"`

	Name     string  `gorm:"type:text;not null" json:"name"`
	Quantity float64 `gorm:"not null;default:0" json:"quantity"`
	Unit     string  `gorm:"type:text;not null;default:'PCS'" json:"unit"`
	Price    float64 `gorm:"not null;default:0" json:"price"`
	Discount float64 `gorm:"not null;default:0" json:"discount"`
	TaxRate  float64 `gorm:"not null;default:0" json:"tax_rate"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (InvoiceItem) TableName() string { return "invoice_items" }
