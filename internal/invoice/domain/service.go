package domain

import (
	"context"
	"errors"
	"time"

	"github.com/invobook/invobook/internal/invoice/generate"
	"github.com/invobook/invobook/internal/invoice/render"
	"github.com/invobook/invobook/internal/invoice/totals"
	"github.com/invobook/invobook/pkg/db/pagination"
)

// ItemInput is one line as submitted by the editor.
type ItemInput struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount"`
	TaxRate  float64 `json:"tax_rate"`
}

type CreateInvoiceRequest struct {
	CustomerID      string      `json:"customer_id"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerAddress string      `json:"customer_address"`
	PlaceOfSupply   string      `json:"place_of_supply"`
	Date            *time.Time  `json:"date"`
	Items           []ItemInput `json:"items"`
	TaxRate         *float64    `json:"tax_rate"`
	Discount        float64     `json:"discount"`
	Notes           string      `json:"notes"`
}

type UpdateInvoiceRequest struct {
	ID              string      `json:"-"`
	CustomerName    *string     `json:"customer_name"`
	CustomerEmail   *string     `json:"customer_email"`
	CustomerPhone   *string     `json:"customer_phone"`
	CustomerAddress *string     `json:"customer_address"`
	PlaceOfSupply   *string     `json:"place_of_supply"`
	Date            *time.Time  `json:"date"`
	Items           []ItemInput `json:"items"`
	TaxRate         *float64    `json:"tax_rate"`
	Discount        *float64    `json:"discount"`
	Notes           *string     `json:"notes"`
	Status          *string     `json:"status"`
}

type ListInvoiceRequest struct {
	Status    string `form:"status"`
	PageToken string `form:"page_token"`
	PageSize  int32  `form:"page_size"`
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []Invoice `json:"invoices"`
}

// GetInvoiceResponse carries the record plus its derived totals. Totals
// are recomputed on every read and never persisted.
type GetInvoiceResponse struct {
	Invoice Invoice       `json:"invoice"`
	Totals  totals.Totals `json:"totals"`
}

type Service interface {
	Create(context.Context, CreateInvoiceRequest) (GetInvoiceResponse, error)
	List(context.Context, ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByID(ctx context.Context, id string) (GetInvoiceResponse, error)
	Update(context.Context, UpdateInvoiceRequest) (GetInvoiceResponse, error)
	Delete(ctx context.Context, id string) error

	// RenderPDF renders synchronously, for callers already off the
	// interactive path.
	RenderPDF(ctx context.Context, id string) (*render.Document, error)
	// ExportPDF starts a background render and returns its job handle
	// along with the invoice snapshot the render was built from, so
	// callers don't fetch the record a second time.
	ExportPDF(ctx context.Context, id string) (*generate.Job, *Invoice, error)
}

var (
	ErrInvalidInvoiceID = errors.New("invalid_invoice_id")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
	ErrEmptyItems       = errors.New("empty_items")
	ErrInvalidQuantity  = errors.New("invalid_quantity")
	ErrInvalidPrice     = errors.New("invalid_price")
	ErrInvalidPercent   = errors.New("invalid_percent")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrInvalidCustomer  = errors.New("invalid_customer")
)
