package domain

import (
	"context"
	"errors"

	"github.com/invobook/invobook/pkg/db/pagination"
)

type ListProductRequest struct {
	PageToken string `form:"page_token"`
	PageSize  int32  `form:"page_size"`
	Name      string `form:"name"`
	Active    *bool  `form:"active"`
}

type ListProductFilter struct {
	Name   string
	Active *bool
}

type ListProductResponse struct {
	pagination.PageInfo
	Products []Product `json:"products"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	TaxRate     float64 `json:"tax_rate"`
}

type UpdateProductRequest struct {
	ID          string   `json:"-"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Unit        *string  `json:"unit"`
	TaxRate     *float64 `json:"tax_rate"`
	Active      *bool    `json:"active"`
}

type Service interface {
	Create(context.Context, CreateProductRequest) (Product, error)
	List(context.Context, ListProductRequest) (ListProductResponse, error)
	GetByID(ctx context.Context, id string) (Product, error)
	Update(context.Context, UpdateProductRequest) (Product, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidPrice   = errors.New("invalid_price")
	ErrInvalidTaxRate = errors.New("invalid_tax_rate")
	ErrInvalidID      = errors.New("invalid_id")
	ErrDuplicateCode  = errors.New("duplicate_code")
	ErrNotFound       = errors.New("not_found")
)
