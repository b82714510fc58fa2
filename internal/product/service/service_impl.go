package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/invobook/invobook/internal/product/domain"
	"github.com/invobook/invobook/pkg/db"
	"github.com/invobook/invobook/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &service{
		db:    p.DB,
		log:   p.Log.Named("product.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateProductRequest) (domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Product{}, domain.ErrInvalidName
	}
	if req.Price < 0 {
		return domain.Product{}, domain.ErrInvalidPrice
	}
	if req.TaxRate < 0 || req.TaxRate > 100 {
		return domain.Product{}, domain.ErrInvalidTaxRate
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = slug.Make(name)
	}
	unit := strings.TrimSpace(req.Unit)
	if unit == "" {
		unit = "PCS"
	}

	product := domain.Product{
		ID:          s.genID.Generate(),
		Name:        name,
		Code:        code,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Unit:        unit,
		TaxRate:     req.TaxRate,
		Active:      true,
	}

	if err := s.repo.Insert(ctx, s.db, &product); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Product{}, domain.ErrDuplicateCode
		}
		s.log.Error("failed to insert product", zap.Error(err))
		return domain.Product{}, err
	}

	return product, nil
}

func (s *service) List(ctx context.Context, req domain.ListProductRequest) (domain.ListProductResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	products, err := s.repo.List(ctx, s.db, domain.ListProductFilter{
		Name:   strings.TrimSpace(req.Name),
		Active: req.Active,
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		s.log.Error("failed to list products", zap.Error(err))
		return domain.ListProductResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(products, pageSize, func(p *domain.Product) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        p.ID.String(),
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		})
		return token
	})

	if pageInfo.HasMore {
		products = products[:pageSize]
	}

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		result = append(result, *p)
	}

	return domain.ListProductResponse{
		PageInfo: *pageInfo,
		Products: result,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (domain.Product, error) {
	productID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.Product{}, domain.ErrInvalidID
	}

	product, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		s.log.Error("failed to find product", zap.Error(err))
		return domain.Product{}, err
	}
	if product == nil {
		return domain.Product{}, domain.ErrNotFound
	}

	return *product, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateProductRequest) (domain.Product, error) {
	productID, err := snowflake.ParseString(req.ID)
	if err != nil {
		return domain.Product{}, domain.ErrInvalidID
	}

	product, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		s.log.Error("failed to find product", zap.Error(err))
		return domain.Product{}, err
	}
	if product == nil {
		return domain.Product{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Product{}, domain.ErrInvalidName
		}
		product.Name = name
	}
	if req.Description != nil {
		product.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return domain.Product{}, domain.ErrInvalidPrice
		}
		product.Price = *req.Price
	}
	if req.Unit != nil {
		unit := strings.TrimSpace(*req.Unit)
		if unit == "" {
			unit = "PCS"
		}
		product.Unit = unit
	}
	if req.TaxRate != nil {
		if *req.TaxRate < 0 || *req.TaxRate > 100 {
			return domain.Product{}, domain.ErrInvalidTaxRate
		}
		product.TaxRate = *req.TaxRate
	}
	if req.Active != nil {
		product.Active = *req.Active
	}
	product.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, s.db, product); err != nil {
		s.log.Error("failed to update product", zap.Error(err))
		return domain.Product{}, err
	}

	return *product, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	productID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	product, err := s.repo.FindByID(ctx, s.db, productID)
	if err != nil {
		s.log.Error("failed to find product", zap.Error(err))
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, productID)
}
