package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/invobook/invobook/internal/business/domain"
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

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("business.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Get(ctx context.Context) (domain.Business, error) {
	item, err := s.repo.FindFirst(ctx, s.db)
	if err != nil {
		return domain.Business{}, err
	}
	if item == nil {
		return domain.Business{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateBusinessRequest) (domain.Business, error) {
	item, err := s.repo.FindFirst(ctx, s.db)
	if err != nil {
		return domain.Business{}, err
	}
	if item == nil {
		item = &domain.Business{ID: s.genID.Generate(), CreatedAt: time.Now().UTC()}
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Business{}, domain.ErrInvalidName
		}
		item.Name = name
	}
	if req.AddressLine1 != nil {
		item.AddressLine1 = strings.TrimSpace(*req.AddressLine1)
	}
	if req.AddressLine2 != nil {
		item.AddressLine2 = strings.TrimSpace(*req.AddressLine2)
	}
	if req.City != nil {
		item.City = strings.TrimSpace(*req.City)
	}
	if req.State != nil {
		item.State = strings.TrimSpace(*req.State)
	}
	if req.Pin != nil {
		item.Pin = strings.TrimSpace(*req.Pin)
	}
	if req.Phone != nil {
		item.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		item.Email = strings.TrimSpace(*req.Email)
	}
	if req.TaxID != nil {
		item.TaxID = strings.TrimSpace(*req.TaxID)
	}
	if req.CurrencySymbol != nil {
		item.CurrencySymbol = strings.TrimSpace(*req.CurrencySymbol)
	}
	if req.DefaultTaxRate != nil {
		item.DefaultTaxRate = *req.DefaultTaxRate
	}
	if req.Logo != nil {
		// Empty string clears the stored blob.
		if *req.Logo == "" {
			item.Logo = nil
		} else {
			item.Logo = req.Logo
		}
	}
	if req.Signature != nil {
		if *req.Signature == "" {
			item.Signature = nil
		} else {
			item.Signature = req.Signature
		}
	}

	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, s.db, item); err != nil {
		return domain.Business{}, err
	}

	return *item, nil
}
