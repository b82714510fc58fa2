package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/invobook/invobook/internal/settings/domain"
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
		log:   p.Log.Named("settings.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Get(ctx context.Context) (domain.Settings, error) {
	item, err := s.repo.FindFirst(ctx, s.db)
	if err != nil {
		return domain.Settings{}, err
	}
	if item == nil {
		return domain.Settings{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateSettingsRequest) (domain.Settings, error) {
	item, err := s.repo.FindFirst(ctx, s.db)
	if err != nil {
		return domain.Settings{}, err
	}
	if item == nil {
		item = defaultSettings(s.genID)
	}

	if req.CurrencySymbol != nil {
		item.CurrencySymbol = strings.TrimSpace(*req.CurrencySymbol)
	}
	if req.DefaultTaxRate != nil {
		item.DefaultTaxRate = *req.DefaultTaxRate
	}
	if req.InvoicePrefix != nil {
		item.InvoicePrefix = strings.TrimSpace(*req.InvoicePrefix)
	}
	if req.TaxLabel != nil {
		item.TaxLabel = strings.TrimSpace(*req.TaxLabel)
	}
	if req.ShowLogo != nil {
		item.ShowLogo = *req.ShowLogo
	}
	if req.SubTaxPrimary != nil {
		item.SubTaxPrimary = strings.TrimSpace(*req.SubTaxPrimary)
	}
	if req.SubTaxSecondary != nil {
		item.SubTaxSecondary = strings.TrimSpace(*req.SubTaxSecondary)
	}
	if req.SubTaxFraction != nil {
		if *req.SubTaxFraction <= 0 || *req.SubTaxFraction >= 1 {
			return domain.Settings{}, domain.ErrInvalidFraction
		}
		item.SubTaxFraction = *req.SubTaxFraction
	}

	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, s.db, item); err != nil {
		return domain.Settings{}, err
	}

	return *item, nil
}

func (s *Service) NextInvoiceNumber(ctx context.Context, tx *gorm.DB) (int64, error) {
	item, err := s.repo.FindFirst(ctx, tx)
	if err != nil {
		return 0, err
	}
	if item == nil {
		item = defaultSettings(s.genID)
	}

	seq := item.NextNumber
	if seq < 1 {
		seq = 1
	}
	item.NextNumber = seq + 1
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, tx, item); err != nil {
		return 0, err
	}
	return seq, nil
}

func defaultSettings(genID *snowflake.Node) *domain.Settings {
	now := time.Now().UTC()
	return &domain.Settings{
		ID:              genID.Generate(),
		CurrencySymbol:  "₹",
		InvoicePrefix:   "INV",
		TaxLabel:        "GST",
		ShowLogo:        true,
		SubTaxPrimary:   "SGST",
		SubTaxSecondary: "CGST",
		SubTaxFraction:  0.5,
		NextNumber:      1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
