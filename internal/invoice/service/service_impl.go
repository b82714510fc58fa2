package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	businessdomain "github.com/invobook/invobook/internal/business/domain"
	"github.com/invobook/invobook/internal/config"
	customerdomain "github.com/invobook/invobook/internal/customer/domain"
	"github.com/invobook/invobook/internal/invoice/domain"
	"github.com/invobook/invobook/internal/invoice/format"
	"github.com/invobook/invobook/internal/invoice/generate"
	"github.com/invobook/invobook/internal/invoice/render"
	"github.com/invobook/invobook/internal/invoice/totals"
	settingsdomain "github.com/invobook/invobook/internal/settings/domain"
	"github.com/invobook/invobook/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Config    config.Config
	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Business  businessdomain.Service
	Settings  settingsdomain.Service
	Customers customerdomain.Service
	Renderer  *render.Renderer
	Generator *generate.Generator
}

type service struct {
	cfg       config.Config
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	business  businessdomain.Service
	settings  settingsdomain.Service
	customers customerdomain.Service
	renderer  *render.Renderer
	generator *generate.Generator
}

func New(p Params) domain.Service {
	return &service{
		cfg:       p.Config,
		db:        p.DB,
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		business:  p.Business,
		settings:  p.Settings,
		customers: p.Customers,
		renderer:  p.Renderer,
		generator: p.Generator,
	}
}

func validateItems(items []domain.ItemInput) error {
	if len(items) == 0 {
		return domain.ErrEmptyItems
	}
	for _, item := range items {
		if item.Quantity < 0 {
			return domain.ErrInvalidQuantity
		}
		if item.Price < 0 {
			return domain.ErrInvalidPrice
		}
		if item.Discount < 0 || item.Discount > 100 {
			return domain.ErrInvalidPercent
		}
		if item.TaxRate < 0 || item.TaxRate > 100 {
			return domain.ErrInvalidPercent
		}
	}
	return nil
}

func validatePercent(v float64) error {
	if v < 0 || v > 100 {
		return domain.ErrInvalidPercent
	}
	return nil
}

func buildItems(genID *snowflake.Node, invoiceID snowflake.ID, inputs []domain.ItemInput) []domain.InvoiceItem {
	items := make([]domain.InvoiceItem, 0, len(inputs))
	for i, in := range inputs {
		unit := strings.TrimSpace(in.Unit)
		if unit == "" {
			unit = "PCS"
		}
		items = append(items, domain.InvoiceItem{
			ID:        genID.Generate(),
			InvoiceID: invoiceID,
			Position:  i,
			Name:      strings.TrimSpace(in.Name),
			Quantity:  in.Quantity,
			Unit:      unit,
			Price:     in.Price,
			Discount:  in.Discount,
			TaxRate:   in.TaxRate,
		})
	}
	return items
}

func computeTotals(inv *domain.Invoice) totals.Totals {
	lines := make([]totals.Line, 0, len(inv.Items))
	for _, item := range inv.Items {
		lines = append(lines, totals.Line{
			Quantity: item.Quantity,
			Price:    item.Price,
			Discount: item.Discount,
			TaxRate:  item.TaxRate,
		})
	}
	return totals.Compute(lines, inv.TaxRate, inv.Discount)
}

func (s *service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.GetInvoiceResponse, error) {
	if err := validateItems(req.Items); err != nil {
		return domain.GetInvoiceResponse{}, err
	}
	if err := validatePercent(req.Discount); err != nil {
		return domain.GetInvoiceResponse{}, err
	}
	if req.TaxRate != nil {
		if err := validatePercent(*req.TaxRate); err != nil {
			return domain.GetInvoiceResponse{}, err
		}
	}

	prefs, err := s.settings.Get(ctx)
	if err != nil {
		return domain.GetInvoiceResponse{}, err
	}

	invoice := domain.Invoice{
		ID:              s.genID.Generate(),
		Date:            time.Now(),
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		CustomerAddress: strings.TrimSpace(req.CustomerAddress),
		PlaceOfSupply:   strings.TrimSpace(req.PlaceOfSupply),
		Discount:        req.Discount,
		Notes:           strings.TrimSpace(req.Notes),
		Status:          domain.InvoiceStatusDraft,
	}
	if req.Date != nil {
		invoice.Date = *req.Date
	}
	if req.TaxRate != nil {
		invoice.TaxRate = *req.TaxRate
	} else {
		invoice.TaxRate = prefs.DefaultTaxRate
	}

	// A linked customer fills in any snapshot field the caller left blank.
	// The snapshot is frozen at creation; later customer edits never
	// rewrite it.
	if req.CustomerID != "" {
		customer, err := s.customers.GetByID(ctx, req.CustomerID)
		if err != nil {
			return domain.GetInvoiceResponse{}, domain.ErrInvalidCustomer
		}
		invoice.CustomerID = &customer.ID
		if invoice.CustomerName == "" {
			invoice.CustomerName = customer.Name
		}
		if invoice.CustomerEmail == "" {
			invoice.CustomerEmail = customer.Email
		}
		if invoice.CustomerPhone == "" {
			invoice.CustomerPhone = customer.Phone
		}
		if invoice.CustomerAddress == "" {
			invoice.CustomerAddress = customer.Address
		}
	}

	invoice.Items = buildItems(s.genID, invoice.ID, req.Items)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		seq, err := s.settings.NextInvoiceNumber(ctx, tx)
		if err != nil {
			return err
		}

		number, err := format.FormatNumber(s.cfg.InvoiceNumberTemplate, prefs.InvoicePrefix, invoice.Date, seq)
		if err != nil {
			return err
		}
		invoice.InvoiceNumber = number

		return s.repo.Insert(ctx, tx, &invoice)
	})
	if err != nil {
		s.log.Error("failed to create invoice", zap.Error(err))
		return domain.GetInvoiceResponse{}, err
	}

	return domain.GetInvoiceResponse{
		Invoice: invoice,
		Totals:  computeTotals(&invoice),
	}, nil
}

func (s *service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	var filter domain.ListInvoiceFilter
	if req.Status != "" {
		status := domain.InvoiceStatus(strings.ToLower(req.Status))
		if !status.Valid() {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidStatus
		}
		filter.Status = status
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	invoices, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		s.log.Error("failed to list invoices", zap.Error(err))
		return domain.ListInvoiceResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(invoices, pageSize, func(inv *domain.Invoice) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        inv.ID.String(),
			CreatedAt: inv.CreatedAt.Format(time.RFC3339),
		})
		return token
	})

	if pageInfo.HasMore {
		invoices = invoices[:pageSize]
	}

	result := make([]domain.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, *inv)
	}

	return domain.ListInvoiceResponse{
		PageInfo: *pageInfo,
		Invoices: result,
	}, nil
}

func (s *service) fetch(ctx context.Context, id string) (*domain.Invoice, error) {
	invoiceID, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrInvalidInvoiceID
	}

	invoice, err := s.repo.FindByID(ctx, s.db, invoiceID)
	if err != nil {
		s.log.Error("failed to find invoice", zap.Error(err))
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (s *service) GetByID(ctx context.Context, id string) (domain.GetInvoiceResponse, error) {
	invoice, err := s.fetch(ctx, id)
	if err != nil {
		return domain.GetInvoiceResponse{}, err
	}
	return domain.GetInvoiceResponse{
		Invoice: *invoice,
		Totals:  computeTotals(invoice),
	}, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateInvoiceRequest) (domain.GetInvoiceResponse, error) {
	invoice, err := s.fetch(ctx, req.ID)
	if err != nil {
		return domain.GetInvoiceResponse{}, err
	}

	if req.CustomerName != nil {
		invoice.CustomerName = strings.TrimSpace(*req.CustomerName)
	}
	if req.CustomerEmail != nil {
		invoice.CustomerEmail = strings.TrimSpace(*req.CustomerEmail)
	}
	if req.CustomerPhone != nil {
		invoice.CustomerPhone = strings.TrimSpace(*req.CustomerPhone)
	}
	if req.CustomerAddress != nil {
		invoice.CustomerAddress = strings.TrimSpace(*req.CustomerAddress)
	}
	if req.PlaceOfSupply != nil {
		invoice.PlaceOfSupply = strings.TrimSpace(*req.PlaceOfSupply)
	}
	if req.Date != nil {
		invoice.Date = *req.Date
	}
	if req.TaxRate != nil {
		if err := validatePercent(*req.TaxRate); err != nil {
			return domain.GetInvoiceResponse{}, err
		}
		invoice.TaxRate = *req.TaxRate
	}
	if req.Discount != nil {
		if err := validatePercent(*req.Discount); err != nil {
			return domain.GetInvoiceResponse{}, err
		}
		invoice.Discount = *req.Discount
	}
	if req.Notes != nil {
		invoice.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.Status != nil {
		status := domain.InvoiceStatus(strings.ToLower(*req.Status))
		if !status.Valid() {
			return domain.GetInvoiceResponse{}, domain.ErrInvalidStatus
		}
		invoice.Status = status
	}

	// A nil item list leaves the lines untouched; an explicit empty list
	// is rejected, every invoice keeps at least one line.
	var newItems []domain.InvoiceItem
	if req.Items != nil {
		if err := validateItems(req.Items); err != nil {
			return domain.GetInvoiceResponse{}, err
		}
		newItems = buildItems(s.genID, invoice.ID, req.Items)
	}

	invoice.UpdatedAt = time.Now()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, tx, invoice); err != nil {
			return err
		}
		if newItems != nil {
			if err := s.repo.ReplaceItems(ctx, tx, invoice.ID, newItems); err != nil {
				return err
			}
			invoice.Items = newItems
		}
		return nil
	})
	if err != nil {
		s.log.Error("failed to update invoice", zap.Error(err))
		return domain.GetInvoiceResponse{}, err
	}

	return domain.GetInvoiceResponse{
		Invoice: *invoice,
		Totals:  computeTotals(invoice),
	}, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	invoice, err := s.fetch(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, invoice.ID)
}

func (s *service) buildRenderInput(ctx context.Context, invoice *domain.Invoice) (render.Input, error) {
	seller, err := s.business.Get(ctx)
	if err != nil {
		return render.Input{}, err
	}
	prefs, err := s.settings.Get(ctx)
	if err != nil {
		return render.Input{}, err
	}

	lines := make([]render.LineView, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		lines = append(lines, render.LineView{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Price:    item.Price,
			Discount: item.Discount,
			TaxRate:  item.TaxRate,
			Amount: totals.LineAmount(totals.Line{
				Quantity: item.Quantity,
				Price:    item.Price,
				Discount: item.Discount,
				TaxRate:  item.TaxRate,
			}),
		})
	}

	var logo, signature string
	if seller.Logo != nil {
		logo = *seller.Logo
	}
	if seller.Signature != nil {
		signature = *seller.Signature
	}

	currency := prefs.CurrencySymbol
	if currency == "" {
		currency = seller.CurrencySymbol
	}

	return render.Input{
		Invoice: render.InvoiceView{
			Number:          invoice.InvoiceNumber,
			Date:            invoice.Date,
			CustomerName:    invoice.CustomerName,
			CustomerEmail:   invoice.CustomerEmail,
			CustomerPhone:   invoice.CustomerPhone,
			CustomerAddress: invoice.CustomerAddress,
			PlaceOfSupply:   invoice.PlaceOfSupply,
			Notes:           invoice.Notes,
			TaxRate:         invoice.TaxRate,
			Discount:        invoice.Discount,
		},
		Business: render.BusinessView{
			Name:         seller.Name,
			AddressLine1: seller.AddressLine1,
			AddressLine2: seller.AddressLine2,
			City:         seller.City,
			State:        seller.State,
			Pin:          seller.Pin,
			Phone:        seller.Phone,
			Email:        seller.Email,
			TaxID:        seller.TaxID,
			Logo:         logo,
			Signature:    signature,
		},
		Settings: render.SettingsView{
			CurrencySymbol: currency,
			TaxLabel:       prefs.TaxLabel,
			ShowLogo:       prefs.ShowLogo,
			Split: render.TaxSplit{
				PrimaryName:   prefs.SubTaxPrimary,
				SecondaryName: prefs.SubTaxSecondary,
				Fraction:      prefs.SubTaxFraction,
			},
		},
		Lines:  lines,
		Totals: computeTotals(invoice),
	}, nil
}

func (s *service) RenderPDF(ctx context.Context, id string) (*render.Document, error) {
	invoice, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	in, err := s.buildRenderInput(ctx, invoice)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(in)
}

func (s *service) ExportPDF(ctx context.Context, id string) (*generate.Job, *domain.Invoice, error) {
	invoice, err := s.fetch(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	in, err := s.buildRenderInput(ctx, invoice)
	if err != nil {
		return nil, nil, err
	}
	return s.generator.Generate(ctx, in), invoice, nil
}
