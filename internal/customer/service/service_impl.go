package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/invobook/invobook/internal/customer/domain"
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
		log:   p.Log.Named("customer.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}
	email := strings.TrimSpace(req.Email)
	if email != "" && !strings.Contains(email, "@") {
		return domain.Customer{}, domain.ErrInvalidEmail
	}

	customer := domain.Customer{
		ID:      s.genID.Generate(),
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		s.log.Error("failed to insert customer", zap.Error(err))
		return domain.Customer{}, err
	}

	return customer, nil
}

func (s *service) List(ctx context.Context, req domain.ListCustomerRequest) (domain.ListCustomerResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	customers, err := s.repo.List(ctx, s.db, domain.ListCustomerFilter{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		s.log.Error("failed to list customers", zap.Error(err))
		return domain.ListCustomerResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(customers, pageSize, func(c *domain.Customer) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        c.ID.String(),
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		})
		return token
	})

	if pageInfo.HasMore {
		customers = customers[:pageSize]
	}

	result := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		result = append(result, *c)
	}

	return domain.ListCustomerResponse{
		PageInfo:  *pageInfo,
		Customers: result,
	}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	customerID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.Customer{}, domain.ErrInvalidID
	}

	customer, err := s.repo.FindByID(ctx, s.db, customerID)
	if err != nil {
		s.log.Error("failed to find customer", zap.Error(err))
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	return *customer, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateCustomerRequest) (domain.Customer, error) {
	customerID, err := snowflake.ParseString(req.ID)
	if err != nil {
		return domain.Customer{}, domain.ErrInvalidID
	}

	customer, err := s.repo.FindByID(ctx, s.db, customerID)
	if err != nil {
		s.log.Error("failed to find customer", zap.Error(err))
		return domain.Customer{}, err
	}
	if customer == nil {
		return domain.Customer{}, domain.ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Customer{}, domain.ErrInvalidName
		}
		customer.Name = name
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != "" && !strings.Contains(email, "@") {
			return domain.Customer{}, domain.ErrInvalidEmail
		}
		customer.Email = email
	}
	if req.Phone != nil {
		customer.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		customer.Address = strings.TrimSpace(*req.Address)
	}
	customer.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, s.db, customer); err != nil {
		s.log.Error("failed to update customer", zap.Error(err))
		return domain.Customer{}, err
	}

	return *customer, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	customerID, err := snowflake.ParseString(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	customer, err := s.repo.FindByID(ctx, s.db, customerID)
	if err != nil {
		s.log.Error("failed to find customer", zap.Error(err))
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}

	return s.repo.Delete(ctx, s.db, customerID)
}
