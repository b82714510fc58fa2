package repository

import (
	"context"

	"github.com/invobook/invobook/internal/business/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindFirst(ctx context.Context, db *gorm.DB) (*domain.Business, error) {
	var business domain.Business
	err := db.WithContext(ctx).
		Order("created_at asc").
		Limit(1).
		Find(&business).Error
	if err != nil {
		return nil, err
	}
	if business.ID == 0 {
		return nil, nil
	}
	return &business, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, business *domain.Business) error {
	return db.WithContext(ctx).Save(business).Error
}
