package repository

import (
	"context"

	"github.com/invobook/invobook/internal/settings/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindFirst(ctx context.Context, db *gorm.DB) (*domain.Settings, error) {
	var settings domain.Settings
	err := db.WithContext(ctx).
		Order("created_at asc").
		Limit(1).
		Find(&settings).Error
	if err != nil {
		return nil, err
	}
	if settings.ID == 0 {
		return nil, nil
	}
	return &settings, nil
}

func (r *repo) Save(ctx context.Context, db *gorm.DB, settings *domain.Settings) error {
	return db.WithContext(ctx).Save(settings).Error
}
