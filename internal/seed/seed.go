// Package seed bootstraps the single business profile and settings rows
// so a fresh install renders invoices without any setup step.
package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	businessdomain "github.com/invobook/invobook/internal/business/domain"
	settingsdomain "github.com/invobook/invobook/internal/settings/domain"
	"gorm.io/gorm"
)

const defaultBusinessName = "My Business"

// EnsureDefaults seeds the business profile and settings rows when absent.
func EnsureDefaults(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureBusinessTx(ctx, tx, node); err != nil {
			return err
		}
		return ensureSettingsTx(ctx, tx, node)
	})
}

func ensureBusinessTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var business businessdomain.Business
	if err := tx.WithContext(ctx).Limit(1).Find(&business).Error; err != nil {
		return err
	}
	if business.ID != 0 {
		return nil
	}

	business = businessdomain.Business{
		ID:             node.Generate(),
		Name:           defaultBusinessName,
		CurrencySymbol: "₹",
	}
	return tx.WithContext(ctx).Create(&business).Error
}

func ensureSettingsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var settings settingsdomain.Settings
	if err := tx.WithContext(ctx).Limit(1).Find(&settings).Error; err != nil {
		return err
	}
	if settings.ID != 0 {
		return nil
	}

	settings = settingsdomain.Settings{
		ID:              node.Generate(),
		CurrencySymbol:  "₹",
		InvoicePrefix:   "INV",
		TaxLabel:        "GST",
		ShowLogo:        true,
		SubTaxPrimary:   "SGST",
		SubTaxSecondary: "CGST",
		SubTaxFraction:  0.5,
		NextNumber:      1,
	}
	return tx.WithContext(ctx).Create(&settings).Error
}
