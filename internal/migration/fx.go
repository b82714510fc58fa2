package migration

import (
	businessdomain "github.com/invobook/invobook/internal/business/domain"
	"github.com/invobook/invobook/internal/config"
	customerdomain "github.com/invobook/invobook/internal/customer/domain"
	invoicedomain "github.com/invobook/invobook/internal/invoice/domain"
	productdomain "github.com/invobook/invobook/internal/product/domain"
	"github.com/invobook/invobook/internal/seed"
	settingsdomain "github.com/invobook/invobook/internal/settings/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql installs get the gorm-derived schema.
			if err := conn.AutoMigrate(
				&businessdomain.Business{},
				&settingsdomain.Settings{},
				&customerdomain.Customer{},
				&productdomain.Product{},
				&invoicedomain.Invoice{},
				&invoicedomain.InvoiceItem{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaults(conn)
	}),
)
