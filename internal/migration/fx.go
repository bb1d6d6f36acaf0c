package migration

import (
	authdomain "github.com/facturio/facturio/internal/auth/domain"
	clientdomain "github.com/facturio/facturio/internal/client/domain"
	"github.com/facturio/facturio/internal/config"
	invoicedomain "github.com/facturio/facturio/internal/invoice/domain"
	projectdomain "github.com/facturio/facturio/internal/project/domain"
	settingsdomain "github.com/facturio/facturio/internal/settings/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// Versioned SQL migrations are postgres only. The sqlite and mysql
		// paths exist for local development, AutoMigrate covers them.
		if cfg.DBType != "postgres" {
			return conn.AutoMigrate(
				&authdomain.User{},
				&settingsdomain.Settings{},
				&clientdomain.Client{},
				&projectdomain.Project{},
				&invoicedomain.Invoice{},
				&invoicedomain.Counter{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
