package migration

import (
	"github.com/merchhaus/backoffice/internal/config"
	"github.com/merchhaus/backoffice/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// Only postgres deployments run the embedded migrations; sqlite is
		// reserved for tests, which create their own schema.
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		}

		return seed.EnsureDefaultAccessPermissions(conn)
	}),
)
