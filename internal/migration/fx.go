package migration

import (
	"github.com/fieldwatch/fieldwatch/internal/config"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// The migrate driver targets postgres; other dialects (sqlite in
		// tests, mysql) get their schema from AutoMigrate or externally.
		if cfg.DBType != "postgres" {
			return nil
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		return RunMigrations(sqlDB)
	}),
)
