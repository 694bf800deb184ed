package migration

import (
	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
	"github.com/ParthhMahajann/rera-quotation-system/internal/config"
	quotationdomain "github.com/ParthhMahajann/rera-quotation-system/internal/quotation/domain"
	"github.com/ParthhMahajann/rera-quotation-system/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		// The SQL migrations target postgres; the other dialects build
		// their schema from the models.
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := conn.AutoMigrate(
				&authdomain.User{},
				&authdomain.Session{},
				&quotationdomain.Quotation{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedAdmin {
			return seed.EnsureAdminUser(conn, cfg)
		}
		return nil
	}),
)
