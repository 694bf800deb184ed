// Package seed bootstraps the default accounts for first startup.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/ParthhMahajann/rera-quotation-system/internal/auth/domain"
	"github.com/ParthhMahajann/rera-quotation-system/internal/auth/password"
	"github.com/ParthhMahajann/rera-quotation-system/internal/config"
	"gorm.io/gorm"
)

const adminDiscountThreshold = 100

// EnsureAdminUser creates the configured admin account if no user holds
// the admin role yet. Existing deployments are left untouched.
func EnsureAdminUser(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	username := strings.ToLower(strings.TrimSpace(cfg.SeedAdminUsername))
	if username == "" {
		username = "admin"
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&authdomain.User{}).
			Where("role = ?", authdomain.RoleAdmin).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hashed, err := password.Hash(cfg.SeedAdminPassword)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		return tx.Create(&authdomain.User{
			ID:                node.Generate(),
			Username:          username,
			PasswordHash:      hashed,
			Role:              authdomain.RoleAdmin,
			DiscountThreshold: adminDiscountThreshold,
			CreatedAt:         now,
			UpdatedAt:         now,
		}).Error
	})
}
