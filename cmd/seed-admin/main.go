// seed-admin creates the first business and its admin user, or resets the
// admin password if the user already exists.
//
// Usage:
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-admin
//
// Env overrides: SEED_BUSINESS_NAME, SEED_ADMIN_USERNAME, SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/restobooks/backoffice_backend/config"
	"github.com/restobooks/backoffice_backend/models"
	"github.com/restobooks/backoffice_backend/utils"
	"gorm.io/gorm"
)

const (
	defaultBusinessName  = "Demo Restaurant"
	defaultAdminUsername = "backofficeAdmin"
	defaultAdminPassword = "ChangeMe!2024"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	models.MigrateTable()

	businessName := envOr("SEED_BUSINESS_NAME", defaultBusinessName)
	adminUsername := envOr("SEED_ADMIN_USERNAME", defaultAdminUsername)
	adminPassword := envOr("SEED_ADMIN_PASSWORD", defaultAdminPassword)

	ctx = utils.SetIsAdminInContext(ctx, true)

	var biz models.Business
	err := db.WithContext(ctx).First(&biz).Error
	if err == gorm.ErrRecordNotFound {
		biz = models.Business{Name: businessName}
		if err := db.WithContext(ctx).Create(&biz).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create business: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created business %q (id=%s)\n", biz.Name, biz.ID)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "failed to lookup business: %v\n", err)
		os.Exit(1)
	}

	hashed, err := utils.HashPassword(adminPassword)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	var existing models.User
	err = db.WithContext(ctx).Where("username = ?", adminUsername).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		u := models.User{
			Username:   adminUsername,
			Name:       "Back-Office Admin",
			Password:   string(hashed),
			IsActive:   utils.NewTrue(),
			Role:       models.UserRoleAdmin,
			BusinessId: biz.ID.String(),
		}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created admin user: username=%q\n", adminUsername)
		return
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
		os.Exit(1)
	}

	if err := db.WithContext(ctx).Model(&models.User{}).Where("username = ?", adminUsername).Updates(map[string]any{
		"password":  string(hashed),
		"is_active": utils.NewTrue(),
		"role":      models.UserRoleAdmin,
	}).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Updated admin user: username=%q\n", adminUsername)
}
