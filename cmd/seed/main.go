package main

import (
	"context"
	"fmt"
	"os"
	"time"

	appidentity "github.com/ledgerbook/backend/internal/application/identity"
	"github.com/ledgerbook/backend/internal/infrastructure/config"
	"github.com/ledgerbook/backend/internal/infrastructure/logger"
	"github.com/ledgerbook/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if cfg.Seed.AdminPassword == "" {
		log.Fatal("Admin password is required; set seed.admin_password or LEDGERBOOK_SEED_ADMIN_PASSWORD")
	}

	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level)))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if db.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(ctx); err != nil {
			log.Fatal("Failed to create sqlite schema", zap.Error(err))
		}
	}

	seeder := appidentity.NewSeeder(
		persistence.NewGormUserRepository(db.DB),
		persistence.NewGormCompanyRepository(db.DB),
		log,
	)
	result, err := seeder.Run(ctx, appidentity.SeedInput{
		Username:    cfg.Seed.AdminUsername,
		Email:       cfg.Seed.AdminEmail,
		Password:    cfg.Seed.AdminPassword,
		CompanyName: cfg.Seed.DefaultCompany,
	})
	if err != nil {
		log.Fatal("Seeding failed", zap.Error(err))
	}

	log.Info("Initial data seeding finished",
		zap.String("admin_id", result.Admin.ID.String()),
		zap.Bool("admin_created", result.AdminCreated),
		zap.String("company_id", result.CompanyID),
		zap.Bool("company_created", result.CompanyCreated),
	)
}
