// cmd/seed/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"growingtogether/internal/allotment"
	"growingtogether/internal/config"
	"growingtogether/internal/membership"
	"growingtogether/internal/plants"
	"growingtogether/pkg/docstore"
	"growingtogether/pkg/logger"
)

const (
	adminEmail    = "admin@staffordallotment.com"
	adminUsername = "Site Admin"
	plotCount     = 20
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "growingtogether-seed")
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	store := docstore.NewPostgresStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "change-me-on-first-login"
	}
	created, err := membership.SeedAdmin(ctx, store, adminEmail, adminUsername, adminPassword)
	if err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}
	if created {
		log.Info("bootstrap admin created", zap.String("email", adminEmail))
	} else {
		log.Info("bootstrap admin already present", zap.String("email", adminEmail))
	}

	if err := seedPlots(ctx, store, log); err != nil {
		return err
	}

	seeded, err := plants.SeedDefaults(ctx, store)
	if err != nil {
		return fmt.Errorf("seeding plants: %w", err)
	}
	if seeded > 0 {
		log.Info("plant library seeded", zap.Int("records", seeded))
	}

	log.Info("seed complete")
	return nil
}

// seedPlots fills the plot directory when it is empty.
func seedPlots(ctx context.Context, store docstore.Store, log *zap.Logger) error {
	count, err := store.Count(ctx, "plots", docstore.Filter{})
	if err != nil {
		return fmt.Errorf("counting plots: %w", err)
	}
	if count > 0 {
		return nil
	}

	svc := allotment.NewService(store, log)
	for i := 1; i <= plotCount; i++ {
		number := fmt.Sprintf("%d", i)
		size := "full"
		if i%3 == 0 {
			size = "half"
		}
		if _, err := svc.CreatePlot(ctx, number, size, ""); err != nil {
			return fmt.Errorf("creating plot %s: %w", number, err)
		}
	}
	log.Info("plot directory seeded", zap.Int("plots", plotCount))
	return nil
}
