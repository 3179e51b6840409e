// Command seed applies migrations and fills an empty database with the
// default site settings, service catalogue and page content. Running it
// again leaves existing settings and page content untouched and refreshes
// the seeded services in place.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/redmonkez12/advisory-cms/internal/config"
	"github.com/redmonkez12/advisory-cms/internal/database"
	"github.com/redmonkez12/advisory-cms/internal/database/migrations"
	"github.com/redmonkez12/advisory-cms/internal/logging"
	"github.com/redmonkez12/advisory-cms/internal/offering"
	"github.com/redmonkez12/advisory-cms/internal/pagecontent"
	"github.com/redmonkez12/advisory-cms/internal/settings"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := logging.NewLogger(cfg.Server.IsDevelopment())

	db, err := database.Open(cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	applied, err := migrations.Run(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("migrations applied", "migrations", applied)

	if _, err := settings.NewRepository(db).GetOrCreate(ctx, settings.Defaults()); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	logger.Info("settings seeded")

	n, err := seedServices(ctx, offering.NewService(offering.NewRepository(db)))
	if err != nil {
		return err
	}
	logger.Info("services seeded", "count", n)

	contentRepo := pagecontent.NewRepository(db)
	for _, page := range pagecontent.Pages {
		if _, err := contentRepo.GetOrCreate(ctx, page, pagecontent.DefaultSections(page)); err != nil {
			return fmt.Errorf("failed to seed %s page content: %w", page, err)
		}
	}
	logger.Info("page content seeded", "pages", len(pagecontent.Pages))

	logger.Info("database seeding completed, create the super admin through POST /api/auth/setup")
	return nil
}

// seedServices creates missing catalogue entries and refreshes existing ones by slug
func seedServices(ctx context.Context, svc *offering.Service) (int, error) {
	for _, in := range defaultServices() {
		existing, err := svc.GetBySlug(ctx, *in.Slug)
		switch {
		case errors.Is(err, offering.ErrNotFound):
			_, err = svc.Create(ctx, in)
		case err == nil:
			_, err = svc.Update(ctx, existing.ID, in)
		}
		if err != nil {
			return 0, fmt.Errorf("failed to seed service %q: %w", *in.Slug, err)
		}
	}
	return len(defaultServices()), nil
}
