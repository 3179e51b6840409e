package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/advisory-cms/internal/database"
)

type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// GetOrCreate returns the settings row, inserting defaults when absent.
// The unique singleton column makes concurrent first reads converge on one row.
func (r *Repository) GetOrCreate(ctx context.Context, defaults *Settings) (*Settings, error) {
	row := mapModelToDBSettings(defaults)
	row.ID = uuid.New()
	now := time.Now()
	row.CreatedAt, row.UpdatedAt = now, now

	_, err := r.db.NewInsert().
		Model(row).
		On("CONFLICT (singleton) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create default settings: %w", err)
	}

	current := new(database.Settings)
	err = r.db.NewSelect().
		Model(current).
		Where("singleton = ?", true).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return mapDBSettingsToModel(current), nil
}

// Modify locks the settings row, lets fn edit it and saves the result
func (r *Repository) Modify(ctx context.Context, updatedBy uuid.UUID, fn func(*Settings)) (*Settings, error) {
	var out *Settings
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row := new(database.Settings)
		err := tx.NewSelect().
			Model(row).
			Where("singleton = ?", true).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("settings row missing: %w", err)
			}
			return fmt.Errorf("failed to lock settings: %w", err)
		}

		s := mapDBSettingsToModel(row)
		fn(s)
		s.UpdatedBy = &updatedBy
		s.UpdatedAt = time.Now()

		_, err = tx.NewUpdate().
			Model(mapModelToDBSettings(s)).
			ExcludeColumn("id", "singleton", "created_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update settings: %w", err)
		}

		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func mapDBSettingsToModel(s *database.Settings) *Settings {
	return &Settings{
		ID:              s.ID,
		SiteName:        s.SiteName,
		SiteDescription: s.SiteDescription,
		ContactEmail:    s.ContactEmail,
		ContactPhone:    s.ContactPhone,
		Address:         s.Address,
		CompanyInfo:     CompanyInfo(s.CompanyInfo),
		SocialLinks:     SocialLinks(s.SocialLinks),
		Logo:            s.Logo,
		Favicon:         s.Favicon,
		OGImage:         s.OGImage,
		UpdatedBy:       s.UpdatedBy,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func mapModelToDBSettings(s *Settings) *database.Settings {
	return &database.Settings{
		ID:              s.ID,
		Singleton:       true,
		SiteName:        s.SiteName,
		SiteDescription: s.SiteDescription,
		ContactEmail:    s.ContactEmail,
		ContactPhone:    s.ContactPhone,
		Address:         s.Address,
		CompanyInfo:     database.CompanyInfo(s.CompanyInfo),
		SocialLinks:     database.SocialLinks(s.SocialLinks),
		Logo:            s.Logo,
		Favicon:         s.Favicon,
		OGImage:         s.OGImage,
		UpdatedBy:       s.UpdatedBy,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
