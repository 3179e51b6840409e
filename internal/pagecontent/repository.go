package pagecontent

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

var ErrNotFound = errors.New("page content not found")

type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, page Page) (*Content, error) {
	row := new(database.PageContent)
	err := r.db.NewSelect().
		Model(row).
		Where("page = ?", string(page)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get page content: %w", err)
	}

	return mapDBContentToModel(row), nil
}

// GetOrCreate returns the content of page, inserting defaults first when the
// page has none. The unique index on page makes concurrent first reads safe.
func (r *Repository) GetOrCreate(ctx context.Context, page Page, defaults []Section) (*Content, error) {
	now := time.Now()
	row := &database.PageContent{
		ID:        uuid.New(),
		Page:      string(page),
		Sections:  toDBSections(defaults),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.db.NewInsert().
		Model(row).
		On("CONFLICT (page) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create default page content: %w", err)
	}

	return r.Get(ctx, page)
}

// Replace sets the sections of page, creating the row when missing
func (r *Repository) Replace(ctx context.Context, page Page, sections []Section, updatedBy uuid.UUID) (*Content, error) {
	row := &database.PageContent{
		ID:        uuid.New(),
		Page:      string(page),
		Sections:  toDBSections(sections),
		UpdatedBy: &updatedBy,
		UpdatedAt: time.Now(),
	}

	_, err := r.db.NewInsert().
		Model(row).
		On("CONFLICT (page) DO UPDATE").
		Set("sections = EXCLUDED.sections").
		Set("updated_by = EXCLUDED.updated_by").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to save page content: %w", err)
	}

	return mapDBContentToModel(row), nil
}

// Modify locks the row of page, lets fn edit the sections and writes them
// back in the same transaction
func (r *Repository) Modify(ctx context.Context, page Page, updatedBy uuid.UUID, fn func([]Section) ([]Section, error)) (*Content, error) {
	var out *Content
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		row := new(database.PageContent)
		err := tx.NewSelect().
			Model(row).
			Where("page = ?", string(page)).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to lock page content: %w", err)
		}

		sections, err := fn(fromDBSections(row.Sections))
		if err != nil {
			return err
		}

		row.Sections = toDBSections(sections)
		row.UpdatedBy = &updatedBy
		row.UpdatedAt = time.Now()
		_, err = tx.NewUpdate().
			Model(row).
			Column("sections", "updated_by", "updated_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update page content: %w", err)
		}

		out = mapDBContentToModel(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func mapDBContentToModel(c *database.PageContent) *Content {
	return &Content{
		ID:        c.ID,
		Page:      Page(c.Page),
		Sections:  fromDBSections(c.Sections),
		UpdatedBy: c.UpdatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toDBSections(in []Section) []database.Section {
	out := make([]database.Section, 0, len(in))
	for _, s := range in {
		out = append(out, database.Section(s))
	}
	return out
}

func fromDBSections(in []database.Section) []Section {
	out := make([]Section, 0, len(in))
	for _, s := range in {
		out = append(out, Section(s))
	}
	return out
}
