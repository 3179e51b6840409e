package offering

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

var (
	ErrNotFound      = errors.New("service not found")
	ErrDuplicateSlug = errors.New("service slug already exists")
)

// Repository handles service catalogue persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// List returns services ordered by display order, newest first within the
// same order. A non-nil isActive filters on the flag.
func (r *Repository) List(ctx context.Context, isActive *bool) ([]*Offering, error) {
	var rows []database.Service
	q := r.db.NewSelect().
		Model(&rows).
		OrderExpr("sort_order ASC, created_at DESC")
	if isActive != nil {
		q = q.Where("is_active = ?", *isActive)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	out := make([]*Offering, 0, len(rows))
	for i := range rows {
		out = append(out, mapDBServiceToModel(&rows[i]))
	}
	return out, nil
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Offering, error) {
	return r.getOne(ctx, "slug = ?", slug)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Offering, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *Repository) getOne(ctx context.Context, where string, arg any) (*Offering, error) {
	row := new(database.Service)
	err := r.db.NewSelect().
		Model(row).
		Where(where, arg).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	return mapDBServiceToModel(row), nil
}

func (r *Repository) Create(ctx context.Context, o *Offering) (*Offering, error) {
	row := mapModelToDBService(o)
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	_, err := r.db.NewInsert().
		Model(row).
		Returning("*").
		Exec(ctx)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	return mapDBServiceToModel(row), nil
}

// Update writes every editable column of o
func (r *Repository) Update(ctx context.Context, o *Offering) (*Offering, error) {
	row := mapModelToDBService(o)
	row.UpdatedAt = time.Now()

	res, err := r.db.NewUpdate().
		Model(row).
		Column("title", "slug", "short_description", "description", "image", "features", "is_active", "sort_order", "updated_at").
		WherePK().
		Returning("*").
		Exec(ctx)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}

	return mapDBServiceToModel(row), nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*database.Service)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func mapDBServiceToModel(s *database.Service) *Offering {
	features := s.Features
	if features == nil {
		features = []string{}
	}
	return &Offering{
		ID:               s.ID,
		Title:            s.Title,
		Slug:             s.Slug,
		ShortDescription: s.ShortDescription,
		Description:      s.Description,
		Image:            s.Image,
		Features:         features,
		IsActive:         s.IsActive,
		Order:            s.SortOrder,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func mapModelToDBService(o *Offering) *database.Service {
	features := o.Features
	if features == nil {
		features = []string{}
	}
	return &database.Service{
		ID:               o.ID,
		Title:            o.Title,
		Slug:             o.Slug,
		ShortDescription: o.ShortDescription,
		Description:      o.Description,
		Image:            o.Image,
		Features:         features,
		IsActive:         o.IsActive,
		SortOrder:        o.Order,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}
