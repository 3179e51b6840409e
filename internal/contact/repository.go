package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/advisory-cms/internal/database"
)

var ErrNotFound = errors.New("contact message not found")

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, c *Contact) (*Contact, error) {
	row := mapModelToDBContact(c)
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}

	_, err := r.db.NewInsert().
		Model(row).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return mapDBContactToModel(row), nil
}

func applyFilter(q *bun.SelectQuery, f Filter) *bun.SelectQuery {
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.Search != "" {
		pattern := "%" + likeEscaper.Replace(f.Search) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("full_name ILIKE ?", pattern).
				WhereOr("email ILIKE ?", pattern).
				WhereOr("message ILIKE ?", pattern)
		})
	}
	return q
}

// List returns one page of the inbox, newest first, and the total matching f
func (r *Repository) List(ctx context.Context, f Filter) ([]*Contact, int, error) {
	total, err := applyFilter(r.db.NewSelect().Model((*database.Contact)(nil)), f).Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	var rows []database.Contact
	err = applyFilter(r.db.NewSelect().Model(&rows), f).
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Scan(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}

	out := make([]*Contact, 0, len(rows))
	for i := range rows {
		out = append(out, mapDBContactToModel(&rows[i]))
	}
	return out, total, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Contact, error) {
	row := new(database.Contact)
	err := r.db.NewSelect().
		Model(row).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return mapDBContactToModel(row), nil
}

// Update persists status and notes
func (r *Repository) Update(ctx context.Context, c *Contact) (*Contact, error) {
	row := mapModelToDBContact(c)
	row.UpdatedAt = time.Now()

	res, err := r.db.NewUpdate().
		Model(row).
		Column("status", "notes", "updated_at").
		WherePK().
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}

	return mapDBContactToModel(row), nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*database.Contact)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
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

// Stats counts messages per status in one pass
func (r *Repository) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	err := r.db.NewSelect().
		Model((*database.Contact)(nil)).
		ColumnExpr("count(*) AS total").
		ColumnExpr("count(*) FILTER (WHERE status = ?) AS new", string(StatusNew)).
		ColumnExpr("count(*) FILTER (WHERE status = ?) AS read", string(StatusRead)).
		ColumnExpr("count(*) FILTER (WHERE status = ?) AS replied", string(StatusReplied)).
		ColumnExpr("count(*) FILTER (WHERE status = ?) AS archived", string(StatusArchived)).
		Scan(ctx, &stats)
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts by status: %w", err)
	}
	return &stats, nil
}

func mapDBContactToModel(c *database.Contact) *Contact {
	return &Contact{
		ID:              c.ID,
		FullName:        c.FullName,
		Email:           c.Email,
		Phone:           c.Phone,
		ServiceInterest: c.ServiceInterest,
		Message:         c.Message,
		Status:          Status(c.Status),
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func mapModelToDBContact(c *Contact) *database.Contact {
	return &database.Contact{
		ID:              c.ID,
		FullName:        c.FullName,
		Email:           c.Email,
		Phone:           c.Phone,
		ServiceInterest: c.ServiceInterest,
		Message:         c.Message,
		Status:          string(c.Status),
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}
