package blog

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
	ErrNotFound      = errors.New("blog post not found")
	ErrDuplicateSlug = errors.New("blog post slug already exists")
)

type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

func withAuthor(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Relation("Author", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Column("id", "name", "email")
	})
}

func applyFilter(q *bun.SelectQuery, f Filter) *bun.SelectQuery {
	if f.Status != "" {
		q = q.Where("bp.status = ?", string(f.Status))
	}
	if f.Category != "" {
		q = q.Where("bp.category = ?", f.Category)
	}
	return q
}

// List returns one page of posts matching f, most recently published first,
// and the number of posts matching f overall
func (r *Repository) List(ctx context.Context, f Filter) ([]*Post, int, error) {
	total, err := applyFilter(r.db.NewSelect().Model((*database.BlogPost)(nil)), f).Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count blog posts: %w", err)
	}

	var rows []database.BlogPost
	q := withAuthor(r.db.NewSelect().Model(&rows))
	err = applyFilter(q, f).
		OrderExpr("bp.published_at DESC NULLS LAST, bp.created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Scan(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blog posts: %w", err)
	}

	posts := make([]*Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, mapDBPostToModel(&rows[i]))
	}
	return posts, total, nil
}

// Get finds a post by id or slug. publishedOnly hides drafts.
func (r *Repository) Get(ctx context.Context, ref string, publishedOnly bool) (*Post, error) {
	row := new(database.BlogPost)
	q := withAuthor(r.db.NewSelect().Model(row))
	if id, err := uuid.Parse(ref); err == nil {
		q = q.Where("bp.id = ?", id)
	} else {
		q = q.Where("bp.slug = ?", ref)
	}
	if publishedOnly {
		q = q.Where("bp.status = ?", string(StatusPublished))
	}

	if err := q.Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}

	return mapDBPostToModel(row), nil
}

func (r *Repository) Create(ctx context.Context, p *Post) (*Post, error) {
	row := mapModelToDBPost(p)
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
		return nil, fmt.Errorf("failed to create blog post: %w", err)
	}

	out := mapDBPostToModel(row)
	out.Author = p.Author
	return out, nil
}

func (r *Repository) Update(ctx context.Context, p *Post) (*Post, error) {
	row := mapModelToDBPost(p)
	row.UpdatedAt = time.Now()

	res, err := r.db.NewUpdate().
		Model(row).
		Column("title", "slug", "excerpt", "content", "featured_image", "category", "tags", "status", "published_at", "updated_at").
		WherePK().
		Returning("*").
		Exec(ctx)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to update blog post: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}

	out := mapDBPostToModel(row)
	out.Author = p.Author
	return out, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*database.BlogPost)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
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

func mapDBPostToModel(p *database.BlogPost) *Post {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	post := &Post{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Content:       p.Content,
		FeaturedImage: p.FeaturedImage,
		Category:      p.Category,
		Tags:          tags,
		Status:        Status(p.Status),
		PublishedAt:   p.PublishedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.AuthorID != nil {
		post.AuthorID = *p.AuthorID
	}
	// a LEFT JOIN on a deleted author scans into a zero-valued User
	if p.Author != nil && p.Author.ID != uuid.Nil {
		post.Author = &Author{ID: p.Author.ID, Name: p.Author.Name, Email: p.Author.Email}
	}
	return post
}

func mapModelToDBPost(p *Post) *database.BlogPost {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	out := &database.BlogPost{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		Content:       p.Content,
		FeaturedImage: p.FeaturedImage,
		Category:      p.Category,
		Tags:          tags,
		Status:        string(p.Status),
		PublishedAt:   p.PublishedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.AuthorID != uuid.Nil {
		id := p.AuthorID
		out.AuthorID = &id
	}
	return out
}
