package blog

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/redmonkez12/advisory-cms/internal/slug"
	"github.com/redmonkez12/advisory-cms/internal/user"
)

var (
	ErrFieldsRequired = errors.New("title, excerpt and content are required")
	ErrExcerptTooLong = errors.New("excerpt exceeds maximum length")
	ErrInvalidStatus  = errors.New("invalid status")
)

type Store interface {
	List(ctx context.Context, f Filter) ([]*Post, int, error)
	Get(ctx context.Context, ref string, publishedOnly bool) (*Post, error)
	Create(ctx context.Context, p *Post) (*Post, error)
	Update(ctx context.Context, p *Post) (*Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) List(ctx context.Context, f Filter) ([]*Post, int, error) {
	return s.store.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, ref string, publishedOnly bool) (*Post, error) {
	return s.store.Get(ctx, ref, publishedOnly)
}

// Create stores a post written by author
func (s *Service) Create(ctx context.Context, author *user.User, in Input) (*Post, error) {
	p := &Post{
		AuthorID: author.ID,
		Author:   &Author{ID: author.ID, Name: author.Name, Email: author.Email},
		Category: DefaultCategory,
		Tags:     []string{},
		Status:   StatusDraft,
	}
	if err := s.apply(p, in); err != nil {
		return nil, err
	}

	return s.store.Create(ctx, p)
}

// Update applies the non-nil fields of in. The post keeps its author.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Post, error) {
	p, err := s.store.Get(ctx, id.String(), false)
	if err != nil {
		return nil, err
	}
	if err := s.apply(p, in); err != nil {
		return nil, err
	}

	return s.store.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) apply(p *Post, in Input) error {
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Slug != nil {
		p.Slug = slug.Normalize(*in.Slug)
	}
	if in.Excerpt != nil {
		p.Excerpt = *in.Excerpt
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.FeaturedImage != nil {
		p.FeaturedImage = *in.FeaturedImage
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
		if p.Category == "" {
			p.Category = DefaultCategory
		}
	}
	if in.Tags != nil {
		p.Tags = *in.Tags
	}
	if in.Status != nil {
		status := Status(*in.Status)
		if !status.Valid() {
			return ErrInvalidStatus
		}
		p.Status = status
	}

	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}
	if p.Title == "" || p.Slug == "" || p.Excerpt == "" || p.Content == "" {
		return ErrFieldsRequired
	}
	if utf8.RuneCountInString(p.Excerpt) > MaxExcerptLen {
		return ErrExcerptTooLong
	}

	if p.Status == StatusPublished && p.PublishedAt == nil {
		now := s.now()
		p.PublishedAt = &now
	}
	return nil
}
