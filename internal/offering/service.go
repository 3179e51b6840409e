package offering

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/redmonkez12/advisory-cms/internal/slug"
)

var ErrFieldsRequired = errors.New("title, short description, description and image are required")

type Store interface {
	List(ctx context.Context, isActive *bool) ([]*Offering, error)
	GetBySlug(ctx context.Context, slug string) (*Offering, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Offering, error)
	Create(ctx context.Context, o *Offering) (*Offering, error)
	Update(ctx context.Context, o *Offering) (*Offering, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context, isActive *bool) ([]*Offering, error) {
	return s.store.List(ctx, isActive)
}

func (s *Service) GetBySlug(ctx context.Context, slugValue string) (*Offering, error) {
	return s.store.GetBySlug(ctx, slug.Normalize(slugValue))
}

// Create validates in and derives the slug from the title when none is given
func (s *Service) Create(ctx context.Context, in Input) (*Offering, error) {
	o := &Offering{IsActive: true, Features: []string{}}
	apply(o, in)

	if o.Slug == "" {
		o.Slug = slug.Make(o.Title)
	}
	if o.Title == "" || o.Slug == "" || o.ShortDescription == "" || o.Description == "" || o.Image == "" {
		return nil, ErrFieldsRequired
	}

	return s.store.Create(ctx, o)
}

// Update applies the non-nil fields of in
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*Offering, error) {
	o, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	apply(o, in)
	if o.Slug == "" {
		o.Slug = slug.Make(o.Title)
	}
	if o.Title == "" || o.Slug == "" || o.ShortDescription == "" || o.Description == "" || o.Image == "" {
		return nil, ErrFieldsRequired
	}

	return s.store.Update(ctx, o)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

func apply(o *Offering, in Input) {
	if in.Title != nil {
		o.Title = strings.TrimSpace(*in.Title)
	}
	if in.Slug != nil {
		o.Slug = slug.Normalize(*in.Slug)
	}
	if in.ShortDescription != nil {
		o.ShortDescription = strings.TrimSpace(*in.ShortDescription)
	}
	if in.Description != nil {
		o.Description = *in.Description
	}
	if in.Image != nil {
		o.Image = *in.Image
	}
	if in.Features != nil {
		o.Features = *in.Features
	}
	if in.IsActive != nil {
		o.IsActive = *in.IsActive
	}
	if in.Order != nil {
		o.Order = *in.Order
	}
}
