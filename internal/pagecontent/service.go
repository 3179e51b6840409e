package pagecontent

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidPage       = errors.New("invalid page")
	ErrSectionNotFound   = errors.New("section not found")
	ErrSectionIDRequired = errors.New("section id is required")
)

type Store interface {
	GetOrCreate(ctx context.Context, page Page, defaults []Section) (*Content, error)
	Replace(ctx context.Context, page Page, sections []Section, updatedBy uuid.UUID) (*Content, error)
	Modify(ctx context.Context, page Page, updatedBy uuid.UUID, fn func([]Section) ([]Section, error)) (*Content, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func parsePage(page string) (Page, error) {
	p := Page(page)
	if !p.Valid() {
		return "", ErrInvalidPage
	}
	return p, nil
}

// Get returns the sections of page, seeding defaults on first access
func (s *Service) Get(ctx context.Context, page string) (*Content, error) {
	p, err := parsePage(page)
	if err != nil {
		return nil, err
	}
	return s.store.GetOrCreate(ctx, p, DefaultSections(p))
}

// Replace overwrites every section of page
func (s *Service) Replace(ctx context.Context, page string, sections []SectionInput, actor uuid.UUID) (*Content, error) {
	p, err := parsePage(page)
	if err != nil {
		return nil, err
	}

	out := make([]Section, 0, len(sections))
	for _, in := range sections {
		sec := in.New()
		if strings.TrimSpace(sec.SectionID) == "" {
			return nil, ErrSectionIDRequired
		}
		out = append(out, sec)
	}

	return s.store.Replace(ctx, p, out, actor)
}

// AddSection appends a section to an existing page
func (s *Service) AddSection(ctx context.Context, page string, in SectionInput, actor uuid.UUID) (*Content, error) {
	p, err := parsePage(page)
	if err != nil {
		return nil, err
	}

	sec := in.New()
	if strings.TrimSpace(sec.SectionID) == "" {
		return nil, ErrSectionIDRequired
	}

	return s.store.Modify(ctx, p, actor, func(sections []Section) ([]Section, error) {
		return append(sections, sec), nil
	})
}

// UpdateSection merges in into the section with sectionID
func (s *Service) UpdateSection(ctx context.Context, page, sectionID string, in SectionInput, actor uuid.UUID) (*Content, error) {
	p, err := parsePage(page)
	if err != nil {
		return nil, err
	}

	return s.store.Modify(ctx, p, actor, func(sections []Section) ([]Section, error) {
		for i := range sections {
			if sections[i].SectionID == sectionID {
				in.MergeInto(&sections[i])
				if strings.TrimSpace(sections[i].SectionID) == "" {
					return nil, ErrSectionIDRequired
				}
				return sections, nil
			}
		}
		return nil, ErrSectionNotFound
	})
}

// DeleteSection drops the section with sectionID. Deleting an absent section is not an error.
func (s *Service) DeleteSection(ctx context.Context, page, sectionID string, actor uuid.UUID) (*Content, error) {
	p, err := parsePage(page)
	if err != nil {
		return nil, err
	}

	return s.store.Modify(ctx, p, actor, func(sections []Section) ([]Section, error) {
		kept := sections[:0]
		for _, sec := range sections {
			if sec.SectionID != sectionID {
				kept = append(kept, sec)
			}
		}
		return kept, nil
	})
}
