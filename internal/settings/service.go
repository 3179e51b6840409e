package settings

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Store interface {
	GetOrCreate(ctx context.Context, defaults *Settings) (*Settings, error)
	Modify(ctx context.Context, updatedBy uuid.UUID, fn func(*Settings)) (*Settings, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context) (*Settings, error) {
	return s.store.GetOrCreate(ctx, Defaults())
}

// Update applies a partial update, creating the settings record first if needed
func (s *Service) Update(ctx context.Context, in Input, actor uuid.UUID) (*Settings, error) {
	if _, err := s.store.GetOrCreate(ctx, Defaults()); err != nil {
		return nil, fmt.Errorf("failed to ensure settings: %w", err)
	}
	return s.store.Modify(ctx, actor, in.Apply)
}
