package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/chronos/internal/repository"
)

// Service handles category lookups.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new category service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns all categories. An empty store falls back to Defaults.
func (s *Service) List(ctx context.Context) (Catalog, error) {
	cats, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	if len(cats) == 0 {
		return Catalog(Defaults), nil
	}
	return Catalog(cats), nil
}

// Get fetches a category by ID.
func (s *Service) Get(ctx context.Context, id string) (*Category, error) {
	cat, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("getting category: %w", err)
	}
	return cat, nil
}

// Exists reports whether id names a stored category.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.Get(ctx, id)
	if errors.Is(err, ErrCategoryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
