package categories

import (
	"context"
	"errors"

	"github.com/veo1/shop-api/app/api"
	"github.com/veo1/shop-api/models"
)

const (
	msgAlreadyRegistered = "Category already registered"
	msgNotFound          = "Category not found"
)

type CategoryProvider interface {
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	ListCategories(ctx context.Context, offset, limit int) ([]models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, id uint, category *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error
}

// Service enforces category invariants before delegating to the repository.
// The unique index on name is authoritative; the lookups only produce the
// friendly error early.
type Service struct {
	repo CategoryProvider
}

func NewService(repo CategoryProvider) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.repo.GetCategory(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, api.NotFound(msgNotFound)
	}
	return category, err
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]models.Category, error) {
	return s.repo.ListCategories(ctx, skip, limit)
}

func (s *Service) Create(ctx context.Context, name string) (*models.Category, error) {
	if err := s.checkNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	category := &models.Category{Name: name}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, translateWriteError(err)
	}
	return category, nil
}

// Update renames the category. Keeping its own name is not a conflict.
func (s *Service) Update(ctx context.Context, id uint, name string) (*models.Category, error) {
	if err := s.checkNameFree(ctx, name, id); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCategory(ctx, id, &models.Category{Name: name}); err != nil {
		return nil, translateWriteError(err)
	}
	return s.Get(ctx, id)
}

// Delete removes the category and returns it as it was. Products that
// reference it are left in place.
func (s *Service) Delete(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) checkNameFree(ctx context.Context, name string, self uint) error {
	existing, err := s.repo.GetCategoryByName(ctx, name)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return api.Conflict(msgAlreadyRegistered)
	}
	return nil
}

func translateWriteError(err error) error {
	if errors.Is(err, models.ErrDuplicate) {
		return api.Conflict(msgAlreadyRegistered)
	}
	return err
}
