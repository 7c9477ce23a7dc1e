package products

import (
	"context"
	"errors"

	"github.com/veo1/shop-api/app/api"
	"github.com/veo1/shop-api/models"
)

const (
	msgAlreadyRegistered = "Product already registered"
	msgNotFound          = "Product not found"
	msgCategoryNotFound  = "Category not found"
)

type ProductProvider interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
	GetProductByName(ctx context.Context, name string) (*models.Product, error)
	ListProducts(ctx context.Context, offset, limit int) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id uint, product *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error
}

type CategoryLookup interface {
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
}

// Service enforces name uniqueness and the category reference before writes.
type Service struct {
	repo       ProductProvider
	categories CategoryLookup
}

func NewService(repo ProductProvider, categories CategoryLookup) *Service {
	return &Service{repo: repo, categories: categories}
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, api.NotFound(msgNotFound)
	}
	return product, err
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]models.Product, error) {
	return s.repo.ListProducts(ctx, skip, limit)
}

// Create checks the name before the category, so a duplicate name wins
// over a missing category.
func (s *Service) Create(ctx context.Context, input models.Product) (*models.Product, error) {
	if err := s.checkNameFree(ctx, input.Name, 0); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, translateWriteError(err)
	}
	return s.Get(ctx, product.ID)
}

func (s *Service) Update(ctx context.Context, id uint, input models.Product) (*models.Product, error) {
	if err := s.checkNameFree(ctx, input.Name, id); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProduct(ctx, id, &input); err != nil {
		return nil, translateWriteError(err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) checkNameFree(ctx context.Context, name string, self uint) error {
	existing, err := s.repo.GetProductByName(ctx, name)
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

func (s *Service) checkCategory(ctx context.Context, id uint) error {
	if id == 0 {
		return api.NotFound(msgCategoryNotFound)
	}
	_, err := s.categories.GetCategory(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return api.NotFound(msgCategoryNotFound)
	}
	return err
}

func translateWriteError(err error) error {
	if errors.Is(err, models.ErrDuplicate) {
		return api.Conflict(msgAlreadyRegistered)
	}
	return err
}
