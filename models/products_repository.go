package models

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductsRepository struct {
	db *gorm.DB
}

type ProductFilters struct {
	CategoryID    *uint
	PriceLessThan *float64
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) GetProduct(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translateError(err, ErrProductNotFound)
	}
	return &product, nil
}

func (r *ProductsRepository) GetProductByName(ctx context.Context, name string) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&product).Error; err != nil {
		return nil, translateError(err, ErrProductNotFound)
	}
	return &product, nil
}

// GetProductWithCategory loads a product and its category. An orphaned
// product comes back with a zero Category.
func (r *ProductsRepository) GetProductWithCategory(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, id).Error; err != nil {
		return nil, translateError(err, ErrProductNotFound)
	}
	return &product, nil
}

func (r *ProductsRepository) ListProducts(ctx context.Context, offset, limit int) ([]Product, error) {
	products := []Product{}
	if err := r.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetFilteredProducts returns a page of products with their category preloaded,
// plus the number of products matching the filters before pagination.
func (r *ProductsRepository) GetFilteredProducts(ctx context.Context, offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	products := []Product{}
	var total int64

	query := r.db.WithContext(ctx).Model(&Product{})

	// Filter
	if filters.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filters.CategoryID)
	}
	if filters.PriceLessThan != nil {
		query = query.Where("products.price < ?", *filters.PriceLessThan)
	}

	query = query.Session(&gorm.Session{})

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	if err := query.
		Preload("Category").
		Order("products.id").
		Offset(offset).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductsRepository) CreateProduct(ctx context.Context, product *Product) error {
	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(product).Error
	return translateError(err, ErrProductNotFound)
}

// UpdateProduct overwrites every writable field. Zero affected rows is not an error.
func (r *ProductsRepository) UpdateProduct(ctx context.Context, id uint, product *Product) error {
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"category_id": product.CategoryID,
		}).Error
	return translateError(err, ErrProductNotFound)
}

func (r *ProductsRepository) DeleteProduct(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Product{}, id).Error
}
