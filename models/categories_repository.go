package models

import (
	"context"

	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

func (r *CategoriesRepository) GetCategory(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translateError(err, ErrCategoryNotFound)
	}
	return &category, nil
}

func (r *CategoriesRepository) GetCategoryByName(ctx context.Context, name string) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&category).Error; err != nil {
		return nil, translateError(err, ErrCategoryNotFound)
	}
	return &category, nil
}

func (r *CategoriesRepository) ListCategories(ctx context.Context, offset, limit int) ([]Category, error) {
	categories := []Category{}
	if err := r.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	return translateError(r.db.WithContext(ctx).Create(category).Error, ErrCategoryNotFound)
}

// UpdateCategory overwrites the category's fields. Zero affected rows is not an error.
func (r *CategoriesRepository) UpdateCategory(ctx context.Context, id uint, category *Category) error {
	err := r.db.WithContext(ctx).
		Model(&Category{}).
		Where("id = ?", id).
		Update("name", category.Name).Error
	return translateError(err, ErrCategoryNotFound)
}

func (r *CategoriesRepository) DeleteCategory(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Category{}, id).Error
}
