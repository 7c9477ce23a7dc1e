package models

import (
	"context"

	"gorm.io/gorm"
)

type CustomersRepository struct {
	db *gorm.DB
}

func NewCustomersRepository(db *gorm.DB) *CustomersRepository {
	return &CustomersRepository{
		db: db,
	}
}

func (r *CustomersRepository) GetCustomer(ctx context.Context, id uint) (*Customer, error) {
	var customer Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, translateError(err, ErrCustomerNotFound)
	}
	return &customer, nil
}

func (r *CustomersRepository) GetCustomerByUsername(ctx context.Context, username string) (*Customer, error) {
	var customer Customer
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&customer).Error; err != nil {
		return nil, translateError(err, ErrCustomerNotFound)
	}
	return &customer, nil
}

func (r *CustomersRepository) ListCustomers(ctx context.Context, offset, limit int) ([]Customer, error) {
	customers := []Customer{}
	if err := r.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomersRepository) CreateCustomer(ctx context.Context, customer *Customer) error {
	return translateError(r.db.WithContext(ctx).Create(customer).Error, ErrCustomerNotFound)
}

// UpdateCustomer overwrites username and password hash. Zero affected rows is not an error.
func (r *CustomersRepository) UpdateCustomer(ctx context.Context, id uint, customer *Customer) error {
	err := r.db.WithContext(ctx).
		Model(&Customer{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"username": customer.Username,
			"password": customer.Password,
		}).Error
	return translateError(err, ErrCustomerNotFound)
}

func (r *CustomersRepository) DeleteCustomer(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Customer{}, id).Error
}
