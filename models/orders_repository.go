package models

import (
	"context"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	db *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		db: db,
	}
}

func (r *OrdersRepository) GetOrder(ctx context.Context, id uint) (*Order, error) {
	var order Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, translateError(err, ErrOrderNotFound)
	}
	return &order, nil
}

func (r *OrdersRepository) ListOrders(ctx context.Context, offset, limit int) ([]Order, error) {
	orders := []Order{}
	if err := r.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder prices the order from the referenced product and inserts it.
// The price lookup and the insert run in one transaction.
func (r *OrdersRepository) CreateOrder(ctx context.Context, order *Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := productForPricing(tx, order.ProductID)
		if err != nil {
			return err
		}
		order.TotalPrice = product.TotalFor(order.Quantity)
		if order.TotalPrice.GreaterThan(MaxOrderTotal) {
			return ErrTotalOutOfRange
		}

		return translateError(tx.Create(order).Error, ErrOrderNotFound)
	})
}

// UpdateOrder re-prices the order and overwrites its fields.
// Zero affected rows is not an error; order.TotalPrice is set on success.
func (r *OrdersRepository) UpdateOrder(ctx context.Context, id uint, order *Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := productForPricing(tx, order.ProductID)
		if err != nil {
			return err
		}
		order.TotalPrice = product.TotalFor(order.Quantity)
		if order.TotalPrice.GreaterThan(MaxOrderTotal) {
			return ErrTotalOutOfRange
		}

		return tx.Model(&Order{}).
			Where("id = ?", id).
			Updates(map[string]any{
				"customer_id": order.CustomerID,
				"product_id":  order.ProductID,
				"quantity":    order.Quantity,
				"total_price": order.TotalPrice,
			}).Error
	})
}

func (r *OrdersRepository) DeleteOrder(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&Order{}, id).Error
}

func productForPricing(tx *gorm.DB, productID uint) (*Product, error) {
	var product Product
	if err := tx.Select("id", "price").First(&product, productID).Error; err != nil {
		return nil, translateError(err, ErrProductNotFound)
	}
	return &product, nil
}
