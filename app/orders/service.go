package orders

import (
	"context"
	"errors"

	"github.com/veo1/shop-api/app/api"
	"github.com/veo1/shop-api/models"
)

const (
	msgNotFound         = "Order not found"
	msgCustomerNotFound = "Customer not found"
	msgProductNotFound  = "Product not found"
	msgTotalOutOfRange  = "total_price must be at most 9999999999.99"
)

type OrderProvider interface {
	GetOrder(ctx context.Context, id uint) (*models.Order, error)
	ListOrders(ctx context.Context, offset, limit int) ([]models.Order, error)
	// CreateOrder and UpdateOrder derive TotalPrice from the product and
	// return models.ErrProductNotFound when it is missing.
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrder(ctx context.Context, id uint, order *models.Order) error
	DeleteOrder(ctx context.Context, id uint) error
}

type CustomerLookup interface {
	GetCustomer(ctx context.Context, id uint) (*models.Customer, error)
}

type ProductLookup interface {
	GetProduct(ctx context.Context, id uint) (*models.Product, error)
}

// Service checks the customer and product references of an order before
// it is priced and written.
type Service struct {
	repo      OrderProvider
	customers CustomerLookup
	products  ProductLookup
}

func NewService(repo OrderProvider, customers CustomerLookup, products ProductLookup) *Service {
	return &Service{repo: repo, customers: customers, products: products}
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, api.NotFound(msgNotFound)
	}
	return order, err
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]models.Order, error) {
	return s.repo.ListOrders(ctx, skip, limit)
}

func (s *Service) Create(ctx context.Context, customerID, productID uint, quantity int) (*models.Order, error) {
	if err := s.checkReferences(ctx, customerID, productID); err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
	}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, translateWriteError(err)
	}
	return order, nil
}

func (s *Service) Update(ctx context.Context, id, customerID, productID uint, quantity int) (*models.Order, error) {
	if err := s.checkReferences(ctx, customerID, productID); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
	}
	if err := s.repo.UpdateOrder(ctx, id, order); err != nil {
		return nil, translateWriteError(err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return nil, err
	}
	return order, nil
}

// checkReferences reports a missing customer before a missing product.
func (s *Service) checkReferences(ctx context.Context, customerID, productID uint) error {
	if customerID == 0 {
		return api.NotFound(msgCustomerNotFound)
	}
	_, err := s.customers.GetCustomer(ctx, customerID)
	if errors.Is(err, models.ErrNotFound) {
		return api.NotFound(msgCustomerNotFound)
	}
	if err != nil {
		return err
	}

	if productID == 0 {
		return api.NotFound(msgProductNotFound)
	}
	_, err = s.products.GetProduct(ctx, productID)
	if errors.Is(err, models.ErrNotFound) {
		return api.NotFound(msgProductNotFound)
	}
	return err
}

// translateWriteError covers a product deleted between the check and the
// write, and a total too large for the stored column.
func translateWriteError(err error) error {
	switch {
	case errors.Is(err, models.ErrProductNotFound):
		return api.NotFound(msgProductNotFound)
	case errors.Is(err, models.ErrTotalOutOfRange):
		return api.Invalid(msgTotalOutOfRange)
	}
	return err
}
