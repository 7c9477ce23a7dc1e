package customers

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/veo1/shop-api/app/api"
	"github.com/veo1/shop-api/models"
)

const (
	msgAlreadyRegistered = "Username already registered"
	msgNotFound          = "Customer not found"
)

type CustomerProvider interface {
	GetCustomer(ctx context.Context, id uint) (*models.Customer, error)
	GetCustomerByUsername(ctx context.Context, username string) (*models.Customer, error)
	ListCustomers(ctx context.Context, offset, limit int) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	UpdateCustomer(ctx context.Context, id uint, customer *models.Customer) error
	DeleteCustomer(ctx context.Context, id uint) error
}

// Service enforces username uniqueness and stores passwords as bcrypt hashes.
type Service struct {
	repo     CustomerProvider
	hashCost int
}

func NewService(repo CustomerProvider) *Service {
	return &Service{repo: repo, hashCost: bcrypt.DefaultCost}
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.repo.GetCustomer(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, api.NotFound(msgNotFound)
	}
	return customer, err
}

func (s *Service) List(ctx context.Context, skip, limit int) ([]models.Customer, error) {
	return s.repo.ListCustomers(ctx, skip, limit)
}

func (s *Service) Create(ctx context.Context, username, password string) (*models.Customer, error) {
	if err := s.checkUsernameFree(ctx, username, 0); err != nil {
		return nil, err
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	customer := &models.Customer{Username: username, Password: hash}
	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		return nil, translateWriteError(err)
	}
	return customer, nil
}

func (s *Service) Update(ctx context.Context, id uint, username, password string) (*models.Customer, error) {
	if err := s.checkUsernameFree(ctx, username, id); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateCustomer(ctx, id, &models.Customer{Username: username, Password: hash}); err != nil {
		return nil, translateWriteError(err)
	}
	return s.Get(ctx, id)
}

// Delete removes the customer. Their orders are left in place.
func (s *Service) Delete(ctx context.Context, id uint) (*models.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteCustomer(ctx, id); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", api.Invalid("password must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *Service) checkUsernameFree(ctx context.Context, username string, self uint) error {
	existing, err := s.repo.GetCustomerByUsername(ctx, username)
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
