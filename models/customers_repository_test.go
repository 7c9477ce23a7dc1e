package models_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veo1/shop-api/models"
	"github.com/veo1/shop-api/models/modelstest"
)

func TestCustomersRepository(t *testing.T) {
	db := modelstest.DB(t)
	repo := models.NewCustomersRepository(db)
	ctx := context.Background()

	alice := &models.Customer{Username: "alice", Password: "hash-1"}
	require.NoError(t, repo.CreateCustomer(ctx, alice))
	assert.NotZero(t, alice.ID)

	got, err := repo.GetCustomerByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, "hash-1", got.Password)

	err = repo.CreateCustomer(ctx, &models.Customer{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, models.ErrDuplicate)

	bob := modelstest.SeedCustomer(t, db, "bob")
	err = repo.UpdateCustomer(ctx, bob.ID, &models.Customer{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, models.ErrDuplicate)

	require.NoError(t, repo.UpdateCustomer(ctx, bob.ID, &models.Customer{Username: "robert", Password: "hash-2"}))
	got, err = repo.GetCustomer(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "robert", got.Username)
	assert.Equal(t, "hash-2", got.Password)

	customers, err := repo.ListCustomers(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, customers, 2)

	require.NoError(t, repo.DeleteCustomer(ctx, alice.ID))
	_, err = repo.GetCustomer(ctx, alice.ID)
	assert.ErrorIs(t, err, models.ErrCustomerNotFound)
}
