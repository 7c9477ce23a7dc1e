// Package modelstest provides an in-memory store for repository and API tests.
package modelstest

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/veo1/shop-api/models"
)

// DB returns a migrated SQLite in-memory database private to tb.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), models.GormConfig(gormLogger.Default.LogMode(gormLogger.Silent)))
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("access test pool: %v", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := models.Migrate(db); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return db
}

func SeedCategory(tb testing.TB, db *gorm.DB, name string) *models.Category {
	tb.Helper()
	c := &models.Category{Name: name}
	if err := models.NewCategoriesRepository(db).CreateCategory(context.Background(), c); err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

func SeedProduct(tb testing.TB, db *gorm.DB, name string, price int64, categoryID uint) *models.Product {
	tb.Helper()
	p := &models.Product{
		Name:        name,
		Description: name + " description",
		Price:       decimal.NewFromInt(price),
		CategoryID:  categoryID,
	}
	if err := models.NewProductsRepository(db).CreateProduct(context.Background(), p); err != nil {
		tb.Fatalf("seed product: %v", err)
	}
	return p
}

func SeedCustomer(tb testing.TB, db *gorm.DB, username string) *models.Customer {
	tb.Helper()
	c := &models.Customer{Username: username, Password: "hash"}
	if err := models.NewCustomersRepository(db).CreateCustomer(context.Background(), c); err != nil {
		tb.Fatalf("seed customer: %v", err)
	}
	return c
}
