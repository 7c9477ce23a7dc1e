package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates the four shop tables and their indexes.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&Category{},
		&Product{},
		&Customer{},
		&Order{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
