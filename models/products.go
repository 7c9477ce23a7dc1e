package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a product in the catalog.
// It includes a unique name, a non-negative price and the category it belongs to.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"uniqueIndex;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoryID  uint            `gorm:"not null;index"`
	Category    Category        `gorm:"foreignKey:CategoryID"`
}

// MaxPrice is the largest price a decimal(10,2) column holds.
var MaxPrice = decimal.RequireFromString("99999999.99")

// PriceScale is the number of decimal places stored for prices and totals.
const PriceScale = 2

func (p *Product) TableName() string {
	return "products"
}

// TotalFor returns the price of quantity units of the product.
func (p *Product) TotalFor(quantity int) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(quantity)))
}
