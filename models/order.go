package models

import (
	"github.com/shopspring/decimal"
)

// Order represents a customer's order of a single product.
// TotalPrice is derived from the product price at write time.
type Order struct {
	ID         uint            `gorm:"primaryKey"`
	CustomerID uint            `gorm:"not null;index"`
	ProductID  uint            `gorm:"not null;index"`
	Quantity   int             `gorm:"not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// MaxOrderTotal is the largest total a decimal(12,2) column holds.
var MaxOrderTotal = decimal.RequireFromString("9999999999.99")

func (o *Order) TableName() string {
	return "orders"
}
