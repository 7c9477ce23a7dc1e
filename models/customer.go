package models

// Customer represents a registered customer.
// Password holds a bcrypt hash, never the plain-text value.
type Customer struct {
	ID       uint   `gorm:"primaryKey"`
	Username string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"`
}

func (c *Customer) TableName() string {
	return "customers"
}
