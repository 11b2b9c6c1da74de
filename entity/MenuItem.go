package entity

import (
	"gorm.io/gorm"
)

// MenuItem price is stored in cents (R35.00 = 3500).
type MenuItem struct {
	gorm.Model
	Name        string `gorm:"size:200;not null" json:"name"`
	Description string `json:"description"`
	Price       int64  `gorm:"not null" json:"price"`
	Available   bool   `gorm:"not null;default:true" json:"available"`

	CategoryID uint         `json:"categoryId"`
	Category   MenuCategory `json:"-"`

	OrderItems []OrderItem `gorm:"foreignKey:MenuItemID" json:"-"`
}
