package entity

import (
	"gorm.io/gorm"
)

type CartItem struct {
	gorm.Model
	CartID uint `json:"cartId"`
	Cart   Cart `json:"-"`

	MenuItemID *uint     `json:"menuItemId"`
	MenuItem   *MenuItem `json:"-"`

	Qty       int   `json:"qty"`
	UnitPrice int64 `json:"unitPrice"` // snapshot taken when the item is added
	Total     int64 `json:"total"`

	Note          string `json:"note"`
	Customization string `json:"customization,omitempty"`
}
