package entity

import (
	"gorm.io/gorm"
)

// OrderItem snapshots the unit price at order time; it never changes
// when the menu price does. MenuItemID is nil for customized items.
type OrderItem struct {
	gorm.Model
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unitPrice"`
	Total     int64  `json:"total"`
	Note      string `json:"note"`

	// JSON blob describing a customized item (nil MenuItemID).
	Customization string `json:"customization,omitempty"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID *uint     `json:"menuItemId"`
	MenuItem   *MenuItem `json:"-"`
}
