package entity

import (
	"time"

	"gorm.io/gorm"
)

// Order is one purchase attempt. PublicID is the opaque token carried
// through the payment gateway's metadata; OrderNumber is the
// human-readable sequential number shown to customers and staff.
// All amounts are cents.
type Order struct {
	gorm.Model
	PublicID    string `gorm:"size:36;uniqueIndex;not null" json:"publicId"`
	OrderNumber string `gorm:"size:20;uniqueIndex" json:"orderNumber"`

	UserID uint `json:"userId"`
	User   User `json:"-"`

	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`

	Status        OrderStatus   `gorm:"size:20;index;not null;default:draft" json:"status"`
	PaymentStatus PaymentStatus `gorm:"size:20;index;not null;default:pending" json:"paymentStatus"`

	DeliveryType        DeliveryType `gorm:"size:20;not null;default:pickup" json:"deliveryType"`
	DeliveryAddress     string       `json:"deliveryAddress"`
	SpecialInstructions string       `json:"specialInstructions"`

	// CheckoutID is the gateway checkout-session id for the latest
	// payment attempt. Not persisted on the gateway side of the
	// correlation; the webhook matches on PublicID.
	CheckoutID string     `gorm:"size:64;index" json:"-"`
	PaidAt     *time.Time `json:"paidAt,omitempty"`

	Items []OrderItem `json:"-"`
}
