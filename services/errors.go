package services

import "errors"

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrMenuItemNotFound   = errors.New("menu item not found")
	ErrMenuItemNotForSale = errors.New("menu item not available")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotDraft      = errors.New("order is not awaiting payment")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrEmailTaken         = errors.New("email already registered")
	ErrBadCredentials     = errors.New("invalid email or password")
)
