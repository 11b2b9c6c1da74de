package services

import (
	"errors"

	"gorm.io/gorm"

	"lattelane/entity"
	"lattelane/repository"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	Notifier Notifier
	Feed     OrderEventPublisher
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, notifier Notifier, feed OrderEventPublisher) *OrderService {
	return &OrderService{DB: db, Repo: repo, Notifier: notifier, Feed: feed}
}

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrdersForUser(userID, limit)
}

type OrderDetail struct {
	ID                  string               `json:"id"`
	OrderNumber         string               `json:"orderNumber"`
	Subtotal            int64                `json:"subtotal"`
	DeliveryFee         int64                `json:"deliveryFee"`
	Total               int64                `json:"total"`
	Status              entity.OrderStatus   `json:"status"`
	PaymentStatus       entity.PaymentStatus `json:"paymentStatus"`
	DeliveryType        entity.DeliveryType  `json:"deliveryType"`
	DeliveryAddress     string               `json:"deliveryAddress,omitempty"`
	SpecialInstructions string               `json:"specialInstructions,omitempty"`
	Items               []entity.OrderItem   `json:"items"`
}

func (s *OrderService) DetailForUser(userID uint, publicID string) (*OrderDetail, error) {
	o, err := s.Repo.GetOrderForUser(userID, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	items, err := s.Repo.GetOrderItems(o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{
		ID: o.PublicID, OrderNumber: o.OrderNumber,
		Subtotal: o.Subtotal, DeliveryFee: o.DeliveryFee, Total: o.Total,
		Status: o.Status, PaymentStatus: o.PaymentStatus,
		DeliveryType: o.DeliveryType, DeliveryAddress: o.DeliveryAddress,
		SpecialInstructions: o.SpecialInstructions,
		Items:               items,
	}, nil
}

// RetryLine is one reconstructed cart line: current display fields
// joined from the menu, price always the stored snapshot.
type RetryLine struct {
	MenuItemID    *uint  `json:"menuItemId"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Qty           int    `json:"qty"`
	UnitPrice     int64  `json:"unitPrice"`
	Total         int64  `json:"total"`
	Note          string `json:"note,omitempty"`
	Customization string `json:"customization,omitempty"`
}

type RetryCart struct {
	OrderID     string      `json:"orderId"`
	OrderNumber string      `json:"orderNumber"`
	Total       int64       `json:"total"`
	Lines       []RetryLine `json:"lines"`
}

// LoadRetryCart rebuilds a cart from a draft order so the customer can
// resume checkout without re-selecting items. Ownership mismatches are
// reported as not-found; existence must not leak.
func (s *OrderService) LoadRetryCart(userID uint, publicID string) (*RetryCart, error) {
	o, err := s.Repo.GetOrderForUser(userID, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if o.Status != entity.OrderDraft {
		return nil, ErrOrderNotDraft
	}

	items, err := s.Repo.GetOrderItemsWithMenu(o.ID)
	if err != nil {
		return nil, err
	}

	out := &RetryCart{OrderID: o.PublicID, OrderNumber: o.OrderNumber, Total: o.Total}
	for _, it := range items {
		line := RetryLine{
			MenuItemID:    it.MenuItemID,
			Qty:           it.Qty,
			UnitPrice:     it.UnitPrice,
			Total:         it.Total,
			Note:          it.Note,
			Customization: it.Customization,
		}
		if it.MenuItem != nil {
			line.Name = it.MenuItem.Name
			line.Description = it.MenuItem.Description
		} else {
			line.Name = "Custom item"
		}
		out.Lines = append(out.Lines, line)
	}
	return out, nil
}
