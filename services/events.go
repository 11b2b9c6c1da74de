package services

import "lattelane/entity"

// OrderEvent is pushed to the staff live feed on every lifecycle
// change.
type OrderEvent struct {
	PublicID      string               `json:"orderId"`
	OrderNumber   string               `json:"orderNumber"`
	Status        entity.OrderStatus   `json:"status"`
	PaymentStatus entity.PaymentStatus `json:"paymentStatus"`
}

// OrderEventPublisher is implemented by the WebSocket hub. A nil
// publisher is valid and drops events.
type OrderEventPublisher interface {
	PublishOrderEvent(OrderEvent)
}

func publish(p OrderEventPublisher, o *entity.Order) {
	if p == nil {
		return
	}
	p.PublishOrderEvent(OrderEvent{
		PublicID:      o.PublicID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
	})
}
