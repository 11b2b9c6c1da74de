package services

import (
	"go.uber.org/zap"

	"lattelane/entity"
	"lattelane/utils"
)

// Notifier delivers customer-facing order notifications. Delivery is
// best-effort: callers invoke it fire-and-forget and a failure never
// rolls back the lifecycle transition that triggered it.
type Notifier interface {
	OrderConfirmed(o *entity.Order) error
	OrderStatusChanged(o *entity.Order, status entity.OrderStatus) error
}

// LogNotifier records notifications instead of sending them; the real
// e-mail provider sits behind the same interface out of process.
type LogNotifier struct {
	Log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier { return &LogNotifier{Log: log} }

func (n *LogNotifier) OrderConfirmed(o *entity.Order) error {
	n.Log.Info("order confirmation notification",
		zap.String("orderNumber", o.OrderNumber),
		zap.Uint("userId", o.UserID),
		zap.String("total", utils.FormatRands(o.Total)))
	return nil
}

func (n *LogNotifier) OrderStatusChanged(o *entity.Order, status entity.OrderStatus) error {
	n.Log.Info("order status notification",
		zap.String("orderNumber", o.OrderNumber),
		zap.String("status", string(status)))
	return nil
}
