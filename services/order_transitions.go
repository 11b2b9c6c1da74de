package services

import (
	"errors"

	"gorm.io/gorm"

	"lattelane/entity"
)

// Staff-facing lifecycle transitions. Every move is a guarded
// conditional UPDATE so concurrent staff actions (or a racing webhook)
// cannot skip or repeat a step.

func (s *OrderService) StartPreparing(publicID string) (*entity.Order, error) {
	return s.transition(publicID, entity.OrderConfirmed, entity.OrderPreparing)
}

func (s *OrderService) MarkReady(publicID string) (*entity.Order, error) {
	return s.transition(publicID, entity.OrderPreparing, entity.OrderReady)
}

func (s *OrderService) Complete(publicID string) (*entity.Order, error) {
	return s.transition(publicID, entity.OrderReady, entity.OrderCompleted)
}

// Cancel is allowed from any non-terminal state.
func (s *OrderService) Cancel(publicID string) (*entity.Order, error) {
	o, err := s.lookup(publicID)
	if err != nil {
		return nil, err
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		rows, err := s.Repo.CancelGuard(tx, o.ID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.afterTransition(o.ID)
}

func (s *OrderService) ListActive(limit int) ([]entity.Order, error) {
	return s.Repo.ListActiveOrders(limit)
}

func (s *OrderService) transition(publicID string, from, to entity.OrderStatus) (*entity.Order, error) {
	o, err := s.lookup(publicID)
	if err != nil {
		return nil, err
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		rows, err := s.Repo.UpdateStatusGuard(tx, o.ID, from, to)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.afterTransition(o.ID)
}

func (s *OrderService) lookup(publicID string) (*entity.Order, error) {
	o, err := s.Repo.GetByPublicID(publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *OrderService) afterTransition(orderID uint) (*entity.Order, error) {
	fresh, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	publish(s.Feed, fresh)
	if s.Notifier != nil {
		go func(o entity.Order) {
			_ = s.Notifier.OrderStatusChanged(&o, o.Status)
		}(*fresh)
	}
	return fresh, nil
}
