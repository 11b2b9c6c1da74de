package repository

import (
	"time"

	"gorm.io/gorm"

	"lattelane/entity"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) SetOrderNumber(tx *gorm.DB, orderID uint, number string) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).
		Update("order_number", number).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetByPublicID resolves the opaque token carried in gateway metadata.
func (r *OrderRepository) GetByPublicID(publicID string) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("public_id = ?", publicID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderForUser scopes the lookup to the owner; a wrong user gets
// the same record-not-found as a missing order.
func (r *OrderRepository) GetOrderForUser(userID uint, publicID string) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("public_id = ? AND user_id = ?", publicID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	PublicID      string               `json:"publicId"`
	OrderNumber   string               `json:"orderNumber"`
	Total         int64                `json:"total"`
	Status        entity.OrderStatus   `json:"status"`
	PaymentStatus entity.PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time            `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("public_id, order_number, total, status, payment_status, created_at").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

// ListActiveOrders is the kitchen view: everything confirmed but not
// yet completed or cancelled, oldest first.
func (r *OrderRepository) ListActiveOrders(limit int) ([]entity.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	var out []entity.Order
	err := r.DB.
		Where("status IN ?", []entity.OrderStatus{entity.OrderConfirmed, entity.OrderPreparing, entity.OrderReady}).
		Order("id ASC").Limit(limit).
		Find(&out).Error
	return out, err
}

// ---------------- Lifecycle guards ----------------

// UpdateStatusGuard flips status from→to in one conditional UPDATE.
// Zero rows affected means the order was not in the expected state.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// CancelGuard cancels from any non-terminal state.
func (r *OrderRepository) CancelGuard(tx *gorm.DB, orderID uint) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status NOT IN ?", orderID, []entity.OrderStatus{entity.OrderCompleted, entity.OrderCancelled}).
		Update("status", entity.OrderCancelled)
	return res.RowsAffected, res.Error
}

// MarkPaid is idempotent: an already-paid order is left untouched and
// reports zero rows affected. A cancelled order is never marked paid;
// a success delivery landing on one is a refund case, not a payment.
func (r *OrderRepository) MarkPaid(tx *gorm.DB, orderID uint, paidAt time.Time) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND payment_status <> ? AND status <> ?",
			orderID, entity.PaymentPaid, entity.OrderCancelled).
		Updates(map[string]any{
			"payment_status": entity.PaymentPaid,
			"paid_at":        paidAt,
		})
	return res.RowsAffected, res.Error
}

// MarkPaymentFailed records a failed attempt without ever downgrading
// a paid order.
func (r *OrderRepository) MarkPaymentFailed(tx *gorm.DB, orderID uint) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND payment_status <> ?", orderID, entity.PaymentPaid).
		Update("payment_status", entity.PaymentFailed)
	return res.RowsAffected, res.Error
}

// SetCheckoutSession stores the gateway session and moves the payment
// sub-state to awaiting_payment for a new or retried attempt.
func (r *OrderRepository) SetCheckoutSession(orderID uint, checkoutID string) error {
	return r.DB.Model(&entity.Order{}).
		Where("id = ? AND payment_status <> ?", orderID, entity.PaymentPaid).
		Updates(map[string]any{
			"checkout_id":    checkoutID,
			"payment_status": entity.PaymentAwaiting,
		}).Error
}

// ---------------- Order items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

func (r *OrderRepository) GetOrderItemsWithMenu(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Preload("MenuItem").Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

// ---------------- Draft sweep ----------------

// ExpiredDraftIDs lists draft orders past the retention cutoff that
// never reached paid. payment_status <> paid (rather than = pending)
// also reclaims awaiting_payment and failed drafts, and re-checks the
// predicate against a webhook racing the sweep.
func (r *OrderRepository) ExpiredDraftIDs(cutoff time.Time) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&entity.Order{}).
		Where("status = ? AND payment_status <> ? AND created_at < ?",
			entity.OrderDraft, entity.PaymentPaid, cutoff).
		Pluck("id", &ids).Error
	return ids, err
}

// DeleteOrdersWithItems removes the given draft candidates and their
// lines. The predicate is re-evaluated inside the transaction so an
// order a webhook just flipped to paid is left intact, items included.
func (r *OrderRepository) DeleteOrdersWithItems(tx *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var confirmed []uint
	err := tx.Model(&entity.Order{}).
		Where("id IN ? AND status = ? AND payment_status <> ?",
			ids, entity.OrderDraft, entity.PaymentPaid).
		Pluck("id", &confirmed).Error
	if err != nil {
		return 0, err
	}
	if len(confirmed) == 0 {
		return 0, nil
	}

	// items first, to satisfy the FK
	if err := tx.Unscoped().Where("order_id IN ?", confirmed).Delete(&entity.OrderItem{}).Error; err != nil {
		return 0, err
	}
	res := tx.Unscoped().Where("id IN ?", confirmed).Delete(&entity.Order{})
	return res.RowsAffected, res.Error
}
