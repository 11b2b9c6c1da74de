package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lattelane/entity"
)

func newOrderService(db *gorm.DB, feed *feedRecorder) *OrderService {
	return NewOrderService(db, orderRepo(db), NewLogNotifier(testLogger()), feed)
}

func TestListForUserIsScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db, &feedRecorder{})

	amy := seedUser(t, db, "amy@example.com")
	bob := seedUser(t, db, "bob@example.com")
	mine := seedOrder(t, db, amy.ID, entity.OrderConfirmed, entity.PaymentPaid, 3500)
	seedOrder(t, db, bob.ID, entity.OrderConfirmed, entity.PaymentPaid, 9000)

	list, err := svc.ListForUser(amy.ID, 50)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.PublicID, list[0].PublicID)
	assert.Equal(t, mine.OrderNumber, list[0].OrderNumber)
}

func TestDetailForUserOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db, &feedRecorder{})

	amy := seedUser(t, db, "amy@example.com")
	bob := seedUser(t, db, "bob@example.com")
	order := seedOrder(t, db, amy.ID, entity.OrderConfirmed, entity.PaymentPaid, 3500)

	detail, err := svc.DetailForUser(amy.ID, order.PublicID)
	require.NoError(t, err)
	assert.Equal(t, order.PublicID, detail.ID)
	assert.Equal(t, int64(3500), detail.Total)

	// a wrong owner gets the same answer as a missing order
	_, err = svc.DetailForUser(bob.ID, order.PublicID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = svc.DetailForUser(amy.ID, "2f1b7a36-5f0e-4b3e-9a87-3f60a1d1c111")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestLoadRetryCartSnapshotsPrices(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db, &feedRecorder{})

	amy := seedUser(t, db, "amy@example.com")
	latte := seedMenuItem(t, db, "Latte", 3500)
	order := seedOrder(t, db, amy.ID, entity.OrderDraft, entity.PaymentFailed, 7000)
	require.NoError(t, db.Create(&entity.OrderItem{
		OrderID: order.ID, MenuItemID: &latte.ID, Qty: 2, UnitPrice: 3500, Total: 7000,
	}).Error)
	require.NoError(t, db.Create(&entity.OrderItem{
		OrderID: order.ID, Qty: 1, UnitPrice: 4500, Total: 4500,
		Customization: `{"base":"croissant","extras":["cheese"]}`,
	}).Error)

	// menu price changes after the order was placed
	require.NoError(t, db.Model(&entity.MenuItem{}).Where("id = ?", latte.ID).
		Update("price", 4200).Error)

	cart, err := svc.LoadRetryCart(amy.ID, order.PublicID)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 2)

	assert.Equal(t, "Latte", cart.Lines[0].Name)
	assert.Equal(t, int64(3500), cart.Lines[0].UnitPrice)
	assert.Equal(t, 2, cart.Lines[0].Qty)

	assert.Equal(t, "Custom item", cart.Lines[1].Name)
	assert.Nil(t, cart.Lines[1].MenuItemID)
	assert.Equal(t, int64(4500), cart.Lines[1].UnitPrice)
	assert.NotEmpty(t, cart.Lines[1].Customization)
}

func TestLoadRetryCartRejectsNonDraft(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db, &feedRecorder{})

	amy := seedUser(t, db, "amy@example.com")
	order := seedOrder(t, db, amy.ID, entity.OrderConfirmed, entity.PaymentPaid, 3500)

	_, err := svc.LoadRetryCart(amy.ID, order.PublicID)
	assert.ErrorIs(t, err, ErrOrderNotDraft)
}

func TestStaffTransitions(t *testing.T) {
	db := newTestDB(t)
	feed := &feedRecorder{}
	svc := newOrderService(db, feed)

	amy := seedUser(t, db, "amy@example.com")
	order := seedOrder(t, db, amy.ID, entity.OrderConfirmed, entity.PaymentPaid, 3500)

	o, err := svc.StartPreparing(order.PublicID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPreparing, o.Status)

	// repeating the same step is rejected
	_, err = svc.StartPreparing(order.PublicID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// skipping a step is rejected
	_, err = svc.Complete(order.PublicID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	o, err = svc.MarkReady(order.PublicID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderReady, o.Status)

	o, err = svc.Complete(order.PublicID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompleted, o.Status)

	// each successful move hit the live feed
	require.Len(t, feed.events, 3)
	assert.Equal(t, entity.OrderCompleted, feed.events[2].Status)
}

func TestCancelFromAnyNonTerminalState(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db, &feedRecorder{})

	amy := seedUser(t, db, "amy@example.com")
	preparing := seedOrder(t, db, amy.ID, entity.OrderPreparing, entity.PaymentPaid, 3500)

	o, err := svc.Cancel(preparing.PublicID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, o.Status)

	// terminal orders stay put
	_, err = svc.Cancel(preparing.PublicID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	done := seedOrder(t, db, amy.ID, entity.OrderCompleted, entity.PaymentPaid, 3500)
	_, err = svc.Cancel(done.PublicID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestListActiveOrdersOldestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db, &feedRecorder{})

	amy := seedUser(t, db, "amy@example.com")
	first := seedOrder(t, db, amy.ID, entity.OrderConfirmed, entity.PaymentPaid, 3500)
	second := seedOrder(t, db, amy.ID, entity.OrderPreparing, entity.PaymentPaid, 3500)
	seedOrder(t, db, amy.ID, entity.OrderDraft, entity.PaymentPending, 3500)
	seedOrder(t, db, amy.ID, entity.OrderCompleted, entity.PaymentPaid, 3500)

	active, err := svc.ListActive(100)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, second.ID, active[1].ID)
}
