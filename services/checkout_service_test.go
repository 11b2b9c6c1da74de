package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lattelane/entity"
	"lattelane/pkg/yoco"
	"lattelane/repository"
)

// fakeGateway is an httptest stand-in for the Yoco checkouts API. It
// records the last request and answers with a fixed session.
type fakeGateway struct {
	srv      *httptest.Server
	lastReq  yoco.CheckoutRequest
	failWith int // non-zero: respond with this HTTP status
	calls    int
}

func newFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()
	g := &fakeGateway{}
	g.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.calls++
		if r.Method != http.MethodPost || r.URL.Path != "/checkouts" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&g.lastReq))
		if g.failWith != 0 {
			w.WriteHeader(g.failWith)
			w.Write([]byte(`{"message":"boom"}`))
			return
		}
		json.NewEncoder(w).Encode(yoco.Checkout{
			ID:          "ch_test_123",
			RedirectURL: "https://pay.example/ch_test_123",
			Status:      "created",
			Amount:      g.lastReq.Amount,
			Currency:    g.lastReq.Currency,
			Metadata:    g.lastReq.Metadata,
		})
	}))
	t.Cleanup(g.srv.Close)
	return g
}

func newCheckoutService(db *gorm.DB, gw *fakeGateway) *CheckoutService {
	client := yoco.NewClient("sk_test", yoco.WithBaseURL(gw.srv.URL))
	return NewCheckoutService(
		db,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		client,
		testLogger(),
		"https://lattelane.example", "ZAR", 2000,
	)
}

func TestCheckoutCreatesDraftOrderAndSession(t *testing.T) {
	db := newTestDB(t)
	gw := newFakeGateway(t)
	svc := newCheckoutService(db, gw)

	user := seedUser(t, db, "amy@example.com")
	latte := seedMenuItem(t, db, "Latte", 3500)
	toastie := seedMenuItem(t, db, "Toastie", 8500)
	seedCartLine(t, db, user.ID, latte, 2)
	seedCartLine(t, db, user.ID, toastie, 1)

	res, err := svc.Checkout(context.Background(), user.ID, &CheckoutReq{DeliveryType: "pickup"})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, int64(15500), res.Total)
	assert.Equal(t, "https://pay.example/ch_test_123", res.RedirectURL)
	assert.NotEmpty(t, res.OrderID)
	assert.Regexp(t, `^ORD-\d{6}$`, res.OrderNumber)

	var order entity.Order
	require.NoError(t, db.Where("public_id = ?", res.OrderID).First(&order).Error)
	assert.Equal(t, entity.OrderDraft, order.Status)
	assert.Equal(t, entity.PaymentAwaiting, order.PaymentStatus)
	assert.Equal(t, "ch_test_123", order.CheckoutID)
	assert.Equal(t, int64(15500), order.Subtotal)
	assert.Equal(t, int64(0), order.DeliveryFee)

	var items []entity.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id").Find(&items).Error)
	require.Len(t, items, 2)
	assert.Equal(t, int64(3500), items[0].UnitPrice)
	assert.Equal(t, 2, items[0].Qty)
	assert.Equal(t, int64(8500), items[1].UnitPrice)

	// gateway got the correlation token, not the numeric PK
	assert.Equal(t, order.PublicID, gw.lastReq.Metadata.OrderID)
	assert.Equal(t, int64(15500), gw.lastReq.Amount)
	assert.Equal(t, "ZAR", gw.lastReq.Currency)

	// cart is consumed
	var lines int64
	require.NoError(t, db.Model(&entity.CartItem{}).Count(&lines).Error)
	assert.Zero(t, lines)
}

func TestCheckoutDeliveryAddsFee(t *testing.T) {
	db := newTestDB(t)
	gw := newFakeGateway(t)
	svc := newCheckoutService(db, gw)

	user := seedUser(t, db, "amy@example.com")
	latte := seedMenuItem(t, db, "Latte", 3500)
	seedCartLine(t, db, user.ID, latte, 1)

	res, err := svc.Checkout(context.Background(), user.ID, &CheckoutReq{
		DeliveryType:    "delivery",
		DeliveryAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5500), res.Total)

	var order entity.Order
	require.NoError(t, db.Where("public_id = ?", res.OrderID).First(&order).Error)
	assert.Equal(t, int64(2000), order.DeliveryFee)
	assert.Equal(t, "12 Harbour Rd", order.DeliveryAddress)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	gw := newFakeGateway(t)
	svc := newCheckoutService(db, gw)

	user := seedUser(t, db, "amy@example.com")

	res, err := svc.Checkout(context.Background(), user.ID, &CheckoutReq{DeliveryType: "pickup"})
	assert.ErrorIs(t, err, ErrCartEmpty)
	assert.Nil(t, res)
	assert.Zero(t, gw.calls)
}

func TestCheckoutGatewayFailureKeepsDraft(t *testing.T) {
	db := newTestDB(t)
	gw := newFakeGateway(t)
	gw.failWith = http.StatusBadGateway
	svc := newCheckoutService(db, gw)

	user := seedUser(t, db, "amy@example.com")
	latte := seedMenuItem(t, db, "Latte", 3500)
	seedCartLine(t, db, user.ID, latte, 1)

	res, err := svc.Checkout(context.Background(), user.ID, &CheckoutReq{DeliveryType: "pickup"})
	require.Error(t, err)

	var apiErr *yoco.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)

	// the draft is returned with the error so a retry can be offered
	require.NotNil(t, res)
	assert.NotEmpty(t, res.OrderID)
	assert.Empty(t, res.RedirectURL)

	var order entity.Order
	require.NoError(t, db.Where("public_id = ?", res.OrderID).First(&order).Error)
	assert.Equal(t, entity.OrderDraft, order.Status)
	assert.Equal(t, entity.PaymentPending, order.PaymentStatus)
	assert.Empty(t, order.CheckoutID)

	// the cart was still consumed; retry reloads from the order
	var lines int64
	require.NoError(t, db.Model(&entity.CartItem{}).Count(&lines).Error)
	assert.Zero(t, lines)
}

func TestRetryCheckout(t *testing.T) {
	db := newTestDB(t)
	gw := newFakeGateway(t)
	svc := newCheckoutService(db, gw)

	user := seedUser(t, db, "amy@example.com")
	other := seedUser(t, db, "bob@example.com")
	draft := seedOrder(t, db, user.ID, entity.OrderDraft, entity.PaymentFailed, 3500)

	res, err := svc.RetryCheckout(context.Background(), user.ID, draft.PublicID)
	require.NoError(t, err)
	assert.Equal(t, draft.PublicID, res.OrderID)
	assert.Equal(t, "https://pay.example/ch_test_123", res.RedirectURL)

	var fresh entity.Order
	require.NoError(t, db.First(&fresh, draft.ID).Error)
	assert.Equal(t, entity.PaymentAwaiting, fresh.PaymentStatus)
	assert.Equal(t, "ch_test_123", fresh.CheckoutID)

	// someone else's order must look like it does not exist
	_, err = svc.RetryCheckout(context.Background(), other.ID, draft.PublicID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	confirmed := seedOrder(t, db, user.ID, entity.OrderConfirmed, entity.PaymentPaid, 3500)
	_, err = svc.RetryCheckout(context.Background(), user.ID, confirmed.PublicID)
	assert.ErrorIs(t, err, ErrOrderNotDraft)
}
