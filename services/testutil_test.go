package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lattelane/entity"
	"lattelane/repository"
)

// newTestDB opens a per-test in-memory sqlite database. The named DSN
// plus a single connection keeps every gorm session on the same
// in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.MenuCategory{},
		&entity.MenuItem{},
		&entity.Cart{},
		&entity.CartItem{},
		&entity.Order{},
		&entity.OrderItem{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	u := entity.User{Email: email, Password: "x", Role: "customer"}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price int64) *entity.MenuItem {
	t.Helper()
	cat := entity.MenuCategory{Name: "Cat " + name}
	require.NoError(t, db.Create(&cat).Error)
	it := entity.MenuItem{Name: name, Price: price, Available: true, CategoryID: cat.ID}
	require.NoError(t, db.Create(&it).Error)
	return &it
}

func seedCartLine(t *testing.T, db *gorm.DB, userID uint, item *entity.MenuItem, qty int) {
	t.Helper()
	var cart entity.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = entity.Cart{UserID: userID}
		require.NoError(t, db.Create(&cart).Error)
	} else {
		require.NoError(t, err)
	}
	line := entity.CartItem{
		CartID:     cart.ID,
		MenuItemID: &item.ID,
		Qty:        qty,
		UnitPrice:  item.Price,
		Total:      item.Price * int64(qty),
	}
	require.NoError(t, db.Create(&line).Error)
}

// seedOrder writes an order directly, bypassing checkout, for tests
// that start mid-lifecycle.
func seedOrder(t *testing.T, db *gorm.DB, userID uint, status entity.OrderStatus, pay entity.PaymentStatus, total int64) *entity.Order {
	t.Helper()
	o := entity.Order{
		PublicID:      uuid.NewString(),
		UserID:        userID,
		Subtotal:      total,
		Total:         total,
		Status:        status,
		PaymentStatus: pay,
		DeliveryType:  entity.DeliveryPickup,
	}
	require.NoError(t, db.Create(&o).Error)
	o.OrderNumber = fmt.Sprintf("ORD-%06d", o.ID)
	require.NoError(t, db.Model(&entity.Order{}).Where("id = ?", o.ID).
		Update("order_number", o.OrderNumber).Error)
	return &o
}

func backdateOrder(t *testing.T, db *gorm.DB, orderID uint, age time.Duration) {
	t.Helper()
	require.NoError(t, db.Model(&entity.Order{}).Where("id = ?", orderID).
		Update("created_at", time.Now().Add(-age)).Error)
}

// feedRecorder captures live-feed events for assertions.
type feedRecorder struct {
	events []OrderEvent
}

func (f *feedRecorder) PublishOrderEvent(e OrderEvent) { f.events = append(f.events, e) }

func testLogger() *zap.Logger { return zap.NewNop() }

func orderRepo(db *gorm.DB) *repository.OrderRepository { return repository.NewOrderRepository(db) }
