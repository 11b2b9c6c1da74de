package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lattelane/entity"
	"lattelane/pkg/yoco"
	"lattelane/repository"
)

// CheckoutService turns a cart into a draft order plus a hosted
// payment redirect. The order and its lines are written in one
// transaction; a gateway failure after that leaves the draft in place
// for retry or the cleanup sweep, never a rollback.
type CheckoutService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	CartRepo *repository.CartRepository
	Gateway  *yoco.Client
	Log      *zap.Logger

	BaseURL     string
	Currency    string
	DeliveryFee int64 // cents, applied to delivery orders only
}

func NewCheckoutService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	gateway *yoco.Client,
	log *zap.Logger,
	baseURL, currency string,
	deliveryFee int64,
) *CheckoutService {
	return &CheckoutService{
		DB: db, Repo: repo, CartRepo: cartRepo, Gateway: gateway, Log: log,
		BaseURL: baseURL, Currency: currency, DeliveryFee: deliveryFee,
	}
}

type CheckoutReq struct {
	DeliveryType        string `json:"deliveryType" binding:"required,oneof=pickup dine_in delivery"`
	DeliveryAddress     string `json:"deliveryAddress"`
	SpecialInstructions string `json:"specialInstructions"`
}

type CheckoutRes struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Total       int64  `json:"total"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

// Checkout creates the draft order from the user's cart and a gateway
// checkout session. When the gateway call fails the draft order is
// still returned alongside the error so callers can offer a retry.
func (s *CheckoutService) Checkout(ctx context.Context, userID uint, req *CheckoutReq) (*CheckoutRes, error) {
	cart, err := s.CartRepo.GetCartWithItems(userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	var subtotal int64
	for _, it := range cart.Items {
		subtotal += it.Total
	}
	deliveryFee := int64(0)
	if entity.DeliveryType(req.DeliveryType) == entity.DeliveryDelivery {
		deliveryFee = s.DeliveryFee
	}
	total := subtotal + deliveryFee

	var order entity.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		order = entity.Order{
			PublicID:            uuid.NewString(),
			UserID:              userID,
			Subtotal:            subtotal,
			DeliveryFee:         deliveryFee,
			Total:               total,
			Status:              entity.OrderDraft,
			PaymentStatus:       entity.PaymentPending,
			DeliveryType:        entity.DeliveryType(req.DeliveryType),
			DeliveryAddress:     req.DeliveryAddress,
			SpecialInstructions: req.SpecialInstructions,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		order.OrderNumber = fmt.Sprintf("ORD-%06d", order.ID)
		if err := s.Repo.SetOrderNumber(tx, order.ID, order.OrderNumber); err != nil {
			return err
		}

		for _, it := range cart.Items {
			oi := entity.OrderItem{
				OrderID:       order.ID,
				MenuItemID:    it.MenuItemID,
				Qty:           it.Qty,
				UnitPrice:     it.UnitPrice, // snapshot from the cart, never re-fetched
				Total:         it.Total,
				Note:          it.Note,
				Customization: it.Customization,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}

		return s.CartRepo.ClearCart(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	res := &CheckoutRes{OrderID: order.PublicID, OrderNumber: order.OrderNumber, Total: order.Total}

	redirect, err := s.createSession(ctx, &order)
	if err != nil {
		s.Log.Warn("checkout session creation failed, draft kept",
			zap.String("orderNumber", order.OrderNumber), zap.Error(err))
		return res, err
	}
	res.RedirectURL = redirect
	return res, nil
}

// RetryCheckout opens a fresh gateway session for an existing draft
// order, e.g. after a failed or abandoned payment.
func (s *CheckoutService) RetryCheckout(ctx context.Context, userID uint, publicID string) (*CheckoutRes, error) {
	order, err := s.Repo.GetOrderForUser(userID, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.Status != entity.OrderDraft {
		return nil, ErrOrderNotDraft
	}

	res := &CheckoutRes{OrderID: order.PublicID, OrderNumber: order.OrderNumber, Total: order.Total}
	redirect, err := s.createSession(ctx, order)
	if err != nil {
		return res, err
	}
	res.RedirectURL = redirect
	return res, nil
}

func (s *CheckoutService) createSession(ctx context.Context, order *entity.Order) (string, error) {
	checkout, err := s.Gateway.CreateCheckout(ctx, &yoco.CheckoutRequest{
		Amount:     order.Total,
		Currency:   s.Currency,
		SuccessURL: s.BaseURL + "/account?payment=success&orderId=" + order.PublicID,
		CancelURL:  s.BaseURL + "/cart/payment/cancelled?orderId=" + order.PublicID,
		FailureURL: s.BaseURL + "/cart/payment/failed?orderId=" + order.PublicID,
		Metadata: yoco.CheckoutMetadata{
			OrderID: order.PublicID,
			UserID:  strconv.FormatUint(uint64(order.UserID), 10),
		},
	})
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	if err := s.Repo.SetCheckoutSession(order.ID, checkout.ID); err != nil {
		return "", err
	}
	return checkout.RedirectURL, nil
}
