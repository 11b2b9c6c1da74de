package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lattelane/entity"
	"lattelane/pkg/yoco"
	"lattelane/repository"
)

// ErrBadMetadata marks a structurally invalid correlation payload; the
// controller maps it to a 400 so the gateway's alerting fires.
var ErrBadMetadata = errors.New("webhook metadata missing or invalid orderId")

// eventKeyTTL bounds the dedup cache; the gateway stops retrying a
// delivery long before this.
const eventKeyTTL = 24 * time.Hour

// WebhookService reconciles asynchronous payment notifications against
// stored orders. Signature verification happens at the HTTP boundary;
// this service receives parsed, authenticated events.
type WebhookService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	Events   *redis.Client // optional event-id dedup cache; nil skips it
	Notifier Notifier
	Feed     OrderEventPublisher
	Log      *zap.Logger
}

func NewWebhookService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	events *redis.Client,
	notifier Notifier,
	feed OrderEventPublisher,
	log *zap.Logger,
) *WebhookService {
	return &WebhookService{DB: db, Repo: repo, Events: events, Notifier: notifier, Feed: feed, Log: log}
}

// WebhookResult tells the controller how the event was handled; all
// three outcomes are acknowledged with a 2xx.
type WebhookResult struct {
	OrderID   string             `json:"orderId,omitempty"`
	Status    entity.OrderStatus `json:"status,omitempty"`
	Ignored   bool               `json:"ignored,omitempty"`
	Duplicate bool               `json:"duplicate,omitempty"`
}

// Process applies the transition rules: success sets payment_status=paid
// and advances draft→confirmed; failure/cancellation sets
// payment_status=failed and leaves the order in draft so checkout can
// be retried. Replays and unknown orders are acknowledged no-ops, and
// a success landing on a cancelled order is acknowledged without ever
// marking it paid.
func (s *WebhookService) Process(ctx context.Context, ev *yoco.WebhookEvent) (*WebhookResult, error) {
	orderID := ev.Payload.Metadata.OrderID
	if orderID == "" {
		return nil, ErrBadMetadata
	}
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadMetadata, orderID)
	}

	order, err := s.Repo.GetByPublicID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Acknowledge so the gateway does not retry forever;
			// never create an order from a webhook.
			s.Log.Warn("webhook for unknown order",
				zap.String("orderId", orderID), zap.String("event", ev.ID))
			return &WebhookResult{OrderID: orderID, Ignored: true}, nil
		}
		return nil, err
	}

	if dup, err := s.seenBefore(ctx, ev.ID); err != nil {
		s.Log.Warn("webhook event cache unavailable", zap.Error(err))
	} else if dup {
		return &WebhookResult{OrderID: orderID, Status: order.Status, Duplicate: true}, nil
	}

	if ev.Payload.Amount != 0 && ev.Payload.Amount != order.Total {
		s.Log.Warn("webhook amount mismatch",
			zap.String("orderNumber", order.OrderNumber),
			zap.Int64("orderTotal", order.Total),
			zap.Int64("eventAmount", ev.Payload.Amount))
	}

	switch {
	case ev.Succeeded():
		return s.applySuccess(order)
	case ev.Failed():
		return s.applyFailure(order)
	default:
		return nil, fmt.Errorf("unsupported event type %q", ev.Type)
	}
}

func (s *WebhookService) applySuccess(order *entity.Order) (*WebhookResult, error) {
	if order.Status == entity.OrderCancelled {
		// The money was taken but staff already cancelled; the order
		// must never read paid. Flag it for a manual refund.
		s.Log.Warn("payment succeeded for cancelled order, refund required",
			zap.String("orderNumber", order.OrderNumber),
			zap.Int64("total", order.Total))
		return &WebhookResult{OrderID: order.PublicID, Status: order.Status, Ignored: true}, nil
	}

	var confirmed bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		paid, err := s.Repo.MarkPaid(tx, order.ID, time.Now())
		if err != nil {
			return err
		}
		rows, err := s.Repo.UpdateStatusGuard(tx, order.ID, entity.OrderDraft, entity.OrderConfirmed)
		if err != nil {
			return err
		}
		// rows==0 with paid==0 is a pure replay; rows==0 with paid>0
		// means a staff transition already moved the order on.
		confirmed = rows > 0 && paid > 0
		return nil
	})
	if err != nil {
		return nil, err
	}

	fresh, err := s.Repo.GetOrder(order.ID)
	if err != nil {
		return nil, err
	}

	if confirmed {
		publish(s.Feed, fresh)
		// Fire-and-forget: a notification failure must not fail the
		// webhook response.
		go func(o entity.Order) {
			if err := s.Notifier.OrderConfirmed(&o); err != nil {
				s.Log.Error("order confirmation notification failed",
					zap.String("orderNumber", o.OrderNumber), zap.Error(err))
			}
		}(*fresh)
	}

	return &WebhookResult{OrderID: fresh.PublicID, Status: fresh.Status, Duplicate: !confirmed}, nil
}

func (s *WebhookService) applyFailure(order *entity.Order) (*WebhookResult, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		_, err := s.Repo.MarkPaymentFailed(tx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	fresh, err := s.Repo.GetOrder(order.ID)
	if err != nil {
		return nil, err
	}
	s.Log.Info("payment attempt failed, order stays retryable",
		zap.String("orderNumber", fresh.OrderNumber),
		zap.String("paymentStatus", string(fresh.PaymentStatus)))
	return &WebhookResult{OrderID: fresh.PublicID, Status: fresh.Status}, nil
}

// seenBefore records the event id in redis; the first delivery wins.
// With no cache configured the guarded updates are the only replay
// defense, which is enough for correctness.
func (s *WebhookService) seenBefore(ctx context.Context, eventID string) (bool, error) {
	if s.Events == nil || eventID == "" {
		return false, nil
	}
	ok, err := s.Events.SetNX(ctx, "webhook:event:"+eventID, 1, eventKeyTTL).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}
