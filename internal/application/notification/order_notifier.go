package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tradelink/backend/internal/domain/identity"
	"github.com/tradelink/backend/internal/domain/order"
	"github.com/tradelink/backend/internal/domain/shared"
	"github.com/tradelink/backend/internal/infrastructure/sms"
	"github.com/tradelink/backend/internal/infrastructure/telemetry"
)

// OrderNotifier listens for order events and sends SMS notifications
// to the retailer: a confirmation on placement and an update on every
// status change. Delivery problems are logged and never propagate
// beyond this handler.
type OrderNotifier struct {
	userRepo identity.UserRepository
	sender   sms.Sender
	metrics  *telemetry.OrderMetrics
	logger   *zap.Logger
}

// NewOrderNotifier creates an order notification handler
func NewOrderNotifier(userRepo identity.UserRepository, sender sms.Sender, logger *zap.Logger) *OrderNotifier {
	return &OrderNotifier{
		userRepo: userRepo,
		sender:   sender,
		logger:   logger,
	}
}

// SetMetrics attaches notification metrics recording
func (n *OrderNotifier) SetMetrics(metrics *telemetry.OrderMetrics) {
	n.metrics = metrics
}

// EventTypes returns the event types this handler subscribes to
func (n *OrderNotifier) EventTypes() []string {
	return []string{
		order.EventTypeOrderPlaced,
		order.EventTypeOrderStatusChanged,
	}
}

// Handle dispatches one order event to the right SMS
func (n *OrderNotifier) Handle(ctx context.Context, evt shared.DomainEvent) error {
	switch e := evt.(type) {
	case *order.OrderPlacedEvent:
		body := fmt.Sprintf("Your order %s has been placed: %d x %s for %s.",
			e.OrderNumber, e.Quantity, e.ProductName, e.TotalAmount.StringFixed(2))
		n.notify(ctx, e.RetailerID, body)
	case *order.OrderStatusChangedEvent:
		body := fmt.Sprintf("Order %s update: %s.", e.OrderNumber, e.ToStatus.Label())
		n.notify(ctx, e.RetailerID, body)
	default:
		n.logger.Debug("ignoring unexpected event", zap.String("event_type", evt.EventType()))
	}
	return nil
}

// notify looks up the recipient's phone number and sends the message.
// Accounts without a phone number are skipped silently.
func (n *OrderNotifier) notify(ctx context.Context, userIDStr, body string) {
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		n.logger.Warn("invalid user ID on order event", zap.String("user_id", userIDStr))
		return
	}

	user, err := n.userRepo.FindByID(ctx, userID)
	if err != nil {
		n.logger.Warn("failed to load notification recipient",
			zap.String("user_id", userIDStr),
			zap.Error(err),
		)
		return
	}
	if user.Phone == "" {
		return
	}

	if err := n.sender.Send(ctx, user.Phone, body); err != nil {
		// An unreachable SMS provider is a degradation, not a failure
		if errors.Is(err, shared.ErrDependencyUnavailable) {
			n.logger.Warn("sms provider unavailable", zap.Error(err))
		} else {
			n.logger.Error("sms delivery failed", zap.Error(err))
		}
		if n.metrics != nil {
			n.metrics.RecordNotification(ctx, false)
		}
		return
	}
	if n.metrics != nil {
		n.metrics.RecordNotification(ctx, true)
	}
}

var _ shared.EventHandler = (*OrderNotifier)(nil)
