// Package notifier turns order-placed events into customer notifications.
// Delivery is a structured log line standing in for a real mail/SMS gateway.
package notifier

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/trendyhq/storefront/internal/domain"
	"github.com/trendyhq/storefront/internal/pkg/currency"
	"github.com/trendyhq/storefront/internal/pkg/logger"
)

// OrderEvent represents an order event received from NATS
type OrderEvent struct {
	EventType string        `json:"event_type"`
	Timestamp time.Time     `json:"timestamp"`
	Order     *domain.Order `json:"order"`
}

// Notifier processes order events and emits confirmation notifications
type Notifier struct {
	currencyGlyph string
	logger        *logger.Logger
}

// New creates a new notifier
func New(currencyGlyph string, log *logger.Logger) *Notifier {
	return &Notifier{
		currencyGlyph: currencyGlyph,
		logger:        log,
	}
}

// HandleEvent processes one order event. Returning an error triggers a NATS
// redelivery, so only genuinely retryable failures should propagate;
// malformed payloads are retried up to the delivery cap and then dropped.
func (n *Notifier) HandleEvent(data []byte) error {
	var event OrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		n.logger.Error("Failed to unmarshal order event", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.Order == nil {
		return fmt.Errorf("order event %q carries no order", event.EventType)
	}

	order := event.Order

	n.logger.WithFields(map[string]any{
		"event_type": event.EventType,
		"order_id":   order.ID.String(),
		"timestamp":  event.Timestamp,
	}).Info("Received order event")

	n.logger.WithFields(map[string]any{
		"order_id":       order.ID.String(),
		"recipient":      order.UserDetails.Email,
		"customer":       order.UserDetails.FirstName + " " + order.UserDetails.LastName,
		"items":          n.summarize(order.CartItems),
		"final_amount":   currency.Format(n.currencyGlyph, order.FinalAmount),
		"coupon_applied": order.CouponApplied,
	}).Info("Order confirmation notification sent")

	return nil
}

// summarize renders the order lines as "2 x Red Cap, 1 x Blue Cap"
func (n *Notifier) summarize(lines []domain.CartLine) string {
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, fmt.Sprintf("%d x %s", line.Quantity, line.Name))
	}
	return strings.Join(parts, ", ")
}
