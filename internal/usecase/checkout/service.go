package checkout

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trendyhq/storefront/internal/domain"
	"github.com/trendyhq/storefront/internal/pkg/logger"
	pkgvalidator "github.com/trendyhq/storefront/internal/pkg/validator"
	"github.com/trendyhq/storefront/internal/usecase/cart"
)

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// OrderEvent represents an event emitted when an order is placed
type OrderEvent struct {
	EventType string        `json:"event_type"`
	Timestamp time.Time     `json:"timestamp"`
	Order     *domain.Order `json:"order"`
}

// Quote is the totals preview shown before an order is placed
type Quote struct {
	Totals        domain.CartTotals `json:"totals"`
	FinalAmount   int64             `json:"final_amount"`
	CouponApplied bool              `json:"coupon_applied"`
}

// Service handles checkout business logic: totals, coupon evaluation, order
// snapshot persistence, and the order-placed event
type Service struct {
	cart      *cart.Service
	orders    domain.OrderRepository
	publisher EventPublisher
	validate  *validator.Validate
	logger    *logger.Logger
}

// NewService creates a new checkout service
func NewService(
	cartService *cart.Service,
	orders domain.OrderRepository,
	publisher EventPublisher,
	log *logger.Logger,
) *Service {
	return &Service{
		cart:      cartService,
		orders:    orders,
		publisher: publisher,
		validate:  pkgvalidator.Get(),
		logger:    log,
	}
}

// Quote computes the totals preview for the current cart, with the coupon
// applied to the fee-inclusive total
func (s *Service) Quote(coupon string) Quote {
	totals := s.cart.Totals()
	final, applied := ApplyCoupon(coupon, totals.Total)

	return Quote{
		Totals:        totals,
		FinalAmount:   final,
		CouponApplied: applied,
	}
}

// PlaceOrder validates the delivery details, snapshots the cart into an order,
// persists the snapshot, publishes the order-placed event, and clears the
// cart. The snapshot fully overwrites any previously stored order.
func (s *Service) PlaceOrder(ctx context.Context, details domain.UserDetails, coupon string) (*domain.Order, error) {
	if err := s.validate.Struct(details); err != nil {
		s.logger.Error("Checkout details validation failed", err)
		return nil, domain.ErrInvalidInput
	}

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	totals := s.cart.Totals()
	final, applied := ApplyCoupon(coupon, totals.Total)

	order := &domain.Order{
		ID:            uuid.New(),
		UserDetails:   details,
		CartItems:     lines,
		Subtotal:      totals.Subtotal,
		DeliveryFee:   totals.DeliveryFee,
		FinalAmount:   final,
		CouponApplied: applied,
		Timestamp:     time.Now().UTC(),
	}

	if err := s.orders.SaveLast(ctx, order); err != nil {
		s.logger.Error("Failed to save order snapshot", err)
		return nil, err
	}

	s.publishEvent(order)

	s.cart.Clear()

	s.logger.WithFields(map[string]interface{}{
		"order_id":       order.ID,
		"line_count":     len(order.CartItems),
		"final_amount":   order.FinalAmount,
		"coupon_applied": order.CouponApplied,
	}).Info("Order placed successfully")

	return order, nil
}

// LastOrder retrieves the most recently placed order snapshot
func (s *Service) LastOrder(ctx context.Context) (*domain.Order, error) {
	order, err := s.orders.GetLast(ctx)
	if err != nil {
		if err == domain.ErrNotFound {
			s.logger.Debug("No order has been placed yet")
		} else {
			s.logger.Error("Failed to load last order", err)
		}
		return nil, err
	}

	return order, nil
}

// publishEvent publishes the order-placed event (non-blocking)
func (s *Service) publishEvent(order *domain.Order) {
	event := OrderEvent{
		EventType: "order.placed",
		Timestamp: time.Now().UTC(),
		Order:     order,
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal event for order %s", order.ID)
		return
	}

	// Publish in background to avoid blocking checkout
	go func() {
		if err := s.publisher.Publish(context.Background(), "orders.events", data); err != nil {
			s.logger.Errorf(err, "Failed to publish event for order %s", order.ID)
		}
	}()
}
