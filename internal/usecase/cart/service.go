package cart

import (
	"sync"

	"github.com/trendyhq/storefront/internal/domain"
	"github.com/trendyhq/storefront/internal/pkg/logger"
)

// Service owns the process-wide cart ledger and serializes dispatch into it.
// Composite operations are built from the atomic transitions only, so the
// ledger invariants are never bypassed mid-sequence.
type Service struct {
	mu          sync.RWMutex
	state       State
	deliveryFee int64
	logger      *logger.Logger
}

// NewService creates a new cart service with an empty ledger
func NewService(deliveryFee int64, log *logger.Logger) *Service {
	return &Service{
		state:       NewState(),
		deliveryFee: deliveryFee,
		logger:      log,
	}
}

// Add puts one unit of the product into the cart
func (s *Service) Add(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.Add(p)
	s.logger.WithFields(map[string]interface{}{
		"product_id": p.ID,
		"quantity":   s.state.Quantity(p.ID),
	}).Debug("Product added to cart")
}

// AddN puts n units of the product into the cart by repeated single adds.
// Anything below one unit still adds one, matching the detail-page picker.
func (s *Service) AddN(p domain.Product, n int) {
	if n < 1 {
		n = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < n; i++ {
		s.state = s.state.Add(p)
	}
}

// Remove deletes the product's line entirely; no-op if absent
func (s *Service) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.Remove(id)
	s.logger.Debugf("Product %d removed from cart", id)
}

// Increase adds one unit to the product's line; no-op if absent
func (s *Service) Increase(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.Increase(id)
}

// Decrease takes one unit off the product's line, flooring at one unit;
// no-op if absent
func (s *Service) Decrease(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.Decrease(id)
}

// SetQuantity reconciles a line to an absolute target quantity by replaying
// the atomic operations: the difference is applied one step at a time, and a
// target of zero or less removes the line instead.
func (s *Service) SetQuantity(id int64, target int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if target <= 0 {
		s.state = s.state.Remove(id)
		return
	}

	current := s.state.Quantity(id)
	if current == 0 {
		// Unknown id: every atomic operation is a no-op
		return
	}

	diff := target - current
	for i := 0; i < diff; i++ {
		s.state = s.state.Increase(id)
	}
	for i := 0; i < -diff; i++ {
		s.state = s.state.Decrease(id)
	}
}

// Clear empties the cart unconditionally
func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.Clear()
	s.logger.Debug("Cart cleared")
}

// Lines returns a copy of the current ledger lines in order
func (s *Service) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]domain.CartLine, len(s.state.Lines))
	copy(lines, s.state.Lines)
	return lines
}

// Totals returns the derived monetary view. The delivery fee applies whenever
// the cart holds anything; an empty cart totals to zero.
func (s *Service) Totals() domain.CartTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subtotal := s.state.Subtotal()
	totals := domain.CartTotals{
		Subtotal:    subtotal,
		DeliveryFee: s.deliveryFee,
	}
	if subtotal > 0 {
		totals.Total = subtotal + s.deliveryFee
	}
	return totals
}
