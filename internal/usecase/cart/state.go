package cart

import (
	"github.com/trendyhq/storefront/internal/domain"
)

// State is the cart ledger: an ordered sequence of lines keyed by product id.
// Transition methods are pure; they copy the line slice before changing it,
// so a previously returned State is never mutated. Two invariants hold at all
// times: at most one line per product id, and every line has quantity >= 1.
type State struct {
	Lines []domain.CartLine
}

// NewState creates an empty cart ledger
func NewState() State {
	return State{}
}

// Add increments the quantity of the line holding the product, or appends a
// new quantity-1 line at the end. Existing line order is preserved.
func (s State) Add(p domain.Product) State {
	lines := make([]domain.CartLine, len(s.Lines), len(s.Lines)+1)
	copy(lines, s.Lines)

	for i := range lines {
		if lines[i].ID == p.ID {
			lines[i].Quantity++
			s.Lines = lines
			return s
		}
	}

	s.Lines = append(lines, domain.CartLine{Product: p, Quantity: 1})
	return s
}

// Remove deletes the line with the given product id; no-op if absent
func (s State) Remove(id int64) State {
	lines := make([]domain.CartLine, 0, len(s.Lines))
	for _, line := range s.Lines {
		if line.ID != id {
			lines = append(lines, line)
		}
	}
	s.Lines = lines
	return s
}

// Increase increments the quantity of the line with the given product id;
// no-op if absent
func (s State) Increase(id int64) State {
	lines := make([]domain.CartLine, len(s.Lines))
	copy(lines, s.Lines)

	for i := range lines {
		if lines[i].ID == id {
			lines[i].Quantity++
			break
		}
	}

	s.Lines = lines
	return s
}

// Decrease decrements the quantity of the line with the given product id, but
// never below 1. A quantity-1 line is left unchanged, not removed; only
// Remove takes a line out of the ledger.
func (s State) Decrease(id int64) State {
	lines := make([]domain.CartLine, len(s.Lines))
	copy(lines, s.Lines)

	for i := range lines {
		if lines[i].ID == id {
			if lines[i].Quantity > 1 {
				lines[i].Quantity--
			}
			break
		}
	}

	s.Lines = lines
	return s
}

// Clear empties the ledger unconditionally
func (s State) Clear() State {
	s.Lines = nil
	return s
}

// Subtotal returns the sum of price times quantity over all lines
func (s State) Subtotal() int64 {
	var sum int64
	for _, line := range s.Lines {
		sum += line.Price * int64(line.Quantity)
	}
	return sum
}

// Len returns the number of distinct lines in the ledger
func (s State) Len() int {
	return len(s.Lines)
}

// Quantity returns the quantity held for the given product id, 0 if absent
func (s State) Quantity(id int64) int {
	for _, line := range s.Lines {
		if line.ID == id {
			return line.Quantity
		}
	}
	return 0
}
