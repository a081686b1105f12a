package catalog

import (
	"strings"

	"github.com/trendyhq/storefront/internal/domain"
)

// State holds the catalog store: the full product list, the active filter and
// pagination parameters, and the derived filtered view. Transition methods are
// pure: they take the receiver by value and return the next State. The
// filtered view is recomputed inside every filter transition, so a read
// immediately after a write is always consistent.
type State struct {
	Items            []domain.Product
	FilteredItems    []domain.Product
	SearchQuery      string
	SelectedCategory *string
	PriceRange       domain.PriceRange
	CurrentPage      int
	ItemsPerPage     int
}

// NewState creates the initial catalog state from the loaded product list.
// The initial price range spans the whole catalog so no product is filtered
// out before the first user action.
func NewState(items []domain.Product, itemsPerPage int) State {
	s := State{
		Items:        items,
		PriceRange:   domain.PriceRange{Min: 0, Max: maxPrice(items)},
		CurrentPage:  1,
		ItemsPerPage: itemsPerPage,
	}
	s.FilteredItems = s.filter()
	return s
}

// WithSearchQuery sets the free-text filter and recomputes the filtered view.
// Resets the current page to 1.
func (s State) WithSearchQuery(query string) State {
	s.SearchQuery = query
	return s.refiltered()
}

// WithCategory sets the category filter (nil means all categories) and
// recomputes the filtered view. Resets the current page to 1.
func (s State) WithCategory(category *string) State {
	s.SelectedCategory = category
	return s.refiltered()
}

// WithPriceRange sets the inclusive price bounds and recomputes the filtered
// view. Resets the current page to 1. Callers must ensure min <= max.
func (s State) WithPriceRange(min, max int64) State {
	s.PriceRange = domain.PriceRange{Min: min, Max: max}
	return s.refiltered()
}

// WithPage sets the current page directly, trusting the caller to stay within
// range. The service layer clamps before dispatching here.
func (s State) WithPage(page int) State {
	s.CurrentPage = page
	return s
}

// NextPage advances the current page by one, or does nothing when already on
// the last page.
func (s State) NextPage() State {
	if s.CurrentPage < s.TotalPages() {
		s.CurrentPage++
	}
	return s
}

// TotalPages returns the number of pages the filtered view spans.
func (s State) TotalPages() int {
	if s.ItemsPerPage <= 0 {
		return 0
	}
	return (len(s.FilteredItems) + s.ItemsPerPage - 1) / s.ItemsPerPage
}

// PaginatedItems returns the revealed prefix of the filtered view. Pagination
// is cumulative: page 2 at page size 6 reveals items 1-12, not 7-12.
func (s State) PaginatedItems() []domain.Product {
	end := s.CurrentPage * s.ItemsPerPage
	if end > len(s.FilteredItems) {
		end = len(s.FilteredItems)
	}
	if end < 0 {
		end = 0
	}
	return s.FilteredItems[:end]
}

// refiltered recomputes the derived view and resets pagination. Every filter
// mutation goes through here.
func (s State) refiltered() State {
	s.FilteredItems = s.filter()
	s.CurrentPage = 1
	return s
}

// filter applies all active filters in a single order-preserving pass.
func (s State) filter() []domain.Product {
	filtered := make([]domain.Product, 0, len(s.Items))
	for _, p := range s.Items {
		if s.matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func (s State) matches(p domain.Product) bool {
	if s.SelectedCategory != nil && p.Category != *s.SelectedCategory {
		return false
	}

	// The emptiness check trims the query, the substring match does not.
	if strings.TrimSpace(s.SearchQuery) != "" {
		query := strings.ToLower(s.SearchQuery)
		if !strings.Contains(strings.ToLower(p.Name), query) {
			return false
		}
	}

	return s.PriceRange.Contains(p.Price)
}

func maxPrice(items []domain.Product) int64 {
	var max int64
	for _, p := range items {
		if p.Price > max {
			max = p.Price
		}
	}
	return max
}
