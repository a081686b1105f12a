package catalog

import (
	"sync"

	"github.com/trendyhq/storefront/internal/domain"
	"github.com/trendyhq/storefront/internal/pkg/logger"
)

// relatedLimit caps the related-products strip on the detail view
const relatedLimit = 4

// View is the derived read model the listing surface consumes
type View struct {
	Items            []domain.Product  `json:"items"`
	TotalFiltered    int               `json:"total_filtered"`
	Page             int               `json:"page"`
	TotalPages       int               `json:"total_pages"`
	ItemsPerPage     int               `json:"items_per_page"`
	SearchQuery      string            `json:"search_query"`
	SelectedCategory *string           `json:"selected_category"`
	PriceRange       domain.PriceRange `json:"price_range"`
}

// Service owns the process-wide catalog state and serializes dispatch into it.
// Transitions run to completion under the lock, so actions dispatched in
// sequence observe each other's results in that exact order.
type Service struct {
	mu     sync.RWMutex
	state  State
	logger *logger.Logger
}

// NewService creates a new catalog service from the loaded product list
func NewService(items []domain.Product, itemsPerPage int, log *logger.Logger) *Service {
	return &Service{
		state:  NewState(items, itemsPerPage),
		logger: log,
	}
}

// Search sets the free-text filter
func (s *Service) Search(query string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.WithSearchQuery(query)
	s.logger.Debugf("Catalog search query set to %q, %d items match", query, len(s.state.FilteredItems))

	return s.view()
}

// ToggleCategory selects a category filter, or clears it when the given
// category is already active or empty. Returns the resulting view.
func (s *Service) ToggleCategory(category string) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category == "" || (s.state.SelectedCategory != nil && *s.state.SelectedCategory == category) {
		s.state = s.state.WithCategory(nil)
		s.logger.Debug("Catalog category filter cleared")
	} else {
		s.state = s.state.WithCategory(&category)
		s.logger.Debugf("Catalog category filter set to %q, %d items match", category, len(s.state.FilteredItems))
	}

	return s.view()
}

// SetPriceRange sets the inclusive price bounds. Inverted ranges are rejected
// rather than clamped; the predicate itself never sees min > max.
func (s *Service) SetPriceRange(min, max int64) (View, error) {
	if min < 0 || min > max {
		s.logger.Debugf("Rejected price range [%d, %d]", min, max)
		return View{}, domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.WithPriceRange(min, max)
	return s.view(), nil
}

// SetPage sets the current page, clamped to [1, max(1, total pages)]. The
// state transition trusts its caller, so the clamp lives here.
func (s *Service) SetPage(page int) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	upper := s.state.TotalPages()
	if upper < 1 {
		upper = 1
	}
	if page < 1 {
		page = 1
	}
	if page > upper {
		page = upper
	}

	s.state = s.state.WithPage(page)
	return s.view()
}

// NextPage reveals the next page, if any
func (s *Service) NextPage() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.NextPage()
	return s.view()
}

// View returns the current derived read model
func (s *Service) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.view()
}

// GetByID retrieves a product from the full catalog, ignoring active filters
func (s *Service) GetByID(id int64) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.state.Items {
		if p.ID == id {
			return p, nil
		}
	}

	s.logger.Debugf("Product not found: %d", id)
	return domain.Product{}, domain.ErrNotFound
}

// RelatedTo returns up to four products sharing the subject's category,
// excluding the subject itself
func (s *Service) RelatedTo(id int64) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var subject *domain.Product
	for i := range s.state.Items {
		if s.state.Items[i].ID == id {
			subject = &s.state.Items[i]
			break
		}
	}
	if subject == nil {
		return nil, domain.ErrNotFound
	}

	related := make([]domain.Product, 0, relatedLimit)
	for _, p := range s.state.Items {
		if p.Category == subject.Category && p.ID != id {
			related = append(related, p)
			if len(related) == relatedLimit {
				break
			}
		}
	}

	return related, nil
}

// Categories returns the distinct category labels in first-seen catalog order
func (s *Service) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range s.state.Items {
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			categories = append(categories, p.Category)
		}
	}

	return categories
}

// view builds the read model from the current state. Callers hold the lock.
func (s *Service) view() View {
	return View{
		Items:            s.state.PaginatedItems(),
		TotalFiltered:    len(s.state.FilteredItems),
		Page:             s.state.CurrentPage,
		TotalPages:       s.state.TotalPages(),
		ItemsPerPage:     s.state.ItemsPerPage,
		SearchQuery:      s.state.SearchQuery,
		SelectedCategory: s.state.SelectedCategory,
		PriceRange:       s.state.PriceRange,
	}
}
