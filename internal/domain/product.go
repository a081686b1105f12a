package domain

// Product represents one catalog entry. The catalog is loaded once at startup
// and is read-only afterwards; ids are unique and stable for its lifetime.
type Product struct {
	ID          int64    `json:"id" validate:"required,gt=0"`
	Name        string   `json:"name" validate:"required,min=1,max=255"`
	Category    string   `json:"category" validate:"required,min=1,max=100"`
	Price       int64    `json:"price" validate:"gte=0"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
}

// PriceRange holds inclusive price filter bounds.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Contains reports whether price falls within the inclusive range.
func (r PriceRange) Contains(price int64) bool {
	return price >= r.Min && price <= r.Max
}
