package handler

import (
	"fmt"

	"github.com/trendyhq/storefront/internal/domain"
	"github.com/trendyhq/storefront/internal/pkg/currency"
	"github.com/trendyhq/storefront/internal/usecase/catalog"
)

// Fallbacks for optional product fields. Absent values are substituted here,
// at the presentation boundary, and never propagate into arithmetic.
const (
	placeholderImage = "/placeholder.png"
	noRating         = "N/A"
	noDescription    = "No description available."
)

// ProductView is the presentation form of a product
type ProductView struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Price        int64  `json:"price"`
	DisplayPrice string `json:"display_price"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	Rating       string `json:"rating"`
}

// CatalogView is the presentation form of the derived catalog state
type CatalogView struct {
	Items            []ProductView     `json:"items"`
	TotalFiltered    int               `json:"total_filtered"`
	Page             int               `json:"page"`
	TotalPages       int               `json:"total_pages"`
	ItemsPerPage     int               `json:"items_per_page"`
	SearchQuery      string            `json:"search_query"`
	SelectedCategory *string           `json:"selected_category"`
	PriceRange       domain.PriceRange `json:"price_range"`
}

// CartLineView is the presentation form of a cart line
type CartLineView struct {
	ProductView
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"line_total"`
	Display   string `json:"display_line_total"`
}

// CartTotalsView is the presentation form of the cart totals
type CartTotalsView struct {
	Subtotal           int64  `json:"subtotal"`
	DeliveryFee        int64  `json:"delivery_fee"`
	Total              int64  `json:"total"`
	DisplaySubtotal    string `json:"display_subtotal"`
	DisplayDeliveryFee string `json:"display_delivery_fee"`
	DisplayTotal       string `json:"display_total"`
}

// CartView is the presentation form of the cart ledger
type CartView struct {
	Items  []CartLineView `json:"items"`
	Totals CartTotalsView `json:"totals"`
}

func newProductView(p domain.Product, glyph string) ProductView {
	view := ProductView{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Price:        p.Price,
		DisplayPrice: currency.Format(glyph, p.Price),
		Description:  noDescription,
		Image:        placeholderImage,
		Rating:       noRating,
	}

	if p.Description != nil && *p.Description != "" {
		view.Description = *p.Description
	}
	if p.Image != nil && *p.Image != "" {
		view.Image = *p.Image
	}
	if p.Rating != nil {
		view.Rating = fmt.Sprintf("%.1f", *p.Rating)
	}

	return view
}

func newProductViews(products []domain.Product, glyph string) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p, glyph))
	}
	return views
}

func newCatalogView(v catalog.View, glyph string) CatalogView {
	return CatalogView{
		Items:            newProductViews(v.Items, glyph),
		TotalFiltered:    v.TotalFiltered,
		Page:             v.Page,
		TotalPages:       v.TotalPages,
		ItemsPerPage:     v.ItemsPerPage,
		SearchQuery:      v.SearchQuery,
		SelectedCategory: v.SelectedCategory,
		PriceRange:       v.PriceRange,
	}
}

func newCartView(lines []domain.CartLine, totals domain.CartTotals, glyph string) CartView {
	items := make([]CartLineView, 0, len(lines))
	for _, line := range lines {
		lineTotal := line.Price * int64(line.Quantity)
		items = append(items, CartLineView{
			ProductView: newProductView(line.Product, glyph),
			Quantity:    line.Quantity,
			LineTotal:   lineTotal,
			Display:     currency.Format(glyph, lineTotal),
		})
	}

	return CartView{
		Items: items,
		Totals: CartTotalsView{
			Subtotal:           totals.Subtotal,
			DeliveryFee:        totals.DeliveryFee,
			Total:              totals.Total,
			DisplaySubtotal:    currency.Format(glyph, totals.Subtotal),
			DisplayDeliveryFee: currency.Format(glyph, totals.DeliveryFee),
			DisplayTotal:       currency.Format(glyph, totals.Total),
		},
	}
}
