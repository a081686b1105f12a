package handler

import (
	"errors"
	"net/http"

	"github.com/trendyhq/storefront/internal/delivery/http/request"
	"github.com/trendyhq/storefront/internal/delivery/http/response"
	"github.com/trendyhq/storefront/internal/domain"
	"github.com/trendyhq/storefront/internal/pkg/logger"
	"github.com/trendyhq/storefront/internal/usecase/catalog"
)

// CatalogHandler handles HTTP requests for catalog browsing and filtering
type CatalogHandler struct {
	service  *catalog.Service
	currency string
	logger   *logger.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service *catalog.Service, currencyGlyph string, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		currency: currencyGlyph,
		logger:   log,
	}
}

// SearchRequest represents the request body for setting the search filter
type SearchRequest struct {
	Query string `json:"query"`
}

// CategoryRequest represents the request body for selecting a category.
// A null or empty category clears the filter; re-sending the active category
// clears it as well.
type CategoryRequest struct {
	Category *string `json:"category"`
}

// PriceRangeRequest represents the request body for setting price bounds
type PriceRangeRequest struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// PageRequest represents the request body for jumping to a page
type PageRequest struct {
	Page int `json:"page"`
}

// ProductDetailResponse carries a product and its related-products strip
type ProductDetailResponse struct {
	Product ProductView   `json:"product"`
	Related []ProductView `json:"related"`
}

// View handles GET /api/v1/catalog
func (h *CatalogHandler) View(w http.ResponseWriter, r *http.Request) {
	response.Success(w, newCatalogView(h.service.View(), h.currency))
}

// Categories handles GET /api/v1/catalog/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.service.Categories())
}

// GetByID handles GET /api/v1/catalog/products/:id
func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		// Unparseable ids present as not found, matching unmatched ones
		response.Error(w, http.StatusNotFound, "Product not found")
		return
	}

	product, err := h.service.GetByID(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	related, err := h.service.RelatedTo(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, ProductDetailResponse{
		Product: newProductView(product, h.currency),
		Related: newProductViews(related, h.currency),
	})
}

// SetSearch handles PUT /api/v1/catalog/search
func (h *CatalogHandler) SetSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response.Success(w, newCatalogView(h.service.Search(req.Query), h.currency))
}

// SetCategory handles PUT /api/v1/catalog/category
func (h *CatalogHandler) SetCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category := ""
	if req.Category != nil {
		category = *req.Category
	}

	response.Success(w, newCatalogView(h.service.ToggleCategory(category), h.currency))
}

// SetPriceRange handles PUT /api/v1/catalog/price-range
func (h *CatalogHandler) SetPriceRange(w http.ResponseWriter, r *http.Request) {
	var req PriceRangeRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.service.SetPriceRange(req.Min, req.Max)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, newCatalogView(view, h.currency))
}

// SetPage handles PUT /api/v1/catalog/page
func (h *CatalogHandler) SetPage(w http.ResponseWriter, r *http.Request) {
	var req PageRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response.Success(w, newCatalogView(h.service.SetPage(req.Page), h.currency))
}

// NextPage handles POST /api/v1/catalog/page/next
func (h *CatalogHandler) NextPage(w http.ResponseWriter, r *http.Request) {
	response.Success(w, newCatalogView(h.service.NextPage(), h.currency))
}

// handleError handles service layer errors and returns appropriate HTTP responses
func (h *CatalogHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input")
	default:
		h.logger.Error("Internal error in catalog handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
