package handler

import (
	"errors"
	"net/http"

	"github.com/trendyhq/storefront/internal/delivery/http/request"
	"github.com/trendyhq/storefront/internal/delivery/http/response"
	"github.com/trendyhq/storefront/internal/domain"
	"github.com/trendyhq/storefront/internal/pkg/logger"
	"github.com/trendyhq/storefront/internal/usecase/cart"
	"github.com/trendyhq/storefront/internal/usecase/catalog"
)

// CartHandler handles HTTP requests for the cart ledger
type CartHandler struct {
	cart     *cart.Service
	catalog  *catalog.Service
	currency string
	logger   *logger.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, catalogService *catalog.Service, currencyGlyph string, log *logger.Logger) *CartHandler {
	return &CartHandler{
		cart:     cartService,
		catalog:  catalogService,
		currency: currencyGlyph,
		logger:   log,
	}
}

// AddItemRequest represents the request body for adding a product to the cart
type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity,omitempty"`
}

// SetQuantityRequest represents the request body for setting an absolute
// line quantity
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Get handles GET /api/v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respondCart(w)
}

// Add handles POST /api/v1/cart/items
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.catalog.GetByID(req.ProductID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.cart.AddN(product, req.Quantity)

	response.Created(w, newCartView(h.cart.Lines(), h.cart.Totals(), h.currency))
}

// SetQuantity handles PUT /api/v1/cart/items/:id
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req SetQuantityRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.cart.SetQuantity(id, req.Quantity)
	h.respondCart(w)
}

// Remove handles DELETE /api/v1/cart/items/:id. Removing an absent line is a
// silent no-op, never a failure.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	h.cart.Remove(id)
	h.respondCart(w)
}

// Increase handles POST /api/v1/cart/items/:id/increase
func (h *CartHandler) Increase(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	h.cart.Increase(id)
	h.respondCart(w)
}

// Decrease handles POST /api/v1/cart/items/:id/decrease
func (h *CartHandler) Decrease(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	h.cart.Decrease(id)
	h.respondCart(w)
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	response.NoContent(w)
}

func (h *CartHandler) respondCart(w http.ResponseWriter) {
	response.Success(w, newCartView(h.cart.Lines(), h.cart.Totals(), h.currency))
}

// handleError handles service layer errors and returns appropriate HTTP responses
func (h *CartHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input")
	default:
		h.logger.Error("Internal error in cart handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
