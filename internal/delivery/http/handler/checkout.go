package handler

import (
	"errors"
	"net/http"

	"github.com/trendyhq/storefront/internal/delivery/http/request"
	"github.com/trendyhq/storefront/internal/delivery/http/response"
	"github.com/trendyhq/storefront/internal/domain"
	"github.com/trendyhq/storefront/internal/pkg/currency"
	"github.com/trendyhq/storefront/internal/pkg/logger"
	"github.com/trendyhq/storefront/internal/usecase/checkout"
)

// CheckoutHandler handles HTTP requests for quotes and order placement
type CheckoutHandler struct {
	service  *checkout.Service
	currency string
	logger   *logger.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(service *checkout.Service, currencyGlyph string, log *logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		currency: currencyGlyph,
		logger:   log,
	}
}

// PlaceOrderRequest represents the request body for placing an order
type PlaceOrderRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Coupon    string `json:"coupon,omitempty"`
}

// QuoteResponse is the totals preview returned before an order is placed
type QuoteResponse struct {
	Totals             CartTotalsView `json:"totals"`
	FinalAmount        int64          `json:"final_amount"`
	DisplayFinalAmount string         `json:"display_final_amount"`
	CouponApplied      bool           `json:"coupon_applied"`
}

// Quote handles GET /api/v1/checkout/quote
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	quote := h.service.Quote(r.URL.Query().Get("coupon"))

	response.Success(w, QuoteResponse{
		Totals: CartTotalsView{
			Subtotal:           quote.Totals.Subtotal,
			DeliveryFee:        quote.Totals.DeliveryFee,
			Total:              quote.Totals.Total,
			DisplaySubtotal:    currency.Format(h.currency, quote.Totals.Subtotal),
			DisplayDeliveryFee: currency.Format(h.currency, quote.Totals.DeliveryFee),
			DisplayTotal:       currency.Format(h.currency, quote.Totals.Total),
		},
		FinalAmount:        quote.FinalAmount,
		DisplayFinalAmount: currency.Format(h.currency, quote.FinalAmount),
		CouponApplied:      quote.CouponApplied,
	})
}

// PlaceOrder handles POST /api/v1/checkout/order
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	details := domain.UserDetails{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	}

	order, err := h.service.PlaceOrder(r.Context(), details, req.Coupon)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, order)
}

// LastOrder handles GET /api/v1/checkout/order/last
func (h *CheckoutHandler) LastOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.LastOrder(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, order)
}

// handleError handles service layer errors and returns appropriate HTTP responses
func (h *CheckoutHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "No order found")
	case errors.Is(err, domain.ErrEmptyCart):
		response.Error(w, http.StatusBadRequest, "Cart is empty")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Please fill in all fields")
	default:
		h.logger.Error("Internal error in checkout handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
