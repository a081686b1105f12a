package domain

// CartLine represents one ledger entry: a product plus the quantity selected
// for purchase. The ledger holds at most one line per product id, and a line's
// quantity is always at least 1.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// CartTotals holds the derived monetary view of a cart.
// The delivery fee is waived only when the cart is empty.
type CartTotals struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	Total       int64 `json:"total"`
}
