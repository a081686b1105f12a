package checkout

import "strings"

// CouponCode is the single promotional code the store honors
const CouponCode = "1YEAR19"

// discount expressed in percent off
const discountPercent = 15

// ApplyCoupon evaluates a coupon code against an amount. The code is trimmed
// and uppercased before comparison. A matching code returns the discounted
// amount and true; anything else returns the amount unchanged and false.
func ApplyCoupon(code string, amount int64) (int64, bool) {
	if strings.ToUpper(strings.TrimSpace(code)) != CouponCode {
		return amount, false
	}
	return amount * (100 - discountPercent) / 100, true
}
