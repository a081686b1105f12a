// Package currency formats whole-unit monetary amounts for display.
// Amounts carry no fractional digits anywhere in the system.
package currency

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Format renders an amount with the given currency glyph and grouped digits,
// e.g. Format("₦", 5000) == "₦5,000".
func Format(glyph string, amount int64) string {
	return glyph + printer.Sprintf("%d", amount)
}
