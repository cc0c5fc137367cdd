package cart

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppMessage serializes the cart into the human-readable order text
// handed to the messaging app. Returns ok=false for an empty cart, in
// which case checkout is a no-op and no message is generated.
func (l *Ledger) WhatsAppMessage(baseURL string) (string, bool) {
	lines := l.Lines()
	if len(lines) == 0 {
		return "", false
	}

	subtotal := l.Subtotal()
	shipping := 0.0 // free shipping for all orders
	total := subtotal + shipping

	var b strings.Builder
	fmt.Fprintf(&b, "🛒 *NEW ORDER* (%d items)\n\n", l.Count())

	for i, line := range lines {
		lineTotal := line.Price * float64(line.Quantity)
		fmt.Fprintf(&b, "%d. %s\n", i+1, line.ProductName)
		fmt.Fprintf(&b, "   %s | %s | Qty: %d | %.2f MAD\n", line.Color, line.Size, line.Quantity, lineTotal)
		fmt.Fprintf(&b, "   *Link:* %s/products/%d\n\n", baseURL, line.ProductID)
	}

	fmt.Fprintf(&b, "Subtotal: %.2f MAD\n", subtotal)
	b.WriteString("Shipping: FREE\n")
	fmt.Fprintf(&b, "Total: %.2f MAD\n\n", total)
	b.WriteString("Please provide payment details.")

	return b.String(), true
}

// WhatsAppLink builds the wa.me deep link carrying the checkout message.
// Returns ok=false for an empty cart.
func (l *Ledger) WhatsAppLink(phone, baseURL string) (string, bool) {
	message, ok := l.WhatsAppMessage(baseURL)
	if !ok {
		return "", false
	}
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message), true
}
