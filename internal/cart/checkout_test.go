package cart

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhatsAppMessageEmptyCartIsNoop(t *testing.T) {
	l := NewLedger()

	message, ok := l.WhatsAppMessage("https://shop.example")
	assert.False(t, ok)
	assert.Empty(t, message)

	link, ok := l.WhatsAppLink("212600000000", "https://shop.example")
	assert.False(t, ok)
	assert.Empty(t, link)
}

func TestWhatsAppMessageContents(t *testing.T) {
	l := NewLedger()
	l.Add(Line{ProductID: 3, ProductName: "Oversized Tee", Price: 100, Size: "M", Color: "Black", Quantity: 2})
	l.Add(Line{ProductID: 8, ProductName: "Tote Bag", Price: 50, Size: "One Size", Color: "Beige", Quantity: 1})

	message, ok := l.WhatsAppMessage("https://shop.example")
	require.True(t, ok)

	assert.Contains(t, message, "*NEW ORDER* (3 items)")
	assert.Contains(t, message, "1. Oversized Tee")
	assert.Contains(t, message, "Black | M | Qty: 2 | 200.00 MAD")
	assert.Contains(t, message, "https://shop.example/products/3")
	assert.Contains(t, message, "2. Tote Bag")
	assert.Contains(t, message, "Subtotal: 250.00 MAD")
	assert.Contains(t, message, "Shipping: FREE")
	assert.Contains(t, message, "Total: 250.00 MAD")
	assert.True(t, strings.HasSuffix(message, "Please provide payment details."))
}

func TestWhatsAppMessageShippingContributesNothing(t *testing.T) {
	l := NewLedger()
	l.Add(Line{ProductID: 1, ProductName: "Hoodie", Price: 159, Size: "L", Color: "Grey", Quantity: 1})

	message, ok := l.WhatsAppMessage("https://shop.example")
	require.True(t, ok)

	// Subtotal and total are identical: shipping is always free.
	assert.Contains(t, message, "Subtotal: 159.00 MAD")
	assert.Contains(t, message, "Total: 159.00 MAD")
}

func TestWhatsAppLink(t *testing.T) {
	l := NewLedger()
	l.Add(Line{ProductID: 1, ProductName: "Hoodie", Price: 159, Size: "L", Color: "Grey", Quantity: 1})

	link, ok := l.WhatsAppLink("212682721588", "https://shop.example")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/212682721588?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	text := parsed.Query().Get("text")
	assert.Contains(t, text, "Hoodie")
	assert.Contains(t, text, "Total: 159.00 MAD")
}
