package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront-service/internal/cart"
	"storefront-service/internal/model"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"
)

const cartSessionCookie = "cart_session"

// CartHandler serves the session cart endpoints. The store is constructed
// in main and injected; carts are transient and vanish on restart.
type CartHandler struct {
	Store          *cart.Store
	WhatsAppNumber string
	BaseURL        string
}

// NewCartHandler creates a cart handler bound to a store
func NewCartHandler(store *cart.Store, whatsAppNumber, baseURL string) *CartHandler {
	return &CartHandler{Store: store, WhatsAppNumber: whatsAppNumber, BaseURL: baseURL}
}

func (h *CartHandler) ledger(c echo.Context) *cart.Ledger {
	cookie, err := c.Cookie(cartSessionCookie)
	if err != nil || cookie.Value == "" {
		sessionID := uuid.New().String()
		c.SetCookie(&http.Cookie{
			Name:     cartSessionCookie,
			Value:    sessionID,
			Path:     "/",
			HttpOnly: true,
			Expires:  time.Now().Add(24 * time.Hour),
		})
		return h.Store.Ledger(sessionID)
	}
	return h.Store.Ledger(cookie.Value)
}

type cartView struct {
	Items    []cart.Line `json:"items"`
	Count    int         `json:"count"`
	Subtotal float64     `json:"subtotal"`
	Shipping float64     `json:"shipping"`
	Total    float64     `json:"total"`
}

func view(l *cart.Ledger) cartView {
	subtotal := l.Subtotal()
	items := l.Lines()
	if items == nil {
		items = []cart.Line{}
	}
	return cartView{
		Items:    items,
		Count:    l.Count(),
		Subtotal: subtotal,
		Shipping: 0, // always free
		Total:    subtotal,
	}
}

// GetCart returns the session's cart with derived totals
func (h *CartHandler) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, view(h.ledger(c)))
}

// AddItem adds a (product, size, color, quantity) line, merging into an
// existing line on the same key. Name and price are read from the catalog
// once, at add time.
func (h *CartHandler) AddItem(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCartOperation("add")

	var req struct {
		ProductID uint   `json:"product_id"`
		Size      string `json:"size"`
		Color     string `json:"color"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.Quantity < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be at least 1"})
	}

	var product model.Product
	if result := database.GetDB().First(&product, req.ProductID); result.Error != nil {
		log.Warn("Product not found for cart add", zap.Uint("product_id", req.ProductID))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
	}

	if !product.HasSize(req.Size) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "size not offered for this product"})
	}
	if !product.HasColor(req.Color) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "color not offered for this product"})
	}

	ledger := h.ledger(c)
	ledger.Add(cart.Line{
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       product.Price,
		Size:        req.Size,
		Color:       req.Color,
		Quantity:    req.Quantity,
	})

	log.Info("Item added to cart",
		zap.Uint("product_id", product.ID),
		zap.String("size", req.Size),
		zap.String("color", req.Color),
		zap.Int("quantity", req.Quantity))
	return c.JSON(http.StatusOK, view(ledger))
}

// UpdateItem replaces the quantity of the matching line
func (h *CartHandler) UpdateItem(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCartOperation("update")

	var req struct {
		ProductID uint   `json:"product_id"`
		Size      string `json:"size"`
		Color     string `json:"color"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if req.Quantity < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be at least 1"})
	}

	ledger := h.ledger(c)
	ledger.UpdateQuantity(req.ProductID, req.Size, req.Color, req.Quantity)
	return c.JSON(http.StatusOK, view(ledger))
}

// RemoveItem deletes the matching line; removing an absent line is a no-op
func (h *CartHandler) RemoveItem(c echo.Context) error {
	prometheus.RecordCartOperation("remove")

	var req struct {
		ProductID uint   `json:"product_id"`
		Size      string `json:"size"`
		Color     string `json:"color"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	ledger := h.ledger(c)
	ledger.Remove(req.ProductID, req.Size, req.Color)
	return c.JSON(http.StatusOK, view(ledger))
}

// ClearCart empties all lines
func (h *CartHandler) ClearCart(c echo.Context) error {
	prometheus.RecordCartOperation("clear")

	ledger := h.ledger(c)
	ledger.Clear()
	return c.JSON(http.StatusOK, view(ledger))
}

// Checkout serializes the cart into the WhatsApp message and returns the
// deep link. There is no payment processing; this hand-off is the entire
// checkout. An empty cart generates nothing.
func (h *CartHandler) Checkout(c echo.Context) error {
	log := logger.FromContext(c)

	ledger := h.ledger(c)
	link, ok := ledger.WhatsAppLink(h.WhatsAppNumber, h.BaseURL)
	if !ok {
		prometheus.CheckoutCounter.WithLabelValues("empty").Inc()
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cart is empty"})
	}

	message, _ := ledger.WhatsAppMessage(h.BaseURL)
	prometheus.CheckoutCounter.WithLabelValues("generated").Inc()
	log.Info("Checkout link generated",
		zap.Int("items", ledger.Count()),
		zap.Float64("subtotal", ledger.Subtotal()))
	return c.JSON(http.StatusOK, echo.Map{
		"whatsapp_url": link,
		"message":      message,
	})
}
