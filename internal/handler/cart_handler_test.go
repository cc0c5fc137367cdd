package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/cart"
	"storefront-service/pkg/config"
	"storefront-service/prometheus"
)

func init() {
	prometheus.InitMetrics(&config.Config{Metrics: config.MetricsConfig{Prefix: "test"}})
}

func cartRequest(t *testing.T, handlerFunc echo.HandlerFunc, method, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, "/api/cart", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: cartSessionCookie, Value: "test-session"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handlerFunc(c))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec, payload
}

func newTestCartHandler() *CartHandler {
	return NewCartHandler(cart.NewStore(), "212600000000", "https://shop.example")
}

func TestCheckoutEmptyCartIsNoop(t *testing.T) {
	h := newTestCartHandler()

	rec, payload := cartRequest(t, h.Checkout, http.MethodPost, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotContains(t, payload, "whatsapp_url")
}

func TestCheckoutGeneratesLink(t *testing.T) {
	h := newTestCartHandler()
	h.Store.Ledger("test-session").Add(cart.Line{
		ProductID: 3, ProductName: "Oversized Tee", Price: 100, Size: "M", Color: "Black", Quantity: 2,
	})

	rec, payload := cartRequest(t, h.Checkout, http.MethodPost, "")

	require.Equal(t, http.StatusOK, rec.Code)
	url, _ := payload["whatsapp_url"].(string)
	assert.True(t, strings.HasPrefix(url, "https://wa.me/212600000000?text="))
	message, _ := payload["message"].(string)
	assert.Contains(t, message, "Oversized Tee")
	assert.Contains(t, message, "Total: 200.00 MAD")
}

func TestUpdateItemReplacesQuantity(t *testing.T) {
	h := newTestCartHandler()
	h.Store.Ledger("test-session").Add(cart.Line{
		ProductID: 3, ProductName: "Oversized Tee", Price: 100, Size: "M", Color: "Black", Quantity: 2,
	})

	rec, payload := cartRequest(t, h.UpdateItem, http.MethodPut,
		`{"product_id":3,"size":"M","color":"Black","quantity":5}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 5, payload["count"])
	assert.EqualValues(t, 500, payload["subtotal"])
}

func TestUpdateItemRejectsZeroQuantity(t *testing.T) {
	h := newTestCartHandler()

	rec, _ := cartRequest(t, h.UpdateItem, http.MethodPut,
		`{"product_id":3,"size":"M","color":"Black","quantity":0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRemoveItemAndClear(t *testing.T) {
	h := newTestCartHandler()
	ledger := h.Store.Ledger("test-session")
	ledger.Add(cart.Line{ProductID: 3, ProductName: "Tee", Price: 100, Size: "M", Color: "Black", Quantity: 2})
	ledger.Add(cart.Line{ProductID: 8, ProductName: "Tote", Price: 50, Size: "One Size", Color: "Beige", Quantity: 1})

	rec, payload := cartRequest(t, h.RemoveItem, http.MethodDelete,
		`{"product_id":3,"size":"M","color":"Black"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, payload["count"])

	rec, payload = cartRequest(t, h.ClearCart, http.MethodDelete, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, payload["count"])
	assert.EqualValues(t, 0, payload["subtotal"])
}

func TestGetCartShippingAlwaysFree(t *testing.T) {
	h := newTestCartHandler()
	h.Store.Ledger("test-session").Add(cart.Line{
		ProductID: 3, ProductName: "Tee", Price: 100, Size: "M", Color: "Black", Quantity: 2,
	})

	rec, payload := cartRequest(t, h.GetCart, http.MethodGet, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, payload["shipping"])
	assert.Equal(t, payload["subtotal"], payload["total"])
}
