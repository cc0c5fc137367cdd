package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront-service/internal/middleware"
	"storefront-service/internal/model"
	"storefront-service/internal/order"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"
	"storefront-service/pkg/shipping"
	"storefront-service/prometheus"
)

var carrier *shipping.Client

// SetCarrier wires the fulfillment carrier client used on entering processing
func SetCarrier(client *shipping.Client) {
	carrier = client
}

// OrderRequest defines the structure for order creation/edit requests.
// Items name only product and quantity; name and price are snapshotted
// from the catalog server-side.
type OrderRequest struct {
	CustomerName  string              `json:"customer_name"`
	CustomerPhone string              `json:"customer_phone"`
	City          string              `json:"city"`
	Address       string              `json:"address"`
	Note          string              `json:"note"`
	Items         []order.ItemRequest `json:"items"`
}

func (r *OrderRequest) validate() string {
	if r.CustomerName == "" {
		return "customer_name is required"
	}
	if r.City == "" {
		return "city is required"
	}
	if len(r.Items) == 0 {
		return "at least one item is required"
	}
	for _, item := range r.Items {
		if item.ProductID == 0 {
			return "every item needs a product_id"
		}
		if item.Quantity < 1 {
			return "item quantity must be at least 1"
		}
	}
	return ""
}

// ListOrders handles retrieving orders with optional status filter and
// order-number/customer search, most recent first
func ListOrders(c echo.Context) error {
	log := logger.FromContext(c)

	db := database.GetDB()
	var orders []model.Order

	query := db

	if status := c.QueryParam("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	if search := c.QueryParam("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ?", pattern, pattern)
	}

	result := query.Order("created_at DESC").Find(&orders)
	if result.Error != nil {
		log.Error("Failed to list orders", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve orders"})
	}

	log.Info("Orders retrieved successfully", zap.Int("count", len(orders)))
	return c.JSON(http.StatusOK, orders)
}

// GetOrder handles retrieving a single order by ID
func GetOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var ord model.Order
	result := database.GetDB().First(&ord, id)
	if result.Error != nil {
		log.Warn("Order not found", zap.String("order_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	return c.JSON(http.StatusOK, ord)
}

// CreateOrder creates an order: snapshot items from the catalog, decrement
// stock, allocate the order number, persist. All inside one transaction so
// a decrement failure aborts creation with no order row written.
func CreateOrder(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordOrderOperation("create")

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Order validation failed", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	defer prometheus.TrackDBOperation("order_create")(time.Now())

	tx := database.GetDB().Begin()
	if tx.Error != nil {
		log.Error("Failed to begin transaction", zap.Error(tx.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	items, err := order.Snapshot(tx, req.Items)
	if err != nil {
		tx.Rollback()
		log.Error("Failed to snapshot order items", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "one or more products not found"})
	}

	// Inventory decrement comes before the order row; its failure blocks
	// persistence.
	if err := order.DecrementStock(tx, items); err != nil {
		tx.Rollback()
		log.Error("Failed to decrement stock for new order", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to adjust inventory"})
	}

	orderNumber, err := order.NextOrderNumber(tx)
	if err != nil {
		tx.Rollback()
		log.Error("Failed to allocate order number", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to allocate order number"})
	}

	ord := model.Order{
		OrderNumber:       orderNumber,
		CustomerName:      req.CustomerName,
		CustomerPhone:     req.CustomerPhone,
		TotalAmount:       order.Total(items),
		Status:            model.StatusPending,
		Items:             items,
		ShippingAddress:   model.ShippingAddress{City: req.City, Address: req.Address, Note: req.Note},
		FulfillmentStatus: model.FulfillmentNone,
	}
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		ord.UserID = &userID
	}

	if result := tx.Create(&ord); result.Error != nil {
		tx.Rollback()
		log.Error("Failed to create order", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create order"})
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("Failed to commit order creation", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction commit failed"})
	}

	log.Info("Order created",
		zap.Uint("order_id", ord.ID),
		zap.String("order_number", ord.OrderNumber),
		zap.Float64("total_amount", ord.TotalAmount),
		zap.Int("items", len(ord.Items)))
	return c.JSON(http.StatusCreated, ord)
}

// UpdateOrder replaces an order's items and customer details wholesale:
// restore inventory for the old item list, decrement for the new one,
// persist the new snapshot. One transaction, same observable sequence.
func UpdateOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	prometheus.RecordOrderOperation("edit")

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("order_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Order validation failed", zap.String("order_id", id), zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	defer prometheus.TrackDBOperation("order_edit")(time.Now())

	tx := database.GetDB().Begin()
	if tx.Error != nil {
		log.Error("Failed to begin transaction", zap.Error(tx.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var ord model.Order
	if result := tx.First(&ord, id); result.Error != nil {
		tx.Rollback()
		log.Warn("Order not found for edit", zap.String("order_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	// A cancelled order's stock was already restored; restoring the old
	// list again would double-count.
	if !ord.StockRestored {
		if err := order.RestoreStock(tx, ord.Items); err != nil {
			tx.Rollback()
			log.Error("Failed to restore stock for old items", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to adjust inventory"})
		}
	}

	items, err := order.Snapshot(tx, req.Items)
	if err != nil {
		tx.Rollback()
		log.Error("Failed to snapshot order items", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "one or more products not found"})
	}

	if err := order.DecrementStock(tx, items); err != nil {
		tx.Rollback()
		log.Error("Failed to decrement stock for new items", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to adjust inventory"})
	}

	ord.CustomerName = req.CustomerName
	ord.CustomerPhone = req.CustomerPhone
	ord.ShippingAddress = model.ShippingAddress{City: req.City, Address: req.Address, Note: req.Note}
	ord.Items = items
	ord.TotalAmount = order.Total(items)
	ord.StockRestored = false

	if result := tx.Save(&ord); result.Error != nil {
		tx.Rollback()
		log.Error("Failed to save order edit", zap.String("order_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update order"})
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("Failed to commit order edit", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction commit failed"})
	}

	log.Info("Order updated",
		zap.String("order_id", id),
		zap.String("order_number", ord.OrderNumber),
		zap.Float64("total_amount", ord.TotalAmount))
	return c.JSON(http.StatusOK, ord)
}

// UpdateOrderStatus transitions an order through its lifecycle and applies
// the coupled inventory effect. Entering processing additionally hands the
// parcel to the carrier after commit, fire-and-forget.
func UpdateOrderStatus(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	prometheus.RecordOrderOperation("status_change")

	var req struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("order_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("order_status")(time.Now())

	tx := database.GetDB().Begin()
	if tx.Error != nil {
		log.Error("Failed to begin transaction", zap.Error(tx.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var ord model.Order
	if result := tx.First(&ord, id); result.Error != nil {
		tx.Rollback()
		log.Warn("Order not found for status change", zap.String("order_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	from := ord.Status
	if err := order.ValidateTransition(from, req.Status); err != nil {
		tx.Rollback()
		log.Warn("Rejected status transition",
			zap.String("order_id", id),
			zap.String("from", string(from)),
			zap.String("to", string(req.Status)),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	effect := order.TransitionStockEffect(from, req.Status, ord.StockRestored)
	if err := order.ApplyStockEffect(tx, effect, ord.Items); err != nil {
		tx.Rollback()
		log.Error("Failed to apply inventory effect",
			zap.String("order_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to adjust inventory"})
	}

	switch effect {
	case order.EffectRestore:
		ord.StockRestored = true
	case order.EffectDecrement:
		ord.StockRestored = false
	}

	ord.Status = req.Status
	if order.TriggersFulfillment(from, req.Status) {
		ord.FulfillmentStatus = model.FulfillmentPending
	}

	if result := tx.Save(&ord); result.Error != nil {
		tx.Rollback()
		log.Error("Failed to save status change", zap.String("order_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update order"})
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("Failed to commit status change", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction commit failed"})
	}

	log.Info("Order status changed",
		zap.String("order_id", id),
		zap.String("order_number", ord.OrderNumber),
		zap.String("from", string(from)),
		zap.String("to", string(ord.Status)))

	// Carrier hand-off is best-effort and never blocks or rolls back the
	// status change; the outcome lands in fulfillment_status.
	if order.TriggersFulfillment(from, req.Status) && carrier != nil {
		pushed := ord
		go pushToCarrier(&pushed)
	}

	return c.JSON(http.StatusOK, ord)
}

func pushToCarrier(ord *model.Order) {
	log := logger.GetLogger().With(
		zap.Uint("order_id", ord.ID),
		zap.String("order_number", ord.OrderNumber))

	status := model.FulfillmentSent
	if err := carrier.AddParcel(ord); err != nil {
		log.Error("Carrier hand-off failed", zap.Error(err))
		status = model.FulfillmentFailed
		prometheus.RecordFulfillmentPush("failed")
	} else {
		log.Info("Carrier hand-off succeeded")
		prometheus.RecordFulfillmentPush("sent")
	}

	if err := database.GetDB().Model(&model.Order{}).
		Where("id = ?", ord.ID).
		Update("fulfillment_status", status).Error; err != nil {
		log.Error("Failed to record fulfillment status", zap.Error(err))
	}
}

// DeleteOrder removes an order after reversing its inventory effect.
// Stock restoration is skipped when it already happened on cancellation.
func DeleteOrder(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	prometheus.RecordOrderOperation("delete")

	defer prometheus.TrackDBOperation("order_delete")(time.Now())

	tx := database.GetDB().Begin()
	if tx.Error != nil {
		log.Error("Failed to begin transaction", zap.Error(tx.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var ord model.Order
	if result := tx.First(&ord, id); result.Error != nil {
		tx.Rollback()
		log.Warn("Order not found for deletion", zap.String("order_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Order not found"})
	}

	effect := order.DeletionStockEffect(ord.StockRestored)
	if err := order.ApplyStockEffect(tx, effect, ord.Items); err != nil {
		tx.Rollback()
		log.Error("Failed to restore stock before deletion",
			zap.String("order_id", id),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to adjust inventory"})
	}

	if result := tx.Delete(&ord); result.Error != nil {
		tx.Rollback()
		log.Error("Failed to delete order", zap.String("order_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete order"})
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("Failed to commit order deletion", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "transaction commit failed"})
	}

	log.Info("Order deleted",
		zap.String("order_id", id),
		zap.String("order_number", ord.OrderNumber))
	return c.JSON(http.StatusOK, echo.Map{"message": "Order deleted successfully"})
}
