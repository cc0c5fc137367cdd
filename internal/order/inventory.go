package order

import (
	"fmt"

	"gorm.io/gorm"

	"storefront-service/internal/model"
)

// DecrementStock lowers each product's stock by the item quantity in one
// batched pass. A missing product row fails the whole batch; the caller
// runs this inside a transaction so a partial batch is never persisted.
// Stock may legally go negative when a cancelled order is reactivated.
func DecrementStock(db *gorm.DB, items []model.OrderItem) error {
	for _, item := range items {
		result := db.Model(&model.Product{}).
			Where("id = ?", item.ProductID).
			Update("stock", gorm.Expr("stock - ?", item.Quantity))
		if result.Error != nil {
			return fmt.Errorf("decrement stock for product %d: %w", item.ProductID, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("decrement stock: product %d not found", item.ProductID)
		}
	}
	return nil
}

// RestoreStock raises each product's stock by the item quantity, the
// inverse of DecrementStock.
func RestoreStock(db *gorm.DB, items []model.OrderItem) error {
	for _, item := range items {
		result := db.Model(&model.Product{}).
			Where("id = ?", item.ProductID).
			Update("stock", gorm.Expr("stock + ?", item.Quantity))
		if result.Error != nil {
			return fmt.Errorf("restore stock for product %d: %w", item.ProductID, result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("restore stock: product %d not found", item.ProductID)
		}
	}
	return nil
}

// ApplyStockEffect executes the adjustment a lifecycle decision returned
func ApplyStockEffect(db *gorm.DB, effect StockEffect, items []model.OrderItem) error {
	switch effect {
	case EffectRestore:
		return RestoreStock(db, items)
	case EffectDecrement:
		return DecrementStock(db, items)
	}
	return nil
}

// Snapshot re-reads name and price for each requested item and freezes
// them into order item snapshots. Later product edits never change an
// existing order.
func Snapshot(db *gorm.DB, requests []ItemRequest) ([]model.OrderItem, error) {
	items := make([]model.OrderItem, 0, len(requests))
	for _, req := range requests {
		var product model.Product
		if err := db.First(&product, req.ProductID).Error; err != nil {
			return nil, fmt.Errorf("snapshot product %d: %w", req.ProductID, err)
		}
		items = append(items, model.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    req.Quantity,
			Price:       product.Price,
		})
	}
	return items, nil
}

// ItemRequest is the client's view of an order line: which product, how
// many. Name and price are snapshotted server-side.
type ItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}
