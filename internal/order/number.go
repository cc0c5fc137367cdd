package order

import (
	"fmt"

	"gorm.io/gorm"

	"storefront-service/internal/model"
)

// NextOrderNumber atomically allocates the next sequential order number.
// The counter row is incremented inside the caller's transaction, so the
// row lock serializes concurrent allocations and a number is never
// reused even when order creation rolls back later rows.
func NextOrderNumber(tx *gorm.DB) (string, error) {
	result := tx.Model(&model.OrderCounter{}).
		Where("id = ?", 1).
		Update("value", gorm.Expr("value + 1"))
	if result.Error != nil {
		return "", fmt.Errorf("increment order counter: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		counter := model.OrderCounter{ID: 1, Value: 1}
		if err := tx.Create(&counter).Error; err != nil {
			return "", fmt.Errorf("seed order counter: %w", err)
		}
		return FormatOrderNumber(counter.Value), nil
	}

	var counter model.OrderCounter
	if err := tx.First(&counter, 1).Error; err != nil {
		return "", fmt.Errorf("read order counter: %w", err)
	}
	return FormatOrderNumber(counter.Value), nil
}

// FormatOrderNumber renders a counter value as a human-readable order number
func FormatOrderNumber(value int64) string {
	return fmt.Sprintf("ORD-%06d", value)
}
