package order

import (
	"fmt"

	"storefront-service/internal/model"
)

// StockEffect is the inventory side effect coupled to a status transition
type StockEffect int

const (
	EffectNone StockEffect = iota
	// EffectRestore increments stock by each item's quantity
	EffectRestore
	// EffectDecrement decrements stock by each item's quantity
	EffectDecrement
)

// ValidateTransition enforces the lifecycle server-side. pending,
// processing and shipped may move to any other state. cancelled may be
// reactivated to a non-cancelled state (the inverse inventory adjustment
// applies). delivered is terminal.
func ValidateTransition(from, to model.OrderStatus) error {
	if !to.Valid() {
		return fmt.Errorf("unknown order status %q", to)
	}
	if from == to {
		return fmt.Errorf("order is already %s", from)
	}
	if from == model.StatusDelivered {
		return fmt.Errorf("order is delivered and can no longer change status")
	}
	return nil
}

// TransitionStockEffect returns the inventory adjustment a transition
// requires. The persisted restored flag guards against double
// restoration: entering cancelled restores only when stock has not
// already been restored, and leaving cancelled decrements only when it
// has.
func TransitionStockEffect(from, to model.OrderStatus, restored bool) StockEffect {
	switch {
	case to == model.StatusCancelled && from != model.StatusCancelled && !restored:
		return EffectRestore
	case from == model.StatusCancelled && to != model.StatusCancelled && restored:
		return EffectDecrement
	}
	return EffectNone
}

// DeletionStockEffect returns the inventory adjustment required before an
// order row is deleted. An order whose stock was already restored (a
// cancelled order) is deleted without a second restoration.
func DeletionStockEffect(restored bool) StockEffect {
	if restored {
		return EffectNone
	}
	return EffectRestore
}

// TriggersFulfillment reports whether a transition pushes the order to
// the carrier. Only entering processing does.
func TriggersFulfillment(from, to model.OrderStatus) bool {
	return to == model.StatusProcessing && from != model.StatusProcessing
}

// Total computes the order amount from its own item snapshots. Product
// price changes after creation never affect it.
func Total(items []model.OrderItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
