package order

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront-service/internal/model"
)

func TestValidateTransitionAllowsForwardFlow(t *testing.T) {
	steps := []struct{ from, to model.OrderStatus }{
		{model.StatusPending, model.StatusProcessing},
		{model.StatusProcessing, model.StatusShipped},
		{model.StatusShipped, model.StatusDelivered},
	}
	for _, step := range steps {
		assert.NoError(t, ValidateTransition(step.from, step.to),
			"%s -> %s should be allowed", step.from, step.to)
	}
}

func TestValidateTransitionCancelFromAnyNonTerminal(t *testing.T) {
	for _, from := range []model.OrderStatus{model.StatusPending, model.StatusProcessing, model.StatusShipped} {
		assert.NoError(t, ValidateTransition(from, model.StatusCancelled))
	}
}

func TestValidateTransitionDeliveredIsTerminal(t *testing.T) {
	for _, to := range []model.OrderStatus{model.StatusPending, model.StatusProcessing, model.StatusShipped, model.StatusCancelled} {
		assert.Error(t, ValidateTransition(model.StatusDelivered, to))
	}
}

func TestValidateTransitionCancelledCanReactivate(t *testing.T) {
	assert.NoError(t, ValidateTransition(model.StatusCancelled, model.StatusPending))
	assert.NoError(t, ValidateTransition(model.StatusCancelled, model.StatusProcessing))
}

func TestValidateTransitionRejectsSelfAndUnknown(t *testing.T) {
	assert.Error(t, ValidateTransition(model.StatusPending, model.StatusPending))
	assert.Error(t, ValidateTransition(model.StatusPending, model.OrderStatus("archived")))
}

func TestStockEffectEnteringCancelledRestores(t *testing.T) {
	effect := TransitionStockEffect(model.StatusPending, model.StatusCancelled, false)
	assert.Equal(t, EffectRestore, effect)
}

func TestStockEffectEnteringCancelledTwiceDoesNotDoubleRestore(t *testing.T) {
	// Stock already restored: cancelling again (or re-running the
	// transition) must not restore a second time.
	effect := TransitionStockEffect(model.StatusShipped, model.StatusCancelled, true)
	assert.Equal(t, EffectNone, effect)
}

func TestStockEffectLeavingCancelledDecrements(t *testing.T) {
	effect := TransitionStockEffect(model.StatusCancelled, model.StatusPending, true)
	assert.Equal(t, EffectDecrement, effect)
}

func TestStockEffectLeavingCancelledWithoutRestoreIsNone(t *testing.T) {
	effect := TransitionStockEffect(model.StatusCancelled, model.StatusPending, false)
	assert.Equal(t, EffectNone, effect)
}

func TestStockEffectPlainTransitionsAreNone(t *testing.T) {
	assert.Equal(t, EffectNone, TransitionStockEffect(model.StatusPending, model.StatusProcessing, false))
	assert.Equal(t, EffectNone, TransitionStockEffect(model.StatusProcessing, model.StatusShipped, false))
	assert.Equal(t, EffectNone, TransitionStockEffect(model.StatusShipped, model.StatusDelivered, false))
}

func TestDeletionStockEffect(t *testing.T) {
	assert.Equal(t, EffectRestore, DeletionStockEffect(false))
	// A cancelled order's stock was already restored; deletion must not
	// restore again.
	assert.Equal(t, EffectNone, DeletionStockEffect(true))
}

func TestTriggersFulfillment(t *testing.T) {
	assert.True(t, TriggersFulfillment(model.StatusPending, model.StatusProcessing))
	assert.True(t, TriggersFulfillment(model.StatusCancelled, model.StatusProcessing))
	assert.False(t, TriggersFulfillment(model.StatusProcessing, model.StatusShipped))
	assert.False(t, TriggersFulfillment(model.StatusPending, model.StatusCancelled))
}

func TestTotalFromSnapshots(t *testing.T) {
	items := []model.OrderItem{
		{ProductID: 1, ProductName: "Tee", Quantity: 2, Price: 100},
		{ProductID: 2, ProductName: "Tote", Quantity: 1, Price: 50},
	}
	assert.InDelta(t, 250.0, Total(items), 1e-9)
}

func TestTotalIgnoresLivePriceChanges(t *testing.T) {
	items := []model.OrderItem{
		{ProductID: 1, ProductName: "Tee", Quantity: 3, Price: 120},
	}
	before := Total(items)

	// The product's live price changing has no way to reach the snapshot.
	assert.InDelta(t, before, Total(items), 1e-9)
	assert.InDelta(t, 360.0, before, 1e-9)
}

func TestFormatOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD-000001", FormatOrderNumber(1))
	assert.Equal(t, "ORD-001234", FormatOrderNumber(1234))
	assert.Equal(t, "ORD-1000000", FormatOrderNumber(1000000))
}
