package cashflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/model"
)

func entry(created time.Time, product, shipping, other, marketing, sales float64) model.CashFlowEntry {
	return model.CashFlowEntry{
		ProductCost:   product,
		ShippingCost:  shipping,
		OtherCost:     other,
		MarketingCost: marketing,
		Sales:         sales,
		CreatedAt:     created,
	}
}

func TestDailySummariesGroupsByDay(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 11, 14, 30, 0, 0, time.UTC)

	entries := []model.CashFlowEntry{
		entry(day1, 10, 0, 0, 0, 100),
		entry(day1.Add(2*time.Hour), 5, 0, 0, 0, 40),
		entry(day2, 20, 0, 0, 0, 80),
	}

	rows := DailySummaries(entries)
	require.Len(t, rows, 2)

	// Recent day first.
	assert.Equal(t, "2025-03-11", rows[0].Day)
	assert.Equal(t, "2025-03-10", rows[1].Day)

	assert.InDelta(t, 140.0, rows[1].Sales, 1e-9)
	assert.InDelta(t, 15.0, rows[1].ProductCost, 1e-9)
	assert.InDelta(t, 125.0, rows[1].Profit, 1e-9)
}

func TestDailySummariesEntriesAscendingWithinDay(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	entries := []model.CashFlowEntry{
		entry(day.Add(18*time.Hour), 0, 0, 0, 0, 30),
		entry(day.Add(8*time.Hour), 0, 0, 0, 0, 10),
		entry(day.Add(12*time.Hour), 0, 0, 0, 0, 20),
	}

	rows := DailySummaries(entries)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Entries, 3)
	assert.InDelta(t, 10.0, rows[0].Entries[0].Sales, 1e-9)
	assert.InDelta(t, 20.0, rows[0].Entries[1].Sales, 1e-9)
	assert.InDelta(t, 30.0, rows[0].Entries[2].Sales, 1e-9)
}

func TestMonthlyProfit(t *testing.T) {
	entries := []model.CashFlowEntry{
		entry(time.Date(2025, 4, 3, 10, 0, 0, 0, time.UTC), 40, 10, 0, 5, 100),
		entry(time.Date(2025, 4, 17, 10, 0, 0, 0, time.UTC), 20, 5, 0, 0, 50),
	}

	summary := Monthly(entries, "2025-04")
	require.Len(t, summary.Days, 2)

	// (100-55) + (50-25) = 70
	assert.InDelta(t, 70.0, summary.Profit, 1e-9)
	assert.InDelta(t, 150.0, summary.Sales, 1e-9)
	assert.InDelta(t, 60.0, summary.ProductCost, 1e-9)
}

func TestMonthlyExcludesOtherMonths(t *testing.T) {
	entries := []model.CashFlowEntry{
		entry(time.Date(2025, 4, 3, 10, 0, 0, 0, time.UTC), 0, 0, 0, 0, 100),
		entry(time.Date(2025, 5, 1, 0, 30, 0, 0, time.UTC), 0, 0, 0, 0, 999),
	}

	summary := Monthly(entries, "2025-04")
	assert.InDelta(t, 100.0, summary.Sales, 1e-9)
	require.Len(t, summary.Days, 1)
}

func TestMonthlyEmptyMonth(t *testing.T) {
	summary := Monthly(nil, "2025-04")
	assert.Empty(t, summary.Days)
	assert.Zero(t, summary.Profit)
}

func TestMonthsDistinctDescending(t *testing.T) {
	entries := []model.CashFlowEntry{
		entry(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 0, 0, 0, 0, 1),
		entry(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 0, 0, 0, 0, 1),
		entry(time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC), 0, 0, 0, 0, 1),
		entry(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 0, 0, 0, 0, 1),
	}

	assert.Equal(t, []string{"2025-04", "2025-02", "2024-12"}, Months(entries))
}
