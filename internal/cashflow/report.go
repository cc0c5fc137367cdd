package cashflow

import (
	"sort"

	"storefront-service/internal/model"
)

// DailySummary is one calendar day of ledger activity
type DailySummary struct {
	Day           string                `json:"day"` // yyyy-mm-dd
	ProductCost   float64               `json:"product_cost"`
	ShippingCost  float64               `json:"shipping_cost"`
	OtherCost     float64               `json:"other_cost"`
	MarketingCost float64               `json:"marketing_cost"`
	Sales         float64               `json:"sales"`
	Profit        float64               `json:"profit"`
	Entries       []model.CashFlowEntry `json:"entries"`
}

// MonthlySummary rolls daily rows up to a selected month
type MonthlySummary struct {
	Month         string         `json:"month"` // yyyy-mm
	ProductCost   float64        `json:"product_cost"`
	ShippingCost  float64        `json:"shipping_cost"`
	OtherCost     float64        `json:"other_cost"`
	MarketingCost float64        `json:"marketing_cost"`
	Sales         float64        `json:"sales"`
	Profit        float64        `json:"profit"`
	Days          []DailySummary `json:"days"`
}

// DailySummaries groups entries by the date portion of their creation
// timestamp and sums the five numeric fields per day. Profit is sales
// minus all four cost buckets. Days are ordered descending (recent
// first); entries within a day ascending by timestamp.
func DailySummaries(entries []model.CashFlowEntry) []DailySummary {
	byDay := make(map[string][]model.CashFlowEntry)
	for _, entry := range entries {
		day := entry.CreatedAt.Format("2006-01-02")
		byDay[day] = append(byDay[day], entry)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	summaries := make([]DailySummary, 0, len(days))
	for _, day := range days {
		flows := byDay[day]
		sort.Slice(flows, func(i, j int) bool {
			return flows[i].CreatedAt.Before(flows[j].CreatedAt)
		})

		row := DailySummary{Day: day, Entries: flows}
		for _, f := range flows {
			row.ProductCost += f.ProductCost
			row.ShippingCost += f.ShippingCost
			row.OtherCost += f.OtherCost
			row.MarketingCost += f.MarketingCost
			row.Sales += f.Sales
		}
		row.Profit = row.Sales - (row.ProductCost + row.ShippingCost + row.OtherCost + row.MarketingCost)
		summaries = append(summaries, row)
	}

	return summaries
}

// MonthOf filters entries whose creation timestamp falls in the yyyy-mm month
func MonthOf(entries []model.CashFlowEntry, month string) []model.CashFlowEntry {
	filtered := make([]model.CashFlowEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.CreatedAt.Format("2006-01") == month {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// Monthly sums the daily rows of all days in the selected yyyy-mm month
func Monthly(entries []model.CashFlowEntry, month string) MonthlySummary {
	days := DailySummaries(MonthOf(entries, month))

	summary := MonthlySummary{Month: month, Days: days}
	for _, day := range days {
		summary.ProductCost += day.ProductCost
		summary.ShippingCost += day.ShippingCost
		summary.OtherCost += day.OtherCost
		summary.MarketingCost += day.MarketingCost
		summary.Sales += day.Sales
		summary.Profit += day.Profit
	}
	return summary
}

// Months returns the distinct yyyy-mm months present in the ledger,
// most recent first.
func Months(entries []model.CashFlowEntry) []string {
	seen := make(map[string]bool)
	months := make([]string, 0)
	for _, entry := range entries {
		month := entry.CreatedAt.Format("2006-01")
		if !seen[month] {
			seen[month] = true
			months = append(months, month)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}
