package model

import "time"

// CashFlowEntry is an append-only ledger row. Entries are immutable once
// created; reporting is pure aggregation over the creation timestamp.
type CashFlowEntry struct {
	ID            uint      `json:"id" gorm:"primarykey"`
	ProductCost   float64   `json:"product_cost" gorm:"not null;default:0"`
	ShippingCost  float64   `json:"shipping_cost" gorm:"not null;default:0"`
	OtherCost     float64   `json:"other_cost" gorm:"not null;default:0"`
	MarketingCost float64   `json:"marketing_cost" gorm:"not null;default:0"`
	Sales         float64   `json:"sales" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at"`
}
