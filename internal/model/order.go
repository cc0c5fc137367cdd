package model

import (
	"time"
)

// OrderStatus is the order lifecycle state
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the status is a member of the closed enumeration
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// FulfillmentStatus tracks the outcome of the carrier hand-off so push
// failures are inspectable instead of console-only.
type FulfillmentStatus string

const (
	FulfillmentNone    FulfillmentStatus = "none"
	FulfillmentPending FulfillmentStatus = "pending"
	FulfillmentSent    FulfillmentStatus = "sent"
	FulfillmentFailed  FulfillmentStatus = "failed"
)

// OrderItem is a line snapshot embedded in an order. Name and price are
// copied from the product at creation/edit time and never re-read live.
type OrderItem struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// ShippingAddress is embedded in an order
type ShippingAddress struct {
	City    string `json:"city"`
	Address string `json:"address"`
	Note    string `json:"note,omitempty"`
}

// Order is a denormalized snapshot of a customer purchase
type Order struct {
	ID                uint              `json:"id" gorm:"primarykey"`
	OrderNumber       string            `json:"order_number" gorm:"type:varchar(32);unique;not null"`
	UserID            *uint             `json:"user_id,omitempty" gorm:"index"`
	CustomerName      string            `json:"customer_name" gorm:"type:varchar(255);not null"`
	CustomerPhone     string            `json:"customer_phone" gorm:"type:varchar(32)"`
	TotalAmount       float64           `json:"total_amount" gorm:"not null"`
	Status            OrderStatus       `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	Items             []OrderItem       `json:"items" gorm:"type:jsonb;serializer:json"`
	ShippingAddress   ShippingAddress   `json:"shipping_address" gorm:"type:jsonb;serializer:json"`
	StockRestored     bool              `json:"stock_restored" gorm:"default:false"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillment_status" gorm:"type:varchar(16);default:'none'"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// OrderCounter backs sequential order-number allocation. A single row is
// incremented inside the order-creation transaction so numbers are never
// reused.
type OrderCounter struct {
	ID    uint  `gorm:"primarykey"`
	Value int64 `gorm:"not null;default:0"`
}
