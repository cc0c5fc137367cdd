package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront-service/internal/cashflow"
	"storefront-service/internal/model"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"
)

// CashFlowRequest defines the structure for ledger entry creation
type CashFlowRequest struct {
	ProductCost   float64 `json:"product_cost"`
	ShippingCost  float64 `json:"shipping_cost"`
	OtherCost     float64 `json:"other_cost"`
	MarketingCost float64 `json:"marketing_cost"`
	Sales         float64 `json:"sales"`
}

func (r *CashFlowRequest) validate() string {
	if r.ProductCost < 0 || r.ShippingCost < 0 || r.OtherCost < 0 || r.MarketingCost < 0 || r.Sales < 0 {
		return "amounts cannot be negative"
	}
	return ""
}

// CreateCashFlowEntry appends one ledger row. Entries are immutable: there
// is no update or delete route.
func CreateCashFlowEntry(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCashFlowOperation("create")

	var req CashFlowRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Cash flow validation failed", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	entry := model.CashFlowEntry{
		ProductCost:   req.ProductCost,
		ShippingCost:  req.ShippingCost,
		OtherCost:     req.OtherCost,
		MarketingCost: req.MarketingCost,
		Sales:         req.Sales,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&entry); result.Error != nil {
		log.Error("Failed to create cash flow entry", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create entry"})
	}

	log.Info("Cash flow entry created",
		zap.Uint("entry_id", entry.ID),
		zap.Float64("sales", entry.Sales))
	return c.JSON(http.StatusCreated, entry)
}

// ListCashFlowEntries returns the raw ledger, most recent first
func ListCashFlowEntries(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCashFlowOperation("list")

	var entries []model.CashFlowEntry
	result := database.GetDB().Order("created_at DESC").Find(&entries)
	if result.Error != nil {
		log.Error("Failed to list cash flow entries", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve entries"})
	}

	return c.JSON(http.StatusOK, entries)
}

// CashFlowReport returns the daily rollup for a month (default: current),
// plus the distinct months with activity for the month picker
func CashFlowReport(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordCashFlowOperation("report")

	month := c.QueryParam("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}

	var entries []model.CashFlowEntry
	result := database.GetDB().Find(&entries)
	if result.Error != nil {
		log.Error("Failed to load cash flow entries", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to retrieve entries"})
	}

	summary := cashflow.Monthly(entries, month)
	log.Info("Cash flow report generated",
		zap.String("month", month),
		zap.Int("days", len(summary.Days)),
		zap.Float64("profit", summary.Profit))

	return c.JSON(http.StatusOK, echo.Map{
		"summary": summary,
		"months":  cashflow.Months(entries),
	})
}
