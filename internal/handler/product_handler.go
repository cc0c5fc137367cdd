package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storefront-service/internal/model"
	"storefront-service/pkg/database"
	"storefront-service/pkg/logger"
	"storefront-service/prometheus"
)

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       float64             `json:"price"`
	Category    model.Category      `json:"category"`
	Anime       model.AnimeTag      `json:"anime,omitempty"`
	Sizes       []string            `json:"sizes"`
	Colors      []string            `json:"colors"`
	Images      []string            `json:"images"`
	ColorImages map[string][]string `json:"color_images"`
	Stock       int                 `json:"stock"`
	Featured    bool                `json:"featured"`
}

func (r *ProductRequest) validate() string {
	if r.Name == "" {
		return "name is required"
	}
	if r.Price <= 0 {
		return "price must be greater than zero"
	}
	if r.Stock < 0 {
		return "stock cannot be negative"
	}
	if !r.Category.Valid() {
		return "unknown category"
	}
	if r.Anime != "" && !r.Anime.Valid() {
		return "unknown anime tag"
	}
	if len(r.Sizes) == 0 {
		return "at least one size is required"
	}
	if len(r.Colors) == 0 {
		return "at least one color is required"
	}
	return ""
}

// ListProducts handles retrieving products with optional filtering.
// Public: the catalog is read-only to shoppers.
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)

	db := database.GetDB()
	var products []model.Product

	query := db

	if category := c.QueryParam("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	if featured := c.QueryParam("featured"); featured != "" {
		if value, err := strconv.ParseBool(featured); err == nil {
			query = query.Where("featured = ?", value)
		} else {
			log.Warn("Invalid featured parameter", zap.String("value", featured), zap.Error(err))
		}
	}

	if search := c.QueryParam("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	result := query.Order("created_at DESC").Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID. A missing ID is
// an explicit not-found, not an error.
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var product model.Product
	result := database.GetDB().First(&product, id)
	if result.Error != nil {
		log.Warn("Product not found", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("create")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Product validation failed", zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	product := model.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Anime:       req.Anime,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		Images:      req.Images,
		ColorImages: req.ColorImages,
		Stock:       req.Stock,
		Featured:    req.Featured,
	}

	result := database.GetDB().Create(&product)
	if result.Error != nil {
		log.Error("Failed to create product",
			zap.String("name", req.Name),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create product",
		})
	}

	prometheus.UpdateProductInventory(
		strconv.FormatUint(uint64(product.ID), 10), product.Name, string(product.Category),
		float64(product.Stock))

	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Float64("price", product.Price))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles updating an existing product
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	prometheus.RecordProductOperation("update")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if msg := req.validate(); msg != "" {
		log.Warn("Product validation failed",
			zap.String("product_id", id),
			zap.String("reason", msg))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	var product model.Product
	result := database.GetDB().First(&product, id)
	if result.Error != nil {
		log.Warn("Product not found for update", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	oldPrice := product.Price

	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	product.Anime = req.Anime
	product.Sizes = req.Sizes
	product.Colors = req.Colors
	product.Images = req.Images
	product.ColorImages = req.ColorImages
	product.Stock = req.Stock
	product.Featured = req.Featured

	result = database.GetDB().Save(&product)
	if result.Error != nil {
		log.Error("Failed to update product",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update product",
		})
	}

	prometheus.UpdateProductInventory(id, product.Name, string(product.Category), float64(product.Stock))

	log.Info("Product updated successfully",
		zap.String("product_id", id),
		zap.String("name", product.Name),
		zap.Float64("old_price", oldPrice),
		zap.Float64("new_price", product.Price))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product (soft delete)
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	prometheus.RecordProductOperation("delete")

	result := database.GetDB().Delete(&model.Product{}, id)
	if result.Error != nil {
		log.Error("Failed to delete product",
			zap.String("product_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete product",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Product not found for deletion", zap.String("product_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	log.Info("Product deleted successfully", zap.String("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Product deleted successfully",
	})
}

// BulkUpdatePrices sets every product's price to the given value
func BulkUpdatePrices(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordProductOperation("bulk_price_update")

	var req struct {
		Price float64 `json:"price"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be greater than zero"})
	}

	result := database.GetDB().Model(&model.Product{}).
		Where("price > 0").
		Update("price", req.Price)
	if result.Error != nil {
		log.Error("Failed to update prices", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update prices"})
	}

	log.Info("Bulk price update completed",
		zap.Float64("price", req.Price),
		zap.Int64("products_updated", result.RowsAffected))
	return c.JSON(http.StatusOK, echo.Map{
		"message":          "Prices updated successfully",
		"products_updated": result.RowsAffected,
	})
}
