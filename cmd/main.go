package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"storefront-service/internal/cart"
	"storefront-service/internal/handler"
	mid "storefront-service/internal/middleware"
	"storefront-service/pkg/config"
	"storefront-service/pkg/database"
	"storefront-service/pkg/jwtutil"
	"storefront-service/pkg/logger"
	"storefront-service/pkg/mailer"
	"storefront-service/pkg/shipping"
	"storefront-service/prometheus"
)

func main() {
	// Load configuration
	appConfig, err := config.Load("storefront-service")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting storefront-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// External collaborators
	handler.SetCarrier(shipping.NewClient(
		appConfig.Shipping.BaseURL,
		appConfig.Shipping.CustomerID,
		appConfig.Shipping.APIKey,
		log.Named("ozonexpress"),
	))
	handler.SetMailer(mailer.NewClient(
		appConfig.Mailer.BaseURL,
		appConfig.Mailer.ServiceID,
		appConfig.Mailer.TemplateID,
		appConfig.Mailer.PublicKey,
		log.Named("emailjs"),
	))

	// Cart store lives for the whole process; carts are transient
	cartStore := cart.NewStore()
	cartHandler := handler.NewCartHandler(cartStore, appConfig.Checkout.WhatsAppNumber, appConfig.Server.BaseURL)
	uploadHandler := handler.NewUploadHandler(appConfig.Upload.Dir, appConfig.Upload.BaseURL)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Uploaded product images
	e.Static("/uploads", appConfig.Upload.Dir)

	// Auth
	e.POST("/api/auth/register", handler.Register)
	e.POST("/api/auth/login", handler.Login)

	// Public catalog
	e.GET("/api/products", handler.ListProducts)
	e.GET("/api/products/:id", handler.GetProduct)

	// Session cart and WhatsApp checkout
	cartAPI := e.Group("/api/cart")
	cartAPI.GET("", cartHandler.GetCart)
	cartAPI.POST("/items", cartHandler.AddItem)
	cartAPI.PUT("/items", cartHandler.UpdateItem)
	cartAPI.DELETE("/items", cartHandler.RemoveItem)
	cartAPI.DELETE("", cartHandler.ClearCart)
	cartAPI.POST("/checkout", cartHandler.Checkout)

	// Contact form relay
	e.POST("/api/contact", handler.Contact)

	// Carrier city directory for the order form
	e.GET("/api/shipping/cities", handler.ListCities)

	// Admin back-office - JWT validated and role checked on every call
	adminAPI := e.Group("/api/admin", mid.AuthMiddleware, mid.RequireAdmin)
	adminAPI.POST("/products", handler.CreateProduct)
	adminAPI.PUT("/products/:id", handler.UpdateProduct)
	adminAPI.DELETE("/products/:id", handler.DeleteProduct)
	adminAPI.POST("/products/prices", handler.BulkUpdatePrices)
	adminAPI.POST("/products/images", uploadHandler.UploadImage)

	adminAPI.GET("/orders", handler.ListOrders)
	adminAPI.GET("/orders/:id", handler.GetOrder)
	adminAPI.POST("/orders", handler.CreateOrder)
	adminAPI.PUT("/orders/:id", handler.UpdateOrder)
	adminAPI.PUT("/orders/:id/status", handler.UpdateOrderStatus)
	adminAPI.DELETE("/orders/:id", handler.DeleteOrder)

	adminAPI.GET("/cashflow", handler.ListCashFlowEntries)
	adminAPI.POST("/cashflow", handler.CreateCashFlowEntry)
	adminAPI.GET("/cashflow/report", handler.CashFlowReport)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
