package main

import (
	"inventory-service/internal/handler"
	mid "inventory-service/internal/middleware"
	"inventory-service/pkg/config"
	"inventory-service/pkg/database"
	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (reads .env when present)
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting inventory-service",
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
	err = database.InitDB(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

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

	// Authentication endpoints
	e.POST("/api/auth/register", handler.Register)
	e.POST("/api/auth/login", handler.Login)

	// User and role administration - admin only
	userAPI := e.Group("/api/users", mid.AuthMiddleware, mid.AdminOnly)
	userAPI.GET("", handler.ListUsers)
	userAPI.GET("/:id", handler.GetUser)
	userAPI.PUT("/:id", handler.UpdateUser)
	userAPI.DELETE("/:id", handler.DeleteUser)

	roleAPI := e.Group("/api/roles", mid.AuthMiddleware, mid.AdminOnly)
	roleAPI.GET("", handler.ListRoles)
	roleAPI.GET("/:id", handler.GetRole)
	roleAPI.POST("", handler.CreateRole)
	roleAPI.PUT("/:id", handler.UpdateRole)
	roleAPI.DELETE("/:id", handler.DeleteRole)

	// Supplier API routes
	supplierAPI := e.Group("/api/suppliers", mid.AuthMiddleware)
	supplierAPI.GET("", handler.ListSuppliers, mid.RequirePermission("view_supplier"))
	supplierAPI.GET("/:id", handler.GetSupplier, mid.RequirePermission("view_supplier"))
	supplierAPI.POST("", handler.CreateSupplier, mid.RequirePermission("add_supplier"))
	supplierAPI.PUT("/:id", handler.UpdateSupplier, mid.RequirePermission("change_supplier"))
	supplierAPI.DELETE("/:id", handler.DeleteSupplier, mid.RequirePermission("delete_supplier"))

	// Category API routes
	categoryAPI := e.Group("/api/categories", mid.AuthMiddleware)
	categoryAPI.GET("", handler.ListCategories, mid.RequirePermission("view_category"))
	categoryAPI.GET("/:id", handler.GetCategory, mid.RequirePermission("view_category"))
	categoryAPI.POST("", handler.CreateCategory, mid.RequirePermission("add_category"))
	categoryAPI.PUT("/:id", handler.UpdateCategory, mid.RequirePermission("change_category"))
	categoryAPI.DELETE("/:id", handler.DeleteCategory, mid.RequirePermission("delete_category"))

	// Warehouse API routes
	warehouseAPI := e.Group("/api/warehouses", mid.AuthMiddleware)
	warehouseAPI.GET("", handler.ListWarehouses, mid.RequirePermission("view_warehouse"))
	warehouseAPI.GET("/:id", handler.GetWarehouse, mid.RequirePermission("view_warehouse"))
	warehouseAPI.POST("", handler.CreateWarehouse, mid.RequirePermission("add_warehouse"))
	warehouseAPI.PUT("/:id", handler.UpdateWarehouse, mid.RequirePermission("change_warehouse"))
	warehouseAPI.DELETE("/:id", handler.DeleteWarehouse, mid.RequirePermission("delete_warehouse"))

	// Product API routes
	productAPI := e.Group("/api/products", mid.AuthMiddleware)
	productAPI.GET("", handler.ListProducts, mid.RequirePermission("view_product"))
	productAPI.GET("/:id", handler.GetProduct, mid.RequirePermission("view_product"))
	productAPI.POST("", handler.CreateProduct, mid.RequirePermission("add_product"))
	productAPI.PUT("/:id", handler.UpdateProduct, mid.RequirePermission("change_product"))
	productAPI.DELETE("/:id", handler.DeleteProduct, mid.RequirePermission("delete_product"))

	// Dealer API routes
	dealerAPI := e.Group("/api/dealers", mid.AuthMiddleware)
	dealerAPI.GET("", handler.ListDealers)
	dealerAPI.GET("/:id", handler.GetDealer)
	dealerAPI.POST("", handler.CreateDealer)
	dealerAPI.PUT("/:id", handler.UpdateDealer)
	dealerAPI.DELETE("/:id", handler.DeleteDealer)

	// Inventory API routes
	inventoryAPI := e.Group("/api/inventories", mid.AuthMiddleware)
	inventoryAPI.GET("", handler.ListInventories)
	inventoryAPI.GET("/:id", handler.GetInventory)
	inventoryAPI.POST("", handler.CreateInventory)
	inventoryAPI.PUT("/:id", handler.UpdateInventory)
	inventoryAPI.DELETE("/:id", handler.DeleteInventory)

	// Inventory audit trail
	e.GET("/api/inventory-audits", handler.ListInventoryAudits, mid.AuthMiddleware, mid.AdminOnly)

	// Order API routes
	orderAPI := e.Group("/api/orders", mid.AuthMiddleware)
	orderAPI.GET("", handler.ListOrders)
	orderAPI.GET("/:id", handler.GetOrder)
	orderAPI.POST("", handler.CreateOrder)
	orderAPI.PUT("/:id", handler.UpdateOrder)
	orderAPI.DELETE("/:id", handler.DeleteOrder)
	orderAPI.POST("/:id/confirm", handler.ConfirmOrder)
	orderAPI.POST("/:id/deliver", handler.DeliverOrder)

	// Order item API routes
	orderItemAPI := e.Group("/api/order-items", mid.AuthMiddleware)
	orderItemAPI.GET("", handler.ListOrderItems)
	orderItemAPI.GET("/:id", handler.GetOrderItem)
	orderItemAPI.POST("", handler.CreateOrderItem)
	orderItemAPI.DELETE("/:id", handler.DeleteOrderItem)

	// Denormalized order summary - admin only
	e.GET("/api/order-summary", handler.OrderSummary, mid.AuthMiddleware, mid.AdminOnly)

	// Notification API routes
	notificationAPI := e.Group("/api/notifications", mid.AuthMiddleware)
	notificationAPI.GET("", handler.ListNotifications)
	notificationAPI.POST("/:id/read", handler.MarkNotificationRead)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
