package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	mid "inventory-service/internal/middleware"
	"inventory-service/internal/model"
	"inventory-service/internal/query"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductRequest defines the structure for product creation/update requests
type ProductRequest struct {
	Name            string     `json:"name" validate:"required"`
	CategoryID      uint       `json:"category_id"`
	SupplierID      uint       `json:"supplier_id"`
	WarehouseID     uint       `json:"warehouse_id"`
	PurchasePrice   float64    `json:"purchase_price" validate:"required,gt=0"`
	SellingPrice    float64    `json:"selling_price" validate:"required,gt=0"`
	TaxRate         float64    `json:"tax_rate"`
	Measure         string     `json:"measure"`
	Stock           int        `json:"stock"`
	IsActive        bool       `json:"is_active"`
	Notes           string     `json:"notes"`
	ManufactureDate *time.Time `json:"manufacture_date,omitempty"`
	ExpiryDate      *time.Time `json:"expiry_date,omitempty"`
}

// ListProducts handles retrieving all products with optional filtering
func ListProducts(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing products with filters")

	db := database.GetDB().Model(&model.Product{}).
		Preload("Category").Preload("Supplier").Preload("Warehouse")

	// Filter by active status if specified
	isActive := c.QueryParam("is_active")
	if isActive != "" {
		active, err := strconv.ParseBool(isActive)
		if err == nil {
			db = db.Where("is_active = ?", active)
			log.Info("Filtering products by active status", zap.Bool("is_active", active))
		} else {
			log.Warn("Invalid is_active parameter", zap.String("value", isActive), zap.Error(err))
		}
	}

	// Filter by category if specified
	categoryID := c.QueryParam("category_id")
	if categoryID != "" {
		db = db.Where("category_id = ?", categoryID)
		log.Info("Filtering products by category", zap.String("category_id", categoryID))
	}

	// Filter by supplier if specified
	supplierID := c.QueryParam("supplier_id")
	if supplierID != "" {
		db = db.Where("supplier_id = ?", supplierID)
	}

	// Filter by warehouse if specified
	warehouseID := c.QueryParam("warehouse_id")
	if warehouseID != "" {
		db = db.Where("warehouse_id = ?", warehouseID)
	}

	params := query.Parse(c)

	var products []model.Product
	result := params.Apply(db,
		[]string{"name", "measure"},
		[]string{"name", "selling_price", "stock", "created_at"},
	).Find(&products)
	if result.Error != nil {
		log.Error("Failed to list products", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve products",
		})
	}

	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID
func GetProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Getting product by ID", zap.String("product_id", id))

	var product model.Product
	result := database.GetDB().
		Preload("Category").Preload("Supplier").Preload("Warehouse").
		First(&product, id)
	if result.Error != nil {
		log.Error("Product not found", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	log.Info("Product retrieved successfully",
		zap.String("product_id", id),
		zap.String("product_name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func CreateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new product")
	prometheus.RecordProductOperation("create")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	log.Info("Product creation request",
		zap.String("name", req.Name),
		zap.Float64("purchase_price", req.PurchasePrice),
		zap.Float64("selling_price", req.SellingPrice),
		zap.Int("stock", req.Stock))

	userID := mid.GetUserIDFromContext(c)

	product := model.Product{
		Name:            req.Name,
		CategoryID:      req.CategoryID,
		SupplierID:      req.SupplierID,
		WarehouseID:     req.WarehouseID,
		PurchasePrice:   req.PurchasePrice,
		SellingPrice:    req.SellingPrice,
		TaxRate:         req.TaxRate,
		Measure:         req.Measure,
		Stock:           req.Stock,
		IsActive:        req.IsActive,
		Notes:           req.Notes,
		ManufactureDate: req.ManufactureDate,
		ExpiryDate:      req.ExpiryDate,
		CreatedBy:       userID,
		UpdatedBy:       userID,
	}

	// Field-level validation before persistence
	if err := product.Validate(); err != nil {
		var fieldErrs model.FieldErrors
		if errors.As(err, &fieldErrs) {
			log.Warn("Product validation failed", zap.Any("fields", fieldErrs))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":  "Validation failed",
				"fields": fieldErrs,
			})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	result := database.GetDB().Create(&product)
	if result.Error != nil {
		log.Error("Failed to create product", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create product",
		})
	}

	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles updating an existing product
func UpdateProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating product", zap.String("product_id", id))
	prometheus.RecordProductOperation("update")

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	// Find existing product
	var product model.Product
	result := database.GetDB().First(&product, id)
	if result.Error != nil {
		log.Error("Product not found for update", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	}

	oldPrice := product.SellingPrice

	// Update fields
	product.Name = req.Name
	product.CategoryID = req.CategoryID
	product.SupplierID = req.SupplierID
	product.WarehouseID = req.WarehouseID
	product.PurchasePrice = req.PurchasePrice
	product.SellingPrice = req.SellingPrice
	product.TaxRate = req.TaxRate
	product.Measure = req.Measure
	product.Stock = req.Stock
	product.IsActive = req.IsActive
	product.Notes = req.Notes
	product.ManufactureDate = req.ManufactureDate
	product.ExpiryDate = req.ExpiryDate
	product.UpdatedBy = mid.GetUserIDFromContext(c)

	if err := product.Validate(); err != nil {
		var fieldErrs model.FieldErrors
		if errors.As(err, &fieldErrs) {
			log.Warn("Product validation failed", zap.Any("fields", fieldErrs))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":  "Validation failed",
				"fields": fieldErrs,
			})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	result = database.GetDB().Save(&product)
	if result.Error != nil {
		log.Error("Failed to update product", zap.String("product_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update product",
		})
	}

	log.Info("Product updated successfully",
		zap.String("product_id", id),
		zap.String("name", product.Name),
		zap.Float64("old_price", oldPrice),
		zap.Float64("new_price", product.SellingPrice))
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles deleting a product (soft delete)
func DeleteProduct(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting product", zap.String("product_id", id))
	prometheus.RecordProductOperation("delete")

	result := database.GetDB().Delete(&model.Product{}, id)
	if result.Error != nil {
		log.Error("Failed to delete product", zap.String("product_id", id), zap.Error(result.Error))
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
