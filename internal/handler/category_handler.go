package handler

import (
	"errors"
	"net/http"

	mid "inventory-service/internal/middleware"
	"inventory-service/internal/model"
	"inventory-service/internal/query"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name             string `json:"name" validate:"required"`
	ParentCategoryID *uint  `json:"parent_category_id,omitempty"`
	IsActive         bool   `json:"is_active"`
}

// ListCategories handles retrieving all categories with pagination and search
func ListCategories(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing categories")

	params := query.Parse(c)
	db := database.GetDB().Model(&model.Category{}).Preload("ParentCategory")

	var categories []model.Category
	result := params.Apply(db,
		[]string{"name"},
		[]string{"name", "created_at"},
	).Find(&categories)
	if result.Error != nil {
		log.Error("Failed to list categories", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve categories",
		})
	}

	log.Info("Categories retrieved successfully", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}

// GetCategory handles retrieving a single category by ID
func GetCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var category model.Category
	result := database.GetDB().Preload("ParentCategory").First(&category, id)
	if result.Error != nil {
		log.Error("Category not found", zap.String("category_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Category not found",
		})
	}

	return c.JSON(http.StatusOK, category)
}

// CreateCategory handles creating a new category
func CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new category")

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Category name is required",
		})
	}

	// Check that the parent category exists when one is given
	if req.ParentCategoryID != nil {
		var parent model.Category
		if result := database.GetDB().First(&parent, *req.ParentCategoryID); result.Error != nil {
			log.Warn("Parent category not found", zap.Uint("parent_category_id", *req.ParentCategoryID))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Parent category not found",
			})
		}
	}

	// Category names are unique per parent
	var count int64
	countQuery := database.GetDB().Model(&model.Category{}).Where("name = ?", req.Name)
	if req.ParentCategoryID != nil {
		countQuery = countQuery.Where("parent_category_id = ?", *req.ParentCategoryID)
	} else {
		countQuery = countQuery.Where("parent_category_id IS NULL")
	}
	countQuery.Count(&count)
	if count > 0 {
		log.Warn("Category with this name already exists under this parent", zap.String("name", req.Name))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Category with this name already exists under this parent",
		})
	}

	userID := mid.GetUserIDFromContext(c)

	category := model.Category{
		Name:             req.Name,
		ParentCategoryID: req.ParentCategoryID,
		IsActive:         req.IsActive,
		CreatedBy:        userID,
		UpdatedBy:        userID,
	}

	result := database.GetDB().Create(&category)
	if result.Error != nil {
		log.Error("Failed to create category", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create category",
		})
	}

	log.Info("Category created successfully",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles updating an existing category
func UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating category", zap.String("category_id", id))

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("category_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var category model.Category
	result := database.GetDB().First(&category, id)
	if result.Error != nil {
		log.Error("Category not found for update", zap.String("category_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Category not found",
		})
	}

	category.Name = req.Name
	category.ParentCategoryID = req.ParentCategoryID
	category.IsActive = req.IsActive
	category.UpdatedBy = mid.GetUserIDFromContext(c)

	result = database.GetDB().Save(&category)
	if result.Error != nil {
		if errors.Is(result.Error, model.ErrCategoryOwnParent) {
			log.Warn("Category set as its own parent", zap.String("category_id", id))
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Category cannot be its own parent",
			})
		}
		log.Error("Failed to update category", zap.String("category_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update category",
		})
	}

	log.Info("Category updated successfully",
		zap.String("category_id", id),
		zap.String("name", category.Name))
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles deleting a category (soft delete)
func DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting category", zap.String("category_id", id))

	result := database.GetDB().Delete(&model.Category{}, id)
	if result.Error != nil {
		log.Error("Failed to delete category", zap.String("category_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete category",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("Category not found for deletion", zap.String("category_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Category not found",
		})
	}

	log.Info("Category deleted successfully", zap.String("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Category deleted successfully",
	})
}
