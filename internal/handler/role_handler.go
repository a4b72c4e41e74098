package handler

import (
	"net/http"

	"inventory-service/internal/model"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RoleRequest defines the structure for role creation/update requests
type RoleRequest struct {
	Name        string   `json:"name" validate:"required"`
	Permissions []string `json:"permissions"` // Permission codes to grant
}

// ListRoles handles retrieving all roles with their permissions
func ListRoles(c echo.Context) error {
	log := logger.FromContext(c)

	var roles []model.Role
	result := database.GetDB().Preload("Permissions").Find(&roles)
	if result.Error != nil {
		log.Error("Failed to list roles", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve roles",
		})
	}

	return c.JSON(http.StatusOK, roles)
}

// GetRole handles retrieving a single role by ID
func GetRole(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var role model.Role
	result := database.GetDB().Preload("Permissions").First(&role, id)
	if result.Error != nil {
		log.Error("Role not found", zap.String("role_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Role not found",
		})
	}

	return c.JSON(http.StatusOK, role)
}

// CreateRole handles creating a new role with a set of permission codes
func CreateRole(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new role")

	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Role name is required",
		})
	}

	// Check if role with same name exists
	var count int64
	database.GetDB().Model(&model.Role{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		log.Warn("Role with this name already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Role with this name already exists",
		})
	}

	permissions, err := resolvePermissions(req.Permissions)
	if err != nil {
		log.Error("Failed to resolve permissions", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Unknown permission code",
		})
	}

	role := model.Role{
		Name:        req.Name,
		Permissions: permissions,
	}

	result := database.GetDB().Create(&role)
	if result.Error != nil {
		log.Error("Failed to create role", zap.String("name", req.Name), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create role",
		})
	}

	log.Info("Role created successfully",
		zap.String("name", role.Name),
		zap.Int("permission_count", len(role.Permissions)))
	return c.JSON(http.StatusCreated, role)
}

// UpdateRole handles updating a role's name and permission set
func UpdateRole(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating role", zap.String("role_id", id))

	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var role model.Role
	result := database.GetDB().First(&role, id)
	if result.Error != nil {
		log.Error("Role not found for update", zap.String("role_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Role not found",
		})
	}

	if req.Name != "" && req.Name != role.Name {
		var count int64
		database.GetDB().Model(&model.Role{}).Where("name = ? AND id != ?", req.Name, id).Count(&count)
		if count > 0 {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "Role with this name already exists",
			})
		}
		role.Name = req.Name
	}

	permissions, err := resolvePermissions(req.Permissions)
	if err != nil {
		log.Error("Failed to resolve permissions", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Unknown permission code",
		})
	}

	if result := database.GetDB().Save(&role); result.Error != nil {
		log.Error("Failed to update role", zap.String("role_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update role",
		})
	}

	// Replace the permission association with the requested set
	if err := database.GetDB().Model(&role).Association("Permissions").Replace(permissions); err != nil {
		log.Error("Failed to update role permissions", zap.String("role_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update role",
		})
	}

	role.Permissions = permissions
	log.Info("Role updated successfully", zap.String("role_id", id))
	return c.JSON(http.StatusOK, role)
}

// DeleteRole handles deleting a role
func DeleteRole(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting role", zap.String("role_id", id))

	result := database.GetDB().Delete(&model.Role{}, id)
	if result.Error != nil {
		log.Error("Failed to delete role", zap.String("role_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete role",
		})
	}

	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Role not found",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Role deleted successfully",
	})
}

// resolvePermissions loads permission rows for the given codes, creating
// missing codes on the fly
func resolvePermissions(codes []string) ([]model.Permission, error) {
	permissions := make([]model.Permission, 0, len(codes))
	for _, code := range codes {
		var permission model.Permission
		err := database.GetDB().Where(model.Permission{Code: code}).FirstOrCreate(&permission).Error
		if err != nil {
			return nil, err
		}
		permissions = append(permissions, permission)
	}
	return permissions, nil
}
