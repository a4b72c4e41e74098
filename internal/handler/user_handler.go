package handler

import (
	"net/http"

	"inventory-service/internal/model"
	"inventory-service/internal/query"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRequest defines the structure for user update requests
type UserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	RoleID    *uint  `json:"role_id,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// ListUsers handles retrieving all users with pagination and search
func ListUsers(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing users")

	params := query.Parse(c)
	db := database.GetDB().Model(&model.User{}).Preload("Role")

	var users []model.User
	result := params.Apply(db,
		[]string{"username", "email", "first_name", "last_name"},
		[]string{"username", "email", "created_at"},
	).Find(&users)
	if result.Error != nil {
		log.Error("Failed to list users", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve users",
		})
	}

	log.Info("Users retrieved successfully", zap.Int("count", len(users)))
	return c.JSON(http.StatusOK, users)
}

// GetUser handles retrieving a single user by ID
func GetUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Getting user by ID", zap.String("user_id", id))

	var user model.User
	result := database.GetDB().Preload("Role.Permissions").First(&user, id)
	if result.Error != nil {
		log.Error("User not found", zap.String("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "User not found",
		})
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateUser handles updating an existing user
func UpdateUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Updating user", zap.String("user_id", id))

	var req UserRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("user_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	var user model.User
	result := database.GetDB().First(&user, id)
	if result.Error != nil {
		log.Error("User not found for update", zap.String("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "User not found",
		})
	}

	// Check if email is changed and if new email already exists
	if req.Email != "" && req.Email != user.Email {
		var count int64
		database.GetDB().Model(&model.User{}).Where("email = ? AND id != ?", req.Email, id).Count(&count)
		if count > 0 {
			log.Warn("User with this email already exists", zap.String("email", req.Email))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "User with this email already exists",
			})
		}
		user.Email = req.Email
	}

	// Update fields
	if req.Username != "" {
		user.Username = req.Username
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.RoleID = req.RoleID
	user.IsActive = req.IsActive

	// Re-hash password when a new one is supplied
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "Failed to update user",
			})
		}
		user.Password = string(hashedPassword)
	}

	result = database.GetDB().Save(&user)
	if result.Error != nil {
		log.Error("Failed to update user", zap.String("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update user",
		})
	}

	log.Info("User updated successfully",
		zap.String("user_id", id),
		zap.String("email", user.Email))
	return c.JSON(http.StatusOK, user)
}

// DeleteUser handles deleting a user (soft delete)
func DeleteUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")
	log.Info("Deleting user", zap.String("user_id", id))

	result := database.GetDB().Delete(&model.User{}, id)
	if result.Error != nil {
		log.Error("Failed to delete user", zap.String("user_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete user",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("User not found for deletion", zap.String("user_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "User not found",
		})
	}

	log.Info("User deleted successfully", zap.String("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User deleted successfully",
	})
}
