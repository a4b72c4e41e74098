package handler

import (
	"net/http"

	mid "inventory-service/internal/middleware"
	"inventory-service/internal/model"
	"inventory-service/pkg/database"
	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListNotifications handles retrieving the caller's notifications.
// Admins see all notifications; other users see their own plus broadcasts.
func ListNotifications(c echo.Context) error {
	log := logger.FromContext(c)

	db := database.GetDB().Model(&model.Notification{}).Order("created_at DESC")

	claims, _ := c.Get("claims").(*jwtutil.UserClaims)
	if claims == nil || claims.Role != "admin" {
		userID := mid.GetUserIDFromContext(c)
		if userID != nil {
			db = db.Where("user_id = ? OR user_id IS NULL", *userID)
		} else {
			db = db.Where("user_id IS NULL")
		}
	}

	if c.QueryParam("unread") == "true" {
		db = db.Where("is_read = ?", false)
	}

	var notifications []model.Notification
	result := db.Find(&notifications)
	if result.Error != nil {
		log.Error("Failed to list notifications", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve notifications",
		})
	}

	return c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead handles marking a notification as read
func MarkNotificationRead(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var notification model.Notification
	result := database.GetDB().First(&notification, id)
	if result.Error != nil {
		log.Error("Notification not found", zap.String("notification_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Notification not found",
		})
	}

	notification.IsRead = true
	if result := database.GetDB().Save(&notification); result.Error != nil {
		log.Error("Failed to mark notification read", zap.String("notification_id", id), zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update notification",
		})
	}

	return c.JSON(http.StatusOK, notification)
}
