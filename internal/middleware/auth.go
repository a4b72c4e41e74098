package middleware

import (
	"net/http"
	"strings"

	"inventory-service/pkg/jwtutil"
	"inventory-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the JWT token and extracts the caller's identity,
// role and permission codes into the request context
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		// Get the Authorization header
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		// Extract the token
		tokenString := parts[1]

		// Validate the token
		claims, err := jwtutil.ValidateToken(tokenString)
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		// Store caller identity in context for later use
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Set("permissions", claims.Permissions)
		c.Set("claims", claims)

		// Token is valid, proceed with the request
		return next(c)
	}
}

// RequirePermission returns a middleware that rejects callers whose token
// does not grant the given permission code. Admin role callers always pass.
func RequirePermission(code string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			claims, ok := c.Get("claims").(*jwtutil.UserClaims)
			if !ok {
				log.Warn("Missing claims in context")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}

			if claims.Role != "admin" && !claims.HasPermission(code) {
				log.Warn("Permission denied",
					zap.String("email", claims.Email),
					zap.String("permission", code))
				return c.JSON(http.StatusForbidden, echo.Map{"error": "permission denied"})
			}

			return next(c)
		}
	}
}

// AdminOnly rejects callers whose token does not carry the admin role
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		claims, ok := c.Get("claims").(*jwtutil.UserClaims)
		if !ok {
			log.Warn("Missing claims in context")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}

		if claims.Role != "admin" {
			log.Warn("Admin access denied", zap.String("email", claims.Email))
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin access required"})
		}

		return next(c)
	}
}

// GetUserIDFromContext retrieves the acting user's ID from the context.
// Returns nil if the request is unauthenticated.
func GetUserIDFromContext(c echo.Context) *uint {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return nil
	}
	return &userID
}
