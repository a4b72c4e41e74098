package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"inventory-service/internal/handler"
	"inventory-service/internal/model"
	"inventory-service/pkg/jwtutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)

	body := `{"username": "jdoe", "email": "jdoe@example.com", "password": "s3cret"}`
	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/register", body)
	require.NoError(t, handler.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	// Registration fans out a notification
	var notification model.Notification
	require.NoError(t, db.Where("type = ?", model.NotificationUserRegistered).First(&notification).Error)
	assert.Contains(t, notification.Message, "jdoe")

	// Password must be stored hashed
	var user model.User
	require.NoError(t, db.Where("email = ?", "jdoe@example.com").First(&user).Error)
	assert.NotEqual(t, "s3cret", user.Password)

	c, rec = newJSONContext(t, http.MethodPost, "/api/auth/login", `{"email": "jdoe@example.com", "password": "s3cret"}`)
	require.NoError(t, handler.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	claims, err := jwtutil.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "jdoe@example.com", claims.Email)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupTestDB(t)

	body := `{"email": "jdoe@example.com", "password": "s3cret"}`
	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/register", body)
	require.NoError(t, handler.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newJSONContext(t, http.MethodPost, "/api/auth/register", body)
	require.NoError(t, handler.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginInvalidPassword(t *testing.T) {
	setupTestDB(t)

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/register", `{"email": "jdoe@example.com", "password": "s3cret"}`)
	require.NoError(t, handler.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newJSONContext(t, http.MethodPost, "/api/auth/login", `{"email": "jdoe@example.com", "password": "wrong"}`)
	require.NoError(t, handler.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginCarriesRolePermissions(t *testing.T) {
	db := setupTestDB(t)

	role := model.Role{
		Name: "storekeeper",
		Permissions: []model.Permission{
			{Code: "view_product"},
			{Code: "change_inventory"},
		},
	}
	require.NoError(t, db.Create(&role).Error)

	body, err := json.Marshal(map[string]interface{}{
		"email":    "keeper@example.com",
		"password": "s3cret",
		"role_id":  role.ID,
	})
	require.NoError(t, err)

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/register", string(body))
	require.NoError(t, handler.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newJSONContext(t, http.MethodPost, "/api/auth/login", `{"email": "keeper@example.com", "password": "s3cret"}`)
	require.NoError(t, handler.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	claims, err := jwtutil.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "storekeeper", claims.Role)
	assert.True(t, claims.HasPermission("view_product"))
	assert.True(t, claims.HasPermission("change_inventory"))
	assert.False(t, claims.HasPermission("delete_product"))
}
