package jwtutil_test

import (
	"testing"

	"inventory-service/pkg/config"
	"inventory-service/pkg/jwtutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	token, err := jwtutil.GenerateToken("jdoe@example.com", 42, "storekeeper", []string{"view_product", "change_inventory"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtutil.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jdoe@example.com", claims.Email)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "storekeeper", claims.Role)
	assert.Equal(t, []string{"view_product", "change_inventory"}, claims.Permissions)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "first-key", ExpirationHours: 1})
	token, err := jwtutil.GenerateToken("jdoe@example.com", 42, "", nil)
	require.NoError(t, err)

	jwtutil.Initialize(&config.JWTConfig{SigningKey: "second-key", ExpirationHours: 1})
	_, err = jwtutil.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := jwtutil.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestHasPermission(t *testing.T) {
	claims := &jwtutil.UserClaims{Permissions: []string{"view_order", "add_order"}}

	assert.True(t, claims.HasPermission("view_order"))
	assert.True(t, claims.HasPermission("add_order"))
	assert.False(t, claims.HasPermission("delete_order"))

	empty := &jwtutil.UserClaims{}
	assert.False(t, empty.HasPermission("view_order"))
}
