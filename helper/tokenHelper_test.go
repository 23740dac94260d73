package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showrov4g/hostel-management-server/models"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	token, err := GenerateToken("alice@mail.com", models.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@mail.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateToken_RejectsWrongKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "key-one")
	token, err := GenerateToken("alice@mail.com", models.RoleUser)
	require.NoError(t, err)

	t.Setenv("SECRET_KEY", "key-two")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
