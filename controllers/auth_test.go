package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanest/marketplace/backend/models"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "admin@urbanest.in", normalizeEmail("  Admin@Urbanest.IN  "))
	assert.Equal(t, "", normalizeEmail("   "))
}

func TestIsAdminEmailMatchesAfterNormalization(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", " Admin@Urbanest.in ")

	assert.True(t, isAdminEmail("admin@urbanest.in"))
	assert.True(t, isAdminEmail("  ADMIN@URBANEST.IN  "))
	assert.False(t, isAdminEmail("user@urbanest.in"))
}

func TestIsAdminEmailFailsClosedWhenUnset(t *testing.T) {
	t.Setenv("ADMIN_EMAIL", "")

	assert.False(t, isAdminEmail("admin@urbanest.in"))
	assert.False(t, isAdminEmail(""))
}

func TestAdminProfileUpdateOverridesRoleAndVerification(t *testing.T) {
	update := adminProfileUpdate("user-1", "admin@urbanest.in", "Site Admin")

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)

	assert.Equal(t, models.RoleAdmin, set["role"])
	assert.Equal(t, true, set["isVerified"])
	assert.Equal(t, "user-1", set["userID"])
	assert.Equal(t, "admin@urbanest.in", set["email"])
	assert.Equal(t, "Site Admin", set["fullName"])
}
