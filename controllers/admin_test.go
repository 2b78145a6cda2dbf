package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func adminRequest(t *testing.T, callerID, targetID string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/"+targetID+"/verify", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserIDKey, callerID))
	return mux.SetURLVars(req, map[string]string{"id": targetID})
}

func TestVerifyUserRejectsSelfTarget(t *testing.T) {
	rec := httptest.NewRecorder()
	VerifyUser().ServeHTTP(rec, adminRequest(t, "admin-1", "admin-1"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBlockUserRejectsSelfTarget(t *testing.T) {
	rec := httptest.NewRecorder()
	BlockUser().ServeHTTP(rec, adminRequest(t, "admin-1", "admin-1"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestVerificationUpdateDirections(t *testing.T) {
	verify, ok := verificationUpdate(true)["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, true, verify["isVerified"])

	block, ok := verificationUpdate(false)["$set"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, false, block["isVerified"])
	assert.Contains(t, block, "updatedAt")
}
