package routes

import (
	"testing"

	"rent4u-server/models"

	"github.com/kataras/iris/v12/httptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminListUsersPaging(t *testing.T) {
	db := setupTestDB(t)
	e := httptest.New(t, newTestApp())

	_, adminToken := createTestUser(t, db, "admin", "verified")
	for i := 0; i < 4; i++ {
		createTestUser(t, db, "renter", "pending")
	}

	res := e.GET("/api/admin/users").
		WithHeader("Authorization", "Bearer "+adminToken).
		WithQuery("page", 1).WithQuery("limit", 3).
		Expect().Status(httptest.StatusOK).JSON().Object()

	res.Value("total").Number().IsEqual(5)
	res.Value("users").Array().Length().IsEqual(3)

	res = e.GET("/api/admin/users").
		WithHeader("Authorization", "Bearer "+adminToken).
		WithQuery("page", 2).WithQuery("limit", 3).
		Expect().Status(httptest.StatusOK).JSON().Object()
	res.Value("users").Array().Length().IsEqual(2)

	// Password hashes never leave the server
	res.Value("users").Array().Value(0).Object().NotContainsKey("password")
}

func TestAdminVerifyUser(t *testing.T) {
	db := setupTestDB(t)
	e := httptest.New(t, newTestApp())

	_, adminToken := createTestUser(t, db, "admin", "verified")
	renter, renterToken := createTestUser(t, db, "renter", "pending")

	// Users cannot verify themselves
	e.POST("/api/admin/users/{id}/verify", renter.ID).
		WithHeader("Authorization", "Bearer "+renterToken).
		WithJSON(map[string]interface{}{"status": "verified"}).
		Expect().Status(httptest.StatusForbidden)

	e.POST("/api/admin/users/{id}/verify", renter.ID).
		WithHeader("Authorization", "Bearer "+adminToken).
		WithJSON(map[string]interface{}{"status": "verified"}).
		Expect().Status(httptest.StatusOK)

	var updated models.User
	require.NoError(t, db.First(&updated, renter.ID).Error)
	assert.Equal(t, "verified", updated.VerificationStatus)

	// Unknown states are rejected
	e.POST("/api/admin/users/{id}/verify", renter.ID).
		WithHeader("Authorization", "Bearer "+adminToken).
		WithJSON(map[string]interface{}{"status": "banned"}).
		Expect().Status(httptest.StatusBadRequest)
}
