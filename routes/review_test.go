package routes

import (
	"testing"

	"rent4u-server/models"

	"github.com/kataras/iris/v12/httptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListReviews(t *testing.T) {
	db := setupTestDB(t)
	e := httptest.New(t, newTestApp())

	owner, _ := createTestUser(t, db, "owner", "verified")
	renter, renterToken := createTestUser(t, db, "renter", "verified")
	property := createTestProperty(t, db, owner.ID, "approved", 100000)

	e.POST("/api/review/property/{id}", property.ID).
		WithHeader("Authorization", "Bearer "+renterToken).
		WithJSON(map[string]interface{}{"rating": 4, "comment": "Clean and quiet"}).
		Expect().Status(httptest.StatusCreated).JSON().Object().
		Value("rating").Number().IsEqual(4)

	var review models.Review
	require.NoError(t, db.Where("property_id = ?", property.ID).First(&review).Error)
	assert.Equal(t, renter.ID, review.UserID)

	// Listing is public and carries the reviewer profile
	arr := e.GET("/api/review/property/{id}", property.ID).
		Expect().Status(httptest.StatusOK).JSON().Array()
	arr.Length().IsEqual(1)
	arr.Value(0).Object().Value("user").Object().Value("firstName").String().IsEqual(renter.FirstName)
}

func TestCreateReviewUnknownProperty(t *testing.T) {
	db := setupTestDB(t)
	e := httptest.New(t, newTestApp())

	_, renterToken := createTestUser(t, db, "renter", "verified")

	e.POST("/api/review/property/999").
		WithHeader("Authorization", "Bearer "+renterToken).
		WithJSON(map[string]interface{}{"rating": 5}).
		Expect().Status(httptest.StatusNotFound)
}

func TestCreateReviewRatingBounds(t *testing.T) {
	db := setupTestDB(t)
	e := httptest.New(t, newTestApp())

	owner, _ := createTestUser(t, db, "owner", "verified")
	_, renterToken := createTestUser(t, db, "renter", "verified")
	property := createTestProperty(t, db, owner.ID, "approved", 100000)

	for _, rating := range []int{0, 6} {
		e.POST("/api/review/property/{id}", property.ID).
			WithHeader("Authorization", "Bearer "+renterToken).
			WithJSON(map[string]interface{}{"rating": rating}).
			Expect().Status(httptest.StatusBadRequest)
	}

	var count int64
	db.Model(&models.Review{}).Count(&count)
	assert.Zero(t, count)
}

func TestNotificationsMarkRead(t *testing.T) {
	db := setupTestDB(t)
	e := httptest.New(t, newTestApp())

	user, token := createTestUser(t, db, "renter", "verified")
	other, _ := createTestUser(t, db, "renter", "verified")

	notification := models.Notification{UserID: user.ID, Title: "Hi", Message: "m", Type: "generic"}
	require.NoError(t, db.Create(&notification).Error)
	foreign := models.Notification{UserID: other.ID, Title: "Hi", Message: "m", Type: "generic"}
	require.NoError(t, db.Create(&foreign).Error)

	e.GET("/api/notifications").
		WithHeader("Authorization", "Bearer "+token).
		Expect().Status(httptest.StatusOK).JSON().Array().Length().IsEqual(1)

	e.PATCH("/api/notifications/{id}/read", notification.ID).
		WithHeader("Authorization", "Bearer "+token).
		Expect().Status(httptest.StatusOK)

	// Someone else's notification looks like it does not exist
	e.PATCH("/api/notifications/{id}/read", foreign.ID).
		WithHeader("Authorization", "Bearer "+token).
		Expect().Status(httptest.StatusNotFound)

	var updated models.Notification
	require.NoError(t, db.First(&updated, notification.ID).Error)
	assert.True(t, updated.IsRead)
}
