package routes

import (
	"testing"
	"time"

	"rent4u-server/models"

	"github.com/kataras/iris/v12/httptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingComputesTotalServerSide(t *testing.T) {
	db := setupTestDB(t)
	e := httptest.New(t, newTestApp())

	owner, _ := createTestUser(t, db, "owner", "verified")
	renter, renterToken := createTestUser(t, db, "renter", "verified")
	property := createTestProperty(t, db, owner.ID, "approved", 100000)

	res := e.POST("/api/booking/property/{id}", property.ID).
		WithHeader("Authorization", "Bearer "+renterToken).
		WithJSON(map[string]interface{}{
			"checkInDate":  "2026-10-01",
			"checkOutDate": "2026-10-04",
			"guests":       2,
			"message":      "Arriving late",
			// Caller-supplied totals are ignored
			"totalAmount": 1,
		}).Expect().Status(httptest.StatusCreated).JSON().Object()

	res.Value("status").String().IsEqual("pending")

	var booking models.Booking
	require.NoError(t, db.Where("user_id = ?", renter.ID).First(&booking).Error)
	assert.Equal(t, float64(300000), booking.TotalAmount)
	assert.Equal(t, "pending", booking.Status)
	assert.Equal(t, 2, booking.Guests)

	// Owner gets a booking request notification
	var notification models.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?", owner.ID, "booking_request").First(&notification).Error)
	assert.Equal(t, booking.ID, notification.RefID)
}

func TestCreateBookingRejectsBadDateRange(t *testing.T) {
	db := setupTestDB(t)
	e := httptest.New(t, newTestApp())

	owner, _ := createTestUser(t, db, "owner", "verified")
	_, renterToken := createTestUser(t, db, "renter", "verified")
	property := createTestProperty(t, db, owner.ID, "approved", 100000)

	e.POST("/api/booking/property/{id}", property.ID).
		WithHeader("Authorization", "Bearer "+renterToken).
		WithJSON(map[string]interface{}{
			"checkInDate":  "2026-10-04",
			"checkOutDate": "2026-10-04",
			"guests":       1,
		}).Expect().Status(httptest.StatusBadRequest)

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateBookingRequiresVerifiedUser(t *testing.T) {
	db := setupTestDB(t)
	e := httptest.New(t, newTestApp())

	owner, _ := createTestUser(t, db, "owner", "verified")
	_, renterToken := createTestUser(t, db, "renter", "pending")
	property := createTestProperty(t, db, owner.ID, "approved", 100000)

	e.POST("/api/booking/property/{id}", property.ID).
		WithHeader("Authorization", "Bearer "+renterToken).
		WithJSON(map[string]interface{}{
			"checkInDate":  "2026-10-01",
			"checkOutDate": "2026-10-03",
			"guests":       1,
		}).Expect().Status(httptest.StatusForbidden)

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetOwnerBookingsScopedToOwnListings(t *testing.T) {
	db := setupTestDB(t)
	e := httptest.New(t, newTestApp())

	owner, ownerToken := createTestUser(t, db, "owner", "verified")
	otherOwner, _ := createTestUser(t, db, "owner", "verified")
	renter, _ := createTestUser(t, db, "renter", "verified")

	mine := createTestProperty(t, db, owner.ID, "approved", 100000)
	theirs := createTestProperty(t, db, otherOwner.ID, "approved", 100000)

	seedBooking := func(propertyID uint) {
		booking := models.Booking{
			PropertyID:   propertyID,
			UserID:       renter.ID,
			CheckInDate:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			CheckOutDate: time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
			Guests:       1,
			TotalAmount:  200000,
			Status:       "pending",
		}
		require.NoError(t, db.Create(&booking).Error)
	}
	seedBooking(mine.ID)
	seedBooking(theirs.ID)

	arr := e.GET("/api/booking/owner").
		WithHeader("Authorization", "Bearer "+ownerToken).
		Expect().Status(httptest.StatusOK).JSON().Array()
	arr.Length().IsEqual(1)
	arr.Value(0).Object().Value("propertyID").Number().IsEqual(mine.ID)
}

func TestUpdateBookingStatusTransitions(t *testing.T) {
	db := setupTestDB(t)
	e := httptest.New(t, newTestApp())

	owner, ownerToken := createTestUser(t, db, "owner", "verified")
	_, strangerToken := createTestUser(t, db, "owner", "verified")
	renter, _ := createTestUser(t, db, "renter", "verified")
	property := createTestProperty(t, db, owner.ID, "approved", 100000)

	booking := models.Booking{
		PropertyID:   property.ID,
		UserID:       renter.ID,
		CheckInDate:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC),
		Guests:       1,
		TotalAmount:  200000,
		Status:       "pending",
	}
	require.NoError(t, db.Create(&booking).Error)

	// A different owner cannot touch this booking
	e.PATCH("/api/booking/{id}/status", booking.ID).
		WithHeader("Authorization", "Bearer "+strangerToken).
		WithJSON(map[string]interface{}{"status": "confirmed"}).
		Expect().Status(httptest.StatusForbidden)

	e.PATCH("/api/booking/{id}/status", booking.ID).
		WithHeader("Authorization", "Bearer "+ownerToken).
		WithJSON(map[string]interface{}{"status": "confirmed"}).
		Expect().Status(httptest.StatusOK)

	var updated models.Booking
	require.NoError(t, db.First(&updated, booking.ID).Error)
	assert.Equal(t, "confirmed", updated.Status)

	// Confirmed is terminal
	e.PATCH("/api/booking/{id}/status", booking.ID).
		WithHeader("Authorization", "Bearer "+ownerToken).
		WithJSON(map[string]interface{}{"status": "cancelled"}).
		Expect().Status(httptest.StatusConflict)

	// Renter was told about the decision
	var notification models.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?", renter.ID, "booking_status").First(&notification).Error)
}

func TestNightsBetween(t *testing.T) {
	day := func(d int, hour int) time.Time {
		return time.Date(2026, 10, d, hour, 0, 0, 0, time.UTC)
	}

	assert.Equal(t, 3, nightsBetween(day(1, 0), day(4, 0)))
	assert.Equal(t, 1, nightsBetween(day(1, 0), day(2, 0)))
	// Partial days round up
	assert.Equal(t, 2, nightsBetween(day(1, 18), day(3, 10)))
}
