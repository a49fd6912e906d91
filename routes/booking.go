package routes

import (
	"fmt"
	"math"
	"time"

	"rent4u-server/models"
	"rent4u-server/storage"
	"rent4u-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// CreateBooking submits a stay request for a listing. Only identity-verified
// renters may book; the status always starts pending and the total is derived
// server-side from the listing price, never taken from the caller.
func CreateBooking(ctx iris.Context) {
	propertyID := ctx.Params().Get("id")
	userID := ctx.Values().Get("userID").(uint)

	var input CreateBookingInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if user.VerificationStatus != "verified" {
		utils.CreateForbidden(ctx, "Identity verification is required before booking")
		return
	}

	checkIn, checkInErr := time.Parse("2006-01-02", input.CheckInDate)
	checkOut, checkOutErr := time.Parse("2006-01-02", input.CheckOutDate)
	if checkInErr != nil || checkOutErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Dates must be in YYYY-MM-DD format", ctx)
		return
	}

	if !checkOut.After(checkIn) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "checkOutDate must be after checkInDate", ctx)
		return
	}

	var property models.Property
	propertyExists := storage.DB.Find(&property, propertyID)
	if propertyExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if propertyExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	totalAmount := property.Price * float64(nightsBetween(checkIn, checkOut))

	booking := models.Booking{
		PropertyID:   property.ID,
		UserID:       userID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Guests:       input.Guests,
		TotalAmount:  totalAmount,
		Status:       "pending",
		Message:      input.Message,
	}

	if err := storage.DB.Create(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	notification := models.Notification{
		UserID: property.OwnerID,
		Title:  "New Booking Request",
		Message: fmt.Sprintf("New booking request for %s from %s to %s",
			property.Title, checkIn.Format("Jan 2, 2006"), checkOut.Format("Jan 2, 2006")),
		Type:    "booking_request",
		RefID:   booking.ID,
		RefType: "booking",
	}
	storage.DB.Create(&notification)

	storage.DB.Preload("Property").Preload("Property.Images").First(&booking, booking.ID)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(booking)
}

func GetUserBookings(ctx iris.Context) {
	params := ctx.Params()
	userID := params.Get("id")

	var bookings []models.Booking
	res := storage.DB.
		Preload("Property").
		Preload("Property.Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings)

	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}

// GetOwnerBookings returns bookings across every listing owned by the
// authenticated owner, with the renter profile for display.
func GetOwnerBookings(ctx iris.Context) {
	tok := jwt.Get(ctx)
	if tok == nil {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Missing token", ctx)
		return
	}
	claims := tok.(*utils.AccessToken)

	var bookings []models.Booking
	res := storage.DB.
		Joins("JOIN properties p ON p.id = bookings.property_id").
		Where("p.owner_id = ?", claims.ID).
		Preload("Property").
		Preload("User").
		Order("bookings.created_at DESC").
		Find(&bookings)

	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(bookings)
}

// UpdateBookingStatus moves a pending booking to confirmed or cancelled.
// Allowed for the listing owner or an admin; both end states are terminal.
func UpdateBookingStatus(ctx iris.Context) {
	id := ctx.Params().Get("id")
	claims := jwt.Get(ctx).(*utils.AccessToken)

	var input UpdateBookingStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var booking models.Booking
	if err := storage.DB.Preload("Property").First(&booking, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if claims.UserType != "admin" && booking.Property.OwnerID != claims.ID {
		utils.CreateForbidden(ctx, "Only the listing owner or an admin can update booking status")
		return
	}

	if booking.Status != "pending" {
		utils.CreateError(iris.StatusConflict, "Conflict", "Booking status is already final", ctx)
		return
	}

	if err := storage.DB.Model(&booking).Update("status", input.Status).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	notification := models.Notification{
		UserID:  booking.UserID,
		Title:   "Booking Status Updated",
		Message: fmt.Sprintf("Your booking for %s has been %s", booking.Property.Title, input.Status),
		Type:    "booking_status",
		RefID:   booking.ID,
		RefType: "booking",
	}
	storage.DB.Create(&notification)

	ctx.JSON(booking)
}

// nightsBetween rounds partial days up, so a late check-in still pays for
// the night.
func nightsBetween(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

type CreateBookingInput struct {
	CheckInDate  string `json:"checkInDate" validate:"required"`
	CheckOutDate string `json:"checkOutDate" validate:"required"`
	Guests       int    `json:"guests" validate:"required,gte=1,lte=16"`
	Message      string `json:"message"`
}

type UpdateBookingStatusInput struct {
	Status string `json:"status" validate:"required,oneof=confirmed cancelled"`
}
