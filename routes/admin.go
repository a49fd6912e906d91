package routes

import (
	"fmt"
	"time"

	"rent4u-server/models"
	"rent4u-server/storage"
	"rent4u-server/utils"

	"github.com/kataras/iris/v12"
)

// AdminListPendingProperties - GET /api/admin/properties/pending
// Review queue, newest first, with owner and images for the moderation view.
func AdminListPendingProperties(ctx iris.Context) {
	var properties []models.Property
	res := storage.DB.
		Preload("Owner").
		Preload("Images").
		Where("status = ?", "pending").
		Order("created_at DESC").
		Find(&properties)

	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(properties)
}

// AdminUpdatePropertyStatus - PATCH /api/admin/properties/{id}/status
// The only way a listing leaves pending. Stamps reviewer notes and time.
func AdminUpdatePropertyStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}

	var input UpdatePropertyStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      input.Status,
		"admin_notes": input.AdminNotes,
		"reviewed_at": &now,
	}
	if err := storage.DB.Model(&property).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	notification := models.Notification{
		UserID:  property.OwnerID,
		Title:   "Listing Reviewed",
		Message: fmt.Sprintf("Your listing %q has been %s", property.Title, input.Status),
		Type:    "property_status",
		RefID:   property.ID,
		RefType: "property",
	}
	storage.DB.Create(&notification)

	ctx.JSON(property)
}

// AdminListUsers - GET /api/admin/users
// Paged user directory for the moderation dashboard.
func AdminListUsers(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	limit := ctx.URLParamIntDefault("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := storage.DB.Model(&models.User{}).Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var users []models.User
	res := storage.DB.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"users": users,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

// AdminVerifyUser - POST /api/admin/users/{id}/verify
// Moves a profile through the identity verification states.
func AdminVerifyUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid user ID", ctx)
		return
	}

	var input VerifyUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := storage.DB.Model(&user).Update("verification_status", input.Status).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(user)
}

type UpdatePropertyStatusInput struct {
	Status     string `json:"status" validate:"required,oneof=approved rejected"`
	AdminNotes string `json:"adminNotes"`
}

type VerifyUserInput struct {
	Status string `json:"status" validate:"required,oneof=pending verified rejected"`
}
