package routes

import (
	"rent4u-server/models"
	"rent4u-server/storage"
	"rent4u-server/utils"

	"github.com/kataras/iris/v12"
)

func CreateReview(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}
	userID := ctx.Values().Get("userID").(uint)

	var input CreateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
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

	review := models.Review{
		PropertyID: propertyID,
		UserID:     userID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DB.Preload("User").First(&review, review.ID)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(review)
}

func ListPropertyReviews(ctx iris.Context) {
	propertyID := ctx.Params().Get("id")

	var reviews []models.Review
	res := storage.DB.
		Preload("User").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").
		Find(&reviews)

	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(reviews)
}

type CreateReviewInput struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}
