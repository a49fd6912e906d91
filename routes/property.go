package routes

import (
	"encoding/json"
	"fmt"
	"time"

	"rent4u-server/models"
	"rent4u-server/storage"
	"rent4u-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateProperty inserts a listing for the authenticated owner. Status is
// always pending until an admin reviews it, whatever the caller sends.
// Images are uploaded before any row is written; a failed upload destroys
// the blobs uploaded so far and aborts, so no partial listing survives.
func CreateProperty(ctx iris.Context) {
	ownerID := ctx.Values().Get("userID").(uint)

	var input CreateListingInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if len(input.Images) == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "At least one image is required", ctx)
		return
	}

	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	amenitiesJSON, _ := json.Marshal(amenities)

	property := models.Property{
		OwnerID:        ownerID,
		Title:          input.Title,
		Description:    input.Description,
		PropertyType:   input.PropertyType,
		Location:       input.Location,
		Price:          input.Price,
		Bedrooms:       input.Bedrooms,
		Bathrooms:      input.Bathrooms,
		SquareFeet:     input.SquareFeet,
		RentalDuration: input.RentalDuration,
		AvailableFrom:  input.AvailableFrom,
		ContactPhone:   input.ContactPhone,
		ContactEmail:   input.ContactEmail,
		Amenities:      datatypes.JSON(amenitiesJSON),
		Status:         "pending",
	}

	imageURLs, uploadErr := uploadListingImages(ownerID, input.Images)
	if uploadErr != nil {
		utils.CreateError(iris.StatusBadGateway, "Upload Error", "Image upload failed, listing was not created", ctx)
		return
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&property).Error; err != nil {
			return err
		}
		for i, url := range imageURLs {
			image := models.PropertyImage{
				PropertyID: property.ID,
				ImageURL:   url,
				IsPrimary:  i == 0, // first of the batch is the cover
			}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		// Rows rolled back; compensate the already-uploaded blobs too
		for _, url := range imageURLs {
			storage.DeleteImage(url)
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DB.Preload("Images").First(&property, property.ID)
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(property)
}

func GetProperty(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var property models.Property
	propertyExists := storage.DB.
		Preload("Images").
		Preload("Owner").
		Preload("Reviews").
		Preload("Reviews.User").
		Find(&property, id)

	if propertyExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if propertyExists.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(property)
}

// GetPropertiesByOwnerID returns an owner's listings in every status, so
// owners can track their pending submissions.
func GetPropertiesByOwnerID(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var properties []models.Property
	res := storage.DB.
		Preload("Images").
		Where("owner_id = ?", id).
		Order("created_at DESC").
		Find(&properties)

	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(properties)
}

// SetPrimaryImage flips the cover image in one transaction: clear the old
// primary, set the new one. Keeps the at-most-one-primary invariant out of
// the callers' hands.
func SetPrimaryImage(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}
	imageID, err := ctx.Params().GetUint("imageID")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid image ID", ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, propertyID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if property.OwnerID != userID {
		utils.CreateForbidden(ctx, "Only the listing owner can change its images")
		return
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		var image models.PropertyImage
		if err := tx.Where("id = ? AND property_id = ?", imageID, propertyID).First(&image).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.PropertyImage{}).
			Where("property_id = ? AND is_primary = ?", propertyID, true).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&image).Update("is_primary", true).Error
	})
	if txErr != nil {
		if txErr == gorm.ErrRecordNotFound {
			utils.CreateNotFound(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	var images []models.PropertyImage
	storage.DB.Where("property_id = ?", propertyID).Order("id ASC").Find(&images)
	ctx.JSON(images)
}

// uploadListingImages pushes every base64 payload to object storage under a
// key of owner + timestamp + index. On failure it destroys what already
// went up and returns the error.
func uploadListingImages(ownerID uint, images []string) ([]string, error) {
	uploaded := make([]string, 0, len(images))
	batch := time.Now().Unix()

	for i, imageSrc := range images {
		publicID := fmt.Sprintf("property-%d-%d-%d", ownerID, batch, i)
		url, err := storage.UploadBase64Image(imageSrc, publicID)
		if err != nil {
			for _, prior := range uploaded {
				storage.DeleteImage(prior)
			}
			return nil, err
		}
		uploaded = append(uploaded, url)
	}

	return uploaded, nil
}

type CreateListingInput struct {
	Title          string   `json:"title" validate:"required,max=256"`
	Description    string   `json:"description" validate:"required"`
	PropertyType   string   `json:"propertyType" validate:"required"`
	Location       string   `json:"location" validate:"required"`
	Price          float64  `json:"price" validate:"required,gt=0"`
	Bedrooms       int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms      int      `json:"bathrooms" validate:"gte=0"`
	SquareFeet     int      `json:"squareFeet" validate:"gte=0"`
	RentalDuration string   `json:"rentalDuration"`
	AvailableFrom  string   `json:"availableFrom"`
	ContactPhone   string   `json:"contactPhone"`
	ContactEmail   string   `json:"contactEmail" validate:"omitempty,email"`
	Amenities      []string `json:"amenities"`
	Images         []string `json:"images"`
}
