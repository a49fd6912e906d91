package routes

import (
	"strings"

	"rent4u-server/models"
	"rent4u-server/storage"

	"github.com/kataras/iris/v12"
)

// SearchProperties handles the public listing search. Only approved
// listings are ever returned; every filter is optional and missing params
// impose no constraint. The full matching set comes back, newest first.
func SearchProperties(ctx iris.Context) {
	q := storage.DB.Model(&models.Property{}).Where("status = ?", "approved")

	if location := strings.TrimSpace(ctx.URLParam("location")); location != "" {
		q = q.Where("LOWER(location) LIKE LOWER(?)", "%"+location+"%")
	}
	if pType := strings.TrimSpace(ctx.URLParam("propertyType")); pType != "" {
		q = q.Where("property_type = ?", pType)
	}
	if minPrice, err := ctx.URLParamFloat64("minPrice"); err == nil && minPrice > 0 {
		q = q.Where("price >= ?", minPrice)
	}
	if maxPrice, err := ctx.URLParamFloat64("maxPrice"); err == nil && maxPrice > 0 {
		q = q.Where("price <= ?", maxPrice)
	}
	if bedrooms, err := ctx.URLParamInt("bedrooms"); err == nil && bedrooms > 0 {
		q = q.Where("bedrooms = ?", bedrooms)
	}
	if bathrooms, err := ctx.URLParamInt("bathrooms"); err == nil && bathrooms > 0 {
		q = q.Where("bathrooms = ?", bathrooms)
	}

	var properties []models.Property
	if err := q.Preload("Images").Preload("Owner").Order("created_at DESC").Find(&properties).Error; err != nil {
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.JSON(iris.Map{"message": "Failed to search properties"})
		return
	}

	// An empty result is a normal answer, not an error
	ctx.JSON(properties)
}
