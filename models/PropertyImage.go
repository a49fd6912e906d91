package models

import "gorm.io/gorm"

// PropertyImage references a blob uploaded to object storage. At most one
// image per property carries IsPrimary; SetPrimaryImage in routes is the
// only writer of that flag after creation.
type PropertyImage struct {
	gorm.Model
	PropertyID uint   `json:"propertyID" gorm:"index"`
	ImageURL   string `json:"imageURL"`
	IsPrimary  bool   `json:"isPrimary" gorm:"default:false"`
}
