package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	PropertyID uint   `json:"propertyID" gorm:"index"`
	UserID     uint   `json:"userID"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment" gorm:"type:text"`
	User       User   `json:"user" gorm:"foreignKey:UserID;references:ID"`
}
