package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName          string     `json:"firstName"`
	LastName           string     `json:"lastName"`
	Email              string     `json:"email" gorm:"uniqueIndex"`
	Password           string     `json:"-"`
	Phone              string     `json:"phone"`
	Location           string     `json:"location"`
	Occupation         string     `json:"occupation"`
	SocialLogin        bool       `json:"socialLogin"`
	SocialProvider     string     `json:"socialProvider"`
	UserType           string     `json:"userType" gorm:"type:varchar(20);default:renter;index"`            // renter, owner, admin
	VerificationStatus string     `json:"verificationStatus" gorm:"type:varchar(20);default:pending;index"` // pending, verified, rejected
	Properties         []Property `json:"properties,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
}
