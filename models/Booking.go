package models

import (
	"time"

	"gorm.io/gorm"
)

type Booking struct {
	gorm.Model
	PropertyID   uint      `json:"propertyID" gorm:"index"`
	UserID       uint      `json:"userID" gorm:"index"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	Guests       int       `json:"guests"`
	TotalAmount  float64   `json:"totalAmount"`
	Status       string    `json:"status" gorm:"type:varchar(20);default:pending;index"` // pending, confirmed, cancelled
	Message      string    `json:"message" gorm:"type:text"`
	Property     Property  `json:"property" gorm:"foreignKey:PropertyID;references:ID"`
	User         User      `json:"user" gorm:"foreignKey:UserID;references:ID"`
}
