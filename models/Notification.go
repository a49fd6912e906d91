package models

import "gorm.io/gorm"

// Notification is an in-app message row; delivery (push, email) is out of
// scope, readers poll their own rows.
type Notification struct {
	gorm.Model
	UserID  uint   `json:"userID" gorm:"index"`
	Title   string `json:"title"`
	Message string `json:"message" gorm:"type:text"`
	Type    string `json:"type"`
	RefID   uint   `json:"refID"`
	RefType string `json:"refType"`
	IsRead  bool   `json:"isRead" gorm:"default:false"`
}
