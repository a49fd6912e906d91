package models

import "gorm.io/gorm"

// Wallet holds a per-user stored balance. Balance changes go through
// atomic SQL updates in routes/wallet.go, never read-modify-write.
type Wallet struct {
	gorm.Model
	UserID  uint    `json:"userID" gorm:"uniqueIndex"`
	Balance float64 `json:"balance" gorm:"default:0"`
}
