package models

import "gorm.io/gorm"

// Transaction is an append-only record of a wallet balance change.
type Transaction struct {
	gorm.Model
	UserID      uint    `json:"userID" gorm:"index"`
	Type        string  `json:"type" gorm:"type:varchar(10)"` // credit, debit
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Status      string  `json:"status" gorm:"type:varchar(20);default:completed"` // pending, completed, failed
	Reference   string  `json:"reference" gorm:"index"`
}
