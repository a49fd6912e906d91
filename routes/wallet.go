package routes

import (
	"errors"
	"fmt"
	"time"

	"rent4u-server/models"
	"rent4u-server/storage"
	"rent4u-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

var errInsufficientFunds = errors.New("insufficient funds")

// GetWallet returns the acting user's wallet, creating it with a zero
// balance on first visit. Safe to call repeatedly.
func GetWallet(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	wallet, err := getOrCreateWallet(storage.DB, userID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(wallet)
}

// FundWallet credits the wallet. No payment gateway is wired in; funding
// settles immediately as a completed transaction.
func FundWallet(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input WalletAmountInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if _, err := getOrCreateWallet(storage.DB, userID); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	transaction := models.Transaction{
		UserID:      userID,
		Type:        "credit",
		Amount:      input.Amount,
		Description: "Wallet funding",
		Status:      "completed",
		Reference:   fmt.Sprintf("fund_%d", time.Now().UnixMilli()),
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}
		// Atomic increment, no read-modify-write
		return tx.Model(&models.Wallet{}).
			Where("user_id = ?", userID).
			Update("balance", gorm.Expr("balance + ?", input.Amount)).Error
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var wallet models.Wallet
	storage.DB.Where("user_id = ?", userID).First(&wallet)
	ctx.JSON(iris.Map{"wallet": wallet, "transaction": transaction})
}

// Withdraw debits the wallet. The balance guard runs inside the UPDATE
// itself, so two concurrent withdrawals cannot overdraw and a rejected
// withdrawal writes no transaction row.
func Withdraw(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input WalletAmountInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if _, err := getOrCreateWallet(storage.DB, userID); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	transaction := models.Transaction{
		UserID:      userID,
		Type:        "debit",
		Amount:      input.Amount,
		Description: "Wallet withdrawal",
		Status:      "completed",
		Reference:   fmt.Sprintf("withdraw_%d", time.Now().UnixMilli()),
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Wallet{}).
			Where("user_id = ? AND balance >= ?", userID, input.Amount).
			Update("balance", gorm.Expr("balance - ?", input.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errInsufficientFunds
		}
		return tx.Create(&transaction).Error
	})
	if txErr == errInsufficientFunds {
		utils.CreateError(iris.StatusConflict, "Insufficient Funds", "Withdrawal amount exceeds wallet balance", ctx)
		return
	}
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var wallet models.Wallet
	storage.DB.Where("user_id = ?", userID).First(&wallet)
	ctx.JSON(iris.Map{"wallet": wallet, "transaction": transaction})
}

func GetUserTransactions(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var transactions []models.Transaction
	res := storage.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&transactions)

	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(transactions)
}

func getOrCreateWallet(db *gorm.DB, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := db.Where(models.Wallet{UserID: userID}).
		Attrs(models.Wallet{Balance: 0}).
		FirstOrCreate(&wallet).Error
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

type WalletAmountInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}
