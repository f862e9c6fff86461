package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finanzio/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		FullName: fmt.Sprintf("Test User %d", counter.Load()),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestWallet creates a wallet with zero balance.
func CreateTestWallet(t *testing.T, db *gorm.DB, userID string) *models.Wallet {
	t.Helper()
	return CreateTestWalletWithBalance(t, db, userID, 0)
}

// CreateTestWalletWithBalance creates a wallet with the given balance (in minor units).
func CreateTestWalletWithBalance(t *testing.T, db *gorm.DB, userID string, balance int64) *models.Wallet {
	t.Helper()

	wallet := &models.Wallet{
		UserID:         userID,
		Name:           fmt.Sprintf("Test Wallet %d", nextID()),
		Currency:       "IDR",
		CurrentBalance: balance,
	}
	if err := db.Create(wallet).Error; err != nil {
		t.Fatalf("failed to create test wallet: %v", err)
	}
	return wallet
}

// CreateTestCategory creates a category of the given type owned by the user.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, categoryType models.TransactionType) *models.Category {
	t.Helper()

	category := &models.Category{
		UserID: &userID,
		Name:   fmt.Sprintf("Test Category %d", nextID()),
		Type:   categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// SeedSystemCategories inserts the reserved transfer categories.
func SeedSystemCategories(t *testing.T, db *gorm.DB) {
	t.Helper()

	system := []models.Category{
		{Base: models.Base{ID: models.SystemCategoryTransferIn}, Name: "Transfer In", Type: models.TransactionTypeIncome},
		{Base: models.Base{ID: models.SystemCategoryTransferOut}, Name: "Transfer Out", Type: models.TransactionTypeExpense},
	}
	for i := range system {
		if err := db.Create(&system[i]).Error; err != nil {
			t.Fatalf("failed to seed system category %s: %v", system[i].Name, err)
		}
	}
}

// CreateTestTransaction creates a transaction of the given type and amount
// (in minor units). It writes the ledger row only; the wallet balance is not
// touched.
func CreateTestTransaction(t *testing.T, db *gorm.DB, walletID, categoryID string, txType models.TransactionType, amount int64) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		WalletID:   walletID,
		CategoryID: categoryID,
		Type:       txType,
		Amount:     amount,
		Date:       time.Now(),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestBudget creates a one-month budget for the given category.
func CreateTestBudget(t *testing.T, db *gorm.DB, userID, categoryID string) *models.Budget {
	t.Helper()

	start := time.Now().Truncate(24 * time.Hour)
	budget := &models.Budget{
		UserID:      userID,
		CategoryID:  categoryID,
		AmountLimit: 10000,
		StartDate:   start,
		EndDate:     start.AddDate(0, 1, 0),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}

// CreateTestDebt creates an unsettled debt owed to the user.
func CreateTestDebt(t *testing.T, db *gorm.DB, userID string, totalAmount int64) *models.DebtLedger {
	t.Helper()

	debt := &models.DebtLedger{
		UserID:       userID,
		ContactName:  fmt.Sprintf("Test Contact %d", nextID()),
		IsDebtToUser: true,
		TotalAmount:  totalAmount,
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return debt
}
