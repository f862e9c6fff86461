package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"finanzio/internal/models"
	"finanzio/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, fullName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
}

// WalletServicer defines the contract for wallet-related business logic.
// AdjustBalance is the only way a wallet's cached balance may change; it
// runs inside the caller's database transaction so the balance write and
// the ledger row mutation commit as one unit.
type WalletServicer interface {
	CreateWallet(userID, name, currency string, initialBalance int64) (*models.Wallet, error)
	GetUserWallets(userID string) ([]models.Wallet, error)
	GetWalletByID(userID, walletID string) (*models.Wallet, error)
	UpdateWallet(userID, walletID, name, currency string) (*models.Wallet, error)
	DeleteWallet(userID, walletID string) error
	AdjustBalance(tx *gorm.DB, walletID string, delta int64) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Search   string
	WalletID *string
	Type     *models.TransactionType
	FromDate *time.Time
	ToDate   *time.Time
}

// TransactionUpdateFields holds the optional fields of a transaction update.
// Nil pointers leave the stored value unchanged.
type TransactionUpdateFields struct {
	WalletID    *string
	CategoryID  *string
	Type        *models.TransactionType
	Amount      *int64
	Description *string
	Date        *time.Time
}

// TransactionServicer defines the contract for the transaction ledger.
// Every mutation keeps the owning wallet's balance synchronized within the
// same unit of work.
type TransactionServicer interface {
	CreateTransaction(userID, walletID, categoryID string, transactionType models.TransactionType, amount int64, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// TransferServicer composes two ledger entries across two wallets into one
// atomic operation.
type TransferServicer interface {
	Transfer(ctx context.Context, userID, sourceWalletID, targetWalletID string, amount int64, description string) ([]models.Transaction, error)
}

// FinancialSummary is the cached aggregate view over all of a user's
// transactions. Amounts are in minor currency units.
type FinancialSummary struct {
	TotalIncome  int64     `json:"total_income"`
	TotalExpense int64     `json:"total_expense"`
	NetBalance   int64     `json:"net_balance"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// ReportServicer derives financial summaries, served through a cache with a
// bounded staleness window.
type ReportServicer interface {
	GetSummary(ctx context.Context, userID string) (*FinancialSummary, bool, error)
}

// SummaryCache is the key-value store consumed by the report service and
// invalidated by the transfer orchestrator. The production implementation
// is Redis-backed (internal/cache); tests use an in-memory fake.
type SummaryCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string, categoryType models.TransactionType) (*models.Category, error)
	GetUserCategories(userID, search string, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
	EnsureSystemCategories() error
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, categoryID string, amountLimit int64, startDate, endDate time.Time) (*models.Budget, error)
	GetUserBudgets(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	UpdateBudget(userID, budgetID string, amountLimit *int64, startDate, endDate *time.Time) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
}

// DebtUpdateFields holds the optional fields of a debt ledger update.
type DebtUpdateFields struct {
	AmountPaid *int64
	IsSettled  *bool
}

// DebtServicer defines the contract for the debt ledger.
type DebtServicer interface {
	CreateDebt(userID, contactName, phoneNumber string, isDebtToUser bool, totalAmount int64, dueDate *time.Time) (*models.DebtLedger, error)
	GetUserDebts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.DebtLedger], error)
	GetDebtByID(userID, debtID string) (*models.DebtLedger, error)
	UpdateDebt(userID, debtID string, fields DebtUpdateFields) (*models.DebtLedger, error)
	RecordPayment(userID, debtID string, amount int64) (*models.DebtLedger, error)
	DeleteDebt(userID, debtID string) error
}
