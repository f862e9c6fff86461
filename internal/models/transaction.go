package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Sign returns the effect of this transaction type on a wallet balance:
// +1 for income, -1 for expense.
func (t TransactionType) Sign() int64 {
	if t == TransactionTypeIncome {
		return 1
	}
	return -1
}

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single recorded money movement affecting exactly
// one wallet. Amount is always stored positive; the sign of the balance
// effect is implied by Type. Ownership is transitive through the wallet.
type Transaction struct {
	Base
	WalletID    string          `gorm:"type:uuid;not null;index" json:"wallet_id"`
	CategoryID  string          `gorm:"type:uuid;not null" json:"category_id"`
	Type        TransactionType `gorm:"not null" json:"transaction_type"`
	Amount      int64           `gorm:"not null" json:"amount"`
	Description string          `gorm:"size:255" json:"description"`
	Date        time.Time       `gorm:"not null" json:"transaction_date"`

	// Relationships
	Wallet   Wallet   `gorm:"foreignKey:WalletID" json:"wallet,omitempty"`
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
