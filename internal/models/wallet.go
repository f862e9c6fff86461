package models

// Wallet represents a named store of money (cash, bank account) owned by
// one user.
//
// CurrentBalance is a denormalized running balance in minor currency units
// (cents). It is seeded from the initial balance at creation and afterwards
// mutated exclusively through WalletServicer.AdjustBalance as part of a
// ledger mutation; it must never be written from an application-side read.
type Wallet struct {
	Base
	UserID         string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string `gorm:"size:100;not null" json:"name"`
	Currency       string `gorm:"size:10;not null;default:'IDR'" json:"currency"`
	CurrentBalance int64  `gorm:"not null;default:0" json:"current_balance"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:WalletID" json:"transactions,omitempty"`
}
