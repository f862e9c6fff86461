package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	FullName    string     `gorm:"size:100" json:"full_name"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	Wallets    []Wallet     `gorm:"foreignKey:UserID" json:"wallets,omitempty"`
	Categories []Category   `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Budgets    []Budget     `gorm:"foreignKey:UserID" json:"budgets,omitempty"`
	Debts      []DebtLedger `gorm:"foreignKey:UserID" json:"debts,omitempty"`
}
