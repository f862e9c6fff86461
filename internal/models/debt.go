package models

import "time"

// DebtLedger records money owed to the user (receivable) or owed by the
// user (payable). Debts live outside the wallet balance machinery; paying
// one off is tracked in AmountPaid only.
type DebtLedger struct {
	Base
	UserID       string     `gorm:"type:uuid;not null;index" json:"user_id"`
	ContactName  string     `gorm:"size:255;not null" json:"contact_name"`
	PhoneNumber  string     `gorm:"size:20" json:"phone_number,omitempty"`
	IsDebtToUser bool       `gorm:"not null" json:"is_debt_to_user"`
	TotalAmount  int64      `gorm:"not null" json:"total_amount"`
	AmountPaid   int64      `gorm:"not null;default:0" json:"amount_paid"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	IsSettled    bool       `gorm:"default:false" json:"is_settled"`
}
