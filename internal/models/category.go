package models

// Reserved system category IDs for transfer-generated transactions. These
// are fixed process-wide constants seeded once at startup; the transfer
// orchestrator tags its paired transactions with them so they can be told
// apart from user-entered entries.
const (
	SystemCategoryTransferIn  = "ffffffff-0000-0000-0000-000000000001"
	SystemCategoryTransferOut = "ffffffff-0000-0000-0000-000000000002"
)

// Category groups transactions (Food, Transport, Salary). A nil UserID
// marks a shared system category visible to every user and owned by none.
type Category struct {
	Base
	UserID *string         `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Name   string          `gorm:"size:50;not null" json:"name"`
	Type   TransactionType `gorm:"not null" json:"type"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
	Budgets      []Budget      `gorm:"foreignKey:CategoryID" json:"budgets,omitempty"`
}

// IsSystem reports whether the category is a shared system category.
func (c *Category) IsSystem() bool {
	return c.UserID == nil
}
