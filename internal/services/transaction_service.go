package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finanzio/internal/errors"
	"finanzio/internal/models"
	"finanzio/internal/pagination"
)

// transactionService maintains the transaction ledger. Every mutation
// computes a balance delta and applies it to the owning wallet within the
// same database transaction, so a concurrent reader never sees a wallet
// balance that disagrees with the committed ledger rows.
type transactionService struct {
	db            *gorm.DB
	walletService WalletServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, walletService WalletServicer) TransactionServicer {
	return &transactionService{
		db:            db,
		walletService: walletService,
	}
}

// ownedWalletIDs returns a subquery selecting the IDs of all wallets owned
// by the user. Transactions carry no user column; ownership is resolved
// transitively through the wallet.
func (s *transactionService) ownedWalletIDs(userID string) *gorm.DB {
	return s.db.Model(&models.Wallet{}).Select("id").Where("user_id = ?", userID)
}

// categoryVisible verifies that the category exists and is either owned by
// the user or a shared system category.
func (s *transactionService) categoryVisible(db *gorm.DB, userID, categoryID string) error {
	var category models.Category
	err := db.Where("id = ? AND (user_id = ? OR user_id IS NULL)", categoryID, userID).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CreateTransaction records a new ledger entry and applies its effect to the
// wallet balance in one unit of work.
func (s *transactionService) CreateTransaction(
	userID, walletID, categoryID string,
	transactionType models.TransactionType,
	amount int64,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !transactionType.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if walletID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "wallet ID is required")
	}

	if date.IsZero() {
		date = time.Now()
	}

	// Ensure the wallet exists and belongs to the caller. A wallet owned
	// by someone else surfaces as WALLET_NOT_FOUND; a bad category keeps
	// its own distinct signal.
	wallet, err := s.walletService.GetWalletByID(userID, walletID)
	if err != nil {
		return nil, err
	}
	if err := s.categoryVisible(s.db, userID, categoryID); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		WalletID:    wallet.ID,
		CategoryID:  categoryID,
		Type:        transactionType,
		Amount:      amount,
		Description: description,
		Date:        date,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.walletService.AdjustBalance(tx, wallet.ID, transactionType.Sign()*amount)
	})
	if err != nil {
		return nil, err
	}

	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's
// transactions across all wallets, newest first.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("wallet_id IN (?)", s.ownedWalletIDs(userID))
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Search != "" {
		q = q.Where("description LIKE ?", "%"+f.Search+"%")
	}
	if f.WalletID != nil {
		q = q.Where("wallet_id = ?", *f.WalletID)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID, ensuring the caller owns
// the related wallet.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.Where("id = ? AND wallet_id IN (?)", transactionID, s.ownedWalletIDs(userID)).
		First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction rewrites a ledger entry: the old effect is reversed on
// the old wallet, the row is updated, and the new effect is applied to the
// (possibly different) new wallet. All of it commits atomically; when the
// wallet changes, both wallets move together or not at all.
func (s *transactionService) UpdateTransaction(userID, transactionID string, fields TransactionUpdateFields) (*models.Transaction, error) {
	old, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	if fields.Amount != nil && *fields.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if fields.Type != nil && !fields.Type.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}

	newWalletID := old.WalletID
	if fields.WalletID != nil && *fields.WalletID != old.WalletID {
		newWalletID = *fields.WalletID
	}
	newType := old.Type
	if fields.Type != nil {
		newType = *fields.Type
	}
	newAmount := old.Amount
	if fields.Amount != nil {
		newAmount = *fields.Amount
	}

	updates := make(map[string]interface{})
	if fields.WalletID != nil {
		updates["wallet_id"] = *fields.WalletID
	}
	if fields.CategoryID != nil {
		if err := s.categoryVisible(s.db, userID, *fields.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *fields.CategoryID
	}
	if fields.Type != nil {
		updates["type"] = *fields.Type
	}
	if fields.Amount != nil {
		updates["amount"] = *fields.Amount
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Date != nil {
		updates["date"] = *fields.Date
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Moving the entry to another wallet requires the caller to own
		// the destination too; checked inside the unit of work so the
		// wallet cannot disappear between validation and commit.
		if newWalletID != old.WalletID {
			var destination models.Wallet
			err := tx.Where("id = ? AND user_id = ?", newWalletID, userID).First(&destination).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrWalletNotFound
			}
			if err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		// Reverse the old effect on the old wallet.
		if err := s.walletService.AdjustBalance(tx, old.WalletID, -old.Type.Sign()*old.Amount); err != nil {
			return err
		}

		if len(updates) > 0 {
			if err := tx.Model(old).Updates(updates).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		// Apply the new effect on the new wallet.
		return s.walletService.AdjustBalance(tx, newWalletID, newType.Sign()*newAmount)
	})
	if err != nil {
		return nil, err
	}

	return s.GetTransactionByID(userID, transactionID)
}

// DeleteTransaction removes a ledger entry and reverses its effect on the
// wallet balance in one unit of work.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.walletService.AdjustBalance(tx, transaction.WalletID, -transaction.Type.Sign()*transaction.Amount); err != nil {
			return err
		}
		if err := tx.Delete(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
