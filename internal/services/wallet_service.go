package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finanzio/internal/errors"
	"finanzio/internal/models"
)

// walletService handles wallet-related business logic.
type walletService struct {
	db *gorm.DB
}

// NewWalletService creates a new WalletServicer.
func NewWalletService(db *gorm.DB) WalletServicer {
	return &walletService{db: db}
}

// CreateWallet creates a new wallet for a user. The initial balance seeds
// current_balance; afterwards the balance only moves through AdjustBalance.
func (s *walletService) CreateWallet(userID, name, currency string, initialBalance int64) (*models.Wallet, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "wallet name is required")
	}

	if currency == "" {
		currency = "IDR" // Default currency
	}

	wallet := &models.Wallet{
		UserID:         userID,
		Name:           name,
		Currency:       currency,
		CurrentBalance: initialBalance,
	}

	if err := s.db.Create(wallet).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return wallet, nil
}

// GetUserWallets retrieves all wallets for a user, ordered by name.
func (s *walletService) GetUserWallets(userID string) ([]models.Wallet, error) {
	var wallets []models.Wallet
	if err := s.db.Where("user_id = ?", userID).Order("name").Find(&wallets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return wallets, nil
}

// GetWalletByID retrieves a wallet by ID for a specific user. A wallet owned
// by a different user is reported as not found.
func (s *walletService) GetWalletByID(userID, walletID string) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := s.db.Where("id = ? AND user_id = ?", walletID, userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &wallet, nil
}

// UpdateWallet updates the name and currency of an existing wallet. The
// balance is never editable here; it is managed by the transaction ledger.
func (s *walletService) UpdateWallet(userID, walletID, name, currency string) (*models.Wallet, error) {
	wallet, err := s.GetWalletByID(userID, walletID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name != "" {
		updates["name"] = name
	}
	if currency != "" {
		updates["currency"] = currency
	}

	if len(updates) > 0 {
		if err := s.db.Model(wallet).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", wallet.ID).First(wallet).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return wallet, nil
}

// DeleteWallet deletes a wallet owned by the user. Deletion is refused while
// transactions still reference the wallet; orphaned ledger rows would break
// the balance invariant silently.
func (s *walletService) DeleteWallet(userID, walletID string) error {
	wallet, err := s.GetWalletByID(userID, walletID)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Transaction{}).Where("wallet_id = ?", wallet.ID).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return apperrors.ErrWalletInUse
	}

	if err := s.db.Delete(wallet).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// AdjustBalance applies a signed delta to a wallet's cached balance. The new
// balance is computed inside the UPDATE statement itself, so two concurrent
// adjustments to the same wallet compose instead of losing one update. It
// must be called with the transaction handle of the ledger mutation it
// belongs to; never call it outside a unit of work.
func (s *walletService) AdjustBalance(tx *gorm.DB, walletID string, delta int64) error {
	res := tx.Model(&models.Wallet{}).
		Where("id = ?", walletID).
		UpdateColumn("current_balance", gorm.Expr("current_balance + ?", delta))
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrWalletNotFound
	}
	return nil
}
