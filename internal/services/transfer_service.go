package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "finanzio/internal/errors"
	"finanzio/internal/logger"
	"finanzio/internal/models"
)

// transferService composes an atomic two-sided transfer: an expense on the
// source wallet and an income on the target wallet, committed together with
// both balance adjustments. The paired rows carry the reserved system
// transfer categories so they are distinguishable from user entries.
type transferService struct {
	db            *gorm.DB
	walletService WalletServicer
	cache         SummaryCache
}

// NewTransferService creates a new TransferServicer.
func NewTransferService(db *gorm.DB, walletService WalletServicer, cache SummaryCache) TransferServicer {
	return &transferService{
		db:            db,
		walletService: walletService,
		cache:         cache,
	}
}

// Transfer moves amount from the source wallet to the target wallet.
// On success it returns exactly two transactions in creation order: the
// source-side expense first, the target-side income second. Any validation
// or storage failure leaves zero partial effect.
func (s *transferService) Transfer(ctx context.Context, userID, sourceWalletID, targetWalletID string, amount int64, description string) ([]models.Transaction, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "transfer amount must be greater than zero")
	}
	if sourceWalletID == targetWalletID {
		return nil, apperrors.ErrSameWalletTransfer
	}

	// Both wallets must exist and belong to the caller. One count over both
	// IDs keeps "missing" and "not yours" indistinguishable.
	var owned int64
	if err := s.db.Model(&models.Wallet{}).
		Where("user_id = ? AND id IN ?", userID, []string{sourceWalletID, targetWalletID}).
		Count(&owned).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if owned != 2 {
		return nil, apperrors.ErrTransferFailed
	}

	now := time.Now()
	txnOut := models.Transaction{
		WalletID:    sourceWalletID,
		CategoryID:  models.SystemCategoryTransferOut,
		Type:        models.TransactionTypeExpense,
		Amount:      amount,
		Description: fmt.Sprintf("Transfer OUT: %s", description),
		Date:        now,
	}
	txnIn := models.Transaction{
		WalletID:    targetWalletID,
		CategoryID:  models.SystemCategoryTransferIn,
		Type:        models.TransactionTypeIncome,
		Amount:      amount,
		Description: fmt.Sprintf("Transfer IN: %s", description),
		Date:        now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txnOut).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Create(&txnIn).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.walletService.AdjustBalance(tx, sourceWalletID, -amount); err != nil {
			return err
		}
		return s.walletService.AdjustBalance(tx, targetWalletID, amount)
	})
	if err != nil {
		return nil, err
	}

	// Post-commit: drop the caller's cached summary so the next read
	// reflects the transfer. A cache failure is non-fatal; the stale
	// entry ages out within its TTL.
	if err := s.cache.Delete(ctx, SummaryCacheKey(userID)); err != nil {
		logger.Get().Warnw("failed to invalidate summary cache",
			"user_id", userID,
			"error", err.Error(),
		)
	}

	return []models.Transaction{txnOut, txnIn}, nil
}
