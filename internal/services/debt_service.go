package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finanzio/internal/errors"
	"finanzio/internal/models"
	"finanzio/internal/pagination"
)

// debtService handles the debt ledger: receivables and payables tracked
// outside the wallet balance machinery.
type debtService struct {
	db *gorm.DB
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(db *gorm.DB) DebtServicer {
	return &debtService{db: db}
}

// CreateDebt records a new debt or receivable.
func (s *debtService) CreateDebt(userID, contactName, phoneNumber string, isDebtToUser bool, totalAmount int64, dueDate *time.Time) (*models.DebtLedger, error) {
	if contactName == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "contact name is required")
	}
	if totalAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "total amount must be greater than zero")
	}

	debt := &models.DebtLedger{
		UserID:       userID,
		ContactName:  contactName,
		PhoneNumber:  phoneNumber,
		IsDebtToUser: isDebtToUser,
		TotalAmount:  totalAmount,
		DueDate:      dueDate,
	}
	if err := s.db.Create(debt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return debt, nil
}

// GetUserDebts retrieves a paginated list of the user's debt entries,
// newest first.
func (s *debtService) GetUserDebts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.DebtLedger], error) {
	page.Defaults()

	base := s.db.Model(&models.DebtLedger{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var debts []models.DebtLedger
	if err := base.Scopes(pagination.Paginate(page)).Order("created_at DESC").Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(debts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetDebtByID retrieves a debt entry by ID for a specific user.
func (s *debtService) GetDebtByID(userID, debtID string) (*models.DebtLedger, error) {
	var debt models.DebtLedger
	if err := s.db.Where("id = ? AND user_id = ?", debtID, userID).First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDebtNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &debt, nil
}

// UpdateDebt applies a partial update to a debt entry (paid amount and/or
// settled flag).
func (s *debtService) UpdateDebt(userID, debtID string, fields DebtUpdateFields) (*models.DebtLedger, error) {
	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if fields.AmountPaid != nil {
		if *fields.AmountPaid < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount paid must not be negative")
		}
		updates["amount_paid"] = *fields.AmountPaid
		updates["is_settled"] = *fields.AmountPaid >= debt.TotalAmount
	}
	if fields.IsSettled != nil {
		updates["is_settled"] = *fields.IsSettled
	}

	if len(updates) > 0 {
		if err := s.db.Model(debt).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.Where("id = ?", debt.ID).First(debt).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return debt, nil
}

// RecordPayment adds a partial payment to a debt entry and marks it settled
// once the paid total covers the debt.
func (s *debtService) RecordPayment(userID, debtID string, amount int64) (*models.DebtLedger, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment amount must be greater than zero")
	}

	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return nil, err
	}
	if debt.IsSettled {
		return nil, apperrors.ErrDebtSettled
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.DebtLedger{}).
			Where("id = ?", debt.ID).
			UpdateColumn("amount_paid", gorm.Expr("amount_paid + ?", amount))
		if res.Error != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
		}
		return tx.Model(&models.DebtLedger{}).
			Where("id = ? AND amount_paid >= total_amount", debt.ID).
			UpdateColumn("is_settled", true).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetDebtByID(userID, debtID)
}

// DeleteDebt removes a debt entry owned by the user.
func (s *debtService) DeleteDebt(userID, debtID string) error {
	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(debt).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
