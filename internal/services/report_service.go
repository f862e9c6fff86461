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

// summaryTTL is the freshness window of a cached financial summary. A
// present entry is served as-is until it expires; only transfers invalidate
// it early.
const summaryTTL = 300 * time.Second

// SummaryCacheKey returns the cache key under which a user's financial
// summary is stored.
func SummaryCacheKey(userID string) string {
	return fmt.Sprintf("summary:%s", userID)
}

// reportService derives aggregate income/expense/net-balance figures from
// the ledger, cached per user with a fixed TTL.
type reportService struct {
	db    *gorm.DB
	cache SummaryCache
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, cache SummaryCache) ReportServicer {
	return &reportService{db: db, cache: cache}
}

// GetSummary returns the user's financial summary. The boolean result
// reports whether the value came from the cache. A cached entry is not
// re-validated against the ledger: bounded staleness is the contract.
// Cache read failures and malformed payloads are non-fatal; the summary is
// recomputed from the database and re-cached.
func (s *reportService) GetSummary(ctx context.Context, userID string) (*FinancialSummary, bool, error) {
	key := SummaryCacheKey(userID)

	var cached FinancialSummary
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Get().Warnw("summary cache read failed, recomputing",
			"user_id", userID,
			"error", err.Error(),
		)
	} else if found {
		return &cached, true, nil
	}

	summary, err := s.computeSummary(userID)
	if err != nil {
		return nil, false, err
	}

	if err := s.cache.Set(ctx, key, summary, summaryTTL); err != nil {
		logger.Get().Warnw("summary cache write failed",
			"user_id", userID,
			"error", err.Error(),
		)
	}

	return summary, false, nil
}

// computeSummary aggregates amounts over every transaction on every wallet
// owned by the user, in a single conditional-sum query.
func (s *reportService) computeSummary(userID string) (*FinancialSummary, error) {
	var row struct {
		TotalIncome  int64
		TotalExpense int64
	}

	ownedWallets := s.db.Model(&models.Wallet{}).Select("id").Where("user_id = ?", userID)

	err := s.db.Model(&models.Transaction{}).
		Select(
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_income, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS total_expense",
			models.TransactionTypeIncome, models.TransactionTypeExpense,
		).
		Where("wallet_id IN (?)", ownedWallets).
		Scan(&row).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &FinancialSummary{
		TotalIncome:  row.TotalIncome,
		TotalExpense: row.TotalExpense,
		NetBalance:   row.TotalIncome - row.TotalExpense,
		GeneratedAt:  time.Now(),
	}, nil
}
