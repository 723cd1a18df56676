package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
	"github.com/SAP-F-2025/quiz-session-service/internal/repositories"
)

type ResultPostgreSQL struct {
	db *gorm.DB
}

func NewResultPostgreSQL(db *gorm.DB) repositories.ResultRepository {
	return &ResultPostgreSQL{db: db}
}

// Create records a completed session
func (r *ResultPostgreSQL) Create(ctx context.Context, result *models.SessionResult) error {
	if err := r.db.WithContext(ctx).Create(result).Error; err != nil {
		return fmt.Errorf("failed to create session result: %w", err)
	}
	return nil
}

func (r *ResultPostgreSQL) GetBySessionID(ctx context.Context, sessionID string) (*models.SessionResult, error) {
	var result models.SessionResult
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("session result %s: %w", sessionID, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session result %s: %w", sessionID, err)
	}
	return &result, nil
}

// ListByLearner returns a learner's results, newest first unless asked otherwise
func (r *ResultPostgreSQL) ListByLearner(ctx context.Context, learnerID string, filters repositories.ResultFilters) ([]*models.SessionResult, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SessionResult{}).Where("learner_id = ?", learnerID)

	if filters.QuizID != nil {
		query = query.Where("quiz_id = ?", *filters.QuizID)
	}
	if filters.DateFrom != nil {
		query = query.Where("completed_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("completed_at <= ?", *filters.DateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count session results: %w", err)
	}

	order := "completed_at DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		order = "completed_at ASC"
	}
	limit, offset := repositories.NormalizePaging(filters.Limit, filters.Offset)

	var results []*models.SessionResult
	if err := query.Order(order).Limit(limit).Offset(offset).Find(&results).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list session results: %w", err)
	}

	return results, total, nil
}
