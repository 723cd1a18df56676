package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
	"github.com/SAP-F-2025/quiz-session-service/internal/repositories"
)

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db}
}

// GetByID retrieves a quiz definition by its id
func (q *QuizPostgreSQL) GetByID(ctx context.Context, id string) (*models.QuizDefinition, error) {
	var record models.QuizRecord
	err := q.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("quiz %s: %w", id, repositories.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz %s: %w", id, err)
	}

	return record.ToDefinition()
}

// Create stores a new quiz definition
func (q *QuizPostgreSQL) Create(ctx context.Context, quiz *models.QuizDefinition) error {
	record, err := models.NewQuizRecord(quiz)
	if err != nil {
		return err
	}
	if err := q.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

// List returns quizzes ordered by id with the total count before paging
func (q *QuizPostgreSQL) List(ctx context.Context, filters repositories.QuizFilters) ([]*models.QuizDefinition, int64, error) {
	query := q.db.WithContext(ctx).Model(&models.QuizRecord{})
	if filters.SectionID != nil {
		query = query.Where("section_id = ?", *filters.SectionID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count quizzes: %w", err)
	}

	limit, offset := repositories.NormalizePaging(filters.Limit, filters.Offset)

	var records []models.QuizRecord
	if err := query.Order("id ASC").Limit(limit).Offset(offset).Find(&records).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list quizzes: %w", err)
	}

	quizzes := make([]*models.QuizDefinition, 0, len(records))
	for i := range records {
		quiz, err := records[i].ToDefinition()
		if err != nil {
			return nil, 0, err
		}
		quizzes = append(quizzes, quiz)
	}

	return quizzes, total, nil
}
