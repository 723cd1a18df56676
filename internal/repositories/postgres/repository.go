package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
	"github.com/SAP-F-2025/quiz-session-service/internal/repositories"
)

// NewRepository builds the gorm-backed quiz and result repositories.
func NewRepository(db *gorm.DB) repositories.Repository {
	return repositories.NewRepository(NewQuizPostgreSQL(db), NewResultPostgreSQL(db))
}

// Migrate creates or updates the tables this service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.QuizRecord{}, &models.SessionResult{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
