package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err means the record does not exist,
// including gorm's own not-found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// ===== SHARED FILTER STRUCTS =====

type QuizFilters struct {
	SectionID *string `json:"section_id"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
}

type ResultFilters struct {
	QuizID    *string    `json:"quiz_id"`
	DateFrom  *time.Time `json:"date_from"`
	DateTo    *time.Time `json:"date_to"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
	SortOrder string     `json:"sort_order"` // "asc", "desc" on completed_at
}

// ===== REPOSITORIES =====

// QuizRepository resolves quiz definitions by their opaque id
type QuizRepository interface {
	GetByID(ctx context.Context, id string) (*models.QuizDefinition, error)
	Create(ctx context.Context, quiz *models.QuizDefinition) error
	List(ctx context.Context, filters QuizFilters) ([]*models.QuizDefinition, int64, error)
}

// ResultRepository records completed sessions
type ResultRepository interface {
	Create(ctx context.Context, result *models.SessionResult) error
	GetBySessionID(ctx context.Context, sessionID string) (*models.SessionResult, error)
	ListByLearner(ctx context.Context, learnerID string, filters ResultFilters) ([]*models.SessionResult, int64, error)
}

// Repository groups the repositories a session service needs
type Repository interface {
	Quiz() QuizRepository
	Result() ResultRepository
}

type repository struct {
	quiz   QuizRepository
	result ResultRepository
}

// NewRepository combines independently built repositories, e.g. a cached
// quiz repository with a postgres result repository.
func NewRepository(quiz QuizRepository, result ResultRepository) Repository {
	return &repository{quiz: quiz, result: result}
}

func (r *repository) Quiz() QuizRepository     { return r.quiz }
func (r *repository) Result() ResultRepository { return r.result }

// ===== SHARED HELPERS =====

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// NormalizePaging clamps limit/offset to sane values.
func NormalizePaging(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
