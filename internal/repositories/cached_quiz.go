package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/SAP-F-2025/quiz-session-service/internal/cache"
	"github.com/SAP-F-2025/quiz-session-service/internal/models"
	"github.com/SAP-F-2025/quiz-session-service/internal/utils"
)

const quizCachePrefix = "quiz:"

// CachedQuizRepository serves GetByID from the cache and falls back to the
// wrapped repository. Cache failures are logged and never fail a lookup.
type CachedQuizRepository struct {
	next   QuizRepository
	cache  cache.CacheService
	ttl    time.Duration
	logger utils.Logger
}

func NewCachedQuizRepository(next QuizRepository, c cache.CacheService, ttl time.Duration, logger utils.Logger) *CachedQuizRepository {
	return &CachedQuizRepository{
		next:   next,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

func quizCacheKey(id string) string {
	return quizCachePrefix + id
}

func (r *CachedQuizRepository) GetByID(ctx context.Context, id string) (*models.QuizDefinition, error) {
	var quiz models.QuizDefinition
	err := r.cache.Get(ctx, quizCacheKey(id), &quiz)
	if err == nil {
		return &quiz, nil
	}
	if !cache.IsCacheMiss(err) {
		r.logger.WarnContext(ctx, "Quiz cache read failed", "quiz_id", id, "error", err)
	}

	found, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, quizCacheKey(id), found, r.ttl); err != nil {
		r.logger.WarnContext(ctx, "Quiz cache write failed", "quiz_id", id, "error", err)
	}
	return found, nil
}

func (r *CachedQuizRepository) Create(ctx context.Context, quiz *models.QuizDefinition) error {
	if err := r.next.Create(ctx, quiz); err != nil {
		return err
	}
	if err := r.cache.Delete(ctx, quizCacheKey(quiz.ID)); err != nil {
		r.logger.WarnContext(ctx, "Quiz cache invalidation failed", "quiz_id", quiz.ID, "error", err)
	}
	return nil
}

// List is not cached.
func (r *CachedQuizRepository) List(ctx context.Context, filters QuizFilters) ([]*models.QuizDefinition, int64, error) {
	return r.next.List(ctx, filters)
}

// Invalidate drops every cached definition.
func (r *CachedQuizRepository) Invalidate(ctx context.Context) error {
	if err := r.cache.DeletePattern(ctx, quizCachePrefix+"*"); err != nil {
		return fmt.Errorf("failed to invalidate quiz cache: %w", err)
	}
	return nil
}
