package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
	"github.com/SAP-F-2025/quiz-session-service/internal/repositories"
)

type ResultMemory struct {
	mu      sync.RWMutex
	nextID  uint
	results map[string]models.SessionResult
}

func NewResultMemory() *ResultMemory {
	return &ResultMemory{results: make(map[string]models.SessionResult)}
}

func (m *ResultMemory) Create(_ context.Context, result *models.SessionResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.results[result.SessionID]; exists {
		return fmt.Errorf("session result %s already exists", result.SessionID)
	}
	m.nextID++
	result.ID = m.nextID
	m.results[result.SessionID] = *result
	return nil
}

func (m *ResultMemory) GetBySessionID(_ context.Context, sessionID string) (*models.SessionResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result, ok := m.results[sessionID]
	if !ok {
		return nil, fmt.Errorf("session result %s: %w", sessionID, repositories.ErrNotFound)
	}
	return &result, nil
}

func (m *ResultMemory) ListByLearner(_ context.Context, learnerID string, filters repositories.ResultFilters) ([]*models.SessionResult, int64, error) {
	m.mu.RLock()
	var matched []*models.SessionResult
	for _, r := range m.results {
		if r.LearnerID != learnerID {
			continue
		}
		if filters.QuizID != nil && r.QuizID != *filters.QuizID {
			continue
		}
		if filters.DateFrom != nil && r.CompletedAt.Before(*filters.DateFrom) {
			continue
		}
		if filters.DateTo != nil && r.CompletedAt.After(*filters.DateTo) {
			continue
		}
		r := r
		matched = append(matched, &r)
	}
	m.mu.RUnlock()

	asc := strings.EqualFold(filters.SortOrder, "asc")
	sort.Slice(matched, func(i, j int) bool {
		if asc {
			return matched[i].CompletedAt.Before(matched[j].CompletedAt)
		}
		return matched[i].CompletedAt.After(matched[j].CompletedAt)
	})

	total := int64(len(matched))
	limit, offset := repositories.NormalizePaging(filters.Limit, filters.Offset)
	if offset >= len(matched) {
		return []*models.SessionResult{}, total, nil
	}
	return matched[offset:min(offset+limit, len(matched))], total, nil
}
