package memory

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
	"github.com/SAP-F-2025/quiz-session-service/internal/repositories"
)

//go:embed seed/quizzes.json
var sampleQuizzes []byte

// QuizMemory keeps definitions in process. Stored definitions are copied
// through their JSON form so callers never share item content.
type QuizMemory struct {
	mu      sync.RWMutex
	quizzes map[string][]byte
}

func NewQuizMemory() *QuizMemory {
	return &QuizMemory{quizzes: make(map[string][]byte)}
}

// NewSampleQuizMemory is seeded with the bundled greetings quizzes.
func NewSampleQuizMemory() (*QuizMemory, error) {
	repo := NewQuizMemory()
	if err := repo.Load(sampleQuizzes); err != nil {
		return nil, err
	}
	return repo, nil
}

// Load adds every definition of a JSON array.
func (m *QuizMemory) Load(data []byte) error {
	var quizzes []*models.QuizDefinition
	if err := json.Unmarshal(data, &quizzes); err != nil {
		return fmt.Errorf("failed to decode quizzes: %w", err)
	}
	for _, quiz := range quizzes {
		if err := m.Create(context.Background(), quiz); err != nil {
			return err
		}
	}
	return nil
}

func (m *QuizMemory) GetByID(_ context.Context, id string) (*models.QuizDefinition, error) {
	m.mu.RLock()
	data, ok := m.quizzes[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("quiz %s: %w", id, repositories.ErrNotFound)
	}
	return decode(data)
}

func (m *QuizMemory) Create(_ context.Context, quiz *models.QuizDefinition) error {
	data, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("failed to encode quiz %s: %w", quiz.ID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.quizzes[quiz.ID]; exists {
		return fmt.Errorf("quiz %s already exists", quiz.ID)
	}
	m.quizzes[quiz.ID] = data
	return nil
}

func (m *QuizMemory) List(_ context.Context, filters repositories.QuizFilters) ([]*models.QuizDefinition, int64, error) {
	m.mu.RLock()
	var all []*models.QuizDefinition
	for _, data := range m.quizzes {
		quiz, err := decode(data)
		if err != nil {
			m.mu.RUnlock()
			return nil, 0, err
		}
		if filters.SectionID != nil && quiz.SectionID != *filters.SectionID {
			continue
		}
		all = append(all, quiz)
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	limit, offset := repositories.NormalizePaging(filters.Limit, filters.Offset)
	if offset >= len(all) {
		return []*models.QuizDefinition{}, total, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], total, nil
}

func decode(data []byte) (*models.QuizDefinition, error) {
	var quiz models.QuizDefinition
	if err := json.Unmarshal(data, &quiz); err != nil {
		return nil, fmt.Errorf("failed to decode quiz: %w", err)
	}
	return &quiz, nil
}
