package session

import (
	"fmt"
	"time"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
)

type State string

const (
	StateLoading   State = "loading"
	StateAnswering State = "answering"
	StateChecked   State = "checked"
	StateCompleted State = "completed"
)

// SessionState is the single aggregate mutated by the Controller.
type SessionState struct {
	Quiz              *models.QuizDefinition
	Index             int
	InitialHearts     int
	Hearts            int
	Score             int
	EarnedPoints      int
	TotalPoints       int
	CorrectCount      int
	IncorrectCount    int
	SkippedCount      int
	Elapsed           time.Duration
	Answer            models.Answer
	Verdict           *bool
	Feedback          string
	CorrectAnswerText string
	Outcomes          []models.ItemOutcome
}

func newSessionState(quiz *models.QuizDefinition, hearts int) SessionState {
	return SessionState{
		Quiz:          quiz,
		InitialHearts: hearts,
		Hearts:        hearts,
		TotalPoints:   quiz.TotalPoints(),
		Outcomes:      make([]models.ItemOutcome, 0, len(quiz.Items)),
	}
}

func (s *SessionState) loseHeart() {
	s.Hearts = max(0, s.Hearts-1)
}

func (s *SessionState) itemCount() int {
	if s.Quiz == nil {
		return 0
	}
	return len(s.Quiz.Items)
}

// checkInvariants is run after every transition.
func (s *SessionState) checkInvariants(state State) error {
	n := s.itemCount()
	resolved := s.CorrectCount + s.IncorrectCount + s.SkippedCount

	if (state == StateAnswering || state == StateChecked) && (s.Index < 0 || s.Index >= n) {
		return fmt.Errorf("%w: index %d outside [0,%d)", ErrInvariantViolation, s.Index, n)
	}
	if s.Hearts < 0 || s.Hearts > s.InitialHearts {
		return fmt.Errorf("%w: hearts %d outside [0,%d]", ErrInvariantViolation, s.Hearts, s.InitialHearts)
	}
	if s.EarnedPoints < 0 || s.EarnedPoints > s.TotalPoints {
		return fmt.Errorf("%w: earned points %d outside [0,%d]", ErrInvariantViolation, s.EarnedPoints, s.TotalPoints)
	}
	if resolved > n {
		return fmt.Errorf("%w: %d outcomes for %d items", ErrInvariantViolation, resolved, n)
	}
	if state == StateCompleted && resolved != n {
		return fmt.Errorf("%w: completed with %d of %d items resolved", ErrInvariantViolation, resolved, n)
	}
	return nil
}

// Snapshot is the read-only projection handed to the host after every
// transition.
type Snapshot struct {
	State             State               `json:"state"`
	QuizID            string              `json:"quiz_id"`
	Index             int                 `json:"index"`
	ItemCount         int                 `json:"item_count"`
	ItemID            string              `json:"item_id,omitempty"`
	ItemType          models.QuestionType `json:"item_type,omitempty"`
	Points            int                 `json:"points"`
	Progress          float64             `json:"progress"`
	Hearts            int                 `json:"hearts"`
	InitialHearts     int                 `json:"initial_hearts"`
	Score             int                 `json:"score"`
	EarnedPoints      int                 `json:"earned_points"`
	TotalPoints       int                 `json:"total_points"`
	CorrectCount      int                 `json:"correct_count"`
	IncorrectCount    int                 `json:"incorrect_count"`
	SkippedCount      int                 `json:"skipped_count"`
	TimeRemaining     float64             `json:"time_remaining"`
	TimePercentage    float64             `json:"time_percentage"`
	DisplaySeconds    int                 `json:"display_seconds"`
	TimerBand         TimerBand           `json:"timer_band"`
	HasAnswer         bool                `json:"has_answer"`
	Verdict           *bool               `json:"verdict"`
	Feedback          string              `json:"feedback"`
	CorrectAnswerText string              `json:"correct_answer_text"`
	Elapsed           time.Duration       `json:"elapsed"`
}
