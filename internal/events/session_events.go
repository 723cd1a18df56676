package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
)

// EventType represents the quiz session lifecycle events
type EventType string

const (
	EventSessionStarted   EventType = "session.started"
	EventSessionCompleted EventType = "session.completed"
)

const (
	EventSource  = "quiz-session-service"
	EventVersion = "1.0"
)

// SessionEvent is the envelope shared by all session events
type SessionEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Session event payloads

type SessionStartedEvent struct {
	SessionID   string    `json:"session_id"`
	QuizID      string    `json:"quiz_id"`
	QuizTitle   string    `json:"quiz_title"`
	SectionID   string    `json:"section_id,omitempty"`
	LearnerID   string    `json:"learner_id"`
	ItemCount   int       `json:"item_count"`
	TotalPoints int       `json:"total_points"`
	StartedAt   time.Time `json:"started_at"`
}

type SessionCompletedEvent struct {
	SessionID      string    `json:"session_id"`
	QuizID         string    `json:"quiz_id"`
	LearnerID      string    `json:"learner_id"`
	Hearts         int       `json:"hearts"`
	Score          int       `json:"score"`
	EarnedPoints   int       `json:"earned_points"`
	TotalPoints    int       `json:"total_points"`
	CorrectCount   int       `json:"correct_count"`
	IncorrectCount int       `json:"incorrect_count"`
	SkippedCount   int       `json:"skipped_count"`
	Percentage     int       `json:"percentage"`
	Rating         string    `json:"rating"`
	XP             int       `json:"xp"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
	NeedsReview    []string  `json:"needs_review"`
	CompletedAt    time.Time `json:"completed_at"`
}

// NewSessionEvent wraps a payload in a fresh envelope
func NewSessionEvent(eventType EventType, data interface{}) *SessionEvent {
	return &SessionEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    EventSource,
		Version:   EventVersion,
		Data:      data,
	}
}

func NewSessionStartedEvent(sessionID, learnerID string, quiz *models.QuizDefinition, startedAt time.Time) *SessionEvent {
	return NewSessionEvent(EventSessionStarted, SessionStartedEvent{
		SessionID:   sessionID,
		QuizID:      quiz.ID,
		QuizTitle:   quiz.Title,
		SectionID:   quiz.SectionID,
		LearnerID:   learnerID,
		ItemCount:   len(quiz.Items),
		TotalPoints: quiz.TotalPoints(),
		StartedAt:   startedAt,
	})
}

func NewSessionCompletedEvent(sessionID, learnerID string, summary models.ResultSummary, completedAt time.Time) *SessionEvent {
	return NewSessionEvent(EventSessionCompleted, SessionCompletedEvent{
		SessionID:      sessionID,
		QuizID:         summary.QuizID,
		LearnerID:      learnerID,
		Hearts:         summary.Hearts,
		Score:          summary.Score,
		EarnedPoints:   summary.EarnedPoints,
		TotalPoints:    summary.TotalPoints,
		CorrectCount:   summary.CorrectCount,
		IncorrectCount: summary.IncorrectCount,
		SkippedCount:   summary.SkippedCount,
		Percentage:     summary.Percentage,
		Rating:         summary.Rating,
		XP:             summary.XP,
		ElapsedSeconds: int(summary.Elapsed / time.Second),
		NeedsReview:    summary.NeedsReview,
		CompletedAt:    completedAt,
	})
}
