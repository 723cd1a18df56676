package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		earned, total, want int
	}{
		{0, 0, 0},
		{0, 40, 0},
		{40, 40, 100},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13}, // 12.5 rounds half away from zero
		{35, 50, 70},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.earned, tt.total), "%d/%d", tt.earned, tt.total)
	}
}

func TestRating(t *testing.T) {
	tests := []struct {
		p    int
		want string
	}{
		{100, "Excellent!"},
		{90, "Excellent!"},
		{89, "Great!"},
		{75, "Great!"},
		{74, "Good"},
		{60, "Good"},
		{59, "Fair"},
		{40, "Fair"},
		{39, "Keep practicing"},
		{0, "Keep practicing"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Rating(tt.p), "percentage %d", tt.p)
	}
}

func TestAggregate_EmptyQuiz(t *testing.T) {
	s := newSessionState(testQuiz(), DefaultInitialHearts)

	summary := Aggregate(s)

	assert.Equal(t, 0, summary.Percentage)
	assert.Equal(t, "Keep practicing", summary.Rating)
	assert.Equal(t, 0, summary.XP)
	assert.Equal(t, DefaultInitialHearts, summary.Hearts)
	assert.Empty(t, summary.Mistakes)
	assert.Empty(t, summary.NeedsReview)
}

func TestAggregate_Lists(t *testing.T) {
	s := newSessionState(testQuiz(mcItem("q1", 10), mcItem("q2", 10), mcItem("q3", 10), mcItem("q4", 10)), 5)
	s.EarnedPoints = 10
	s.Score = 1
	s.CorrectCount = 1
	s.IncorrectCount = 2
	s.SkippedCount = 1
	s.Hearts = 3
	s.Elapsed = 83 * time.Second
	s.Outcomes = []models.ItemOutcome{
		{ItemID: "q1", Status: models.OutcomeCorrect, Points: 10},
		{ItemID: "q2", Status: models.OutcomeIncorrect, Correction: "Hello"},
		{ItemID: "q3", Status: models.OutcomeTimedOut, Correction: "Hello"},
		{ItemID: "q4", Status: models.OutcomeSkipped},
	}

	summary := Aggregate(s)

	assert.Equal(t, "quiz-1", summary.QuizID)
	assert.Equal(t, 25, summary.Percentage)
	assert.Equal(t, 100, summary.XP)
	assert.Equal(t, "01:23", summary.ElapsedClock())
	assert.Len(t, summary.Outcomes, 4)
	assert.Equal(t, []string{"q2", "q3", "q4"}, summary.NeedsReview)
	if assert.Len(t, summary.Mistakes, 2) {
		assert.Equal(t, "q2", summary.Mistakes[0].ItemID)
		assert.Equal(t, "Hello", summary.Mistakes[1].Correction)
	}
}
