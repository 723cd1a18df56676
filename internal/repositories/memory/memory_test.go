package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
	"github.com/SAP-F-2025/quiz-session-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-session-service/internal/validator"
)

func TestSampleQuizzes(t *testing.T) {
	repo, err := NewSampleQuizMemory()
	require.NoError(t, err)

	quizzes, total, err := repo.List(context.Background(), repositories.QuizFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	v := validator.New()
	for _, quiz := range quizzes {
		assert.NoError(t, v.ValidateDefinition(quiz), "quiz %s", quiz.ID)
		assert.Equal(t, 33, quiz.TotalPoints())
		require.Len(t, quiz.Items, 5)
	}

	phrases, err := repo.GetByID(context.Background(), "3")
	require.NoError(t, err)
	short, ok := phrases.Items[4].Content.(*models.ShortAnswerContent)
	require.True(t, ok)
	assert.Equal(t, "De nada", short.CorrectAnswer)
	assert.Contains(t, short.AcceptableAnswers, "No hay de qué")
}

func TestQuizMemory_ReturnsCopies(t *testing.T) {
	repo, err := NewSampleQuizMemory()
	require.NoError(t, err)
	ctx := context.Background()

	first, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	first.Items[0].Content.(*models.MultipleChoiceContent).CorrectAnswer = "Goodbye"

	second, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Hello", second.Items[0].Content.(*models.MultipleChoiceContent).CorrectAnswer)
}

func TestQuizMemory_NotFoundAndDuplicate(t *testing.T) {
	repo := NewQuizMemory()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "1")
	assert.True(t, repositories.IsNotFoundError(err))

	quiz := &models.QuizDefinition{ID: "1", Title: "Empty"}
	require.NoError(t, repo.Create(ctx, quiz))
	assert.Error(t, repo.Create(ctx, quiz))

	got, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestQuizMemory_ListPaging(t *testing.T) {
	repo, err := NewSampleQuizMemory()
	require.NoError(t, err)

	quizzes, total, err := repo.List(context.Background(), repositories.QuizFilters{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, quizzes, 1)
	assert.Equal(t, "3", quizzes[0].ID)

	quizzes, _, err = repo.List(context.Background(), repositories.QuizFilters{Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, quizzes)

	other := "2"
	_, total, err = repo.List(context.Background(), repositories.QuizFilters{SectionID: &other})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestResultMemory(t *testing.T) {
	repo := NewResultMemory()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &models.SessionResult{
			SessionID:   id,
			QuizID:      "1",
			LearnerID:   "learner-1",
			CompletedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	assert.Error(t, repo.Create(ctx, &models.SessionResult{SessionID: "a"}))

	got, err := repo.GetBySessionID(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.ID)

	_, err = repo.GetBySessionID(ctx, "z")
	assert.True(t, repositories.IsNotFoundError(err))

	results, total, err := repo.ListByLearner(ctx, "learner-1", repositories.ResultFilters{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, results, 2)
	assert.Equal(t, "c", results[0].SessionID)

	from := base.Add(time.Minute)
	results, total, err = repo.ListByLearner(ctx, "learner-1", repositories.ResultFilters{DateFrom: &from, SortOrder: "asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "b", results[0].SessionID)
}
