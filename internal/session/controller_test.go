package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
)

func startController(t *testing.T, rec *recorder, items ...models.QuizItem) *Controller {
	t.Helper()
	c := NewController(rec.options())
	require.NoError(t, c.Begin(testQuiz(items...)))
	return c
}

func TestController_LoadUnknownQuizRedirects(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec.options())

	err := c.Load(context.Background(), stubResolver{}, "missing", "section-9")

	require.Error(t, err)
	assert.True(t, IsRedirect(err))
	assert.ErrorIs(t, err, ErrQuizNotFound)

	var re *RedirectError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "section-9", re.ParentID)
	assert.Equal(t, StateLoading, c.State())
	assert.Empty(t, rec.snapshots)
}

func TestController_LoadStartsFirstItem(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec.options())
	resolver := stubResolver{quizzes: map[string]*models.QuizDefinition{
		"quiz-1": testQuiz(mcItem("q1", 10), tfItem("q2", true)),
	}}

	require.NoError(t, c.Load(context.Background(), resolver, "quiz-1", "section-1"))

	snap := rec.last()
	assert.Equal(t, StateAnswering, snap.State)
	assert.Equal(t, "q1", snap.ItemID)
	assert.Equal(t, 0, snap.Index)
	assert.Equal(t, 50.0, snap.Progress)
	assert.Equal(t, 15.0, snap.TimeRemaining)
	assert.Equal(t, 100.0, snap.TimePercentage)
	assert.Equal(t, DefaultInitialHearts, snap.Hearts)
	assert.Equal(t, 20, snap.TotalPoints)
	assert.Nil(t, snap.Verdict)
	assert.False(t, snap.HasAnswer)
}

func TestController_BeginNilQuiz(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec.options())

	assert.ErrorIs(t, c.Begin(nil), ErrQuizNotFound)
	assert.Equal(t, StateLoading, c.State())
	assert.Empty(t, rec.snapshots)
}

func TestController_EmptyQuizCompletes(t *testing.T) {
	rec := &recorder{}
	c := startController(t, rec)

	assert.Equal(t, StateCompleted, c.State())
	require.Len(t, rec.summaries, 1)
	assert.Equal(t, 0, rec.summaries[0].Percentage)
	assert.Equal(t, "Keep practicing", rec.summaries[0].Rating)
	assert.Equal(t, 0, rec.summaries[0].XP)
}

func TestController_CorrectAnswer(t *testing.T) {
	rec := &recorder{}
	c := startController(t, rec, mcItem("q1", 10))

	require.NoError(t, c.SelectOption("Hello"))
	assert.True(t, c.HasAnswer())
	require.NoError(t, c.Check())

	snap := c.Snapshot()
	assert.Equal(t, StateChecked, snap.State)
	require.NotNil(t, snap.Verdict)
	assert.True(t, *snap.Verdict)
	assert.Equal(t, 1, snap.Score)
	assert.Equal(t, 10, snap.EarnedPoints)
	assert.Equal(t, PositiveMessages[0], snap.Feedback)
	assert.Empty(t, snap.CorrectAnswerText)
	assert.Equal(t, DefaultInitialHearts, snap.Hearts)
}

func TestController_IncorrectAnswer(t *testing.T) {
	rec := &recorder{}
	c := startController(t, rec, mcItem("q1", 10))

	require.NoError(t, c.SelectOption("Goodbye"))
	require.NoError(t, c.Check())

	snap := c.Snapshot()
	require.NotNil(t, snap.Verdict)
	assert.False(t, *snap.Verdict)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 1, snap.IncorrectCount)
	assert.Equal(t, DefaultInitialHearts-1, snap.Hearts)
	assert.Equal(t, NegativeMessages[0], snap.Feedback)
	assert.Equal(t, "Hello", snap.CorrectAnswerText)
}

func TestController_CheckWithoutAnswer(t *testing.T) {
	rec := &recorder{}
	c := startController(t, rec, mcItem("q1", 10))
	before := len(rec.snapshots)

	err := c.Check()

	assert.ErrorIs(t, err, ErrNoAnswer)
	assert.Equal(t, StateAnswering, c.State())
	assert.Len(t, rec.snapshots, before)
}

func TestController_CommandsInWrongState(t *testing.T) {
	rec := &recorder{}
	c := startController(t, rec, mcItem("q1", 10), mcItem("q2", 10))

	assert.ErrorIs(t, c.Advance(), ErrInvalidState)

	require.NoError(t, c.SelectOption("Hello"))
	require.NoError(t, c.Check())

	assert.ErrorIs(t, c.Check(), ErrInvalidState)
	assert.ErrorIs(t, c.Skip(), ErrInvalidState)
	assert.ErrorIs(t, c.SelectOption("Goodbye"), ErrInvalidState)
	assert.True(t, IsInvalidState(c.Check()))
	assert.Equal(t, 1, c.Snapshot().Score)
}

func TestController_AnswerTypeMismatch(t *testing.T) {
	rec := &recorder{}
	c := startController(t, rec, mcItem("q1", 10))

	assert.ErrorIs(t, c.SelectTrueFalse(true), ErrAnswerTypeMismatch)
	assert.ErrorIs(t, c.SetShortAnswer("Hello"), ErrAnswerTypeMismatch)
	assert.False(t, c.HasAnswer())
}

func TestController_UnknownTargets(t *testing.T) {
	rec := &recorder{}
	c := startController(t, rec, matchingItem("q1"), fillBlankItem("q2"))

	assert.ErrorIs(t, c.PairMatch("l9", "r1"), ErrUnknownAnswerTarget)
	assert.ErrorIs(t, c.PairMatch("l1", "r9"), ErrUnknownAnswerTarget)

	require.NoError(t, c.PairMatch("l1", "r1"))
	assert.False(t, c.HasAnswer())
	require.NoError(t, c.PairMatch("l2", "r2"))
	assert.True(t, c.HasAnswer())
	require.NoError(t, c.Check())
	require.NoError(t, c.Advance())

	assert.ErrorIs(t, c.SetBlank("b9", "x"), ErrUnknownAnswerTarget)
	require.NoError(t, c.SetBlank("b1", "hola "))
	require.NoError(t, c.SetBlank("b2", "Adiós"))
	require.NoError(t, c.Check())
	assert.Equal(t, 2, c.Snapshot().Score)
}

func TestController_ExpiryWithoutAnswer(t *testing.T) {
	rec := &recorder{}
	c := startController(t, rec, mcItem("q1", 10))

	for i := 0; i < 160; i++ {
		require.NoError(t, c.Tick(100*time.Millisecond))
	}

	snap := c.Snapshot()
	assert.Equal(t, StateChecked, snap.State)
	assert.Equal(t, TimeUpMessage, snap.Feedback)
	assert.Equal(t, DefaultInitialHearts-1, snap.Hearts)
	assert.Equal(t, 1, snap.IncorrectCount)
	assert.Equal(t, "Hello", snap.CorrectAnswerText)
	assert.Equal(t, 0.0, snap.TimeRemaining)
}

func TestController_ExpiryWithAnswerAutoChecks(t *testing.T) {
	rec := &recorder{}
	c := startController(t, rec, tfItem("q1", true))

	require.NoError(t, c.SelectTrueFalse(true))
	require.NoError(t, c.Tick(20*time.Second))

	snap := c.Snapshot()
	assert.Equal(t, StateChecked, snap.State)
	require.NotNil(t, snap.Verdict)
	assert.True(t, *snap.Verdict)
	assert.Equal(t, 1, snap.Score)
	assert.Equal(t, DefaultInitialHearts, snap.Hearts)
}

func TestController_ExpiryIsIdempotent(t *testing.T) {
	rec := &recorder{}
	c := startController(t, rec, mcItem("q1", 10))

	require.NoError(t, c.HandleExpiry())
	require.NoError(t, c.HandleExpiry())
	require.NoError(t, c.Tick(time.Minute))

	snap := c.Snapshot()
	assert.Equal(t, DefaultInitialHearts-1, snap.Hearts)
	assert.Equal(t, 1, snap.IncorrectCount)
}

func TestController_CheckBeatsExpiry(t *testing.T) {
	rec := &recorder{}
	c := startController(t, rec, mcItem("q1", 10))

	require.NoError(t, c.SelectOption("Hello"))
	require.NoError(t, c.Check())
	require.NoError(t, c.HandleExpiry())

	snap := c.Snapshot()
	assert.Equal(t, 1, snap.Score)
	assert.Equal(t, 0, snap.IncorrectCount)
	assert.Equal(t, PositiveMessages[0], snap.Feedback)
}

func TestController_Skip(t *testing.T) {
	rec := &recorder{}
	c := startController(t, rec, mcItem("q1", 10), mcItem("q2", 10))

	require.NoError(t, c.Skip())

	snap := c.Snapshot()
	assert.Equal(t, StateAnswering, snap.State)
	assert.Equal(t, "q2", snap.ItemID)
	assert.Equal(t, 1, snap.SkippedCount)
	assert.Equal(t, 0, snap.IncorrectCount)
	assert.Equal(t, DefaultInitialHearts, snap.Hearts)
	assert.Empty(t, snap.Feedback)
	assert.Nil(t, snap.Verdict)
	assert.Equal(t, 15.0, snap.TimeRemaining)
}

func TestController_FullRun(t *testing.T) {
	rec := &recorder{}
	c := startController(t, rec,
		mcItem("q1", 10),
		tfItem("q2", true),
		matchingItem("q3"),
		fillBlankItem("q4"),
		shortAnswerItem("q5"),
	)

	require.NoError(t, c.SelectOption("Hello"))
	require.NoError(t, c.Check())
	require.NoError(t, c.Tick(2*time.Second))
	require.NoError(t, c.Advance())

	require.NoError(t, c.SelectTrueFalse(false))
	require.NoError(t, c.Check())
	require.NoError(t, c.Advance())

	require.NoError(t, c.Skip())

	require.NoError(t, c.Tick(20*time.Second))
	require.NoError(t, c.Advance())

	require.NoError(t, c.SetShortAnswer("no hay de qué"))
	require.NoError(t, c.Check())
	require.NoError(t, c.Advance())

	assert.Equal(t, StateCompleted, c.State())
	assert.Nil(t, c.CurrentItem())
	require.Len(t, rec.summaries, 1)

	summary, ok := c.Summary()
	require.True(t, ok)
	assert.Equal(t, rec.summaries[0].QuizID, summary.QuizID)
	assert.Equal(t, 2, summary.CorrectCount)
	assert.Equal(t, 2, summary.IncorrectCount)
	assert.Equal(t, 1, summary.SkippedCount)
	assert.Equal(t, 3, summary.Hearts)
	assert.Equal(t, 20, summary.EarnedPoints)
	assert.Equal(t, 65, summary.TotalPoints)
	assert.Equal(t, 31, summary.Percentage)
	assert.Equal(t, "Keep practicing", summary.Rating)
	assert.Equal(t, 200, summary.XP)
	assert.Equal(t, 22*time.Second, summary.Elapsed)
	assert.Equal(t, []string{"q2", "q3", "q4"}, summary.NeedsReview)
	assert.Len(t, summary.Mistakes, 2)

	assert.Equal(t, 100.0, rec.last().Progress)
}

func TestController_HeartsNeverNegative(t *testing.T) {
	items := make([]models.QuizItem, 0, 8)
	for i := 0; i < 8; i++ {
		items = append(items, mcItem("q"+string(rune('a'+i)), 10))
	}
	rec := &recorder{}
	c := startController(t, rec, items...)

	for i := 0; i < len(items); i++ {
		require.NoError(t, c.SelectOption("Goodbye"))
		require.NoError(t, c.Check())
		require.NoError(t, c.Advance())
	}

	summary, ok := c.Summary()
	require.True(t, ok)
	assert.Equal(t, 0, summary.Hearts)
	assert.Equal(t, 8, summary.IncorrectCount)
	for _, snap := range rec.snapshots {
		assert.GreaterOrEqual(t, snap.Hearts, 0)
		assert.LessOrEqual(t, snap.Hearts, snap.InitialHearts)
		assert.LessOrEqual(t, snap.EarnedPoints, snap.TotalPoints)
	}
}

func TestController_ElapsedOnlyWhileActive(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec.options())

	require.NoError(t, c.Tick(time.Second))
	require.NoError(t, c.Begin(testQuiz(mcItem("q1", 10))))
	require.NoError(t, c.Tick(time.Second))
	require.NoError(t, c.Skip())
	require.NoError(t, c.Tick(time.Second))

	summary, ok := c.Summary()
	require.True(t, ok)
	assert.Equal(t, time.Second, summary.Elapsed)
}

func TestController_TickRefreshesElapsedWhileChecked(t *testing.T) {
	rec := &recorder{}
	c := startController(t, rec, mcItem("q1", 10), tfItem("q2", true))

	require.NoError(t, c.SelectOption("Hello"))
	require.NoError(t, c.Check())
	before := len(rec.snapshots)

	require.NoError(t, c.Tick(3*time.Second))

	require.Len(t, rec.snapshots, before+1)
	last := rec.last()
	assert.Equal(t, StateChecked, last.State)
	assert.Equal(t, 3*time.Second, last.Elapsed)
	assert.Equal(t, PositiveMessages[0], last.Feedback)
}

func TestController_Close(t *testing.T) {
	rec := &recorder{}
	c := startController(t, rec, mcItem("q1", 10))

	c.Close()
	c.Close()

	assert.True(t, c.Closed())
	assert.ErrorIs(t, c.SelectOption("Hello"), ErrSessionClosed)
	assert.ErrorIs(t, c.Check(), ErrSessionClosed)
	assert.ErrorIs(t, c.Skip(), ErrSessionClosed)
	require.NoError(t, c.Tick(time.Minute))
	assert.Equal(t, 0, c.Snapshot().IncorrectCount)
}

func TestController_RejectsMismatchedContent(t *testing.T) {
	item := mcItem("q1", 10)
	item.Type = models.TrueFalse

	c := NewController(Options{})
	err := c.Begin(testQuiz(item))

	assert.ErrorIs(t, err, ErrUnsupportedContent)
	assert.Equal(t, StateLoading, c.State())
}

func TestCheckInvariants(t *testing.T) {
	s := newSessionState(testQuiz(mcItem("q1", 10)), 3)
	require.NoError(t, s.checkInvariants(StateAnswering))

	s.Hearts = 4
	assert.ErrorIs(t, s.checkInvariants(StateAnswering), ErrInvariantViolation)

	s.Hearts = 3
	s.EarnedPoints = 11
	assert.ErrorIs(t, s.checkInvariants(StateAnswering), ErrInvariantViolation)

	s.EarnedPoints = 0
	s.Index = 1
	assert.ErrorIs(t, s.checkInvariants(StateChecked), ErrInvariantViolation)

	s.Index = 0
	assert.ErrorIs(t, s.checkInvariants(StateCompleted), ErrInvariantViolation)
}
