package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
	"github.com/SAP-F-2025/quiz-session-service/internal/utils"
)

// DefaultInitialHearts is the number of lives a learner starts with.
const DefaultInitialHearts = 5

// Resolver looks a quiz definition up by its opaque identifier. A missing
// quiz is reported with an error matching ErrQuizNotFound.
type Resolver interface {
	Resolve(ctx context.Context, quizID string) (*models.QuizDefinition, error)
}

type Options struct {
	InitialHearts int
	Messages      MessageSource
	Logger        utils.Logger

	// OnUpdate receives a snapshot after every transition.
	OnUpdate func(Snapshot)
	// OnComplete receives the summary once, when the session completes.
	OnComplete func(models.ResultSummary)
}

// Controller is the quiz session state machine. It is not safe for
// concurrent use: every event must be handled to completion before the next.
type Controller struct {
	state     State
	s         SessionState
	countdown *Countdown
	variants  []variant
	summary   *models.ResultSummary
	closed    bool

	hearts     int
	messages   MessageSource
	logger     utils.Logger
	onUpdate   func(Snapshot)
	onComplete func(models.ResultSummary)
}

func NewController(opts Options) *Controller {
	c := &Controller{
		state:      StateLoading,
		countdown:  NewCountdown(),
		hearts:     opts.InitialHearts,
		messages:   opts.Messages,
		logger:     opts.Logger,
		onUpdate:   opts.OnUpdate,
		onComplete: opts.OnComplete,
	}
	if c.hearts <= 0 {
		c.hearts = DefaultInitialHearts
	}
	if c.messages == nil {
		c.messages = NewRandomMessages(time.Now().UnixNano())
	}
	if c.logger == nil {
		c.logger = utils.NewNopLogger()
	}
	return c
}

// ===== LIFECYCLE =====

// Load resolves quizID and starts the session. When the quiz cannot be
// resolved it returns a *RedirectError pointing at parentID and the
// controller stays in Loading.
func (c *Controller) Load(ctx context.Context, resolver Resolver, quizID, parentID string) error {
	if err := c.guard(StateLoading); err != nil {
		return err
	}

	quiz, err := resolver.Resolve(ctx, quizID)
	if err == nil && quiz == nil {
		err = ErrQuizNotFound
	}
	if err != nil {
		c.logger.WarnContext(ctx, "Quiz could not be resolved", "quiz_id", quizID, "parent_id", parentID, "error", err)
		return &RedirectError{QuizID: quizID, ParentID: parentID, Err: err}
	}

	return c.Begin(quiz)
}

// Begin starts the session on an already resolved definition.
func (c *Controller) Begin(quiz *models.QuizDefinition) error {
	if err := c.guard(StateLoading); err != nil {
		return err
	}
	if quiz == nil {
		return ErrQuizNotFound
	}

	variants := make([]variant, len(quiz.Items))
	for i, item := range quiz.Items {
		v, err := variantFor(item)
		if err != nil {
			return err
		}
		variants[i] = v
	}

	c.variants = variants
	c.s = newSessionState(quiz, c.hearts)
	c.logger.Info("Quiz session started", "quiz_id", quiz.ID, "items", len(quiz.Items), "total_points", c.s.TotalPoints)

	if len(quiz.Items) == 0 {
		return c.complete()
	}
	return c.enterAnswering(0)
}

// Close tears the session down. The countdown is stopped and every later
// command fails with ErrSessionClosed.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.countdown.Stop()
	c.closed = true
	c.logger.Debug("Quiz session closed", "state", c.state)
}

// ===== QUERIES =====

func (c *Controller) State() State { return c.state }

func (c *Controller) Closed() bool { return c.closed }

// Summary returns the result once the session has completed.
func (c *Controller) Summary() (models.ResultSummary, bool) {
	if c.summary == nil {
		return models.ResultSummary{}, false
	}
	return *c.summary, true
}

// CurrentItem is nil outside Answering and Checked.
func (c *Controller) CurrentItem() *models.QuizItem {
	if c.state != StateAnswering && c.state != StateChecked {
		return nil
	}
	item := c.s.Quiz.Items[c.s.Index]
	return &item
}

// HasAnswer reports whether the pending answer is complete enough to check.
func (c *Controller) HasAnswer() bool {
	if c.state != StateAnswering {
		return false
	}
	return c.variants[c.s.Index].hasAnswer(c.s.Answer)
}

func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		State:             c.state,
		Index:             c.s.Index,
		ItemCount:         c.s.itemCount(),
		Hearts:            c.s.Hearts,
		InitialHearts:     c.s.InitialHearts,
		Score:             c.s.Score,
		EarnedPoints:      c.s.EarnedPoints,
		TotalPoints:       c.s.TotalPoints,
		CorrectCount:      c.s.CorrectCount,
		IncorrectCount:    c.s.IncorrectCount,
		SkippedCount:      c.s.SkippedCount,
		TimeRemaining:     c.countdown.Remaining(),
		TimePercentage:    c.countdown.Percentage(),
		DisplaySeconds:    c.countdown.DisplaySeconds(),
		TimerBand:         c.countdown.Band(),
		HasAnswer:         c.HasAnswer(),
		Feedback:          c.s.Feedback,
		CorrectAnswerText: c.s.CorrectAnswerText,
		Elapsed:           c.s.Elapsed,
	}
	if c.s.Quiz != nil {
		snap.QuizID = c.s.Quiz.ID
	}
	if c.s.Verdict != nil {
		v := *c.s.Verdict
		snap.Verdict = &v
	}
	if item := c.CurrentItem(); item != nil {
		snap.ItemID = item.ID
		snap.ItemType = item.Type
		snap.Points = item.Points
		snap.Progress = float64(c.s.Index+1) / float64(snap.ItemCount) * 100
	}
	if c.state == StateCompleted {
		snap.Progress = 100
	}
	return snap
}

// ===== LEARNER INPUT =====

func (c *Controller) SelectOption(option string) error {
	return c.updateAnswer(models.MultipleChoice, func(a models.Answer) error {
		a.(*models.MultipleChoiceAnswer).Selected = &option
		return nil
	})
}

func (c *Controller) SelectTrueFalse(value bool) error {
	return c.updateAnswer(models.TrueFalse, func(a models.Answer) error {
		a.(*models.TrueFalseAnswer).Answer = &value
		return nil
	})
}

// PairMatch pairs a left item with a right item, replacing any earlier pair
// for the same left item.
func (c *Controller) PairMatch(leftID, rightID string) error {
	return c.updateAnswer(models.Matching, func(a models.Answer) error {
		content := c.s.Quiz.Items[c.s.Index].Content.(*models.MatchingContent)
		if !hasMatchItem(content.LeftItems, leftID) || !hasMatchItem(content.RightItems, rightID) {
			return fmt.Errorf("pair %s→%s: %w", leftID, rightID, ErrUnknownAnswerTarget)
		}
		a.(*models.MatchingAnswer).SetPair(leftID, rightID)
		return nil
	})
}

func (c *Controller) SetBlank(blankID, text string) error {
	return c.updateAnswer(models.FillInBlank, func(a models.Answer) error {
		content := c.s.Quiz.Items[c.s.Index].Content.(*models.FillBlankContent)
		known := false
		for _, b := range content.Blanks {
			if b.ID == blankID {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("blank %s: %w", blankID, ErrUnknownAnswerTarget)
		}
		a.(*models.FillBlankAnswer).Answers[blankID] = text
		return nil
	})
}

func (c *Controller) SetShortAnswer(text string) error {
	return c.updateAnswer(models.ShortAnswer, func(a models.Answer) error {
		a.(*models.ShortAnswers).Text = text
		return nil
	})
}

func (c *Controller) updateAnswer(t models.QuestionType, apply func(models.Answer) error) error {
	if err := c.guard(StateAnswering); err != nil {
		return err
	}
	if c.s.Answer.QuestionType() != t {
		return ErrAnswerTypeMismatch
	}
	if err := apply(c.s.Answer); err != nil {
		return err
	}
	return c.commit()
}

func hasMatchItem(items []models.MatchItem, id string) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// ===== TRANSITIONS =====

// Check grades the pending answer. Only allowed while Answering with a
// complete answer.
func (c *Controller) Check() error {
	if err := c.guard(StateAnswering); err != nil {
		return err
	}
	if !c.HasAnswer() {
		return ErrNoAnswer
	}
	return c.check()
}

// HandleExpiry is the countdown's expiry signal. Outside Answering it is a
// no-op, so a second signal for the same item changes nothing.
func (c *Controller) HandleExpiry() error {
	if c.closed || c.state != StateAnswering {
		return nil
	}
	c.countdown.Stop()

	if c.HasAnswer() {
		return c.check()
	}

	item := c.s.Quiz.Items[c.s.Index]
	correction := c.variants[c.s.Index].correctAnswerText()
	c.s.loseHeart()
	c.s.IncorrectCount++
	c.s.Feedback = TimeUpMessage
	c.s.CorrectAnswerText = correction
	c.s.Verdict = boolPtr(false)
	c.s.Outcomes = append(c.s.Outcomes, models.ItemOutcome{
		ItemID:     item.ID,
		Question:   item.Question,
		Status:     models.OutcomeTimedOut,
		Correction: correction,
		Points:     0,
	})
	c.state = StateChecked

	c.logger.Debug("Question expired without an answer", "item_id", item.ID, "hearts", c.s.Hearts)
	return c.commit()
}

// Tick advances session time by delta and publishes a snapshot, so elapsed
// time stays current while a checked item waits. The active countdown is fed
// the same delta and its expiry is handled before Tick returns.
func (c *Controller) Tick(delta time.Duration) error {
	if c.closed || delta <= 0 {
		return nil
	}
	if c.state != StateAnswering && c.state != StateChecked {
		return nil
	}

	c.s.Elapsed += delta
	if c.state == StateAnswering && c.countdown.Tick(delta.Seconds()) {
		return c.HandleExpiry()
	}
	return c.commit()
}

// Advance moves past a checked item, completing the session after the last.
func (c *Controller) Advance() error {
	if err := c.guard(StateChecked); err != nil {
		return err
	}
	return c.next()
}

// Skip leaves the current item without a verdict, penalty or credit.
func (c *Controller) Skip() error {
	if err := c.guard(StateAnswering); err != nil {
		return err
	}
	c.countdown.Stop()

	item := c.s.Quiz.Items[c.s.Index]
	c.s.SkippedCount++
	c.s.Outcomes = append(c.s.Outcomes, models.ItemOutcome{
		ItemID:   item.ID,
		Question: item.Question,
		Status:   models.OutcomeSkipped,
	})

	c.logger.Debug("Question skipped", "item_id", item.ID)
	return c.next()
}

func (c *Controller) check() error {
	c.countdown.Stop()

	item := c.s.Quiz.Items[c.s.Index]
	v := c.variants[c.s.Index]
	outcome := models.ItemOutcome{ItemID: item.ID, Question: item.Question}

	if v.grade(c.s.Answer) {
		c.s.Score++
		c.s.CorrectCount++
		c.s.EarnedPoints += item.Points
		c.s.Feedback = c.messages.Positive()
		c.s.CorrectAnswerText = ""
		c.s.Verdict = boolPtr(true)
		outcome.Status = models.OutcomeCorrect
		outcome.Points = item.Points
	} else {
		c.s.loseHeart()
		c.s.IncorrectCount++
		c.s.Feedback = c.messages.Negative()
		c.s.CorrectAnswerText = v.correctAnswerText()
		c.s.Verdict = boolPtr(false)
		outcome.Status = models.OutcomeIncorrect
		outcome.Correction = c.s.CorrectAnswerText
	}
	c.s.Outcomes = append(c.s.Outcomes, outcome)
	c.state = StateChecked

	c.logger.Debug("Question checked",
		"item_id", item.ID,
		"correct", *c.s.Verdict,
		"hearts", c.s.Hearts,
		"score", c.s.Score)
	return c.commit()
}

func (c *Controller) next() error {
	if c.s.Index >= len(c.s.Quiz.Items)-1 {
		return c.complete()
	}
	return c.enterAnswering(c.s.Index + 1)
}

func (c *Controller) enterAnswering(index int) error {
	item := c.s.Quiz.Items[index]

	c.s.Index = index
	c.s.Answer = models.NewEmptyAnswer(item.Type)
	c.s.Verdict = nil
	c.s.Feedback = ""
	c.s.CorrectAnswerText = ""
	c.state = StateAnswering
	c.countdown.Start(float64(item.TimeLimit))

	return c.commit()
}

func (c *Controller) complete() error {
	c.countdown.Stop()
	c.state = StateCompleted

	summary := Aggregate(c.s)
	c.summary = &summary

	if err := c.commit(); err != nil {
		return err
	}

	c.logger.Info("Quiz session completed",
		"quiz_id", summary.QuizID,
		"percentage", summary.Percentage,
		"rating", summary.Rating,
		"xp", summary.XP)
	if c.onComplete != nil {
		c.onComplete(summary)
	}
	return nil
}

// commit validates the aggregate and publishes a snapshot.
func (c *Controller) commit() error {
	if err := c.s.checkInvariants(c.state); err != nil {
		c.logger.LogError(err, "Quiz session invariant violated", "state", c.state)
		return err
	}
	if c.onUpdate != nil {
		c.onUpdate(c.Snapshot())
	}
	return nil
}

func (c *Controller) guard(want State) error {
	if c.closed {
		return ErrSessionClosed
	}
	if c.state != want {
		return fmt.Errorf("%w: %s, want %s", ErrInvalidState, c.state, want)
	}
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}

// IsInvalidState reports whether err came from a command issued in the wrong state.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}
