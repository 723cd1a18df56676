package services

import (
	"context"
	"sync"
	"time"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
	"github.com/SAP-F-2025/quiz-session-service/internal/session"
)

type command struct {
	apply  func(*session.Controller) error
	result chan error
}

// ActiveSession is a running quiz session. Its controller is owned by a
// single goroutine; every method here only sends commands to it or reads
// the last published snapshot.
type ActiveSession struct {
	ID        string
	QuizID    string
	LearnerID string

	service    *sessionService
	ctrl       *session.Controller
	watch      *session.Stopwatch
	onUpdate   func(session.Snapshot)
	onComplete func(models.ResultSummary)

	commands  chan command
	done      chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu       sync.RWMutex
	snapshot session.Snapshot
	summary  *models.ResultSummary
}

func newActiveSession(id string, req StartSessionRequest, service *sessionService) *ActiveSession {
	ctx, cancel := context.WithCancel(context.Background())
	return &ActiveSession{
		ID:         id,
		QuizID:     req.QuizID,
		LearnerID:  req.LearnerID,
		service:    service,
		onUpdate:   req.OnUpdate,
		onComplete: req.OnComplete,
		commands:   make(chan command),
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// ===== LEARNER COMMANDS =====

func (a *ActiveSession) SelectOption(ctx context.Context, option string) error {
	return a.do(ctx, func(c *session.Controller) error { return c.SelectOption(option) })
}

func (a *ActiveSession) SelectTrueFalse(ctx context.Context, value bool) error {
	return a.do(ctx, func(c *session.Controller) error { return c.SelectTrueFalse(value) })
}

func (a *ActiveSession) PairMatch(ctx context.Context, leftID, rightID string) error {
	return a.do(ctx, func(c *session.Controller) error { return c.PairMatch(leftID, rightID) })
}

func (a *ActiveSession) SetBlank(ctx context.Context, blankID, text string) error {
	return a.do(ctx, func(c *session.Controller) error { return c.SetBlank(blankID, text) })
}

func (a *ActiveSession) SetShortAnswer(ctx context.Context, text string) error {
	return a.do(ctx, func(c *session.Controller) error { return c.SetShortAnswer(text) })
}

func (a *ActiveSession) Check(ctx context.Context) error {
	return a.do(ctx, (*session.Controller).Check)
}

func (a *ActiveSession) Skip(ctx context.Context) error {
	return a.do(ctx, (*session.Controller).Skip)
}

func (a *ActiveSession) Advance(ctx context.Context) error {
	return a.do(ctx, (*session.Controller).Advance)
}

func (a *ActiveSession) do(ctx context.Context, apply func(*session.Controller) error) error {
	cmd := command{apply: apply, result: make(chan error, 1)}

	select {
	case a.commands <- cmd:
	case <-a.done:
		return ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-cmd.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ===== QUERIES =====

// Snapshot returns the state published by the most recent transition
func (a *ActiveSession) Snapshot() session.Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// Summary returns the result once the session has completed
func (a *ActiveSession) Summary() (models.ResultSummary, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.summary == nil {
		return models.ResultSummary{}, false
	}
	return *a.summary, true
}

// Done is closed when the event loop has exited
func (a *ActiveSession) Done() <-chan struct{} {
	return a.done
}

// Close stops the event loop and the countdown. It does not wait; use Done
// for that. Safe to call more than once and from callbacks.
func (a *ActiveSession) Close() {
	a.closeOnce.Do(a.cancel)
}

// ===== EVENT LOOP =====

func (a *ActiveSession) update(snap session.Snapshot) {
	a.mu.Lock()
	a.snapshot = snap
	a.mu.Unlock()

	if a.onUpdate != nil {
		a.onUpdate(snap)
	}
}

func (a *ActiveSession) complete(summary models.ResultSummary) {
	a.mu.Lock()
	a.summary = &summary
	a.mu.Unlock()
}

func (a *ActiveSession) run() {
	defer close(a.done)
	logger := a.service.logger.With("session_id", a.ID, "quiz_id", a.QuizID)

	ticker := time.NewTicker(a.service.config.TickInterval)
	defer ticker.Stop()

	for {
		if summary, ok := a.Summary(); ok {
			a.finish(summary)
			return
		}

		select {
		case <-a.ctx.Done():
			a.ctrl.Close()
			logger.Info("Quiz session closed before completion", "state", a.ctrl.State())
			return
		case <-ticker.C:
			if err := a.ctrl.Tick(a.watch.Lap()); err != nil {
				logger.Error("Failed to advance session time", "error", err)
			}
		case cmd := <-a.commands:
			// pending time is applied first so an expired countdown wins
			if err := a.ctrl.Tick(a.watch.Lap()); err != nil {
				logger.Error("Failed to advance session time", "error", err)
			}
			cmd.result <- cmd.apply(a.ctrl)
		}
	}
}

func (a *ActiveSession) finish(summary models.ResultSummary) {
	a.service.record(a, summary)
	if a.onComplete != nil {
		a.onComplete(summary)
	}
	a.Close()
}
