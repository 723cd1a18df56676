package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/quiz-session-service/internal/events"
	"github.com/SAP-F-2025/quiz-session-service/internal/models"
	"github.com/SAP-F-2025/quiz-session-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-session-service/internal/session"
	"github.com/SAP-F-2025/quiz-session-service/internal/utils"
	"github.com/SAP-F-2025/quiz-session-service/internal/validator"
)

const (
	DefaultTickInterval = 100 * time.Millisecond
	persistTimeout      = 5 * time.Second
)

// SessionService starts quiz sessions and keeps track of the running ones
type SessionService interface {
	Start(ctx context.Context, req StartSessionRequest) (*ActiveSession, error)
	Get(sessionID string) (*ActiveSession, error)
	Results(ctx context.Context, learnerID string, filters repositories.ResultFilters) ([]*models.SessionResult, int64, error)
	Shutdown()
}

type StartSessionRequest struct {
	QuizID    string `json:"quiz_id" validate:"required,max=64"`
	ParentID  string `json:"parent_id" validate:"max=64"`
	LearnerID string `json:"learner_id" validate:"required,max=64"`

	// Callbacks run on the session goroutine and must not issue commands
	// to the same session.
	OnUpdate   func(session.Snapshot)      `json:"-"`
	OnComplete func(models.ResultSummary) `json:"-"`
}

type SessionServiceConfig struct {
	InitialHearts int
	TickInterval  time.Duration
	Clock         session.Clock
	Messages      session.MessageSource
}

type sessionService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
	serviceLogger  *ServiceLogger
	validator      *validator.Validator
	config         SessionServiceConfig

	mu       sync.Mutex
	sessions map[string]*ActiveSession
}

func NewSessionService(
	repo repositories.Repository,
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
	config SessionServiceConfig,
) SessionService {
	if config.TickInterval <= 0 {
		config.TickInterval = DefaultTickInterval
	}
	if config.InitialHearts <= 0 {
		config.InitialHearts = session.DefaultInitialHearts
	}
	if config.Clock == nil {
		config.Clock = session.SystemClock()
	}

	return &sessionService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
		serviceLogger:  NewServiceLogger(logger, LogConfig{Service: "quiz-session", Component: "session"}),
		validator:      validator,
		config:         config,
		sessions:       make(map[string]*ActiveSession),
	}
}

// Start resolves and validates the quiz and launches the session's event
// loop. An unknown or unplayable quiz yields a *RedirectError.
func (s *sessionService) Start(ctx context.Context, req StartSessionRequest) (*ActiveSession, error) {
	op := s.serviceLogger.WithOperation(ctx, "start_session", req.LearnerID)

	if err := s.validator.ValidateStruct(req); err != nil {
		verr := validator.ToValidationErrors(err)
		s.serviceLogger.LogValidationError(ctx, "start_session", req.LearnerID, verr)
		return nil, verr
	}

	sessionID := uuid.NewString()
	active := newActiveSession(sessionID, req, s)

	messages := s.config.Messages
	if messages == nil {
		messages = session.NewRandomMessages(time.Now().UnixNano())
	}
	ctrl := session.NewController(session.Options{
		InitialHearts: s.config.InitialHearts,
		Messages:      messages,
		Logger:        utils.FromSlogLogger(s.logger.With("session_id", sessionID, "learner_id", req.LearnerID)),
		OnUpdate:      active.update,
		OnComplete:    active.complete,
	})
	active.ctrl = ctrl

	resolver := &definitionResolver{quizzes: s.repo.Quiz(), validator: s.validator}
	if err := ctrl.Load(ctx, resolver, req.QuizID, req.ParentID); err != nil {
		op.LogResult(req.QuizID, "quiz", err)
		return nil, err
	}
	active.watch = session.NewStopwatch(s.config.Clock)

	s.publish(ctx, events.NewSessionStartedEvent(sessionID, req.LearnerID, resolver.quiz, s.config.Clock.Now()))

	s.mu.Lock()
	s.sessions[sessionID] = active
	s.mu.Unlock()

	go active.run()
	go func() {
		<-active.Done()
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
	}()

	op.LogResult(req.QuizID, "quiz", nil)
	return active, nil
}

func (s *sessionService) Get(sessionID string) (*ActiveSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}
	return active, nil
}

// Results lists a learner's recorded sessions
func (s *sessionService) Results(ctx context.Context, learnerID string, filters repositories.ResultFilters) ([]*models.SessionResult, int64, error) {
	if learnerID == "" {
		return nil, 0, ValidationErrors{*NewValidationError("learner_id", "is required", learnerID)}
	}
	results, total, err := s.repo.Result().ListByLearner(ctx, learnerID, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list results: %w", err)
	}
	return results, total, nil
}

// Shutdown tears down every running session and waits for their loops to exit
func (s *sessionService) Shutdown() {
	s.mu.Lock()
	running := make([]*ActiveSession, 0, len(s.sessions))
	for _, active := range s.sessions {
		running = append(running, active)
	}
	s.mu.Unlock()

	for _, active := range running {
		active.Close()
	}
	for _, active := range running {
		<-active.Done()
	}
}

// record persists the result and announces completion. Failures are logged
// only; the learner's summary is already final.
func (s *sessionService) record(active *ActiveSession, summary models.ResultSummary) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	completedAt := s.config.Clock.Now()

	result, err := models.NewSessionResult(active.ID, active.LearnerID, summary, completedAt)
	if err == nil {
		err = s.repo.Result().Create(ctx, result)
	}
	if err != nil {
		s.logger.Error("Failed to record session result",
			"session_id", active.ID,
			"quiz_id", summary.QuizID,
			"error", err)
	}

	s.publish(ctx, events.NewSessionCompletedEvent(active.ID, active.LearnerID, summary, completedAt))
}

func (s *sessionService) publish(ctx context.Context, event *events.SessionEvent) {
	if err := s.eventPublisher.PublishSessionEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish session event",
			"event_type", event.Type,
			"error", err)
	}
}

// definitionResolver looks the quiz up and refuses definitions that do not validate
type definitionResolver struct {
	quizzes   repositories.QuizRepository
	validator *validator.Validator
	quiz      *models.QuizDefinition
}

func (r *definitionResolver) Resolve(ctx context.Context, quizID string) (*models.QuizDefinition, error) {
	quiz, err := r.quizzes.GetByID(ctx, quizID)
	if repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("%w: %v", session.ErrQuizNotFound, err)
	}
	if err != nil {
		return nil, err
	}

	if err := r.validator.ValidateDefinition(quiz); err != nil {
		return nil, fmt.Errorf("quiz %s is not playable: %w", quizID, err)
	}

	r.quiz = quiz
	return quiz, nil
}
