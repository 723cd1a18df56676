package session

import (
	"context"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
)

func mcItem(id string, points int) models.QuizItem {
	return models.QuizItem{
		ID:        id,
		Type:      models.MultipleChoice,
		Question:  "How do you say 'hello'?",
		Points:    points,
		TimeLimit: 15,
		Content: &models.MultipleChoiceContent{
			Options:       []string{"Hello", "Goodbye"},
			CorrectAnswer: "Hello",
		},
	}
}

func tfItem(id string, correct bool) models.QuizItem {
	return models.QuizItem{
		ID:        id,
		Type:      models.TrueFalse,
		Question:  "'Gato' means cat.",
		Points:    10,
		TimeLimit: 10,
		Content:   &models.TrueFalseContent{CorrectAnswer: correct},
	}
}

func matchingItem(id string) models.QuizItem {
	return models.QuizItem{
		ID:        id,
		Type:      models.Matching,
		Question:  "Match the words",
		Points:    20,
		TimeLimit: 30,
		Content: &models.MatchingContent{
			LeftItems:  []models.MatchItem{{ID: "l1", Text: "Perro"}, {ID: "l2", Text: "Gato"}},
			RightItems: []models.MatchItem{{ID: "r1", Text: "Dog"}, {ID: "r2", Text: "Cat"}},
			CorrectPairs: []models.MatchPair{
				{Left: "l1", Right: "r1"},
				{Left: "l2", Right: "r2"},
			},
		},
	}
}

func fillBlankItem(id string) models.QuizItem {
	return models.QuizItem{
		ID:        id,
		Type:      models.FillInBlank,
		Question:  "Complete the greeting",
		Points:    15,
		TimeLimit: 20,
		Content: &models.FillBlankContent{
			Template: "___ amigo, ___",
			Blanks: []models.Blank{
				{ID: "b1", Answer: "Hola"},
				{ID: "b2", Answer: "Adiós"},
			},
		},
	}
}

func shortAnswerItem(id string) models.QuizItem {
	return models.QuizItem{
		ID:        id,
		Type:      models.ShortAnswer,
		Question:  "How do you answer 'gracias'?",
		Points:    10,
		TimeLimit: 15,
		Content: &models.ShortAnswerContent{
			CorrectAnswer:     "De nada",
			AcceptableAnswers: []string{"No hay de qué"},
		},
	}
}

func testQuiz(items ...models.QuizItem) *models.QuizDefinition {
	return &models.QuizDefinition{
		ID:        "quiz-1",
		Title:     "Greetings",
		SectionID: "section-1",
		Items:     items,
	}
}

func strPtr(s string) *string { return &s }

type stubResolver struct {
	quizzes map[string]*models.QuizDefinition
}

func (r stubResolver) Resolve(_ context.Context, quizID string) (*models.QuizDefinition, error) {
	if q, ok := r.quizzes[quizID]; ok {
		return q, nil
	}
	return nil, ErrQuizNotFound
}

// recorder collects everything a controller reports to its observer.
type recorder struct {
	snapshots []Snapshot
	summaries []models.ResultSummary
}

func (r *recorder) options() Options {
	return Options{
		Messages:   IndexedMessages{},
		OnUpdate:   func(s Snapshot) { r.snapshots = append(r.snapshots, s) },
		OnComplete: func(s models.ResultSummary) { r.summaries = append(r.summaries, s) },
	}
}

func (r *recorder) last() Snapshot {
	return r.snapshots[len(r.snapshots)-1]
}
