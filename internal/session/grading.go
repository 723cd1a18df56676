package session

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
)

// MatchingPlaceholder is shown instead of a correct answer for matching items.
const MatchingPlaceholder = "See highlighted correct matches"

// Verdict is the result of grading one item. CorrectAnswer is only set when
// the answer was wrong.
type Verdict struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
}

// variant keeps the three per-type behaviours of an item together.
type variant interface {
	questionType() models.QuestionType
	hasAnswer(answer models.Answer) bool
	grade(answer models.Answer) bool
	correctAnswerText() string
}

func variantFor(item models.QuizItem) (variant, error) {
	var v variant
	switch c := item.Content.(type) {
	case *models.MultipleChoiceContent:
		v = multipleChoice{c}
	case *models.TrueFalseContent:
		v = trueFalse{c}
	case *models.MatchingContent:
		v = matching{c}
	case *models.FillBlankContent:
		v = fillBlank{c}
	case *models.ShortAnswerContent:
		v = shortAnswer{c}
	default:
		return nil, fmt.Errorf("item %s: %w", item.ID, ErrUnsupportedContent)
	}
	if item.Type != v.questionType() {
		return nil, fmt.Errorf("item %s declares %s but carries %s content: %w",
			item.ID, item.Type, v.questionType(), ErrUnsupportedContent)
	}
	return v, nil
}

// Grade checks answer against item. It fails with ErrAnswerTypeMismatch when
// the answer belongs to another question type and with ErrNoAnswer when a
// choice-based item has no selection.
func Grade(item models.QuizItem, answer models.Answer) (Verdict, error) {
	v, err := variantFor(item)
	if err != nil {
		return Verdict{}, err
	}
	if answer == nil || answer.QuestionType() != v.questionType() {
		return Verdict{}, ErrAnswerTypeMismatch
	}
	if requiresSelection(v.questionType()) && !v.hasAnswer(answer) {
		return Verdict{}, ErrNoAnswer
	}
	return verdictOf(v, answer), nil
}

// HasAnswer reports whether answer is complete enough to be checked.
func HasAnswer(item models.QuizItem, answer models.Answer) bool {
	v, err := variantFor(item)
	if err != nil || answer == nil || answer.QuestionType() != v.questionType() {
		return false
	}
	return v.hasAnswer(answer)
}

// CorrectAnswerText is the human-presentable expected answer for item.
func CorrectAnswerText(item models.QuizItem) string {
	v, err := variantFor(item)
	if err != nil {
		return ""
	}
	return v.correctAnswerText()
}

func verdictOf(v variant, answer models.Answer) Verdict {
	if v.grade(answer) {
		return Verdict{Correct: true}
	}
	return Verdict{Correct: false, CorrectAnswer: v.correctAnswerText()}
}

func requiresSelection(t models.QuestionType) bool {
	return t == models.MultipleChoice || t == models.TrueFalse
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// ===== MULTIPLE CHOICE =====

type multipleChoice struct{ c *models.MultipleChoiceContent }

func (multipleChoice) questionType() models.QuestionType { return models.MultipleChoice }

func (v multipleChoice) hasAnswer(answer models.Answer) bool {
	a := answer.(*models.MultipleChoiceAnswer)
	return a.Selected != nil
}

func (v multipleChoice) grade(answer models.Answer) bool {
	a := answer.(*models.MultipleChoiceAnswer)
	return a.Selected != nil && *a.Selected == v.c.CorrectAnswer
}

func (v multipleChoice) correctAnswerText() string { return v.c.CorrectAnswer }

// ===== TRUE / FALSE =====

type trueFalse struct{ c *models.TrueFalseContent }

func (trueFalse) questionType() models.QuestionType { return models.TrueFalse }

func (v trueFalse) hasAnswer(answer models.Answer) bool {
	return answer.(*models.TrueFalseAnswer).Answer != nil
}

func (v trueFalse) grade(answer models.Answer) bool {
	a := answer.(*models.TrueFalseAnswer)
	return a.Answer != nil && *a.Answer == v.c.CorrectAnswer
}

func (v trueFalse) correctAnswerText() string {
	if v.c.CorrectAnswer {
		return "True"
	}
	return "False"
}

// ===== MATCHING =====

type matching struct{ c *models.MatchingContent }

func (matching) questionType() models.QuestionType { return models.Matching }

// hasAnswer requires every left item to carry a pair.
func (v matching) hasAnswer(answer models.Answer) bool {
	a := answer.(*models.MatchingAnswer)
	if len(a.Pairs) != len(v.c.LeftItems) {
		return false
	}
	paired := make(map[string]struct{}, len(a.Pairs))
	for _, p := range a.Pairs {
		paired[p.Left] = struct{}{}
	}
	for _, left := range v.c.LeftItems {
		if _, ok := paired[left.ID]; !ok {
			return false
		}
	}
	return true
}

// grade compares by pair membership, not position. The length check runs on
// the submitted list as is, so a repeated pair makes the answer wrong.
func (v matching) grade(answer models.Answer) bool {
	a := answer.(*models.MatchingAnswer)
	if len(a.Pairs) != len(v.c.CorrectPairs) {
		return false
	}
	submitted := make(map[models.MatchPair]struct{}, len(a.Pairs))
	for _, p := range a.Pairs {
		submitted[p] = struct{}{}
	}
	for _, p := range v.c.CorrectPairs {
		if _, ok := submitted[p]; !ok {
			return false
		}
	}
	return true
}

func (v matching) correctAnswerText() string { return MatchingPlaceholder }

// ===== FILL IN BLANK =====

type fillBlank struct{ c *models.FillBlankContent }

func (fillBlank) questionType() models.QuestionType { return models.FillInBlank }

func (v fillBlank) hasAnswer(answer models.Answer) bool {
	a := answer.(*models.FillBlankAnswer)
	for _, b := range v.c.Blanks {
		if strings.TrimSpace(a.Answers[b.ID]) == "" {
			return false
		}
	}
	return true
}

func (v fillBlank) grade(answer models.Answer) bool {
	a := answer.(*models.FillBlankAnswer)
	for _, b := range v.c.Blanks {
		got := fold(strings.TrimSpace(a.Answers[b.ID]))
		if got == "" || got != fold(strings.TrimSpace(b.Answer)) {
			return false
		}
	}
	return true
}

func (v fillBlank) correctAnswerText() string {
	answers := make([]string, len(v.c.Blanks))
	for i, b := range v.c.Blanks {
		answers[i] = b.Answer
	}
	return strings.Join(answers, ", ")
}

// ===== SHORT ANSWER =====

type shortAnswer struct{ c *models.ShortAnswerContent }

func (shortAnswer) questionType() models.QuestionType { return models.ShortAnswer }

func (v shortAnswer) hasAnswer(answer models.Answer) bool {
	return strings.TrimSpace(answer.(*models.ShortAnswers).Text) != ""
}

// grade trims the submission once; the canonical answer and alternates are
// only case-folded.
func (v shortAnswer) grade(answer models.Answer) bool {
	got := fold(strings.TrimSpace(answer.(*models.ShortAnswers).Text))
	if got == fold(v.c.CorrectAnswer) {
		return true
	}
	for _, alt := range v.c.AcceptableAnswers {
		if got == fold(alt) {
			return true
		}
	}
	return false
}

func (v shortAnswer) correctAnswerText() string { return v.c.CorrectAnswer }
