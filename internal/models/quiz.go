package models

import (
	"encoding/json"
	"fmt"
)

type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	Matching       QuestionType = "matching"
	FillInBlank    QuestionType = "fill_blank"
	ShortAnswer    QuestionType = "short_answer"
)

// QuestionTypes lists every supported item variant.
var QuestionTypes = []QuestionType{
	MultipleChoice,
	TrueFalse,
	Matching,
	FillInBlank,
	ShortAnswer,
}

// BlankMarker marks one blank inside a fill-in-blank template.
const BlankMarker = "___"

// QuizDefinition is immutable once a session has loaded it.
type QuizDefinition struct {
	ID        string     `json:"id" validate:"required,max=64"`
	Title     string     `json:"title" validate:"required,min=1,max=200"`
	SectionID string     `json:"section_id" validate:"omitempty,max=64"`
	Items     []QuizItem `json:"items" validate:"dive"`
}

// TotalPoints sums the point value of every item.
func (q *QuizDefinition) TotalPoints() int {
	total := 0
	for _, item := range q.Items {
		total += item.Points
	}
	return total
}

// QuizItem is one gradable question. Content holds a pointer to exactly one
// of the *Content types below, matching Type.
type QuizItem struct {
	ID        string       `json:"id" validate:"required"`
	Type      QuestionType `json:"type" validate:"required,question_type"`
	Question  string       `json:"question" validate:"required"`
	Points    int          `json:"points" validate:"required,min=1,max=100"`
	TimeLimit int          `json:"time_limit" validate:"required,min=1,max=3600"` // seconds
	Content   ItemContent  `json:"-" validate:"-"`
}

// ItemContent is implemented by the variant payloads.
type ItemContent interface {
	QuestionType() QuestionType
}

type MultipleChoiceContent struct {
	Options       []string `json:"options" validate:"min=2,max=10,dive,required"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
}

type TrueFalseContent struct {
	CorrectAnswer bool `json:"correct_answer"`
}

type MatchItem struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text" validate:"required"`
}

type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

type MatchingContent struct {
	LeftItems    []MatchItem `json:"left_items" validate:"min=1,dive"`
	RightItems   []MatchItem `json:"right_items" validate:"min=1,dive"`
	CorrectPairs []MatchPair `json:"correct_pairs" validate:"min=1"`
}

type Blank struct {
	ID     string `json:"id" validate:"required"`
	Answer string `json:"answer" validate:"required"`
}

type FillBlankContent struct {
	Template string  `json:"text" validate:"required"`
	Blanks   []Blank `json:"blanks" validate:"min=1,dive"`
}

type ShortAnswerContent struct {
	CorrectAnswer     string   `json:"correct_answer" validate:"required"`
	AcceptableAnswers []string `json:"acceptable_answers,omitempty" validate:"omitempty,dive,required"`
}

func (*MultipleChoiceContent) QuestionType() QuestionType { return MultipleChoice }
func (*TrueFalseContent) QuestionType() QuestionType      { return TrueFalse }
func (*MatchingContent) QuestionType() QuestionType       { return Matching }
func (*FillBlankContent) QuestionType() QuestionType      { return FillInBlank }
func (*ShortAnswerContent) QuestionType() QuestionType    { return ShortAnswer }

// NewItemContent returns an empty payload for the given type.
func NewItemContent(t QuestionType) (ItemContent, error) {
	switch t {
	case MultipleChoice:
		return &MultipleChoiceContent{}, nil
	case TrueFalse:
		return &TrueFalseContent{}, nil
	case Matching:
		return &MatchingContent{}, nil
	case FillInBlank:
		return &FillBlankContent{}, nil
	case ShortAnswer:
		return &ShortAnswerContent{}, nil
	default:
		return nil, fmt.Errorf("unsupported question type: %s", t)
	}
}

type quizItemHeader struct {
	ID        string       `json:"id"`
	Type      QuestionType `json:"type"`
	Question  string       `json:"question"`
	Points    int          `json:"points"`
	TimeLimit int          `json:"time_limit"`
}

// MarshalJSON flattens the variant payload next to the common fields.
func (i QuizItem) MarshalJSON() ([]byte, error) {
	header, err := json.Marshal(quizItemHeader{
		ID:        i.ID,
		Type:      i.Type,
		Question:  i.Question,
		Points:    i.Points,
		TimeLimit: i.TimeLimit,
	})
	if err != nil {
		return nil, err
	}
	if i.Content == nil {
		return header, nil
	}

	body, err := json.Marshal(i.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s content: %w", i.Type, err)
	}
	if len(body) <= 2 {
		return header, nil
	}

	out := make([]byte, 0, len(header)+len(body))
	out = append(out, header[:len(header)-1]...)
	out = append(out, ',')
	out = append(out, body[1:]...)
	return out, nil
}

// UnmarshalJSON decodes the common fields and then the payload selected by type.
func (i *QuizItem) UnmarshalJSON(data []byte) error {
	var header quizItemHeader
	if err := json.Unmarshal(data, &header); err != nil {
		return fmt.Errorf("invalid quiz item: %w", err)
	}

	content, err := NewItemContent(header.Type)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, content); err != nil {
		return fmt.Errorf("invalid %s content: %w", header.Type, err)
	}

	*i = QuizItem{
		ID:        header.ID,
		Type:      header.Type,
		Question:  header.Question,
		Points:    header.Points,
		TimeLimit: header.TimeLimit,
		Content:   content,
	}
	return nil
}
