package models

// Answer is the learner's in-progress response to the current item. Each
// question type has its own shape; a freshly reset answer is the type's
// empty value.
type Answer interface {
	QuestionType() QuestionType
}

type MultipleChoiceAnswer struct {
	Selected *string `json:"selected"`
}

// TrueFalseAnswer keeps nil distinct from false: nil means no selection.
type TrueFalseAnswer struct {
	Answer *bool `json:"answer"`
}

type MatchingAnswer struct {
	Pairs []MatchPair `json:"pairs"`
}

type FillBlankAnswer struct {
	Answers map[string]string `json:"answers"` // blankId -> answer
}

type ShortAnswers struct {
	Text string `json:"text"`
}

func (*MultipleChoiceAnswer) QuestionType() QuestionType { return MultipleChoice }
func (*TrueFalseAnswer) QuestionType() QuestionType      { return TrueFalse }
func (*MatchingAnswer) QuestionType() QuestionType       { return Matching }
func (*FillBlankAnswer) QuestionType() QuestionType      { return FillInBlank }
func (*ShortAnswers) QuestionType() QuestionType         { return ShortAnswer }

// NewEmptyAnswer returns the reset value for an item of the given type.
func NewEmptyAnswer(t QuestionType) Answer {
	switch t {
	case MultipleChoice:
		return &MultipleChoiceAnswer{}
	case TrueFalse:
		return &TrueFalseAnswer{}
	case Matching:
		return &MatchingAnswer{Pairs: []MatchPair{}}
	case FillInBlank:
		return &FillBlankAnswer{Answers: map[string]string{}}
	case ShortAnswer:
		return &ShortAnswers{}
	default:
		return nil
	}
}

// SetPair records a left→right match, replacing any earlier pair for the
// same left item.
func (a *MatchingAnswer) SetPair(left, right string) {
	for i, p := range a.Pairs {
		if p.Left == left {
			a.Pairs[i].Right = right
			return
		}
	}
	a.Pairs = append(a.Pairs, MatchPair{Left: left, Right: right})
}
