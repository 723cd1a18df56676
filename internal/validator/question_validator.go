package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
)

// QuestionValidator checks the variant payload of each quiz item
type QuestionValidator struct {
	structValidator *validator.Validate
}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator(structValidator *validator.Validate) *QuestionValidator {
	return &QuestionValidator{structValidator: structValidator}
}

// ValidateItems checks item id uniqueness and every item's content.
func (v *QuestionValidator) ValidateItems(items []models.QuizItem) ValidationErrors {
	var errs ValidationErrors

	seen := make(map[string]int, len(items))
	for i, item := range items {
		prefix := fmt.Sprintf("items[%d]", i)
		if first, ok := seen[item.ID]; ok && item.ID != "" {
			errs.Add(prefix+".id", fmt.Sprintf("duplicates items[%d]", first), "unique", item.ID)
		} else {
			seen[item.ID] = i
		}
		errs = append(errs, v.ValidateContent(prefix, item)...)
	}

	return errs
}

// ValidateContent validates question content based on question type
func (v *QuestionValidator) ValidateContent(prefix string, item models.QuizItem) ValidationErrors {
	var errs ValidationErrors

	if item.Content == nil {
		errs.Add(prefix+".content", "is required", "required", nil)
		return errs
	}
	if item.Content.QuestionType() != item.Type {
		errs.Add(prefix+".type", fmt.Sprintf("does not match %s content", item.Content.QuestionType()), "content_type", item.Type)
		return errs
	}

	if err := v.structValidator.Struct(item.Content); err != nil {
		for _, fe := range ToValidationErrors(err) {
			fe.Field = prefix + "." + fe.Field
			errs = append(errs, fe)
		}
	}

	switch c := item.Content.(type) {
	case *models.MultipleChoiceContent:
		v.validateMultipleChoiceContent(prefix, c, &errs)
	case *models.MatchingContent:
		v.validateMatchingContent(prefix, c, &errs)
	case *models.FillBlankContent:
		v.validateFillBlankContent(prefix, c, &errs)
	case *models.ShortAnswerContent:
		v.validateShortAnswerContent(prefix, c, &errs)
	}

	return errs
}

// Private validation methods for each question type

func (v *QuestionValidator) validateMultipleChoiceContent(prefix string, c *models.MultipleChoiceContent, errs *ValidationErrors) {
	options := make(map[string]bool, len(c.Options))
	for _, option := range c.Options {
		if options[option] {
			errs.Add(prefix+".options", "must not contain duplicates", "unique", option)
		}
		options[option] = true
	}

	if c.CorrectAnswer != "" && !options[c.CorrectAnswer] {
		errs.Add(prefix+".correct_answer", "must be one of the options", "option_member", c.CorrectAnswer)
	}
}

func (v *QuestionValidator) validateMatchingContent(prefix string, c *models.MatchingContent, errs *ValidationErrors) {
	left, ok := matchItemIDs(c.LeftItems)
	if !ok {
		errs.Add(prefix+".left_items", "ids must be unique", "unique", nil)
	}
	right, ok := matchItemIDs(c.RightItems)
	if !ok {
		errs.Add(prefix+".right_items", "ids must be unique", "unique", nil)
	}

	usedLeft := make(map[string]bool, len(c.CorrectPairs))
	usedRight := make(map[string]bool, len(c.CorrectPairs))
	for i, pair := range c.CorrectPairs {
		field := fmt.Sprintf("%s.correct_pairs[%d]", prefix, i)
		if !left[pair.Left] {
			errs.Add(field+".left", "must reference a left item", "match_ref", pair.Left)
		}
		if !right[pair.Right] {
			errs.Add(field+".right", "must reference a right item", "match_ref", pair.Right)
		}
		if usedLeft[pair.Left] {
			errs.Add(field+".left", "is paired more than once", "bijection", pair.Left)
		}
		if usedRight[pair.Right] {
			errs.Add(field+".right", "is paired more than once", "bijection", pair.Right)
		}
		usedLeft[pair.Left] = true
		usedRight[pair.Right] = true
	}

	if len(c.CorrectPairs) != len(c.LeftItems) {
		errs.Add(prefix+".correct_pairs", "must pair every left item exactly once", "bijection", len(c.CorrectPairs))
	}
}

func (v *QuestionValidator) validateFillBlankContent(prefix string, c *models.FillBlankContent, errs *ValidationErrors) {
	markers := strings.Count(c.Template, models.BlankMarker)
	if markers != len(c.Blanks) {
		errs.Add(prefix+".text", fmt.Sprintf("has %d blanks but %d answers", markers, len(c.Blanks)), "blank_count", markers)
	}

	ids := make(map[string]bool, len(c.Blanks))
	for i, blank := range c.Blanks {
		if ids[blank.ID] {
			errs.Add(fmt.Sprintf("%s.blanks[%d].id", prefix, i), "must be unique", "unique", blank.ID)
		}
		ids[blank.ID] = true
	}
}

func (v *QuestionValidator) validateShortAnswerContent(prefix string, c *models.ShortAnswerContent, errs *ValidationErrors) {
	if c.CorrectAnswer != "" && strings.TrimSpace(c.CorrectAnswer) == "" {
		errs.Add(prefix+".correct_answer", "must not be blank", "required", c.CorrectAnswer)
	}
}

func matchItemIDs(items []models.MatchItem) (map[string]bool, bool) {
	ids := make(map[string]bool, len(items))
	unique := true
	for _, item := range items {
		if ids[item.ID] {
			unique = false
		}
		ids[item.ID] = true
	}
	return ids, unique
}
