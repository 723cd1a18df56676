package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/quiz-session-service/internal/models"
)

// Validator combines struct-tag validation with the per-variant content rules
type Validator struct {
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()

	// Register all custom validators once
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		questionValidator: NewQuestionValidator(structValidator),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// ValidateDefinition performs complete validation of a quiz definition and
// reports every failure as ValidationErrors.
func (v *Validator) ValidateDefinition(quiz *models.QuizDefinition) error {
	if quiz == nil {
		return ValidationErrors{*NewRequired("quiz")}
	}

	errs := ToValidationErrors(v.ValidateStruct(quiz))
	errs = append(errs, v.questionValidator.ValidateItems(quiz.Items)...)
	return errs.OrNil()
}

// Question returns the question validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	// Question type validation
	validate.RegisterValidation("question_type", validateQuestionType)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, validType := range models.QuestionTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

// NewRequired builds the error reported for a missing value.
func NewRequired(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "is required", Rule: "required"}
}
