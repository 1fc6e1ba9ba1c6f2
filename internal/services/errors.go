package services

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/wellnest/internal/models"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrDuplicateEntry = errors.New("entry already exists for this day")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("concurrent update conflict")
)

var errFutureDay = &ValidationError{Field: "timestamp", Constraint: "must not be after today"}

// ValidationError names the rejected field and the constraint it broke.
// errors.Is(err, ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Field      string
	Constraint string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", err.Field, err.Constraint)
}

func (err *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = validate.RegisterValidation("rgbhex", func(level validator.FieldLevel) bool {
		return hexColorPattern.MatchString(level.Field().String())
	})
	_ = validate.RegisterValidation("goalcategory", func(level validator.FieldLevel) bool {
		return isGoalCategory(level.Field().String())
	})
	return validate
}

func isGoalCategory(category string) bool {
	for _, known := range models.GoalCategories() {
		if category == known {
			return true
		}
	}
	return false
}

// validateInput runs struct tag validation and reports the first failing
// field as a *ValidationError.
func validateInput(input any) error {
	err := inputValidator.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		first := fieldErrors[0]
		return &ValidationError{Field: first.Field(), Constraint: describeConstraint(first)}
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func describeConstraint(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "is required"
	case "gte", "min":
		if fieldError.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fieldError.Param())
		}
		return fmt.Sprintf("must be at least %s", fieldError.Param())
	case "lte", "max":
		if fieldError.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fieldError.Param())
		}
		return fmt.Sprintf("must be at most %s", fieldError.Param())
	case "goalcategory":
		return "must be one of " + strings.Join(models.GoalCategories(), ", ")
	case "rgbhex":
		return "must be a #RRGGBB color"
	default:
		return "is invalid"
	}
}
