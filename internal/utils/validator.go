// internal/utils/validator.go
package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/homewise/planner-backend/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("layout", validateLayout)
	validate.RegisterValidation("budget_level", validateBudgetLevel)
	validate.RegisterValidation("language", validateLanguage)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateLayout(fl validator.FieldLevel) bool {
	return models.Layout(fl.Field().String()).Valid()
}

func validateBudgetLevel(fl validator.FieldLevel) bool {
	return models.BudgetLevel(fl.Field().String()).Valid()
}

func validateLanguage(fl validator.FieldLevel) bool {
	return models.Language(fl.Field().String()).Valid()
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "layout":
		return "Layout must be one of 2r1l1b, 3r2l1b, 3r2l2b, 4r2l2b, 4r2l3b"
	case "budget_level":
		return "Budget level must be one of economy, premium, luxury"
	case "language":
		return "Language must be one of en, zh, ja, ko"
	default:
		return e.Field() + " is invalid"
	}
}
