package validator

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance
func New() *CustomValidator {
	v := validator.New()

	// issue_type and priority come from the extractor's closed vocabularies;
	// reviewer edits must stay inside them.
	_ = v.RegisterValidation("issuetype", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "Story", "Task", "Bug", "Spike":
			return true
		}
		return false
	})
	_ = v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "Low", "Medium", "High":
			return true
		}
		return false
	})

	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}
