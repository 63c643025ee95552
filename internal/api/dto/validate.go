package dto

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/hospital-helpdesk/pkg/util"
)

var validate = validator.New()

// Validate runs struct-tag validation and converts failures into a
// ValidationError with per-field details.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fe.Tag()
	}
	return apperrors.NewValidationError("invalid payload", details)
}
