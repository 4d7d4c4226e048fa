package validator

import (
	"fmt"

	"go-pos-backend/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// required on a uuid.UUID never fires (the zero uuid is a non-zero
	// array), so basket lines carry their own presence rule.
	v.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		id, ok := fl.Field().Interface().(uuid.UUID)
		return ok && id != uuid.Nil
	})

	return v
}

// Struct runs the tag-declared rules on a request DTO. Failures come back
// as a single error wrapping model.ErrInvalidArgument, named after the
// first offending field.
func Struct(data interface{}) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrors) == 0 {
		return fmt.Errorf("%v: %w", err, model.ErrInvalidArgument)
	}

	first := fieldErrors[0]
	return fmt.Errorf("field %s failed on %s: %w",
		first.StructNamespace(), first.Tag(), model.ErrInvalidArgument)
}
