package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under the wire field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// unmarshalArgs decodes the untyped argument bundle into a typed
// request struct. A malformed bundle is a validation failure, not a
// transport fault.
func unmarshalArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return &ValidationError{Violations: []FieldViolation{
			{Field: "arguments", Message: fmt.Sprintf("malformed: %v", err)},
		}}
	}
	return nil
}

// validateStruct checks the typed request against its constraint tags,
// collecting every violated field into a single ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Violations: []FieldViolation{
			{Field: "arguments", Message: err.Error()},
		}}
	}

	violations := make([]FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, FieldViolation{
			Field:   fe.Field(),
			Message: constraintMessage(fe),
		})
	}
	return &ValidationError{Violations: violations}
}

// decodeArgs is the common decode-then-validate step of every handler.
func decodeArgs(args json.RawMessage, v any) error {
	if err := unmarshalArgs(args, v); err != nil {
		return err
	}
	return validateStruct(v)
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed constraint %q", fe.Tag())
	}
}
