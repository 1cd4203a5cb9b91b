// Package validation wraps go-playground/validator and turns its errors into
// *apperrors.ValidationError keyed by the JSON field name.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gudang/internal/apperrors"

	"github.com/go-playground/validator/v10"
)

// Validator validates request structs tagged with `validate:"..."`.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their json tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s. It returns nil or a *apperrors.ValidationError.
func (v *Validator) Struct(s any) error {
	verr := v.Fields(s)
	if verr == nil {
		return nil
	}
	return verr
}

// Fields is like Struct but returns the concrete type, so callers can merge
// additional field errors before returning it.
func (v *Validator) Fields(s any) *apperrors.ValidationError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("body", err.Error())
	}

	out := &apperrors.ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "gte":
		return fmt.Sprintf("The %s field must be at least %s.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

// FromDecodeError turns a failure to decode a JSON request body into field
// errors. A value of the wrong JSON type is reported against its field; any
// other decoding failure is reported against "body".
func FromDecodeError(err error) *apperrors.ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := strings.ReplaceAll(typeErr.Field, "_", " ")
		return apperrors.NewValidationError(typeErr.Field,
			fmt.Sprintf("The %s field must be %s.", field, kindName(typeErr.Type)))
	}
	return apperrors.NewValidationError("body", "The request body must be a valid JSON object.")
}

func kindName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "of a different type"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "true or false"
	default:
		return "of a different type"
	}
}
