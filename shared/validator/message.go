package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"

	"minka/shared/failure"
)

var (
	messages = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"notblank": "{field} must not be blank",
		"datetime": "{field} must be a valid date",
	}
)

func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			if msg := tagMessage(valErr); msg != "" {
				return msg
			}
		}

		return valErrors.Error()
	}

	return err.Error()
}

// fieldErrors converts validator errors into per-field failure entries,
// translating struct field names to json names where known.
func fieldErrors(err error, names map[string]string) []failure.FieldError {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return []failure.FieldError{{Field: "", Message: err.Error()}}
	}

	fields := make([]failure.FieldError, 0, len(valErrors))

	for _, valErr := range valErrors {
		field := valErr.Field()
		if name, ok := names[field]; ok {
			field = name
		}

		msg := tagMessage(valErr)
		if msg == "" {
			msg = valErr.Error()
		}

		fields = append(fields, failure.FieldError{Field: field, Message: msg})
	}

	return fields
}

func tagMessage(valErr val.FieldError) string {
	errStr := messages[valErr.Tag()]
	if errStr == "" {
		return ""
	}

	errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())
	errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

	return errStr
}
