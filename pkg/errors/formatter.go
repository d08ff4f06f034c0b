package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func msgForTag(tag string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "waitlist_email":
		return "Please enter a valid email"
	case "oneof":
		return "Please choose one of the listed options"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "uuid", "uuid4":
		return "Invalid identifier"
	default:
		return "Invalid value"
	}
}

// fieldNameFromTags prefers the form tag (HTML posts) and falls back to json.
func fieldNameFromTags(structType reflect.Type, fieldName string) string {
	field, found := structType.FieldByName(fieldName)
	if !found {
		return fieldName
	}

	for _, tagName := range []string{"json", "form"} {
		tag := field.Tag.Get(tagName)
		if tag == "" || tag == "-" {
			continue
		}
		return strings.Split(tag, ",")[0]
	}

	return fieldName
}

// FormatValidationErrors turns binding errors into field errors keyed by wire names.
func FormatValidationErrors(err error, model interface{}) []FieldError {
	var errorsList []FieldError

	if err == nil {
		return errorsList
	}

	var jsonErr *json.UnmarshalTypeError
	if errors.As(err, &jsonErr) {
		return []FieldError{
			{
				Field:   jsonErr.Field,
				Code:    "type",
				Message: fmt.Sprintf("Invalid type for field %s. Expected %s, got %s", jsonErr.Field, jsonErr.Type, jsonErr.Value),
			},
		}
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errorsList
	}

	var structType reflect.Type
	if model != nil {
		structType = reflect.TypeOf(model)
		if structType.Kind() == reflect.Ptr {
			structType = structType.Elem()
		}
	}

	errorsList = make([]FieldError, len(validationErrors))

	for i, fieldError := range validationErrors {
		name := fieldError.Field()
		if structType != nil {
			name = fieldNameFromTags(structType, fieldError.Field())
		}

		message := msgForTag(fieldError.Tag())
		if fieldError.Param() != "" {
			switch fieldError.Tag() {
			case "min":
				message = fmt.Sprintf("Must be at least %s characters", fieldError.Param())
			case "max":
				message = fmt.Sprintf("Must not exceed %s characters", fieldError.Param())
			}
		}

		errorsList[i] = FieldError{
			Field:   name,
			Code:    fieldError.Tag(),
			Message: message,
		}
	}

	return errorsList
}
