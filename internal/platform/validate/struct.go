// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
)

// singleton validator instance; it caches struct metadata between calls.
var (
	structValidator *validator.Validate
	structOnce      sync.Once
)

// engine returns the shared validator, registering the custom tags once.
func engine() *validator.Validate {
	structOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON names so details match what clients sent.
		structValidator.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})

		_ = structValidator.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugRegex.MatchString(fl.Field().String())
		})
		_ = structValidator.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRegex.MatchString(fl.Field().String())
		})
	})

	return structValidator
}

// Struct validates a tagged struct and returns a VALIDATION_ERROR on failure.
//
// Example:
//
//	type signupRequest struct {
//	    Username string `json:"username" validate:"required,max=150,username,ne=me"`
//	    Email    string `json:"email"    validate:"required,max=254,email"`
//	}
func Struct(target any) error {
	err := engine().Struct(target)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return apperr.ValidationError("Validation failed").WithCause(err)
	}

	details := make([]apperr.FieldError, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		details = append(details, apperr.FieldError{
			Field:   fieldError.Field(),
			Message: translate(fieldError),
		})
	}

	return apperr.ValidationError("Validation failed", details...)
}

// messages maps validation tags to client-facing messages.
var messages = map[string]string{
	"required": "This field is required",
	"email":    "Must be a valid email address",
	"slug":     "Must be a valid slug (letters, digits, hyphens, underscores)",
	"username": "May contain only letters, digits and @/./+/-/_ characters",
}

// translate converts a validator.FieldError to a human-readable message.
func translate(fieldError validator.FieldError) string {
	if message, ok := messages[fieldError.Tag()]; ok {
		return message
	}

	isString := fieldError.Kind() == reflect.String
	param := fieldError.Param()

	switch fieldError.Tag() {
	case "max":
		if isString {
			return fmt.Sprintf("Maximum %s characters", param)
		}
		return fmt.Sprintf("Must be less than or equal to %s", param)
	case "min":
		if isString {
			return fmt.Sprintf("Minimum %s characters", param)
		}
		return fmt.Sprintf("Must be greater than or equal to %s", param)
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(param, " ", ", "))
	case "ne":
		return fmt.Sprintf("The value %q is not allowed", param)
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", param)
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", param)
	default:
		return fmt.Sprintf("Failed %s validation", fieldError.Tag())
	}
}
