package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"

	"inkwell/internal/apperr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slug.IsSlug(fl.Field().String())
	})
	return v
}

var fieldMessages = map[string]string{
	"required": "%s is required",
	"notblank": "%s is required",
	"email":    "%s must be a valid email address",
	"min":      "%s must be at least %s characters",
	"max":      "%s must be at most %s characters",
	"slug":     "%s may only contain lowercase letters, digits and single hyphens",
}

// validateStruct runs the struct's validate tags and reports the first
// failing field as a validation error.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperr.Internal(err)
	}
	return apperr.Validation(fieldMessage(fieldErrs[0]))
}

func fieldMessage(e validator.FieldError) string {
	msg, ok := fieldMessages[e.Tag()]
	if !ok {
		return fmt.Sprintf("%s is invalid", e.Field())
	}
	if strings.Count(msg, "%s") == 2 {
		return fmt.Sprintf(msg, e.Field(), e.Param())
	}
	return fmt.Sprintf(msg, e.Field())
}

// validateSlug checks a slug supplied outside a tagged struct.
func validateSlug(s string) error {
	if strings.TrimSpace(s) == "" {
		return apperr.Validation("slug is required")
	}
	if len(s) > 255 {
		return apperr.Validation("slug must be at most 255 characters")
	}
	if !slug.IsSlug(s) {
		return apperr.Validation(fmt.Sprintf(fieldMessages["slug"], "slug"))
	}
	return nil
}
