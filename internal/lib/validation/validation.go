// Package validation wraps go-playground/validator with the custom tags
// used by write payloads and turns its errors into readable messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/zeyaddeeb/zeyaddeeb/internal/domain/models"
	"github.com/zeyaddeeb/zeyaddeeb/internal/lib/slug"
)

func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slug.Valid(fl.Field().String())
	})
	_ = v.RegisterValidation("collection_type", func(fl validator.FieldLevel) bool {
		return models.CollectionType(fl.Field().String()).Valid()
	})

	return v
}

// Struct validates s and reports failures as *models.ValidationError.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return models.NewValidationError(err.Error())
	}

	return models.NewValidationError(Messages(verrs)...)
}

func Messages(verrs validator.ValidationErrors) []string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, message(fe))
	}
	return msgs
}

func message(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "slug":
		return fmt.Sprintf("%s must contain only lowercase letters, numbers and single dashes", field)
	case "collection_type":
		return fmt.Sprintf("%s must be one of: %s", field, joinTypes())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	}

	return fmt.Sprintf("%s is invalid", field)
}

func joinTypes() string {
	names := make([]string, 0, len(models.CollectionTypes))
	for _, t := range models.CollectionTypes {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
