package server

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// FieldError is one failed rule, keyed by the JSON field name.
type FieldError struct {
	Field string
	Tag   string
}

// Key returns "field.tag", the lookup key used by [messageFor].
func (e FieldError) Key() string {
	return e.Field + "." + e.Tag
}

// validateStruct runs the struct's validate tags and flattens failures in field order.
func validateStruct(s any) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Tag: "invalid"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag()})
	}
	return out
}

// messageFor returns the message for the first failure found in messages, or fallback.
//
// Keys are "field.tag" or a bare "tag" matching any field.
func messageFor(errs []FieldError, messages map[string]string, fallback string) string {
	for _, e := range errs {
		if msg, ok := messages[e.Key()]; ok {
			return msg
		}
		if msg, ok := messages[e.Tag]; ok {
			return msg
		}
	}
	return fallback
}
