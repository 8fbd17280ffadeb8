// Package reqval validates decoded request bodies and reports field-level
// problems keyed by their JSON names.
package reqval

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names so details match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// Struct validates s and returns a map of field path to message,
// or nil when s is valid.
func Struct(s any) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fieldPath(fe)] = message(fe)
	}
	return out
}

// Var validates a single value against tag. An empty string means valid.
func Var(value any, tag string) string {
	err := validate.Var(value, tag)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return message(verrs[0])
	}
	return err.Error()
}

// fieldPath drops the root struct name: "createRequest.itinerary[0].dayNumber"
// becomes "itinerary[0].dayNumber".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	numeric := false
	switch fe.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		numeric = true
	}

	switch fe.Tag() {
	case "required", "required_without", "notblank":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min", "gte":
		if numeric {
			return fmt.Sprintf("Must be at least %s", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at least %s items", fe.Param())
		}
		return fmt.Sprintf("Minimum length is %s", fe.Param())
	case "max", "lte":
		if numeric {
			return fmt.Sprintf("Must be at most %s", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at most %s items", fe.Param())
		}
		return fmt.Sprintf("Maximum length is %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "oneof":
		options := strings.ReplaceAll(fe.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "slug":
		return "Must contain only lowercase letters, digits and single hyphens"
	case "mongodb":
		return "Must be a valid id"
	case "url", "http_url":
		return "Must be a valid URL"
	case "iso4217":
		return "Must be a 3-letter currency code"
	default:
		return fmt.Sprintf("Invalid %s field", fe.Field())
	}
}
