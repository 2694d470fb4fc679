package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/huangang/collabhub/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("domain", func(fl validator.FieldLevel) bool {
		return models.ValidDomain(fl.Field().String())
	})
	_ = v.RegisterValidation("experience", func(fl validator.FieldLevel) bool {
		return models.Experience(fl.Field().String()).Valid()
	})
	return v
}

// validationError converts the first validator failure into a *ValidationError.
func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return invalid("", err.Error())
	}

	fe := errs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			msg = fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		} else if fe.Kind() == reflect.String {
			msg = fmt.Sprintf("must be at least %s characters", fe.Param())
		} else {
			msg = fmt.Sprintf("must be at least %s", fe.Param())
		}
	case "max":
		if fe.Kind() == reflect.String {
			msg = fmt.Sprintf("must be at most %s characters", fe.Param())
		} else {
			msg = fmt.Sprintf("must be at most %s", fe.Param())
		}
	case "domain":
		msg = "must be one of: " + strings.Join(models.Domains, ", ")
	case "experience":
		msg = "must be beginner, intermediate or advanced"
	default:
		msg = "is invalid"
	}

	field := fe.Field()
	if ns := fe.Namespace(); strings.Contains(ns, "[") {
		// skills[2] rather than the bare element name
		field = ns[strings.Index(ns, ".")+1:]
	}
	return invalid(field, msg)
}

// cleanNames trims names and drops blanks.
func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}
