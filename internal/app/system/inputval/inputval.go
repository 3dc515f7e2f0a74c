// Package inputval validates form input before anything is sent to the
// backend. It wraps go-playground/validator so handlers can validate a
// whole form struct in one call and pull back per-field messages.
package inputval

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PasswordMinLen is the shortest password the console will submit.
const PasswordMinLen = 8

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use the `label` tag for messages so they read like the form,
	// falling back to the struct field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return fld.Name
	})
	return v
}

// Result holds field-level validation failures keyed by field label.
type Result struct {
	fields []string
	errs   map[string]string
}

// HasErrors reports whether validation failed.
func (r Result) HasErrors() bool { return len(r.errs) > 0 }

// First returns the first failure message in field order, or "".
func (r Result) First() string {
	if len(r.fields) == 0 {
		return ""
	}
	return r.errs[r.fields[0]]
}

// Field returns the message for a specific field label, or "".
func (r Result) Field(label string) string { return r.errs[label] }

// Validate checks a form struct against its `validate` tags.
func Validate(s any) Result {
	res := Result{errs: map[string]string{}}
	err := validate.Struct(s)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.fields = append(res.fields, "form")
		res.errs["form"] = "The form could not be validated."
		return res
	}
	for _, fe := range verrs {
		label := fe.Field()
		if _, seen := res.errs[label]; seen {
			continue
		}
		res.fields = append(res.fields, label)
		res.errs[label] = message(fe)
	}
	return res
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", label)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s is not valid.", label)
	}
}

// IsValidEmail reports whether s looks like a deliverable email address.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return validate.Var(s, "email") == nil
}

// IsValidPassword reports whether s meets the minimum length.
func IsValidPassword(s string) bool {
	return len(s) >= PasswordMinLen
}
