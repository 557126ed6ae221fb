package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground/validator library to implement Echo's
// Validator interface. Field names in errors are taken from `form` tags so
// they line up with the input names rendered on the page.
type Validator struct {
	validator *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	return &Validator{validator: v}
}

// Validate implements the echo.Validator interface.
func (cv *Validator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// fieldMessages holds the text shown under each input, whatever rule failed.
var fieldMessages = map[string]string{
	"email":      "Please enter a valid email address",
	"password":   "Password must be at least 8 characters",
	"first_name": "First name is required",
	"last_name":  "Last name is required",
}

// FieldErrors turns a validation error into one message per field, keeping the
// first violation reported for each. It returns nil for any other error.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = messageFor(field, fe.Tag())
	}
	return out
}

func messageFor(field, tag string) string {
	if msg, ok := fieldMessages[field]; ok {
		return msg
	}
	if tag == "required" {
		return "This field is required"
	}
	return "This field is invalid"
}
