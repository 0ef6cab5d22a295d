// Package forms validates the create forms before anything reaches the
// network. Messages are the ones the user sees next to the field.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid is matched by every *ValidationError.
var ErrInvalid = errors.New("invalid form")

var (
	alphaSpaceRe = regexp.MustCompile(`^[A-Za-z\s]+$`)
	phoneRe      = regexp.MustCompile(`^[+]?[(]?[0-9]{3}[)]?[-\s.]?[0-9]{3}[-\s.]?[0-9]{4,6}$`)
	emailRe      = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
)

// FieldError is one failed field, named as on the wire (json tag).
type FieldError struct {
	Field   string
	Message string
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// Message returns the message for field, or "" when the field passed.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

var messages = map[string]map[string]string{
	"EmployeeInput.firstName": {
		"required":   "First name is required",
		"min":        "First name must be at least 2 characters",
		"max":        "First name cannot exceed 10 characters",
		"alphaspace": "Only letters and spaces allowed",
	},
	"EmployeeInput.lastName": {
		"required":   "Last name is required",
		"min":        "Last name must be at least 2 characters",
		"max":        "Last name cannot exceed 10 characters",
		"alphaspace": "Only letters and spaces allowed",
	},
	"EmployeeInput.age": {
		"required": "Age is required",
		"min":      "Age must be at least 18",
		"max":      "Age cannot exceed 100",
	},
	"EmployeeInput.phoneNumber": {
		"required": "Phone number is required",
		"phone":    "Invalid phone number format (e.g., +1-555-555-5555)",
	},
	"EmployeeInput.email": {
		"required":  "Email is required",
		"emailaddr": "Invalid email address",
	},
	"EmployeeInput.jobLocation": {
		"required": "Job location is required",
		"min":      "Job location must be at least 2 characters",
	},
	"PostInput.title":      {"required": "Title is required"},
	"PostInput.content":    {"required": "Content is required"},
	"CommentInput.content": {"required": "Comment is required"},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "alphaspace", alphaSpaceRe)
	mustRegister(v, "phone", phoneRe)
	mustRegister(v, "emailaddr", emailRe)
	return v
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
}

// Validate checks a form struct. It returns nil or a *ValidationError with
// one message per failed field, in field order.
func Validate(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	if m, ok := messages[fe.Namespace()][fe.Tag()]; ok {
		return m
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
