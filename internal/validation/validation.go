// Package validation holds the form schemas. Tags use the same "binding" key
// gin reads, so a form struct validates identically on both ends of the wire.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var digitsRegex = regexp.MustCompile(`^[0-9]+$`)

// FieldErrors maps a JSON field path (e.g. "shipmentDetails.email") to the
// message shown under that input.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Messages is implemented by forms that carry their own user-facing texts.
// Keys are "field.tag" or just "field".
type Messages interface {
	Messages() map[string]string
}

type Validator struct {
	v *validator.Validate
}

// New builds a Validator that names fields by their json tag and knows the
// "digits" rule.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	RegisterRules(v)
	return &Validator{v: v}
}

// RegisterRules adds the custom rules to v. gin's engine gets them too.
func RegisterRules(v *validator.Validate) {
	// MustRegister-style: a failure here is a programming error.
	if err := v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsRegex.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("validation: register digits: %v", err))
	}
}

var std = New()

// Validate checks form with the shared Validator.
func Validate(form any) error {
	return std.Struct(form)
}

// Struct validates form. It returns nil or FieldErrors; any other error
// means form was not a struct.
func (v *Validator) Struct(form any) error {
	err := v.v.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var messages map[string]string
	if m, ok := form.(Messages); ok {
		messages = m.Messages()
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = messageFor(messages, field, fe)
	}
	return out
}

// fieldPath drops the leading struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func messageFor(messages map[string]string, field string, fe validator.FieldError) string {
	if msg, ok := messages[field+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[field]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fe.Field() + " must be a positive number"
	case "eqfield":
		return "Passwords must match"
	case "digits":
		return fe.Field() + " must contain only numbers"
	}
	return fe.Field() + " is invalid"
}
