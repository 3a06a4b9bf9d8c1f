package service

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"financeserver/internal/normalize"
)

const (
	minNameLen     = 3
	minPasswordLen = 8
	// bcrypt only considers the first 72 bytes of its input.
	maxPasswordLen = 72
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationError lists every violated rule, so API consumers can build
// form-level error displays from a single response.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields))
	for _, f := range e.Fields {
		errs = append(errs, f)
	}
	return errs
}

type registration struct {
	email    string
	name     string
	password string
}

// validateRegistration evaluates every rule independently and reports all
// violations together, not just the first one.
func validateRegistration(email, name, password string) (registration, error) {
	reg := registration{
		email:    normalize.Email(email),
		name:     normalize.Name(name),
		password: password,
	}

	var fields []FieldError
	if addr, err := mail.ParseAddress(reg.email); err != nil || addr.Address != reg.email {
		fields = append(fields, FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if utf8.RuneCountInString(reg.name) < minNameLen {
		fields = append(fields, FieldError{Field: "name", Message: fmt.Sprintf("must be at least %d characters", minNameLen)})
	}
	switch {
	case len(password) < minPasswordLen:
		fields = append(fields, FieldError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", minPasswordLen)})
	case len(password) > maxPasswordLen:
		fields = append(fields, FieldError{Field: "password", Message: fmt.Sprintf("must be at most %d bytes", maxPasswordLen)})
	}
	if len(fields) > 0 {
		return registration{}, &ValidationError{Fields: fields}
	}
	return reg, nil
}
