package service

import (
	"reflect"
	"strings"
	"testing"
)

func Test_validateRegistration(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		userName   string
		password   string
		wantFields []string
	}{
		{
			name:     "valid",
			email:    "john@example.com",
			userName: "John Doe",
			password: "mypassword123",
		},
		{
			name:       "bad email",
			email:      "not-an-email",
			userName:   "John Doe",
			password:   "mypassword123",
			wantFields: []string{"email"},
		},
		{
			name:       "empty email",
			email:      "",
			userName:   "John Doe",
			password:   "mypassword123",
			wantFields: []string{"email"},
		},
		{
			name:       "short name",
			email:      "john@example.com",
			userName:   "ab",
			password:   "mypassword123",
			wantFields: []string{"name"},
		},
		{
			name:       "short password",
			email:      "john@example.com",
			userName:   "John Doe",
			password:   "short",
			wantFields: []string{"password"},
		},
		{
			name:       "password over bcrypt limit",
			email:      "john@example.com",
			userName:   "John Doe",
			password:   strings.Repeat("a", 80),
			wantFields: []string{"password"},
		},
		{
			name:       "everything wrong",
			email:      "not-an-email",
			userName:   "ab",
			password:   "short",
			wantFields: []string{"email", "name", "password"},
		},
		{
			name:       "whitespace name not padded to minimum",
			email:      "john@example.com",
			userName:   " a b ",
			password:   "mypassword123",
			wantFields: nil,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := validateRegistration(tt.email, tt.userName, tt.password)
			if got := violatedFields(t, err); !reflect.DeepEqual(got, tt.wantFields) {
				t.Errorf("violated fields = %v, want %v", got, tt.wantFields)
			}
		})
	}
}

func Test_validateRegistration_Normalizes(t *testing.T) {
	reg, err := validateRegistration("  John@Example.COM ", "John \t Doe", "mypassword123")
	if err != nil {
		t.Fatalf("validateRegistration() error = %v", err)
	}
	if reg.email != "john@example.com" {
		t.Errorf("email = %q, want %q", reg.email, "john@example.com")
	}
	if reg.name != "John Doe" {
		t.Errorf("name = %q, want %q", reg.name, "John Doe")
	}
}

func Test_validateRegistration_FailureIsStable(t *testing.T) {
	_, first := validateRegistration("not-an-email", "ab", "short")
	_, second := validateRegistration("not-an-email", "ab", "short")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same input produced different error sets: %v vs %v", first, second)
	}
}

func violatedFields(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		return nil
	}
	vErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	fields := make([]string, 0, len(vErr.Fields))
	for _, f := range vErr.Fields {
		fields = append(fields, f.Field)
	}
	return fields
}
