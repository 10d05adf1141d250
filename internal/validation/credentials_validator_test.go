package validation

import (
	"testing"
)

func TestCredentialsValidator_ValidateEmail(t *testing.T) {
	validator := NewCredentialsValidator()

	tests := []struct {
		name        string
		input       string
		expectError bool
		errorType   ValidationErrorType
	}{
		{"Valid email", "ada@example.com", false, ""},
		{"Valid email with subdomain", "ada@mail.example.com", false, ""},
		{"Empty email", "", true, ErrorTypeRequired},
		{"Whitespace only", "   ", true, ErrorTypeRequired},
		{"Missing at sign", "ada.example.com", true, ErrorTypeInvalidFormat},
		{"Missing domain dot", "ada@example", true, ErrorTypeInvalidFormat},
		{"Contains spaces", "ada lovelace@example.com", true, ErrorTypeInvalidFormat},
		{"Trimmed before checking", "  ada@example.com  ", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateEmail(tt.input)

			if tt.expectError {
				if err == nil {
					t.Errorf("ValidateEmail(%q) expected error but got nil", tt.input)
					return
				}

				validationErr, ok := err.(*ValidationError)
				if !ok {
					t.Errorf("ValidateEmail(%q) expected ValidationError but got %T", tt.input, err)
					return
				}

				if validationErr.Errors[0].Type != tt.errorType {
					t.Errorf("ValidateEmail(%q) expected error type %v but got %v", tt.input, tt.errorType, validationErr.Errors[0].Type)
				}
			} else {
				if err != nil {
					t.Errorf("ValidateEmail(%q) expected no error but got %v", tt.input, err)
				}
			}
		})
	}
}

func TestCredentialsValidator_ValidatePassword(t *testing.T) {
	validator := NewCredentialsValidator()

	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{"Valid password", "secret1", false},
		{"Minimum length password", "secret", false},
		{"Too short password", "secr", true},
		{"Empty password", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidatePassword(tt.input)

			if tt.expectError && err == nil {
				t.Errorf("ValidatePassword(%q) expected error but got nil", tt.input)
			} else if !tt.expectError && err != nil {
				t.Errorf("ValidatePassword(%q) expected no error but got %v", tt.input, err)
			}
		})
	}
}

func TestCredentialsValidator_ValidateLogin(t *testing.T) {
	validator := NewCredentialsValidator()

	tests := []struct {
		name       string
		email      string
		password   string
		errorCount int
	}{
		{"Valid credentials", "ada@example.com", "secret1", 0},
		{"Bad email only", "ada", "secret1", 1},
		{"Bad password only", "ada@example.com", "abc", 1},
		{"Both invalid", "", "", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateLogin(tt.email, tt.password)

			if tt.errorCount == 0 {
				if err != nil {
					t.Errorf("ValidateLogin expected no error but got %v", err)
				}
				return
			}

			validationErr, ok := err.(*ValidationError)
			if !ok {
				t.Errorf("ValidateLogin expected ValidationError but got %T", err)
				return
			}
			if len(validationErr.Errors) != tt.errorCount {
				t.Errorf("ValidateLogin expected %d errors but got %d", tt.errorCount, len(validationErr.Errors))
			}
		})
	}
}

func TestCredentialsValidator_ValidateSignup(t *testing.T) {
	validator := NewCredentialsValidator()

	tests := []struct {
		name       string
		userName   string
		email      string
		password   string
		errorCount int
	}{
		{"Valid signup", "Ada", "ada@example.com", "secret1", 0},
		{"Missing name", "", "ada@example.com", "secret1", 1},
		{"Everything missing", "", "", "", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateSignup(tt.userName, tt.email, tt.password)

			if tt.errorCount == 0 {
				if err != nil {
					t.Errorf("ValidateSignup expected no error but got %v", err)
				}
				return
			}

			validationErr, ok := err.(*ValidationError)
			if !ok {
				t.Errorf("ValidateSignup expected ValidationError but got %T", err)
				return
			}
			if len(validationErr.Errors) != tt.errorCount {
				t.Errorf("ValidateSignup expected %d errors but got %d", tt.errorCount, len(validationErr.Errors))
			}
		})
	}
}
