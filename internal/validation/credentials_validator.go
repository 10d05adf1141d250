package validation

import (
	"regexp"
	"strings"
)

const passwordMinLength = 6

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CredentialsValidator validates sign-in and sign-up input before any
// network call
type CredentialsValidator struct{}

// NewCredentialsValidator creates a new credentials validator
func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{}
}

// ValidateEmail checks that an email address is present and well-formed
func (cv *CredentialsValidator) ValidateEmail(email string) error {
	validationError := NewValidationError()

	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		validationError.AddRequiredError("email")
		return validationError
	}
	if !emailRegex.MatchString(trimmed) {
		validationError.AddInvalidFormatError("email", trimmed, "name@example.com")
		return validationError
	}
	return nil
}

// ValidatePassword checks the minimum password length
func (cv *CredentialsValidator) ValidatePassword(password string) error {
	validationError := NewValidationError()

	if password == "" {
		validationError.AddRequiredError("password")
		return validationError
	}
	if len(password) < passwordMinLength {
		validationError.AddInvalidLengthError("password", nil, passwordMinLength, 128)
		return validationError
	}
	return nil
}

// ValidateLogin validates the sign-in form fields
func (cv *CredentialsValidator) ValidateLogin(email, password string) error {
	validationError := NewValidationError()

	if err := cv.ValidateEmail(email); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, ve.Errors...)
		}
	}
	if err := cv.ValidatePassword(password); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, ve.Errors...)
		}
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateSignup validates the sign-up form fields
func (cv *CredentialsValidator) ValidateSignup(name, email, password string) error {
	validationError := NewValidationError()

	if strings.TrimSpace(name) == "" {
		validationError.AddRequiredError("name")
	}
	if err := cv.ValidateLogin(email, password); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			validationError.Errors = append(validationError.Errors, ve.Errors...)
		}
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
