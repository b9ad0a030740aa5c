// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	// username: letters, digits, underscores and hyphens; no leading or
	// trailing underscore/hyphen
	_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		u := fl.Field().String()
		if !regexp.MustCompile(`^[a-zA-Z0-9_-]+$`).MatchString(u) {
			return false
		}
		return u[0] != '_' && u[0] != '-' && u[len(u)-1] != '_' && u[len(u)-1] != '-'
	})
}

// Struct validates a tagged request struct and returns a human-readable
// error for the first failing field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("%s is required", field)
		case "min":
			return fmt.Errorf("%s must be at least %s characters long", field, fe.Param())
		case "max":
			return fmt.Errorf("%s must not exceed %s characters", field, fe.Param())
		case "email":
			return fmt.Errorf("invalid email format")
		case "username":
			return fmt.Errorf("username can only contain letters, numbers, underscores, and hyphens, and cannot start or end with underscore or hyphen")
		case "oneof":
			return fmt.Errorf("%s must be one of: %s", field, fe.Param())
		default:
			return fmt.Errorf("%s is invalid", field)
		}
	}
	return err
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return fmt.Errorf("password must be at least 12 characters long")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	hasUpper := false
	hasLower := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}

	if !regexp.MustCompile(`[0-9]`).MatchString(password) {
		return fmt.Errorf("password must contain at least one digit")
	}

	if !regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`).MatchString(password) {
		return fmt.Errorf("password must contain at least one special character (!@#$%%^&*)")
	}

	return nil
}
