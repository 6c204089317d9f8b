package authflow

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/campusrate/campusrate-go/internal/token"
)

var (
	// Email validation regex (RFC 5322 simplified)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// First/last names: letters only, 3-30 characters
	nameRegex = regexp.MustCompile(`^[A-Za-z]{3,30}$`)
)

const (
	minPasswordLength = 8
	passwordSpecials  = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// FieldErrors maps form field names to validation messages. Validation
// never contacts the server; a non-empty set short-circuits submission.
type FieldErrors map[string]string

// SignUpForm is the client-side registration form.
type SignUpForm struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	Role            token.Role
	InstituteID     string
}

// IsValidEmail checks if an email address is valid.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if len(email) > 254 {
		return false
	}
	return emailRegex.MatchString(email)
}

// SanitizeEmail normalizes an email address.
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsStrongPassword checks the minimum-strength rule: at least 8
// characters including upper case, lower case, a digit, and one special
// character from the fixed set.
func IsStrongPassword(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && lower && digit && special
}

// IsValidName checks a first/last name field.
func IsValidName(name string) bool {
	return nameRegex.MatchString(name)
}

// ValidateSignIn validates the sign-in form fields.
func ValidateSignIn(email, password string) FieldErrors {
	errs := make(FieldErrors)

	if email == "" {
		errs["email"] = "Email is required"
	} else if !IsValidEmail(email) {
		errs["email"] = "Email format is invalid"
	}

	if password == "" {
		errs["password"] = "Password is required"
	} else if !IsStrongPassword(password) {
		errs["password"] = fmt.Sprintf("Password must be at least %d characters with upper case, lower case, a digit and a special character", minPasswordLength)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateSignUp validates the registration form fields.
func ValidateSignUp(form SignUpForm) FieldErrors {
	errs := make(FieldErrors)

	if !IsValidName(form.FirstName) {
		errs["firstName"] = "First name must be 3-30 letters"
	}
	if !IsValidName(form.LastName) {
		errs["lastName"] = "Last name must be 3-30 letters"
	}

	if form.Email == "" {
		errs["email"] = "Email is required"
	} else if !IsValidEmail(form.Email) {
		errs["email"] = "Email format is invalid"
	}

	if form.Password == "" {
		errs["password"] = "Password is required"
	} else if !IsStrongPassword(form.Password) {
		errs["password"] = fmt.Sprintf("Password must be at least %d characters with upper case, lower case, a digit and a special character", minPasswordLength)
	}

	if form.ConfirmPassword != form.Password {
		errs["confirmPassword"] = "Passwords do not match"
	}

	if form.Role == token.RoleProfessor && form.InstituteID == "" {
		errs["instituteId"] = "Institution is required for professor accounts"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
