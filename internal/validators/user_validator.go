package validators

import (
	"regexp"
	"strings"
	"unicode"

	"spacia-portal/internal/models"
)

type UserValidator interface {
	ValidateLogin(creds models.Credentials) map[string]string
	ValidateRegister(form models.RegistrationForm) map[string]string
}

type userValidator struct{}

func NewUserValidator() UserValidator {
	return &userValidator{}
}

func (v *userValidator) ValidateLogin(creds models.Credentials) map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(creds.Username) == "" {
		fields["username"] = "Username is required"
	}
	if creds.Password == "" {
		fields["password"] = "Password is required"
	} else if len(creds.Password) < 6 {
		fields["password"] = "Password must be at least 6 characters"
	}
	return fields
}

func (v *userValidator) ValidateRegister(form models.RegistrationForm) map[string]string {
	fields := map[string]string{}

	if strings.TrimSpace(form.Firstname) == "" {
		fields["firstname"] = "First name is required"
	}
	if strings.TrimSpace(form.Lastname) == "" {
		fields["lastname"] = "Last name is required"
	}

	if strings.TrimSpace(form.Username) == "" {
		fields["username"] = "Username is required"
	} else if len(form.Username) < 3 {
		fields["username"] = "Username must be at least 3 characters"
	}

	if form.Email == "" {
		fields["email"] = "Email is required"
	} else if !isValidEmail(form.Email) {
		fields["email"] = "Please enter a valid email address"
	}

	if form.Password == "" {
		fields["password"] = "Password is required"
	} else if len(form.Password) < 8 {
		fields["password"] = "Password must be at least 8 characters"
	} else if !hasMixedCaseAndDigit(form.Password) {
		fields["password"] = "Password must contain at least one uppercase letter, one lowercase letter, and one number"
	}

	if form.Password != form.ConfirmPassword {
		fields["confirmPassword"] = "Passwords do not match"
	}

	return fields
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func hasMixedCaseAndDigit(password string) bool {
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}
