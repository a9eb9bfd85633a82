// Package validation gates resolver input before any persistence runs.
// Rules are evaluated with the same engine Gin binds request bodies
// with, but invoked directly so every broken rule is collected into one
// violation list instead of failing fast on the first tag.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"blog_backend/internal/apperr"
)

const (
	// passwordRules requires a non-empty password of at least 5 characters.
	passwordRules = "required,min=5"
	// postFieldRules requires non-empty title/content of at least 5 characters.
	postFieldRules = "required,min=5"
)

var validate = validator.New()

// Signup checks registration input and returns every violation found.
// An empty list means the input is valid.
func Signup(email, password string) []apperr.Violation {
	var violations []apperr.Violation
	if err := validate.Var(email, "required,email"); err != nil {
		violations = append(violations, apperr.Violation{Message: "E-mail is invalid"})
	}
	if err := validate.Var(password, passwordRules); err != nil {
		violations = append(violations, apperr.Violation{Message: "Password too short"})
	}
	return violations
}

// Post checks post submission input. Leading and trailing whitespace
// does not count towards the minimum length.
func Post(title, content string) []apperr.Violation {
	var violations []apperr.Violation
	if err := validate.Var(strings.TrimSpace(title), postFieldRules); err != nil {
		violations = append(violations, apperr.Violation{Message: "Title is invalid"})
	}
	if err := validate.Var(strings.TrimSpace(content), postFieldRules); err != nil {
		violations = append(violations, apperr.Violation{Message: "Content is invalid"})
	}
	return violations
}
