// Package validation holds the credential validation rules for the
// register and login flows. Every check appends its own message so a
// single 400 response can list all violated rules at once.
package validation

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

const (
	usernameMin = 3
	usernameMax = 30
	passwordMin = 8
)

var usernameRE = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// NormalizeEmail trims and lowercases an email address. Applied before
// any validation or lookup so stored emails are canonical.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegister checks username, email and password for the
// registration flow. Returns every violated rule, not just the first.
func ValidateRegister(username, email, password string) []string {
	var msgs []string

	username = strings.TrimSpace(username)
	if n := len([]rune(username)); n < usernameMin || n > usernameMax {
		msgs = append(msgs, "Username must be between 3 and 30 characters")
	}
	if username != "" && !usernameRE.MatchString(username) {
		msgs = append(msgs, "Username can only contain letters, numbers, and underscores")
	}

	if !validEmail(NormalizeEmail(email)) {
		msgs = append(msgs, "Must be a valid email address")
	}

	if len([]rune(password)) < passwordMin {
		msgs = append(msgs, "Password must be at least 8 characters long")
	}
	if !hasUpperLowerDigit(password) {
		msgs = append(msgs, "Password must contain at least one uppercase letter, one lowercase letter, and one number")
	}

	return msgs
}

// ValidateLogin checks email format and password presence only; there
// is no strength re-check at login.
func ValidateLogin(email, password string) []string {
	var msgs []string
	if !validEmail(NormalizeEmail(email)) {
		msgs = append(msgs, "Must be a valid email address")
	}
	if password == "" {
		msgs = append(msgs, "Password is required")
	}
	return msgs
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// Reject the "Name <addr>" form; only the bare address is accepted.
	return addr.Address == email
}

func hasUpperLowerDigit(s string) bool {
	var hasU, hasL, hasD bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasU = true
		case unicode.IsLower(r):
			hasL = true
		case unicode.IsDigit(r):
			hasD = true
		}
	}
	return hasU && hasL && hasD
}
