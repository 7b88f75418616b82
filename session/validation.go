package session

import (
	"fmt"
	"strings"
	"unicode"

	errs "github.com/bandungjournal/bandung-client/internal/errors"
)

// Client-side input checks. These only catch obviously malformed input
// before it hits the network; the backend remains the authority.

const minPasswordLength = 8

// ValidateEmail checks the email has a plausible address shape.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", errs.ErrInvalidEmail)
	}
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return fmt.Errorf("%w: %q", errs.ErrInvalidEmail, email)
	}
	domain := email[at+1:]
	if domain == "" || !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return fmt.Errorf("%w: %q", errs.ErrInvalidEmail, email)
	}
	return nil
}

// ValidatePassword checks a credential being submitted for an existing
// account. Only presence is required; strength rules apply at creation.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", errs.ErrInvalidPassword)
	}
	return nil
}

// ValidateNewPassword checks a password being set on an account.
func ValidateNewPassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", errs.ErrInvalidPassword, minPasswordLength)
	}
	return nil
}

// ValidateCode checks a one-time code: exactly six digits.
func ValidateCode(code string) error {
	if len(code) != 6 {
		return fmt.Errorf("%w: code must be 6 digits", errs.ErrInvalidCode)
	}
	for _, r := range code {
		if !unicode.IsDigit(r) {
			return fmt.Errorf("%w: code must be 6 digits", errs.ErrInvalidCode)
		}
	}
	return nil
}
