// ABOUTME: Local validation of auth input before any network call
// ABOUTME: Mirrors the backend's email and password rules

package session

import "regexp"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var (
	hasLetter = regexp.MustCompile(`[A-Za-z]`)
	hasDigit  = regexp.MustCompile(`\d`)
)

// ValidateEmail checks the email format. Returns an AuthError with
// KindValidation on failure.
func ValidateEmail(email string) error {
	if email == "" {
		return validationError("Email and password are required")
	}
	if !emailPattern.MatchString(email) {
		return validationError("Invalid email format")
	}
	return nil
}

// ValidatePassword checks the backend's password requirements so
// hopeless requests never leave the client.
func ValidatePassword(password string) error {
	if password == "" {
		return validationError("Email and password are required")
	}
	if len(password) < 8 {
		return validationError("Password must be at least 8 characters long")
	}
	if !hasLetter.MatchString(password) {
		return validationError("Password must contain at least one letter")
	}
	if !hasDigit.MatchString(password) {
		return validationError("Password must contain at least one number")
	}
	return nil
}
