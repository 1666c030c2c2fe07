// ABOUTME: Error taxonomy for authentication attempts
// ABOUTME: Callers branch on Kind to decide whether retry makes sense

package session

import "errors"

// ErrorKind classifies an authentication failure.
type ErrorKind int

const (
	// KindValidation means the input was rejected locally before any
	// network call was made.
	KindValidation ErrorKind = iota
	// KindInvalidCredentials means the server rejected the credentials.
	KindInvalidCredentials
	// KindNetwork means the collaborator could not be reached. Retrying
	// may succeed.
	KindNetwork
)

// AuthError is a failed login or register attempt. The message is
// surfaced to the user verbatim and the attempt is never retried
// automatically.
type AuthError struct {
	Kind    ErrorKind
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// ErrAuthInProgress is returned when a login or register is attempted
// while another one is still authenticating. Serializing the attempts
// prevents a slower response from overwriting a newer state.
var ErrAuthInProgress = errors.New("another authentication attempt is in progress")

// ErrSuperseded is returned when a login completed after the session was
// logged out mid-flight. The stale result is discarded.
var ErrSuperseded = errors.New("authentication superseded by logout")

// validationError builds an AuthError for locally rejected input.
func validationError(msg string) *AuthError {
	return &AuthError{Kind: KindValidation, Message: msg}
}
