// ABOUTME: Error types returned by the PlanVenture API client
// ABOUTME: Sentinels allow callers to branch with errors.Is

package api

import (
	"errors"
	"fmt"
)

// ErrUnauthorized indicates the server rejected the request's credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound indicates the resource does not exist or belongs to another
// user. The API deliberately does not distinguish the two cases.
var ErrNotFound = errors.New("not found")

// Error is a non-2xx response from the backend carrying the server's
// error message verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// Unwrap maps well-known statuses onto sentinels so errors.Is works.
func (e *Error) Unwrap() error {
	switch e.Status {
	case 401:
		return ErrUnauthorized
	case 404:
		return ErrNotFound
	}
	return nil
}
