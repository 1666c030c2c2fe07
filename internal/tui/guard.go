// ABOUTME: Route guard gating navigation to protected screens
// ABOUTME: Decides pending/redirect/allow from session state alone

package tui

import "github.com/planventure/planventure-cli/internal/session"

// Screen identifies a TUI screen.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenTripList
	ScreenTripDetail
	ScreenTripCreate
	ScreenTripEdit
)

// route is a navigation target: a screen plus the trip it addresses,
// when the screen needs one. Captured on redirect so a deep link
// survives the login detour.
type route struct {
	screen Screen
	tripID int
}

// Decision is the guard's verdict for a navigation attempt.
type Decision int

const (
	// DecisionPending: session restoration has not finished. Render a
	// neutral loading state; never redirect, never render protected
	// content.
	DecisionPending Decision = iota
	// DecisionRedirectLogin: the target is protected and the session is
	// unauthenticated.
	DecisionRedirectLogin
	// DecisionAllow: the target may render.
	DecisionAllow
)

// protected reports whether a screen requires an authenticated session.
func protected(s Screen) bool {
	switch s {
	case ScreenLogin, ScreenRegister:
		return false
	default:
		return true
	}
}

// evaluateGuard gates a navigation attempt. It is re-run on every
// navigation and on every session transition, so a logout elsewhere in
// the app revokes an already-rendered protected screen immediately.
func evaluateGuard(initialized bool, state session.State, target Screen) Decision {
	if !protected(target) {
		return DecisionAllow
	}
	if !initialized || state == session.StateAuthenticating {
		return DecisionPending
	}
	if state != session.StateAuthenticated {
		return DecisionRedirectLogin
	}
	return DecisionAllow
}
