// ABOUTME: Shared test helpers for the cmd package
// ABOUTME: Stubs the backend and isolates the session store per test

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/planventure/planventure-cli/internal/api"
)

// setupEnv points the commands at a stub backend and an isolated config
// directory, undoing both when the test ends.
func setupEnv(t *testing.T, handler http.Handler) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	apiURL = server.URL
	t.Cleanup(func() { apiURL = "" })

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

// signIn runs the login command against the stub backend so later
// commands find a persisted session.
func signIn(t *testing.T) {
	t.Helper()

	loginEmail = "traveler@example.com"
	loginPassword = "password1"
	t.Cleanup(func() { loginEmail, loginPassword = "", "" })

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 0 {
		t.Fatalf("login exit code %d, output: %s", code, buf.String())
	}
}

// authStub responds to /auth/login; everything else is delegated.
func authStub(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			json.NewEncoder(w).Encode(api.AuthResult{
				Message: "Login successful",
				User:    api.UserProfile{ID: 1, EmailAddress: "traveler@example.com", IsActive: true},
				Tokens:  api.Tokens{AccessToken: "access-token", RefreshToken: "refresh-token"},
			})
			return
		}
		next(w, r)
	})
}
