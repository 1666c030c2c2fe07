// ABOUTME: Tests for the login, logout, and whoami commands
// ABOUTME: Verifies session persistence across command runs and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/planventure/planventure-cli/internal/api"
)

func TestLoginCommand_Success(t *testing.T) {
	setupEnv(t, authStub(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	loginEmail = "Traveler@Example.com"
	loginPassword = "password1"
	defer func() { loginEmail, loginPassword = "", "" }()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("traveler@example.com")) {
		t.Errorf("expected the signed-in email in output, got %q", buf.String())
	}
}

func TestLoginCommand_RejectedCredentials(t *testing.T) {
	setupEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
	}))

	loginEmail = "traveler@example.com"
	loginPassword = "wrongpass1"
	defer func() { loginEmail, loginPassword = "", "" }()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Invalid email or password")) {
		t.Errorf("expected the backend's message verbatim, got %q", buf.String())
	}
}

func TestLoginCommand_LocalValidationSkipsNetwork(t *testing.T) {
	called := false
	setupEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	loginEmail = "not-an-email"
	loginPassword = "password1"
	defer func() { loginEmail, loginPassword = "", "" }()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if called {
		t.Error("invalid input must not produce a network call")
	}
}

func TestLoginCommand_ConnectionError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	apiURL = "http://127.0.0.1:1"
	defer func() { apiURL = "" }()

	loginEmail = "traveler@example.com"
	loginPassword = "password1"
	defer func() { loginEmail, loginPassword = "", "" }()

	var buf bytes.Buffer
	if code := runLogin(context.Background(), &buf); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Error:")) {
		t.Error("expected an error message in output")
	}
}

func TestWhoami_UsesPersistedSession(t *testing.T) {
	setupEnv(t, authStub(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	signIn(t)

	// A fresh command run restores the session from disk.
	var buf bytes.Buffer
	if code := runWhoami(&buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("traveler@example.com")) {
		t.Errorf("expected the stored email, got %q", buf.String())
	}
}

func TestWhoami_NotSignedIn(t *testing.T) {
	setupEnv(t, http.NotFoundHandler())

	var buf bytes.Buffer
	if code := runWhoami(&buf); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !bytes.Contains(buf.Bytes(), []byte("not signed in")) {
		t.Errorf("expected a sign-in hint, got %q", buf.String())
	}
}

func TestLogout_ForgetsSession(t *testing.T) {
	setupEnv(t, authStub(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	signIn(t)

	var buf bytes.Buffer
	if code := runLogout(&buf); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	buf.Reset()
	if code := runWhoami(&buf); code != 1 {
		t.Fatalf("expected whoami to fail after logout, got exit code %d", code)
	}
}

func TestLogout_IdempotentWithoutSession(t *testing.T) {
	setupEnv(t, http.NotFoundHandler())

	var buf bytes.Buffer
	if code := runLogout(&buf); code != 0 {
		t.Fatalf("logout without a session must succeed, got exit code %d", code)
	}
}

func TestFormatProfileJSON(t *testing.T) {
	profile := &api.UserProfile{ID: 7, EmailAddress: "traveler@example.com", IsActive: true}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(formatProfileJSON(profile)), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["email_address"] != "traveler@example.com" {
		t.Errorf("expected the wire field names, got %v", parsed)
	}
}
