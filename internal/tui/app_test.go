// ABOUTME: Tests for the root TUI model's navigation and session handling
// ABOUTME: Drives Update with messages directly instead of a live terminal

package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/planventure/planventure-cli/internal/api"
	"github.com/planventure/planventure-cli/internal/credstore"
	"github.com/planventure/planventure-cli/internal/session"
	"github.com/planventure/planventure-cli/internal/tui/authform"
	"github.com/planventure/planventure-cli/internal/tui/triplist"
)

// newTestApp wires an app against a stub backend and an isolated
// credential store.
func newTestApp(t *testing.T, handler http.Handler) (*App, *session.Manager) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := api.New(server.URL)
	store := credstore.New(t.TempDir())
	manager := session.NewManager(client, store)
	client.SetCredentialSource(manager)

	return New(client, manager), manager
}

// runCmd executes a command synchronously and returns the message it
// produces, flattening batches.
func runCmd(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(t, c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func seedSession(t *testing.T, manager *session.Manager) {
	t.Helper()
	// The store behind the manager is empty, so Initialize lands in the
	// unauthenticated state without touching the network.
	if err := manager.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
}

func emptyTripsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			json.NewEncoder(w).Encode(api.AuthResult{
				User:   api.UserProfile{ID: 1, EmailAddress: "a@b.co", IsActive: true},
				Tokens: api.Tokens{AccessToken: "access-token", RefreshToken: "refresh-token"},
			})
			return
		}
		json.NewEncoder(w).Encode(api.TripPage{Pagination: api.Pagination{Page: 1, Pages: 1}})
	})
}

func TestApp_PendingBeforeInitialize(t *testing.T) {
	app, _ := newTestApp(t, emptyTripsHandler())

	// Navigation before initialize must park, not redirect.
	if cmd := app.navigate(route{screen: ScreenTripList}); cmd != nil {
		t.Fatal("expected no command while session restore is pending")
	}
	if app.screen == ScreenLogin {
		t.Fatal("must not redirect to login before initialize completes")
	}
}

func TestApp_UnauthenticatedStartRedirectsToLogin(t *testing.T) {
	app, manager := newTestApp(t, emptyTripsHandler())
	seedSession(t, manager)

	model, _ := app.Update(initializedMsg{})
	app = model.(*App)

	if app.screen != ScreenLogin {
		t.Fatalf("expected login screen, got %v", app.screen)
	}
	if app.pending == nil || app.pending.screen != ScreenTripList {
		t.Fatal("expected the trip list to be remembered as the pending route")
	}
}

func TestApp_LoginSuccessLandsOnPendingRoute(t *testing.T) {
	app, manager := newTestApp(t, emptyTripsHandler())
	seedSession(t, manager)

	model, _ := app.Update(initializedMsg{})
	app = model.(*App)
	app.pending = &route{screen: ScreenTripDetail, tripID: 42}

	// Complete a real login so the guard will allow the restored route,
	// then deliver the result the submit command would have produced.
	forceAuthenticated(t, manager)
	model, cmd := app.Update(authResultMsg{})
	app = model.(*App)

	if app.screen != ScreenTripDetail || app.current.tripID != 42 {
		t.Fatalf("expected the pending detail route to be restored, got screen %v trip %d",
			app.screen, app.current.tripID)
	}
	if app.pending != nil {
		t.Fatal("pending route must be consumed on login")
	}
	if cmd == nil {
		t.Fatal("expected a trip load command for the restored route")
	}
}

func TestApp_LoginFailureStaysOnForm(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
	})
	app, manager := newTestApp(t, handler)
	seedSession(t, manager)

	model, _ := app.Update(initializedMsg{})
	app = model.(*App)

	cmd := app.submitAuth(authform.SubmitMsg{Mode: authform.ModeLogin, Email: "a@b.co", Password: "wrongpass1"})
	msgs := runCmd(t, cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one auth result message, got %d", len(msgs))
	}
	result, ok := msgs[0].(authResultMsg)
	if !ok || result.err == nil {
		t.Fatalf("expected a failed auth result, got %#v", msgs[0])
	}

	model, _ = app.Update(result)
	app = model.(*App)
	if app.screen != ScreenLogin {
		t.Fatalf("expected to stay on the login screen, got %v", app.screen)
	}
}

func TestApp_ForcedLogoutRevokesProtectedScreen(t *testing.T) {
	app, manager := newTestApp(t, emptyTripsHandler())
	seedSession(t, manager)

	// Pretend we are on the detail screen of trip 7.
	app.screen = ScreenTripDetail
	app.current = route{screen: ScreenTripDetail, tripID: 7}

	model, _ := app.Update(sessionChangedMsg{state: session.StateUnauthenticated})
	app = model.(*App)

	if app.screen != ScreenLogin {
		t.Fatalf("expected redirect to login, got %v", app.screen)
	}
	if app.pending == nil || app.pending.tripID != 7 {
		t.Fatal("expected the revoked route to be preserved for after re-login")
	}
	if app.curTrip != nil || app.detail != nil {
		t.Fatal("protected content must be dropped on forced logout")
	}
}

func TestApp_SessionChangeOnPublicScreenKeepsForm(t *testing.T) {
	app, manager := newTestApp(t, emptyTripsHandler())
	seedSession(t, manager)

	model, _ := app.Update(initializedMsg{})
	app = model.(*App)
	before := app.auth

	// A transition to Authenticating arrives mid-login; the form that is
	// showing the busy indicator must not be rebuilt.
	model, _ = app.Update(sessionChangedMsg{state: session.StateAuthenticating})
	app = model.(*App)

	if app.screen != ScreenLogin || app.auth != before {
		t.Fatal("session transitions on public screens must not reset the form")
	}
}

func TestApp_TripListMessagesNavigate(t *testing.T) {
	app, manager := newTestApp(t, emptyTripsHandler())
	seedSession(t, manager)
	forceAuthenticated(t, manager)

	model, _ := app.Update(initializedMsg{})
	app = model.(*App)
	if app.screen != ScreenTripList {
		t.Fatalf("expected trip list for an authenticated start, got %v", app.screen)
	}

	model, cmd := app.Update(triplist.SelectedMsg{TripID: 3})
	app = model.(*App)
	if app.screen != ScreenTripDetail || app.current.tripID != 3 {
		t.Fatalf("expected detail navigation, got screen %v trip %d", app.screen, app.current.tripID)
	}
	if cmd == nil {
		t.Fatal("expected a load command for the selected trip")
	}

	model, _ = app.Update(triplist.CreateMsg{})
	app = model.(*App)
	if app.screen != ScreenTripCreate || app.form == nil {
		t.Fatal("expected the create form to open")
	}
}

// forceAuthenticated logs the manager in against the backend stub.
func forceAuthenticated(t *testing.T, manager *session.Manager) {
	t.Helper()
	if _, err := manager.Login(context.Background(), "a@b.co", "password1"); err != nil {
		t.Fatalf("logging in: %v", err)
	}
}
