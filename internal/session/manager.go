// ABOUTME: Session manager owning the authentication state machine
// ABOUTME: Single writer of the credential store; notifies subscribers on transitions

package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/planventure/planventure-cli/internal/api"
	"github.com/planventure/planventure-cli/internal/credstore"
)

// State is the client's current belief about authentication, independent
// of server-side validity.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
)

// String returns the string representation of a State.
func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Manager is the single source of truth for authentication state. All
// credential reads and writes are funneled through it; no other
// component touches the store or holds a token.
type Manager struct {
	client *api.Client
	store  *credstore.Store

	mu          sync.Mutex
	state       State
	cred        *credstore.Credential
	profile     *api.UserProfile
	initialized bool

	nextSubID int
	subs      map[int]func(State)
}

// NewManager creates a session manager backed by the given API client
// and credential store. Wire the manager back into the client with
// SetCredentialSource and SetUnauthorizedHandler after construction.
func NewManager(client *api.Client, store *credstore.Store) *Manager {
	return &Manager{
		client: client,
		store:  store,
		state:  StateUnauthenticated,
		subs:   make(map[int]func(State)),
	}
}

// Initialize restores the session from the credential store. A valid
// persisted pair resumes the session; anything partial or unreadable is
// resolved to unauthenticated and the store is cleared. Runs once; later
// calls are no-ops.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		return nil
	}
	m.initialized = true

	cred, profile, err := m.store.Load()
	switch {
	case err == nil:
		m.cred = cred
		m.profile = profile
		m.state = StateAuthenticated
	case errors.Is(err, credstore.ErrNotFound):
		m.state = StateUnauthenticated
	case errors.Is(err, credstore.ErrCorrupt):
		m.state = StateUnauthenticated
		m.store.Clear()
	default:
		m.state = StateUnauthenticated
		m.mu.Unlock()
		m.notify(StateUnauthenticated)
		return err
	}

	state := m.state
	m.mu.Unlock()
	m.notify(state)
	return nil
}

// Initialized reports whether Initialize has completed. Until then the
// route guard treats the session as pending and neither grants nor
// denies navigation.
func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Current returns the session state.
func (m *Manager) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Profile returns the cached profile of the authenticated user, or nil.
// Display only; never used for authorization decisions.
func (m *Manager) Profile() *api.UserProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profile
}

// AccessToken implements api.CredentialSource. Empty once the session is
// unauthenticated: no credential outlives the state that owns it.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cred == nil {
		return ""
	}
	return m.cred.AccessToken
}

// Subscribe registers a callback invoked on every state transition. The
// callback runs outside the manager's lock. Returns an unsubscribe func.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// notify delivers a transition to all subscribers.
func (m *Manager) notify(state State) {
	m.mu.Lock()
	fns := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}

// Login authenticates against the backend. Input is validated locally
// first; a validation failure never reaches the network. On success the
// credential and profile are persisted together and the session becomes
// authenticated.
func (m *Manager) Login(ctx context.Context, email, password string) (*api.UserProfile, error) {
	email = normalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, validationError("Email and password are required")
	}

	if err := m.begin(); err != nil {
		return nil, err
	}
	result, err := m.client.Login(ctx, email, password)
	return m.finish(result, err)
}

// Register creates an account. Success is an implicit login: no separate
// login round-trip is required. Password rules mirror the backend so a
// hopeless request never leaves the client.
func (m *Manager) Register(ctx context.Context, email, password string) (*api.UserProfile, error) {
	email = normalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	if err := m.begin(); err != nil {
		return nil, err
	}
	result, err := m.client.Register(ctx, email, password)
	return m.finish(result, err)
}

// Logout clears the session unconditionally. Idempotent, callable from
// any state. Also registered as the API client's unauthorized handler,
// so a 401 mid-session invalidates the session before the failing call
// returns to its caller.
func (m *Manager) Logout() {
	m.mu.Lock()
	changed := m.state != StateUnauthenticated
	m.state = StateUnauthenticated
	m.cred = nil
	m.profile = nil
	m.store.Clear()
	m.mu.Unlock()

	if changed {
		m.notify(StateUnauthenticated)
	}
}

// begin moves the session into authenticating, rejecting a concurrent
// attempt so a slower response can never overwrite a newer transition.
func (m *Manager) begin() error {
	m.mu.Lock()
	if m.state == StateAuthenticating {
		m.mu.Unlock()
		return ErrAuthInProgress
	}
	m.state = StateAuthenticating
	m.mu.Unlock()

	m.notify(StateAuthenticating)
	return nil
}

// finish resolves an authentication attempt. A logout that landed while
// the call was in flight wins: the stale result is discarded.
func (m *Manager) finish(result *api.AuthResult, callErr error) (*api.UserProfile, error) {
	m.mu.Lock()
	if m.state != StateAuthenticating {
		m.mu.Unlock()
		return nil, ErrSuperseded
	}

	if callErr != nil {
		m.state = StateUnauthenticated
		m.mu.Unlock()
		m.notify(StateUnauthenticated)
		return nil, mapAuthError(callErr)
	}

	cred := credstore.Credential{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
	}
	if err := m.store.Save(cred, result.User); err != nil {
		m.state = StateUnauthenticated
		m.cred = nil
		m.profile = nil
		m.mu.Unlock()
		m.notify(StateUnauthenticated)
		return nil, err
	}

	m.cred = &cred
	profile := result.User
	m.profile = &profile
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.notify(StateAuthenticated)
	return &profile, nil
}

// mapAuthError classifies a failed collaborator call. A 401 is a server
// rejection; other backend errors propagate verbatim; everything else is
// a network failure and may be retried by the user.
func mapAuthError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if errors.Is(apiErr, api.ErrUnauthorized) {
			return &AuthError{Kind: KindInvalidCredentials, Message: apiErr.Error()}
		}
		return err
	}
	return &AuthError{Kind: KindNetwork, Message: err.Error()}
}

// normalizeEmail applies the backend's canonical form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
