// ABOUTME: File-backed store for the session credential and cached profile
// ABOUTME: Persists credentials.json in the XDG config directory

package credstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/planventure/planventure-cli/internal/api"
)

// ErrNotFound indicates no credentials have been persisted.
var ErrNotFound = errors.New("no stored credentials")

// ErrCorrupt indicates the stored state is partial or unreadable. The
// session manager resolves this to unauthenticated and clears the file.
var ErrCorrupt = errors.New("stored credentials are corrupt")

// Credential is the access/refresh token pair identifying a session.
type Credential struct {
	AccessToken  string
	RefreshToken string
}

// Store persists the credential and cached user profile. All three keys
// are written together and removed together; the session manager is the
// only writer.
type Store struct {
	configDir string
}

// fileData is the on-disk shape of credentials.json.
type fileData struct {
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
	UserProfile  *api.UserProfile `json:"userProfile"`
}

// New creates a store rooted at the given config directory.
func New(configDir string) *Store {
	return &Store{configDir: configDir}
}

// DefaultConfigDir returns the default config directory, honoring
// XDG_CONFIG_HOME when set.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "planventure")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "planventure")
}

// credentialsFile returns the path to credentials.json.
func (s *Store) credentialsFile() string {
	return filepath.Join(s.configDir, "credentials.json")
}

// Load reads the persisted credential and profile. Partial state (any of
// the three keys missing) is reported as ErrCorrupt, never as a usable
// session.
func (s *Store) Load() (*Credential, *api.UserProfile, error) {
	data, err := os.ReadFile(s.credentialsFile())
	if os.IsNotExist(err) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var fd fileData
	if err := json.Unmarshal(data, &fd); err != nil {
		return nil, nil, ErrCorrupt
	}
	if fd.AccessToken == "" || fd.RefreshToken == "" || fd.UserProfile == nil {
		return nil, nil, ErrCorrupt
	}

	cred := &Credential{
		AccessToken:  fd.AccessToken,
		RefreshToken: fd.RefreshToken,
	}
	return cred, fd.UserProfile, nil
}

// Save writes the credential and profile atomically via a temp file
// rename, so a crash never leaves a partially written store.
func (s *Store) Save(cred Credential, profile api.UserProfile) error {
	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(fileData{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		UserProfile:  &profile,
	}, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.credentialsFile() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.credentialsFile())
}

// Clear removes the persisted state. Idempotent: clearing an empty store
// is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.credentialsFile())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
