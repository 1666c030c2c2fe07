// ABOUTME: Shared helpers for session manager tests
// ABOUTME: Store seeding and state polling

package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// seedCorrupt writes a partial credentials file (token without profile).
func seedCorrupt(t *testing.T, dir string) {
	t.Helper()
	body := `{"accessToken":"a","refreshToken":"r"}`
	if err := os.WriteFile(filepath.Join(dir, "credentials.json"), []byte(body), 0600); err != nil {
		t.Fatalf("failed to seed corrupt store: %v", err)
	}
}

// waitForState polls until the manager reaches the wanted state.
func waitForState(t *testing.T, mgr *Manager, want State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if mgr.Current() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for state %v, still %v", want, mgr.Current())
}
