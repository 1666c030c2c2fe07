// ABOUTME: Root command for the planventure CLI
// ABOUTME: Handles global flags and session wiring shared by subcommands

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/planventure/planventure-cli/internal/api"
	"github.com/planventure/planventure-cli/internal/credstore"
	"github.com/planventure/planventure-cli/internal/session"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:5000"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "planventure",
	Short: "CLI for the PlanVenture trip planner",
	Long: `planventure is a command-line interface for the PlanVenture trip planning API.

Sign in once and your session persists across invocations. Run without a
subcommand for the interactive interface.

Environment Variables:
  PLANVENTURE_API_URL  Backend API URL (default: http://localhost:5000)
  PLANVENTURE_DEBUG    Write TUI diagnostics to the config directory when set`,
}

// Execute runs the root command
func Execute() error {
	// A local .env is a convenience for development setups; absence is
	// not an error.
	godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides PLANVENTURE_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("PLANVENTURE_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// cliEnv bundles the wired client and session manager for one command run.
type cliEnv struct {
	client  *api.Client
	manager *session.Manager
}

// newEnv constructs the client and session manager and restores any
// persisted session. The manager is the client's credential source, and
// a 401 on any call invalidates the session through the unauthorized
// handler before the call returns.
func newEnv() (*cliEnv, error) {
	client := api.New(GetAPIURL())
	store := credstore.New(credstore.DefaultConfigDir())
	manager := session.NewManager(client, store)
	client.SetCredentialSource(manager)
	client.SetUnauthorizedHandler(manager.Logout)

	if err := manager.Initialize(); err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	return &cliEnv{client: client, manager: manager}, nil
}

// requireSession builds the environment and insists on a signed-in
// session. Returns a non-zero exit code when there is none.
func requireSession(w io.Writer) (*cliEnv, int) {
	env, err := newEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return nil, 2
	}
	if env.manager.Current() != session.StateAuthenticated {
		fmt.Fprintln(w, "Error: not signed in. Run 'planventure login' first.")
		return nil, 1
	}
	return env, 0
}
