// ABOUTME: UI command for the planventure CLI
// ABOUTME: Launches the interactive terminal interface

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planventure/planventure-cli/internal/api"
	"github.com/planventure/planventure-cli/internal/credstore"
	"github.com/planventure/planventure-cli/internal/session"
	"github.com/planventure/planventure-cli/internal/tui"
	"github.com/planventure/planventure-cli/internal/tui/debuglog"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Open the interactive interface",
	Long: `Open the full-screen terminal interface for browsing and editing
trips. Session restoration happens on startup; you are taken to the
sign-in screen only when no valid session exists.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI()
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
	// The bare command opens the interface too.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runUI()
	}
}

// runUI wires the client and session manager and starts the TUI. Unlike
// the one-shot commands, session restoration is deferred to the TUI's
// own init so the guard can render its pending state.
func runUI() error {
	if os.Getenv("PLANVENTURE_DEBUG") != "" {
		if err := debuglog.Init(credstore.DefaultConfigDir()); err != nil {
			fmt.Fprintf(os.Stderr, "debug log unavailable: %v\n", err)
		}
		defer debuglog.Close()
	}

	client := api.New(GetAPIURL())
	store := credstore.New(credstore.DefaultConfigDir())
	manager := session.NewManager(client, store)
	client.SetCredentialSource(manager)
	client.SetUnauthorizedHandler(manager.Logout)

	return tui.Run(client, manager)
}
