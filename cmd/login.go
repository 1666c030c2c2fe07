// ABOUTME: Login command for the planventure CLI
// ABOUTME: Authenticates against the backend and persists the session

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/planventure/planventure-cli/internal/api"
	"github.com/planventure/planventure-cli/internal/session"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to PlanVenture",
	Long: `Sign in with your email and password. The session is stored in the
config directory and reused by later commands until you log out.

Exit codes:
  0 - Signed in
  1 - Invalid input or rejected credentials
  2 - Error (connectivity, persistence)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email address")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
}

// runLogin executes the login and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	env, err := newEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	profile, err := env.manager.Login(ctx, loginEmail, loginPassword)
	if err != nil {
		return reportAuthError(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatProfileJSON(profile))
	} else {
		fmt.Fprintf(w, "Signed in as %s\n", profile.EmailAddress)
	}
	return 0
}

// reportAuthError prints an authentication failure and picks the exit
// code by its kind. Validation and rejected credentials are user errors;
// everything else is environmental.
func reportAuthError(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)

	var authErr *session.AuthError
	if errors.As(err, &authErr) {
		switch authErr.Kind {
		case session.KindValidation, session.KindInvalidCredentials:
			return 1
		}
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status < 500 {
		return 1
	}
	return 2
}

// formatProfileJSON formats a user profile as JSON
func formatProfileJSON(profile *api.UserProfile) string {
	data, _ := json.MarshalIndent(profile, "", "  ")
	return string(data)
}
