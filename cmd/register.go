// ABOUTME: Register command for the planventure CLI
// ABOUTME: Creates an account; success signs the new user in directly

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a PlanVenture account",
	Long: `Create an account with your email and a password of at least 8
characters containing a letter and a number. A successful registration
signs you in; no separate login is needed.

Exit codes:
  0 - Account created and signed in
  1 - Invalid input or email already registered
  2 - Error (connectivity, persistence)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email address")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")
}

// runRegister executes the registration and returns exit code
func runRegister(ctx context.Context, w io.Writer) int {
	env, err := newEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	profile, err := env.manager.Register(ctx, registerEmail, registerPassword)
	if err != nil {
		return reportAuthError(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatProfileJSON(profile))
	} else {
		fmt.Fprintf(w, "Account created. Signed in as %s\n", profile.EmailAddress)
	}
	return 0
}
