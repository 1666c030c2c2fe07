// ABOUTME: Whoami command for the planventure CLI
// ABOUTME: Shows the signed-in account from the restored session

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Long: `Show the account behind the stored session. The profile is the one
cached at sign-in; no network call is made.

Exit codes:
  0 - Signed in
  1 - Not signed in
  2 - Error reading the stored session`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runWhoami(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami prints the session's account and returns exit code
func runWhoami(w io.Writer) int {
	env, code := requireSession(w)
	if code != 0 {
		return code
	}

	profile := env.manager.Profile()
	if profile == nil {
		fmt.Fprintln(w, "Error: session has no cached profile")
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatProfileJSON(profile))
	} else {
		fmt.Fprintf(w, "Signed in as %s (user %d)\n", profile.EmailAddress, profile.ID)
	}
	return 0
}
