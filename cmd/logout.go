// ABOUTME: Logout command for the planventure CLI
// ABOUTME: Discards the persisted session without any network call

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of PlanVenture",
	Long: `Discard the stored session. Logging out is local and always
succeeds, whether or not a session exists.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns exit code
func runLogout(w io.Writer) int {
	env, err := newEnv()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	env.manager.Logout()
	fmt.Fprintln(w, "Signed out.")
	return 0
}
