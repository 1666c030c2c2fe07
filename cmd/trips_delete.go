// ABOUTME: Trips delete command for the planventure CLI
// ABOUTME: Deletes a trip after an explicit confirmation flag

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

var deleteConfirmed bool

var tripsDeleteCmd = &cobra.Command{
	Use:   "delete <trip-id>",
	Short: "Delete a trip",
	Long: `Delete a trip permanently. Requires --yes; there is no undo.

Exit codes:
  0 - Trip deleted
  1 - Not signed in, not found, or not confirmed
  2 - Error (connectivity, backend)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTripsDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	tripsCmd.AddCommand(tripsDeleteCmd)
	tripsDeleteCmd.Flags().BoolVar(&deleteConfirmed, "yes", false, "Confirm the deletion")
}

// runTripsDelete deletes the trip and returns exit code
func runTripsDelete(ctx context.Context, w io.Writer, rawID string) int {
	id, err := parseTripID(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if !deleteConfirmed {
		fmt.Fprintln(w, "Error: deletion is permanent. Re-run with --yes to confirm.")
		return 1
	}

	env, code := requireSession(w)
	if code != 0 {
		return code
	}

	deleted, err := env.client.DeleteTrip(ctx, id)
	if err != nil {
		return reportTripError(w, err)
	}

	fmt.Fprintf(w, "Deleted trip %d: %s\n", deleted.ID, deleted.Destination)
	return 0
}
