// ABOUTME: Trips show command for the planventure CLI
// ABOUTME: Prints one trip in detail by its id

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
)

var tripsShowCmd = &cobra.Command{
	Use:   "show <trip-id>",
	Short: "Show one trip",
	Long: `Show a trip in detail, including its itinerary.

Exit codes:
  0 - Success
  1 - Not signed in, not found, or not your trip
  2 - Error (connectivity, backend)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTripsShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	tripsCmd.AddCommand(tripsShowCmd)
}

// runTripsShow fetches and prints one trip, returning exit code
func runTripsShow(ctx context.Context, w io.Writer, rawID string) int {
	id, err := parseTripID(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	env, code := requireSession(w)
	if code != 0 {
		return code
	}

	t, err := env.client.GetTrip(ctx, id)
	if err != nil {
		return reportTripError(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatTripJSON(t))
	} else {
		fmt.Fprintln(w, formatTripHuman(t))
	}
	return 0
}

// parseTripID parses a positional trip id argument
func parseTripID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid trip id %q", raw)
	}
	return id, nil
}
