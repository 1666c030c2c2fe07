// ABOUTME: Trips edit command for the planventure CLI
// ABOUTME: Sends only the fields that actually changed as a partial update

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/planventure/planventure-cli/internal/api"
	"github.com/planventure/planventure-cli/internal/trip"
)

var (
	editDestination    string
	editStartDate      string
	editEndDate        string
	editLatitude       float64
	editLongitude      float64
	editClearLocation  bool
	editItinerary      string
	editClearItinerary bool
)

var tripsEditCmd = &cobra.Command{
	Use:   "edit <trip-id>",
	Short: "Edit a trip",
	Long: `Edit a trip. The current trip is fetched first and only the fields
that differ from it are sent, so concurrent edits to other fields are
not clobbered. Equivalent input, like reformatted itinerary JSON or
whitespace, counts as unchanged.

Exit codes:
  0 - Trip updated, or nothing differed
  1 - Not signed in, not found, or invalid input
  2 - Error (connectivity, backend)`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTripsEdit(ctx, os.Stdout, args[0], cmd)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	tripsCmd.AddCommand(tripsEditCmd)
	tripsEditCmd.Flags().StringVar(&editDestination, "destination", "", "New destination")
	tripsEditCmd.Flags().StringVar(&editStartDate, "start", "", "New start date (YYYY-MM-DD)")
	tripsEditCmd.Flags().StringVar(&editEndDate, "end", "", "New end date (YYYY-MM-DD)")
	tripsEditCmd.Flags().Float64Var(&editLatitude, "lat", 0, "New destination latitude")
	tripsEditCmd.Flags().Float64Var(&editLongitude, "lng", 0, "New destination longitude")
	tripsEditCmd.Flags().BoolVar(&editClearLocation, "clear-location", false, "Remove the trip's coordinates")
	tripsEditCmd.Flags().StringVar(&editItinerary, "itinerary", "", "New itinerary JSON or free-form notes")
	tripsEditCmd.Flags().BoolVar(&editClearItinerary, "clear-itinerary", false, "Remove the trip's itinerary")
}

// runTripsEdit fetches the trip, diffs the edited draft against it, and
// sends the resulting patch. Returns exit code.
func runTripsEdit(ctx context.Context, w io.Writer, rawID string, cmd *cobra.Command) int {
	id, err := parseTripID(rawID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	env, code := requireSession(w)
	if code != 0 {
		return code
	}

	original, err := env.client.GetTrip(ctx, id)
	if err != nil {
		return reportTripError(w, err)
	}

	draft, err := buildEditDraft(*original, cmd)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	patch, err := trip.Diff(*original, draft)
	if errors.Is(err, trip.ErrNoChanges) {
		fmt.Fprintln(w, "No changes to save.")
		return 0
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	updated, err := env.client.UpdateTrip(ctx, id, patch)
	if err != nil {
		return reportTripError(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatTripJSON(updated))
	} else {
		fmt.Fprintf(w, "Updated trip %d: %s\n", updated.ID, updated.Destination)
	}
	return 0
}

// buildEditDraft starts from the trip's current values and overlays the
// flags the user actually set, so an omitted flag means "keep as is".
func buildEditDraft(original api.Trip, cmd *cobra.Command) (trip.Draft, error) {
	draft := trip.DraftOf(original)
	flags := cmd.Flags()

	if flags.Changed("destination") {
		draft.Destination = editDestination
	}
	if flags.Changed("start") {
		draft.StartDate = editStartDate
	}
	if flags.Changed("end") {
		draft.EndDate = editEndDate
	}

	latSet, lngSet := flags.Changed("lat"), flags.Changed("lng")
	if editClearLocation {
		if latSet || lngSet {
			return draft, errors.New("--clear-location cannot be combined with --lat or --lng")
		}
		draft.Latitude = ""
		draft.Longitude = ""
	} else {
		if latSet != lngSet {
			return draft, errors.New("provide both --lat and --lng, or neither")
		}
		if latSet {
			draft.Latitude = strconv.FormatFloat(editLatitude, 'f', -1, 64)
			draft.Longitude = strconv.FormatFloat(editLongitude, 'f', -1, 64)
		}
	}

	if editClearItinerary {
		if flags.Changed("itinerary") {
			return draft, errors.New("--clear-itinerary cannot be combined with --itinerary")
		}
		draft.Itinerary = ""
	} else if flags.Changed("itinerary") {
		draft.Itinerary = editItinerary
	}

	return draft, nil
}
