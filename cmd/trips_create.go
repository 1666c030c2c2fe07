// ABOUTME: Trips create command for the planventure CLI
// ABOUTME: Creates a trip, optionally scaffolding a day-by-day itinerary

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/planventure/planventure-cli/internal/api"
	"github.com/planventure/planventure-cli/internal/trip"
)

var (
	createDestination string
	createStartDate   string
	createEndDate     string
	createLatitude    float64
	createLongitude   float64
	createItinerary   string
	createScaffold    bool
	createTripType    string
)

var tripsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a trip",
	Long: `Create a trip. With --scaffold and no --itinerary, a day-by-day
itinerary is generated for the date range, shaped by --trip-type
(leisure, business, adventure, cultural).

Exit codes:
  0 - Trip created
  1 - Not signed in or invalid input
  2 - Error (connectivity, backend)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTripsCreate(ctx, os.Stdout, cmd.Flags().Changed("lat"), cmd.Flags().Changed("lng"))
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	tripsCmd.AddCommand(tripsCreateCmd)
	tripsCreateCmd.Flags().StringVar(&createDestination, "destination", "", "Where the trip goes")
	tripsCreateCmd.Flags().StringVar(&createStartDate, "start", "", "Start date (YYYY-MM-DD)")
	tripsCreateCmd.Flags().StringVar(&createEndDate, "end", "", "End date (YYYY-MM-DD)")
	tripsCreateCmd.Flags().Float64Var(&createLatitude, "lat", 0, "Destination latitude")
	tripsCreateCmd.Flags().Float64Var(&createLongitude, "lng", 0, "Destination longitude")
	tripsCreateCmd.Flags().StringVar(&createItinerary, "itinerary", "", "Itinerary JSON or free-form notes")
	tripsCreateCmd.Flags().BoolVar(&createScaffold, "scaffold", false, "Generate a default itinerary when none is given")
	tripsCreateCmd.Flags().StringVar(&createTripType, "trip-type", string(trip.TypeLeisure), "Trip type for the scaffolded itinerary")
	tripsCreateCmd.MarkFlagRequired("destination")
	tripsCreateCmd.MarkFlagRequired("start")
	tripsCreateCmd.MarkFlagRequired("end")
}

// runTripsCreate creates the trip and returns exit code
func runTripsCreate(ctx context.Context, w io.Writer, latSet, lngSet bool) int {
	if latSet != lngSet {
		fmt.Fprintln(w, "Error: provide both --lat and --lng, or neither")
		return 1
	}

	in := api.CreateTripInput{
		Destination: createDestination,
		StartDate:   createStartDate,
		EndDate:     createEndDate,
		Itinerary:   createItinerary,
	}
	if latSet {
		lat, lng := createLatitude, createLongitude
		in.Latitude = &lat
		in.Longitude = &lng
	}

	if in.Itinerary == "" && createScaffold {
		scaffolded, err := trip.ScaffoldItinerary(in.Destination, in.StartDate, in.EndDate, trip.TripType(createTripType))
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 1
		}
		in.Itinerary = scaffolded
	}

	env, code := requireSession(w)
	if code != 0 {
		return code
	}

	t, err := env.client.CreateTrip(ctx, in)
	if err != nil {
		return reportTripError(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatTripJSON(t))
	} else {
		fmt.Fprintf(w, "Created trip %d: %s (%s to %s)\n", t.ID, t.Destination, t.StartDate, t.EndDate)
	}
	return 0
}
