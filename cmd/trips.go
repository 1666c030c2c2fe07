// ABOUTME: Trips command group for the planventure CLI
// ABOUTME: Lists trips with pagination and destination filtering

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
)

var (
	listPage        int
	listPerPage     int
	listDestination string
)

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "Manage your trips",
	Long:  `List, inspect, create, edit, and delete trips. All trip commands require a signed-in session.`,
}

var tripsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your trips",
	Long: `List your trips, newest first.

Exit codes:
  0 - Success
  1 - Not signed in
  2 - Error (connectivity, backend)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runTripsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(tripsCmd)
	tripsCmd.AddCommand(tripsListCmd)
	tripsListCmd.Flags().IntVar(&listPage, "page", 1, "Page to fetch")
	tripsListCmd.Flags().IntVar(&listPerPage, "per-page", 0, "Trips per page (backend default when 0)")
	tripsListCmd.Flags().StringVar(&listDestination, "destination", "", "Filter by destination substring")
}

// runTripsList fetches and prints a page of trips, returning exit code
func runTripsList(ctx context.Context, w io.Writer) int {
	env, code := requireSession(w)
	if code != 0 {
		return code
	}

	page, err := env.client.ListTrips(ctx, api.ListTripsOptions{
		Page:        listPage,
		PerPage:     listPerPage,
		Destination: listDestination,
	})
	if err != nil {
		return reportTripError(w, err)
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatTripsJSON(page))
	} else {
		fmt.Fprintln(w, formatTripsHuman(page))
	}
	return 0
}

// reportTripError prints a failed trip call and picks the exit code. A
// 401 has already invalidated the session through the unauthorized
// handler by the time the error reaches us.
func reportTripError(w io.Writer, err error) int {
	fmt.Fprintf(w, "Error: %v\n", err)

	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status < 500 {
		return 1
	}
	return 2
}

// formatTripsHuman formats a trip page as a table
func formatTripsHuman(page *api.TripPage) string {
	if len(page.Trips) == 0 {
		return "No trips found."
	}

	out := fmt.Sprintf("%-6s %-25s %-12s %-12s %s\n", "ID", "DESTINATION", "START", "END", "LOCATION")
	for _, t := range page.Trips {
		location := "-"
		if t.Coordinates != nil {
			location = fmt.Sprintf("%.4f, %.4f", t.Coordinates.Latitude, t.Coordinates.Longitude)
		}
		out += fmt.Sprintf("%-6d %-25s %-12s %-12s %s\n", t.ID, t.Destination, t.StartDate, t.EndDate, location)
	}

	p := page.Pagination
	if p.Pages > 1 {
		out += fmt.Sprintf("\nPage %d of %d (%d trips)", p.Page, p.Pages, p.Total)
	}
	return out
}

// formatTripsJSON formats a trip page as JSON
func formatTripsJSON(page *api.TripPage) string {
	data, _ := json.MarshalIndent(page, "", "  ")
	return string(data)
}

// formatTripJSON formats a single trip as JSON
func formatTripJSON(t *api.Trip) string {
	data, _ := json.MarshalIndent(t, "", "  ")
	return string(data)
}

// formatTripHuman formats a single trip in detail
func formatTripHuman(t *api.Trip) string {
	location := "none"
	if t.Coordinates != nil {
		location = fmt.Sprintf("%.4f, %.4f", t.Coordinates.Latitude, t.Coordinates.Longitude)
	}
	out := fmt.Sprintf(`Trip:        %d
Destination: %s
Dates:       %s to %s
Location:    %s
Updated:     %s`, t.ID, t.Destination, t.StartDate, t.EndDate, location, t.UpdatedAt)

	if t.Itinerary != "" {
		out += "\n\nItinerary:\n" + indentJSON(t.Itinerary)
	}
	return out
}

// indentJSON pretty-prints a JSON document, returning the raw text when
// it does not parse.
func indentJSON(raw string) string {
	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return raw
	}
	return string(data)
}
