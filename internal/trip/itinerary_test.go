// ABOUTME: Tests for the itinerary scaffold generator
// ABOUTME: Verifies day counts, arrival/departure days, and type templates

package trip

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScaffoldItinerary_DayStructure(t *testing.T) {
	doc, err := ScaffoldItinerary("Lisbon", "2026-10-01", "2026-10-05", TypeLeisure)
	require.NoError(t, err)

	var got scaffold
	require.NoError(t, json.Unmarshal([]byte(doc), &got))

	require.Equal(t, "Lisbon", got.Destination)
	require.Equal(t, TypeLeisure, got.TripType)
	require.Equal(t, 4, got.DurationDays)
	require.Len(t, got.Itinerary, 4)

	require.Equal(t, "Arrival and hotel check-in", got.Itinerary["Day 1 (2026-10-01)"].Morning)
	require.Equal(t, "Departure", got.Itinerary["Day 4 (2026-10-04)"].Evening)
	require.Contains(t, got.Itinerary["Day 2 (2026-10-02)"].Morning, "Lisbon")
}

func TestScaffoldItinerary_TripTypeTemplates(t *testing.T) {
	doc, err := ScaffoldItinerary("Oslo", "2026-10-01", "2026-10-04", TypeBusiness)
	require.NoError(t, err)

	var got scaffold
	require.NoError(t, json.Unmarshal([]byte(doc), &got))
	require.Equal(t, "Business meetings", got.Itinerary["Day 2 (2026-10-02)"].Morning)
	require.Contains(t, got.Packing, "Business attire")
}

func TestScaffoldItinerary_RejectsInvalidDates(t *testing.T) {
	_, err := ScaffoldItinerary("Oslo", "October 1st", "2026-10-04", TypeLeisure)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = ScaffoldItinerary("Oslo", "2026-10-04", "2026-10-01", TypeLeisure)
	require.ErrorAs(t, err, &verr)
}

func TestScaffoldItinerary_SurvivesDiffComparison(t *testing.T) {
	doc, err := ScaffoldItinerary("Oslo", "2026-10-01", "2026-10-03", TypeAdventure)
	require.NoError(t, err)
	require.Equal(t, canonicalItinerary(doc), canonicalItinerary(doc))
	require.NotEmpty(t, canonicalItinerary(doc))
}
